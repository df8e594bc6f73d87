package main

import (
	"comments/app/comment"
	"comments/domain"
	"comments/infra/cache"
	"comments/infra/memory"
	"comments/internal/middleware"
	"comments/pkg/events"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	storage, err := cache.NewMemoryStorage(1<<20, time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })

	repo := memory.NewRepository()
	service := comment.NewService(repo, storage, nil, comment.Config{ListKey: "comments"})

	return newApp(service, repo, events.NopPublisher{})
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, data
}

func decodeList(t *testing.T, data []byte) []domain.Comment {
	t.Helper()

	var comments []domain.Comment
	require.NoError(t, json.Unmarshal(data, &comments))
	return comments
}

func TestCommentLifecycle(t *testing.T) {
	app := newTestApp(t)

	resp, data := doRequest(t, app, http.MethodGet, "/api/v1/comments", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, "[]", string(data))

	resp, data = doRequest(t, app, http.MethodPost, "/api/v1/comments",
		`{"post_id":1,"user_id":2,"content":"  first  "}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created domain.Comment
	require.NoError(t, json.Unmarshal(data, &created))
	assert.Equal(t, "first", created.Content)
	assert.Equal(t, domain.CommentStatusActive, created.Status)
	assert.Nil(t, created.ParentID)

	// The list cached as empty above must reflect the create.
	resp, data = doRequest(t, app, http.MethodGet, "/api/v1/comments", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, decodeList(t, data), 1)

	resp, data = doRequest(t, app, http.MethodPut, "/api/v1/comments/1", `{"content":"edited"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated domain.Comment
	require.NoError(t, json.Unmarshal(data, &updated))
	assert.Equal(t, "edited", updated.Content)
	assert.Equal(t, created.PostID, updated.PostID)

	resp, data = doRequest(t, app, http.MethodGet, "/api/v1/comments", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "edited", decodeList(t, data)[0].Content)

	resp, data = doRequest(t, app, http.MethodDelete, "/api/v1/comments/1", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, data)

	resp, data = doRequest(t, app, http.MethodGet, "/api/v1/comments", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeList(t, data))

	resp, _ = doRequest(t, app, http.MethodDelete, "/api/v1/comments/1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEmptyJSONBodyIsIgnored(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doRequest(t, app, http.MethodPost, "/api/v1/comments", `{"post_id":1,"user_id":2,"content":"x"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	send := func(method, target string) int {
		req := httptest.NewRequest(method, target, nil)
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusOK, send(http.MethodGet, "/api/v1/comments"))
	assert.Equal(t, http.StatusOK, send(http.MethodGet, "/api/v1/comments/1"))
	assert.Equal(t, http.StatusNoContent, send(http.MethodDelete, "/api/v1/comments/1"))

	// No body on create still fails validation rather than decoding.
	assert.Equal(t, http.StatusUnprocessableEntity, send(http.MethodPost, "/api/v1/comments"))
}

func TestShowAndReplies(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doRequest(t, app, http.MethodPost, "/api/v1/comments", `{"post_id":1,"user_id":2,"content":"root"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = doRequest(t, app, http.MethodPost, "/api/v1/comments", `{"post_id":1,"user_id":3,"content":"reply","parent_id":1}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, data := doRequest(t, app, http.MethodGet, "/api/v1/comments/2", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reply domain.Comment
	require.NoError(t, json.Unmarshal(data, &reply))
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, int64(1), *reply.ParentID)

	resp, data = doRequest(t, app, http.MethodGet, "/api/v1/comments/1/replies", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	replies := decodeList(t, data)
	require.Len(t, replies, 1)
	assert.Equal(t, int64(2), replies[0].ID)

	resp, _ = doRequest(t, app, http.MethodGet, "/api/v1/comments/42/replies", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestErrorResponses(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
		code   string
	}{
		{"missing content", http.MethodPost, "/api/v1/comments", `{"post_id":1,"user_id":2}`, http.StatusUnprocessableEntity, "comments.create.validation_failed"},
		{"blank content", http.MethodPost, "/api/v1/comments", `{"post_id":1,"user_id":2,"content":"   "}`, http.StatusUnprocessableEntity, "comments.create.validation_failed"},
		{"malformed body", http.MethodPost, "/api/v1/comments", `{"post_id":`, http.StatusUnprocessableEntity, "request.invalid_body"},
		{"mistyped body", http.MethodPost, "/api/v1/comments", `{"post_id":"one","user_id":2,"content":"x"}`, http.StatusUnprocessableEntity, "request.invalid_body"},
		{"unknown show", http.MethodGet, "/api/v1/comments/9", "", http.StatusNotFound, "comments.show.not_found"},
		{"unknown update", http.MethodPut, "/api/v1/comments/9", `{"content":"x"}`, http.StatusNotFound, "comments.update.not_found"},
		{"status out of range", http.MethodPost, "/api/v1/comments", `{"post_id":1,"user_id":2,"content":"x","status":3000000000}`, http.StatusUnprocessableEntity, "comments.create.validation_failed"},
		{"non-numeric id", http.MethodGet, "/api/v1/comments/abc", "", http.StatusBadRequest, "request.invalid_path_params"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := doRequest(t, app, tt.method, tt.target, tt.body)
			require.Equal(t, tt.status, resp.StatusCode, string(data))

			var payload map[string]any
			require.NoError(t, json.Unmarshal(data, &payload))
			assert.Equal(t, tt.code, payload["code"])
		})
	}
}

func TestValidationErrorListsFields(t *testing.T) {
	app := newTestApp(t)

	_, data := doRequest(t, app, http.MethodPost, "/api/v1/comments", `{"content":"x"}`)

	var payload struct {
		Details struct {
			Fields []string `json:"fields"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.ElementsMatch(t, []string{"post_id", "user_id"}, payload.Details.Fields)
}

func TestTraceIDIsEchoed(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/comments", nil)
	req.Header.Set(middleware.TraceIDHeader, "trace-123")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "trace-123", resp.Header.Get(middleware.TraceIDHeader))
}

type unhealthyStore struct{}

func (unhealthyStore) PingContext(context.Context) error { return errors.New("connection refused") }

func (unhealthyStore) GetPoolStats() map[string]interface{} { return nil }

func TestHealthz(t *testing.T) {
	resp, data := doRequest(t, newTestApp(t), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `"status":"ok"`)
	assert.Contains(t, string(data), `"events":"disabled"`)

	storage, err := cache.NewMemoryStorage(1<<20, time.Minute)
	require.NoError(t, err)
	defer storage.Close()

	service := comment.NewService(memory.NewRepository(), storage, nil, comment.Config{ListKey: "comments"})
	resp, _ = doRequest(t, newApp(service, unhealthyStore{}, events.NopPublisher{}), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

type brokerPublisher struct {
	events.NopPublisher
	healthy bool
}

func (p brokerPublisher) IsHealthy() bool { return p.healthy }

func TestHealthzReportsPublisher(t *testing.T) {
	storage, err := cache.NewMemoryStorage(1<<20, time.Minute)
	require.NoError(t, err)
	defer storage.Close()

	repo := memory.NewRepository()
	service := comment.NewService(repo, storage, nil, comment.Config{ListKey: "comments"})

	for want, publisher := range map[string]brokerPublisher{
		"ok":   {healthy: true},
		"down": {healthy: false},
	} {
		t.Run(want, func(t *testing.T) {
			resp, data := doRequest(t, newApp(service, repo, publisher), http.MethodGet, "/healthz", "")
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var payload map[string]any
			require.NoError(t, json.Unmarshal(data, &payload))
			assert.Equal(t, want, payload["events"])
		})
	}
}
