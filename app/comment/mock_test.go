package comment

import (
	"comments/domain"
	"comments/pkg/events"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) ListComments(ctx context.Context) ([]domain.Comment, error) {
	args := m.Called(ctx)
	comments, _ := args.Get(0).([]domain.Comment)
	return comments, args.Error(1)
}

func (m *mockRepository) ListCommentsByParentID(ctx context.Context, parentID int64) ([]domain.Comment, error) {
	args := m.Called(ctx, parentID)
	comments, _ := args.Get(0).([]domain.Comment)
	return comments, args.Error(1)
}

func (m *mockRepository) GetComment(ctx context.Context, id int64) (domain.Comment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Comment), args.Error(1)
}

func (m *mockRepository) CreateComment(ctx context.Context, comment domain.Comment) (domain.Comment, error) {
	args := m.Called(ctx, comment)
	return args.Get(0).(domain.Comment), args.Error(1)
}

func (m *mockRepository) UpdateComment(ctx context.Context, comment domain.Comment) (domain.Comment, error) {
	args := m.Called(ctx, comment)
	return args.Get(0).(domain.Comment), args.Error(1)
}

func (m *mockRepository) DeleteComment(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(key string) ([]byte, error) {
	args := m.Called(key)
	val, _ := args.Get(0).([]byte)
	return val, args.Error(1)
}

func (m *mockCache) Set(key string, val []byte, exp time.Duration) error {
	args := m.Called(key, val, exp)
	return args.Error(0)
}

func (m *mockCache) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, exchange string, event *events.Event, headers events.Headers) error {
	args := m.Called(ctx, exchange, event, headers)
	return args.Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}
