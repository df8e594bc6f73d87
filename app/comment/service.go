package comment

import (
	"comments/domain"
	"comments/pkg/events"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var errParentCycle = errors.New("parent_id would create a reply cycle")

type Config struct {
	// ListKey is the single cache key holding the full comment list.
	ListKey string
	// ParentGuardDepth bounds the ancestor walk that rejects reply cycles on
	// update. Zero disables the guard.
	ParentGuardDepth int
}

// Service keeps the cached comment list consistent with the Store: list
// reads go through the cache, every committed write deletes the cached list
// and the next list read repopulates it.
type Service struct {
	repository       Repository
	cache            Cache
	publisher        events.Publisher
	listKey          string
	parentGuardDepth int
	validate         *validator.Validate
}

func NewService(repository Repository, cache Cache, publisher events.Publisher, cfg Config) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	return &Service{
		repository:       repository,
		cache:            cache,
		publisher:        publisher,
		listKey:          cfg.ListKey,
		parentGuardDepth: cfg.ParentGuardDepth,
		validate:         newValidator(),
	}
}

// ListAll returns every comment, from the cache when a snapshot is present
// and from the Store otherwise.
func (s *Service) ListAll(ctx context.Context) ([]domain.Comment, error) {
	if comments, ok := s.cachedList(); ok {
		return comments, nil
	}

	comments, err := s.repository.ListComments(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	if comments == nil {
		comments = []domain.Comment{}
	}

	payload, err := json.Marshal(comments)
	if err != nil {
		zap.L().Warn("Failed to serialize comments for cache", zap.Error(err))
		return comments, nil
	}

	if err := s.cache.Set(s.listKey, payload, 0); err != nil {
		zap.L().Warn("Failed to populate comments cache",
			zap.String("key", s.listKey),
			zap.Error(cacheError(err)),
		)
	}

	return comments, nil
}

func (s *Service) cachedList() ([]domain.Comment, bool) {
	payload, err := s.cache.Get(s.listKey)
	if err != nil {
		zap.L().Warn("Comments cache read failed, falling back to store",
			zap.String("key", s.listKey),
			zap.Error(cacheError(err)),
		)
		return nil, false
	}
	if len(payload) == 0 {
		return nil, false
	}

	var comments []domain.Comment
	if err := json.Unmarshal(payload, &comments); err != nil {
		zap.L().Warn("Discarding undecodable comments cache entry",
			zap.String("key", s.listKey),
			zap.Error(err),
		)
		return nil, false
	}
	if comments == nil {
		comments = []domain.Comment{}
	}

	return comments, true
}

// Read fetches a single comment from the Store. The cache only holds the
// full list.
func (s *Service) Read(ctx context.Context, id int64) (domain.Comment, error) {
	comment, err := s.repository.GetComment(ctx, id)
	if err != nil {
		return domain.Comment{}, storeError(err)
	}

	return comment, nil
}

// Replies lists the direct children of a comment.
func (s *Service) Replies(ctx context.Context, id int64) ([]domain.Comment, error) {
	if _, err := s.repository.GetComment(ctx, id); err != nil {
		return nil, storeError(err)
	}

	replies, err := s.repository.ListCommentsByParentID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	if replies == nil {
		replies = []domain.Comment{}
	}

	return replies, nil
}

func (s *Service) Create(ctx context.Context, req *CreateCommentRequest) (domain.Comment, error) {
	req.Content = strings.TrimSpace(req.Content)

	if err := s.validateStruct(req); err != nil {
		return domain.Comment{}, err
	}

	status := domain.CommentStatusActive
	if req.Status != nil {
		status = *req.Status
	}

	created, err := s.repository.CreateComment(ctx, domain.Comment{
		PostID:   *req.PostID,
		UserID:   *req.UserID,
		Content:  req.Content,
		Status:   status,
		ParentID: req.ParentID,
	})
	if err != nil {
		return domain.Comment{}, storeError(err)
	}

	s.invalidate()

	s.publish(ctx, events.CommentCreatedEvent, events.CommentCreatedPayload{
		ID:        created.ID,
		PostID:    created.PostID,
		UserID:    created.UserID,
		ParentID:  created.ParentID,
		Status:    created.Status,
		CreatedAt: created.CreatedAt,
	})

	return created, nil
}

func (s *Service) Update(ctx context.Context, req *UpdateCommentRequest) (domain.Comment, error) {
	comment, err := s.repository.GetComment(ctx, req.ID)
	if err != nil {
		return domain.Comment{}, storeError(err)
	}

	req.Content = strings.TrimSpace(req.Content)

	if err := s.validateStruct(req); err != nil {
		return domain.Comment{}, err
	}

	comment.Content = req.Content
	if req.PostID != nil {
		comment.PostID = *req.PostID
	}
	if req.UserID != nil {
		comment.UserID = *req.UserID
	}
	if req.Status != nil {
		comment.Status = *req.Status
	}
	if req.ParentID != nil {
		if err := s.checkParent(ctx, comment.ID, *req.ParentID); err != nil {
			return domain.Comment{}, err
		}
		comment.ParentID = req.ParentID
	}

	updated, err := s.repository.UpdateComment(ctx, comment)
	if err != nil {
		return domain.Comment{}, storeError(err)
	}

	s.invalidate()

	s.publish(ctx, events.CommentUpdatedEvent, events.CommentUpdatedPayload{
		ID:        updated.ID,
		PostID:    updated.PostID,
		UserID:    updated.UserID,
		ParentID:  updated.ParentID,
		Status:    updated.Status,
		UpdatedAt: updated.UpdatedAt,
	})

	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	comment, err := s.repository.GetComment(ctx, id)
	if err != nil {
		return storeError(err)
	}

	if err := s.repository.DeleteComment(ctx, id); err != nil {
		return storeError(err)
	}

	s.invalidate()

	s.publish(ctx, events.CommentDeletedEvent, events.CommentDeletedPayload{
		ID:        comment.ID,
		PostID:    comment.PostID,
		DeletedAt: time.Now().UTC(),
	})

	return nil
}

// Invalidate drops the cached comment list.
func (s *Service) Invalidate() error {
	if err := s.cache.Delete(s.listKey); err != nil {
		return cacheError(err)
	}

	return nil
}

// invalidate runs after a committed write; failures leave a stale entry
// until expiry or the worker's invalidation, and never fail the write.
func (s *Service) invalidate() {
	if err := s.Invalidate(); err != nil {
		zap.L().Error("Failed to invalidate comments cache",
			zap.String("key", s.listKey),
			zap.Error(err),
		)
	}
}

func (s *Service) publish(ctx context.Context, name string, payload any) {
	headers := events.HeadersFromContext(ctx)
	event := events.NewEvent(name, events.EventVersionV1, payload, headers)

	if err := s.publisher.Publish(ctx, events.CommentExchange, event, headers); err != nil {
		zap.L().Warn("Failed to publish comment event",
			zap.String("event", name),
			zap.String("traceId", headers.TraceID),
			zap.Error(err),
		)
	}
}

// checkParent walks up from parentID and rejects the update when it reaches
// the comment being updated within parentGuardDepth steps.
func (s *Service) checkParent(ctx context.Context, id, parentID int64) error {
	current := parentID

	for depth := 0; depth < s.parentGuardDepth; depth++ {
		if current == id {
			return &ValidationError{Fields: []string{"parent_id"}, err: errParentCycle}
		}

		parent, err := s.repository.GetComment(ctx, current)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return storeError(err)
		}
		if parent.ParentID == nil {
			return nil
		}

		current = *parent.ParentID
	}

	return nil
}
