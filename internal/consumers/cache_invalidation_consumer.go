package consumers

import (
	"comments/pkg/events"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// ListCache is the part of the cache the invalidation handler needs.
type ListCache interface {
	Delete(key string) error
}

// CacheInvalidationHandler drops the cached comment list whenever a comment
// event arrives, so replicas sharing a cache converge even when the writer's
// own invalidation failed.
type CacheInvalidationHandler struct {
	cache   ListCache
	listKey string
}

func NewCacheInvalidationHandler(cache ListCache, listKey string) *CacheInvalidationHandler {
	return &CacheInvalidationHandler{
		cache:   cache,
		listKey: listKey,
	}
}

func (h *CacheInvalidationHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	zap.L().Info("Comment event received",
		zap.String("event", event.Event),
		zap.String("version", event.Version),
		zap.String("traceId", event.TraceID),
	)

	switch event.Event {
	case events.CommentCreatedEvent, events.CommentUpdatedEvent, events.CommentDeletedEvent:
		return h.invalidate(ctx, event)
	default:
		zap.L().Warn("Unknown comment event type", zap.String("event", event.Event))
		return nil
	}
}

func (h *CacheInvalidationHandler) invalidate(ctx context.Context, event *events.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := h.cache.Delete(h.listKey); err != nil {
		return fmt.Errorf("invalidate %q after %s: %w", h.listKey, event.Event, err)
	}

	zap.L().Info("Comments cache invalidated",
		zap.String("key", h.listKey),
		zap.String("event", event.Event),
		zap.String("traceId", event.TraceID),
	)

	return nil
}
