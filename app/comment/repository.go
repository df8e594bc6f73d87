package comment

import (
	"comments/domain"
	"context"
	"time"
)

// Repository is the comment Store. Implementations return sql.ErrNoRows
// when the addressed comment does not exist.
type Repository interface {
	ListComments(ctx context.Context) ([]domain.Comment, error)
	ListCommentsByParentID(ctx context.Context, parentID int64) ([]domain.Comment, error)
	GetComment(ctx context.Context, id int64) (domain.Comment, error)
	CreateComment(ctx context.Context, comment domain.Comment) (domain.Comment, error)
	UpdateComment(ctx context.Context, comment domain.Comment) (domain.Comment, error)
	DeleteComment(ctx context.Context, id int64) error
}

// Cache is the key-value substrate in front of the list read path. Every
// fiber.Storage satisfies it. Get returns a nil value for a missing key and
// an exp of 0 means the cache's own default expiry.
type Cache interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
	Delete(key string) error
}
