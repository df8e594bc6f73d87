package memory

import (
	"comments/domain"
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"
)

// Repository is an in-process comment Store. It follows the Postgres
// repository contract, including sql.ErrNoRows for missing comments.
type Repository struct {
	mu       sync.RWMutex
	comments map[int64]domain.Comment
	nextID   int64
}

func NewRepository() *Repository {
	return &Repository{
		comments: make(map[int64]domain.Comment),
	}
}

func (r *Repository) ListComments(_ context.Context) ([]domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comments := make([]domain.Comment, 0, len(r.comments))
	for _, c := range r.comments {
		comments = append(comments, c)
	}

	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

func (r *Repository) ListCommentsByParentID(_ context.Context, parentID int64) ([]domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comments := make([]domain.Comment, 0)
	for _, c := range r.comments {
		if c.ParentID != nil && *c.ParentID == parentID {
			comments = append(comments, c)
		}
	}

	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

func (r *Repository) GetComment(_ context.Context, id int64) (domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.comments[id]
	if !ok {
		return domain.Comment{}, sql.ErrNoRows
	}

	return c, nil
}

func (r *Repository) CreateComment(_ context.Context, comment domain.Comment) (domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now().UTC()

	comment.ID = r.nextID
	comment.CreatedAt = now
	comment.UpdatedAt = now
	r.comments[comment.ID] = comment

	return comment, nil
}

func (r *Repository) UpdateComment(_ context.Context, comment domain.Comment) (domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.comments[comment.ID]
	if !ok {
		return domain.Comment{}, sql.ErrNoRows
	}

	comment.CreatedAt = existing.CreatedAt
	comment.UpdatedAt = time.Now().UTC()
	r.comments[comment.ID] = comment

	return comment, nil
}

func (r *Repository) DeleteComment(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[id]; !ok {
		return sql.ErrNoRows
	}

	delete(r.comments, id)
	return nil
}

func (r *Repository) PingContext(_ context.Context) error {
	return nil
}

func (r *Repository) GetPoolStats() map[string]interface{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return map[string]interface{}{
		"driver":   "memory",
		"comments": len(r.comments),
	}
}

func (r *Repository) Close() error {
	return nil
}
