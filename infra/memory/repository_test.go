package memory

import (
	"comments/domain"
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComment_AssignsIDsAndTimestamps(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	first, err := repo.CreateComment(ctx, domain.Comment{PostID: 1, UserID: 2, Content: "first"})
	require.NoError(t, err)
	second, err := repo.CreateComment(ctx, domain.Comment{PostID: 1, UserID: 2, Content: "second"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.False(t, first.CreatedAt.IsZero())
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)
}

func TestListComments_OrderedByID(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	for _, content := range []string{"a", "b", "c"} {
		_, err := repo.CreateComment(ctx, domain.Comment{PostID: 1, UserID: 1, Content: content})
		require.NoError(t, err)
	}

	comments, err := repo.ListComments(ctx)

	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "a", comments[0].Content)
	assert.Equal(t, "c", comments[2].Content)
}

func TestListCommentsByParentID(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	parent, err := repo.CreateComment(ctx, domain.Comment{PostID: 1, UserID: 1, Content: "parent"})
	require.NoError(t, err)
	_, err = repo.CreateComment(ctx, domain.Comment{PostID: 1, UserID: 1, Content: "reply", ParentID: &parent.ID})
	require.NoError(t, err)
	_, err = repo.CreateComment(ctx, domain.Comment{PostID: 1, UserID: 1, Content: "other"})
	require.NoError(t, err)

	replies, err := repo.ListCommentsByParentID(ctx, parent.ID)

	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, "reply", replies[0].Content)
}

func TestMissingComment_ReturnsErrNoRows(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	_, err := repo.GetComment(ctx, 42)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	_, err = repo.UpdateComment(ctx, domain.Comment{ID: 42, Content: "x"})
	assert.ErrorIs(t, err, sql.ErrNoRows)

	assert.ErrorIs(t, repo.DeleteComment(ctx, 42), sql.ErrNoRows)
}

func TestUpdateComment_KeepsCreatedAt(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	created, err := repo.CreateComment(ctx, domain.Comment{PostID: 1, UserID: 1, Content: "before"})
	require.NoError(t, err)

	created.Content = "after"
	updated, err := repo.UpdateComment(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, "after", updated.Content)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}
