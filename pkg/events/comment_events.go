package events

import "time"

const CommentExchange = "comments.comment"

// Event names
const (
	CommentCreatedEvent = "comment.created"
	CommentUpdatedEvent = "comment.updated"
	CommentDeletedEvent = "comment.deleted"
)

// Event versions
const (
	EventVersionV1 = "v1"
)

type CommentCreatedPayload struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	UserID    int64     `json:"userId"`
	ParentID  *int64    `json:"parentId"`
	Status    int       `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type CommentUpdatedPayload struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	UserID    int64     `json:"userId"`
	ParentID  *int64    `json:"parentId"`
	Status    int       `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CommentDeletedPayload struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	DeletedAt time.Time `json:"deletedAt"`
}
