package comment

import (
	"comments/domain"
	"context"
)

type UpdateCommentHandler struct {
	service *Service
}

func NewUpdateCommentHandler(service *Service) *UpdateCommentHandler {
	return &UpdateCommentHandler{
		service: service,
	}
}

// UpdateCommentRequest merges the non-nil fields onto the stored comment.
// Content is always required.
type UpdateCommentRequest struct {
	ID       int64  `params:"id" json:"-"`
	PostID   *int64 `json:"post_id,omitempty"`
	UserID   *int64 `json:"user_id,omitempty"`
	Content  string `json:"content" validate:"required,pgtext"`
	Status   *int   `json:"status,omitempty" validate:"omitempty,min=-2147483648,max=2147483647"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

func (h *UpdateCommentHandler) Handle(ctx context.Context, req *UpdateCommentRequest) (*domain.Comment, error) {
	comment, err := h.service.Update(ctx, req)
	if err != nil {
		return nil, toHTTPError("comments.update", err, "Comment not found")
	}

	return &comment, nil
}
