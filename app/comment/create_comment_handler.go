package comment

import (
	"comments/domain"
	"context"
)

type CreateCommentHandler struct {
	service *Service
}

func NewCreateCommentHandler(service *Service) *CreateCommentHandler {
	return &CreateCommentHandler{
		service: service,
	}
}

type CreateCommentRequest struct {
	PostID   *int64 `json:"post_id" validate:"required"`
	UserID   *int64 `json:"user_id" validate:"required"`
	Content  string `json:"content" validate:"required,pgtext"`
	Status   *int   `json:"status,omitempty" validate:"omitempty,min=-2147483648,max=2147483647"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

func (h *CreateCommentHandler) Handle(ctx context.Context, req *CreateCommentRequest) (*domain.Comment, error) {
	comment, err := h.service.Create(ctx, req)
	if err != nil {
		return nil, toHTTPError("comments.create", err, "")
	}

	return &comment, nil
}
