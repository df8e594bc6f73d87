package comment

import (
	"comments/domain"
	"context"
)

type GetCommentHandler struct {
	service *Service
}

func NewGetCommentHandler(service *Service) *GetCommentHandler {
	return &GetCommentHandler{
		service: service,
	}
}

type GetCommentRequest struct {
	ID int64 `params:"id"`
}

func (h *GetCommentHandler) Handle(ctx context.Context, req *GetCommentRequest) (*domain.Comment, error) {
	comment, err := h.service.Read(ctx, req.ID)
	if err != nil {
		return nil, toHTTPError("comments.show", err, "Comment not found")
	}

	return &comment, nil
}
