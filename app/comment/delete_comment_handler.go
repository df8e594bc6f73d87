package comment

import (
	"context"
)

type DeleteCommentHandler struct {
	service *Service
}

type DeleteCommentRequest struct {
	ID int64 `params:"id"`
}

type DeleteCommentResponse struct{}

func NewDeleteCommentHandler(service *Service) *DeleteCommentHandler {
	return &DeleteCommentHandler{
		service: service,
	}
}

func (h *DeleteCommentHandler) Handle(ctx context.Context, req *DeleteCommentRequest) (*DeleteCommentResponse, error) {
	if err := h.service.Delete(ctx, req.ID); err != nil {
		return nil, toHTTPError("comments.destroy", err, "Comment not found")
	}

	return &DeleteCommentResponse{}, nil
}
