package comment

import (
	"comments/domain"
	"context"
)

type GetCommentsHandler struct {
	service *Service
}

func NewGetCommentsHandler(service *Service) *GetCommentsHandler {
	return &GetCommentsHandler{
		service: service,
	}
}

type GetCommentsRequest struct{}

type GetCommentsResponse []domain.Comment

func (h *GetCommentsHandler) Handle(ctx context.Context, _ *GetCommentsRequest) (*GetCommentsResponse, error) {
	comments, err := h.service.ListAll(ctx)
	if err != nil {
		return nil, toHTTPError("comments.index", err, "")
	}

	res := GetCommentsResponse(comments)
	return &res, nil
}
