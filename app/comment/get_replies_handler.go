package comment

import (
	"context"
)

type GetRepliesHandler struct {
	service *Service
}

func NewGetRepliesHandler(service *Service) *GetRepliesHandler {
	return &GetRepliesHandler{
		service: service,
	}
}

type GetRepliesRequest struct {
	ID int64 `params:"id"`
}

func (h *GetRepliesHandler) Handle(ctx context.Context, req *GetRepliesRequest) (*GetCommentsResponse, error) {
	replies, err := h.service.Replies(ctx, req.ID)
	if err != nil {
		return nil, toHTTPError("comments.replies", err, "Comment not found")
	}

	res := GetCommentsResponse(replies)
	return &res, nil
}
