package grpc

import (
	"comments/app/comment"
	"comments/domain"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	CommentServiceName = "comments.v1.CommentService"

	listCommentsMethod = "/comments.v1.CommentService/ListComments"
	getCommentMethod   = "/comments.v1.CommentService/GetComment"
)

// CommentReader is the read side of the comment service.
type CommentReader interface {
	ListAll(ctx context.Context) ([]domain.Comment, error)
	Read(ctx context.Context, id int64) (domain.Comment, error)
}

type CommentServiceServer interface {
	ListComments(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	GetComment(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
}

// Messages are well-known types, so the descriptor is declared here rather
// than generated.
var commentServiceDesc = grpc.ServiceDesc{
	ServiceName: CommentServiceName,
	HandlerType: (*CommentServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListComments", Handler: listCommentsHandler},
		{MethodName: "GetComment", Handler: getCommentHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "comments/v1/comment_service.proto",
}

func RegisterCommentServiceServer(registrar grpc.ServiceRegistrar, srv CommentServiceServer) {
	registrar.RegisterService(&commentServiceDesc, srv)
}

func listCommentsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CommentServiceServer).ListComments(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listCommentsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CommentServiceServer).ListComments(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func getCommentHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CommentServiceServer).GetComment(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getCommentMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CommentServiceServer).GetComment(ctx, req.(*wrapperspb.Int64Value))
	}
	return interceptor(ctx, in, info, handler)
}

type CommentService struct {
	reader CommentReader
}

func NewCommentService(reader CommentReader) *CommentService {
	return &CommentService{
		reader: reader,
	}
}

// ListComments serves the cached comment list.
func (s *CommentService) ListComments(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	comments, err := s.reader.ListAll(ctx)
	if err != nil {
		return nil, s.mapError(err)
	}

	values := make([]*structpb.Value, 0, len(comments))
	for _, c := range comments {
		st, err := commentToStruct(c)
		if err != nil {
			zap.L().Error("Failed to encode comment", zap.Int64("id", c.ID), zap.Error(err))
			return nil, status.Error(codes.Internal, "internal error")
		}
		values = append(values, structpb.NewStructValue(st))
	}

	return &structpb.ListValue{Values: values}, nil
}

func (s *CommentService) GetComment(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	if req.GetValue() <= 0 {
		return nil, status.Error(codes.InvalidArgument, "id must be a positive integer")
	}

	c, err := s.reader.Read(ctx, req.GetValue())
	if err != nil {
		return nil, s.mapError(err)
	}

	st, err := commentToStruct(c)
	if err != nil {
		zap.L().Error("Failed to encode comment", zap.Int64("id", c.ID), zap.Error(err))
		return nil, status.Error(codes.Internal, "internal error")
	}

	return st, nil
}

func (s *CommentService) mapError(err error) error {
	var validationErr *comment.ValidationError

	switch {
	case errors.Is(err, comment.ErrNotFound):
		return status.Error(codes.NotFound, "comment not found")
	case errors.Is(err, comment.ErrStoreUnavailable):
		return status.Error(codes.Unavailable, "comment store unavailable")
	case errors.As(err, &validationErr):
		return status.Error(codes.InvalidArgument, validationErr.Error())
	}
	return status.Error(codes.Internal, "internal error")
}

func commentToStruct(c domain.Comment) (*structpb.Struct, error) {
	var parentID any
	if c.ParentID != nil {
		parentID = *c.ParentID
	}

	return structpb.NewStruct(map[string]any{
		"id":         c.ID,
		"post_id":    c.PostID,
		"user_id":    c.UserID,
		"content":    c.Content,
		"status":     c.Status,
		"parent_id":  parentID,
		"created_at": c.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at": c.UpdatedAt.UTC().Format(time.RFC3339Nano),
	})
}

// CommentServiceClient calls CommentService over an existing connection.
type CommentServiceClient struct {
	conn grpc.ClientConnInterface
}

func NewCommentServiceClient(conn grpc.ClientConnInterface) *CommentServiceClient {
	return &CommentServiceClient{conn: conn}
}

func (c *CommentServiceClient) ListComments(ctx context.Context, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.conn.Invoke(ctx, listCommentsMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CommentServiceClient) GetComment(ctx context.Context, id int64, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, getCommentMethod, wrapperspb.Int64(id), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
