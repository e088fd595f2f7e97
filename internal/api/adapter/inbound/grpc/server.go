package grpc_handler

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/anthanhphan/go-idgen-service/internal/api/domain"
	"github.com/anthanhphan/go-idgen-service/internal/api/port"
	"github.com/anthanhphan/go-idgen-service/pkg/idgen"
	"github.com/anthanhphan/go-idgen-service/pkg/idgenrpc"
	"github.com/anthanhphan/gosdk/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Server implements the gRPC IDService.
type Server struct {
	service port.IDService
	grpc    *grpc.Server
}

var _ idgenrpc.IDServiceServer = (*Server)(nil)

// NewServer creates a new gRPC server and registers the ID service on it.
func NewServer(service port.IDService, opts ...grpc.ServerOption) *Server {
	s := &Server{
		service: service,
		grpc:    grpc.NewServer(opts...),
	}
	idgenrpc.RegisterIDServiceServer(s.grpc, s)
	return s
}

// Serve blocks until lis is closed or Stop is called.
func (s *Server) Serve(lis net.Listener) error {
	return s.grpc.Serve(lis)
}

// Stop drains in-flight calls until ctx expires, then forces the stop.
func (s *Server) Stop(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.grpc.Stop()
	}
}

// Next issues one ID.
func (s *Server) Next(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.UInt64Value, error) {
	id, err := s.service.Next(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.UInt64(id), nil
}

// NextBatch issues req.Value IDs, encoded as decimal strings.
func (s *Server) NextBatch(ctx context.Context, req *wrapperspb.UInt32Value) (*structpb.ListValue, error) {
	ids, err := s.service.NextBatch(ctx, int(req.GetValue()))
	if err != nil {
		return nil, toStatus(err)
	}

	values := make([]*structpb.Value, 0, len(ids))
	for _, id := range ids {
		values = append(values, structpb.NewStringValue(strconv.FormatUint(id, 10)))
	}
	return &structpb.ListValue{Values: values}, nil
}

// Decode unpacks an ID.
func (s *Server) Decode(ctx context.Context, req *wrapperspb.UInt64Value) (*structpb.Struct, error) {
	decoded, err := s.service.Decode(ctx, req.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}

	out, err := structpb.NewStruct(map[string]any{
		"id":           strconv.FormatUint(decoded.ID, 10),
		"timestamp":    decoded.Timestamp,
		"unix_ms":      decoded.UnixMilli,
		"time":         decoded.Time.Format(time.RFC3339Nano),
		"partition_id": decoded.PartitionID,
		"worker_id":    decoded.WorkerID,
		"sequence":     decoded.Sequence,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode decoded id: %v", err)
	}
	return out, nil
}

// Info describes the generator and the peers it knows of.
func (s *Server) Info(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	info, err := s.service.Info(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	out, err := structpb.NewStruct(map[string]any{
		"epoch":        info.Epoch,
		"partition_id": info.PartitionID,
		"worker_id":    info.WorkerID,
		"healthy":      info.Healthy(),
		"peers":        peersToList(info.Peers),
		"conflicts":    peersToList(info.Conflicts),
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode info: %v", err)
	}
	return out, nil
}

func peersToList(peers []domain.Peer) []any {
	out := make([]any, 0, len(peers))
	for _, p := range peers {
		out = append(out, map[string]any{
			"name":         p.Name,
			"addr":         p.Addr,
			"partition_id": p.PartitionID,
			"worker_id":    p.WorkerID,
		})
	}
	return out
}

// toStatus maps service errors to gRPC codes. A clock regression is
// Unavailable so clients retry against another node or later.
func toStatus(err error) error {
	switch {
	case errors.Is(err, idgen.ErrClockRegression):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, port.ErrInvalidID),
		errors.Is(err, port.ErrInvalidBatch),
		errors.Is(err, port.ErrBatchTooLarge):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		logger.Errorw("ID RPC failed", "error", err.Error())
		return status.Error(codes.Internal, fmt.Sprintf("id generation failed: %v", err))
	}
}
