package idclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/anthanhphan/go-idgen-service/internal/api/domain"
	"github.com/anthanhphan/go-idgen-service/internal/api/port"
	"github.com/anthanhphan/go-idgen-service/pkg/idgen"
	"github.com/anthanhphan/go-idgen-service/pkg/idgenrpc"
	"github.com/anthanhphan/go-idgen-service/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
)

// GrpcAdapter talks to ID servers, keeping one connection and one circuit
// breaker per address.
type GrpcAdapter struct {
	dialOpts []grpc.DialOption
	clients  map[string]idgenrpc.IDServiceClient
	conns    map[string]*grpc.ClientConn
	breakers map[string]*resilience.CircuitBreaker
	mu       sync.RWMutex
}

// NewGrpcAdapter creates an adapter. opts are appended to the default
// insecure transport options.
func NewGrpcAdapter(opts ...grpc.DialOption) *GrpcAdapter {
	return &GrpcAdapter{
		dialOpts: append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...),
		clients:  make(map[string]idgenrpc.IDServiceClient),
		conns:    make(map[string]*grpc.ClientConn),
		breakers: make(map[string]*resilience.CircuitBreaker),
	}
}

// Ensure GrpcAdapter implements port.IDNode
var _ port.IDNode = (*GrpcAdapter)(nil)

func (a *GrpcAdapter) Next(ctx context.Context, addr string) (uint64, error) {
	var id uint64
	err := a.call(ctx, addr, "Next", func(execCtx context.Context, client idgenrpc.IDServiceClient) error {
		resp, err := client.Next(execCtx, &emptypb.Empty{})
		if err != nil {
			return err
		}
		id = resp.GetValue()
		return nil
	})
	return id, err
}

func (a *GrpcAdapter) NextBatch(ctx context.Context, addr string, count int) ([]uint64, error) {
	if count < 0 || uint64(count) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d", port.ErrInvalidBatch, count)
	}

	var ids []uint64
	err := a.call(ctx, addr, "NextBatch", func(execCtx context.Context, client idgenrpc.IDServiceClient) error {
		resp, err := client.NextBatch(execCtx, wrapperspb.UInt32(uint32(count)))
		if err != nil {
			return err
		}
		ids, err = parseIDList(resp)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (a *GrpcAdapter) Decode(ctx context.Context, addr string, id uint64) (*domain.DecodedID, error) {
	var decoded *domain.DecodedID
	err := a.call(ctx, addr, "Decode", func(execCtx context.Context, client idgenrpc.IDServiceClient) error {
		resp, err := client.Decode(execCtx, wrapperspb.UInt64(id))
		if err != nil {
			return err
		}
		decoded, err = parseDecoded(resp)
		return err
	})
	if err != nil {
		return nil, err
	}
	return decoded, nil
}

func (a *GrpcAdapter) Info(ctx context.Context, addr string) (*domain.GeneratorInfo, error) {
	var info *domain.GeneratorInfo
	err := a.call(ctx, addr, "Info", func(execCtx context.Context, client idgenrpc.IDServiceClient) error {
		resp, err := client.Info(execCtx, &emptypb.Empty{})
		if err != nil {
			return err
		}
		info = parseInfo(resp)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

// call runs fn through the breaker for addr. Errors the server raised for
// bad input are returned to the caller without counting against the node.
func (a *GrpcAdapter) call(ctx context.Context, addr, op string, fn func(context.Context, idgenrpc.IDServiceClient) error) error {
	var rejected error
	err := a.getBreaker(addr).Execute(ctx, func(execCtx context.Context) error {
		client, err := a.getClient(addr)
		if err != nil {
			return normalizeRPCErr(execCtx, err)
		}

		err = normalizeRPCErr(execCtx, fn(execCtx, client))
		if status.Code(err) == codes.InvalidArgument {
			rejected = err
			return nil
		}
		return err
	})
	if err != nil {
		a.handleRPCErr(addr, err, op)
		return err
	}
	return rejected
}

func (a *GrpcAdapter) getClient(addr string) (idgenrpc.IDServiceClient, error) {
	a.mu.RLock()
	client, ok := a.clients[addr]
	a.mu.RUnlock()
	if ok {
		return client, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double check
	if client, ok := a.clients[addr]; ok {
		return client, nil
	}

	conn, err := grpc.NewClient(addr, a.dialOpts...)
	if err != nil {
		return nil, err
	}

	client = idgenrpc.NewIDServiceClient(conn)
	a.clients[addr] = client
	a.conns[addr] = conn

	return client, nil
}

func (a *GrpcAdapter) getBreaker(addr string) *resilience.CircuitBreaker {
	a.mu.RLock()
	cb, ok := a.breakers[addr]
	a.mu.RUnlock()
	if ok {
		return cb
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if cb, ok = a.breakers[addr]; ok {
		return cb
	}
	cb = resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Name:              addr,
		FailureThreshold:  3,
		SuccessThreshold:  2,
		OpenTimeout:       10 * time.Second,
		HalfOpenMaxFlight: 5,
	})
	a.breakers[addr] = cb
	return cb
}

func (a *GrpcAdapter) handleRPCErr(addr string, err error, op string) {
	if errors.Is(err, resilience.ErrCircuitOpen) {
		logger.Warnw("ID RPC short-circuited", "op", op, "addr", addr, "error", err.Error())
		var openErr *resilience.CircuitOpenError
		if errors.As(err, &openErr) && openErr.RetryAfter <= 0 {
			// Force reconnect when breaker is ready to probe immediately.
			a.dropClient(addr)
		}
		return
	}
	if errors.Is(err, context.Canceled) {
		return
	}
	// The node is up but its clock is behind. Keep the connection.
	if isClockRegression(err) {
		logger.Warnw("ID server refused on clock regression", "op", op, "addr", addr, "error", err.Error())
		return
	}

	logger.Warnw("ID RPC failed", "op", op, "addr", addr, "error", err.Error())
	a.dropClient(addr)
}

func (a *GrpcAdapter) dropClient(addr string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if conn, ok := a.conns[addr]; ok {
		_ = conn.Close()
		delete(a.conns, addr)
	}
	delete(a.clients, addr)
}

func (a *GrpcAdapter) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for addr, conn := range a.conns {
		_ = conn.Close()
		delete(a.conns, addr)
		delete(a.clients, addr)
	}
}

func normalizeRPCErr(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || status.Code(err) == codes.Canceled {
		return context.Canceled
	}
	if errors.Is(err, io.EOF) && ctx != nil && errors.Is(ctx.Err(), context.Canceled) {
		return context.Canceled
	}
	return err
}

func isClockRegression(err error) bool {
	st, ok := status.FromError(err)
	return ok && st.Code() == codes.Unavailable && strings.Contains(st.Message(), idgen.ErrClockRegression.Error())
}

func parseIDList(list *structpb.ListValue) ([]uint64, error) {
	ids := make([]uint64, 0, len(list.GetValues()))
	for i, v := range list.GetValues() {
		id, err := strconv.ParseUint(v.GetStringValue(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed id at index %d: %w", i, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseDecoded(s *structpb.Struct) (*domain.DecodedID, error) {
	fields := s.GetFields()
	id, err := strconv.ParseUint(fields["id"].GetStringValue(), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed decoded id: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, fields["time"].GetStringValue())
	if err != nil {
		return nil, fmt.Errorf("malformed decoded time: %w", err)
	}
	return &domain.DecodedID{
		ID:          id,
		Timestamp:   int64(fields["timestamp"].GetNumberValue()),
		UnixMilli:   int64(fields["unix_ms"].GetNumberValue()),
		Time:        ts,
		PartitionID: int64(fields["partition_id"].GetNumberValue()),
		WorkerID:    int64(fields["worker_id"].GetNumberValue()),
		Sequence:    int64(fields["sequence"].GetNumberValue()),
	}, nil
}

func parseInfo(s *structpb.Struct) *domain.GeneratorInfo {
	fields := s.GetFields()
	return &domain.GeneratorInfo{
		Epoch:       int64(fields["epoch"].GetNumberValue()),
		PartitionID: int64(fields["partition_id"].GetNumberValue()),
		WorkerID:    int64(fields["worker_id"].GetNumberValue()),
		Peers:       parsePeers(fields["peers"].GetListValue()),
		Conflicts:   parsePeers(fields["conflicts"].GetListValue()),
	}
}

func parsePeers(list *structpb.ListValue) []domain.Peer {
	if len(list.GetValues()) == 0 {
		return nil
	}
	peers := make([]domain.Peer, 0, len(list.GetValues()))
	for _, v := range list.GetValues() {
		f := v.GetStructValue().GetFields()
		peers = append(peers, domain.Peer{
			Name:        f["name"].GetStringValue(),
			Addr:        f["addr"].GetStringValue(),
			PartitionID: int64(f["partition_id"].GetNumberValue()),
			WorkerID:    int64(f["worker_id"].GetNumberValue()),
		})
	}
	return peers
}
