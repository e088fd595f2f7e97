package idclient

import (
	"context"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	grpc_handler "github.com/anthanhphan/go-idgen-service/internal/api/adapter/inbound/grpc"
	"github.com/anthanhphan/go-idgen-service/internal/api/port"
	"github.com/anthanhphan/go-idgen-service/internal/api/service"
	"github.com/anthanhphan/go-idgen-service/internal/api/service/mocks"
	"github.com/anthanhphan/go-idgen-service/pkg/idgen"
	"github.com/anthanhphan/go-idgen-service/pkg/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

const bufAddr = "passthrough:///bufnet"

func newTestAdapter(t *testing.T, svc port.IDService) *GrpcAdapter {
	t.Helper()

	srv := grpc_handler.NewServer(svc)
	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Stop(ctx)
	})

	a := NewGrpcAdapter(grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	t.Cleanup(a.Close)
	return a
}

func TestGrpcAdapter_RoundTrip(t *testing.T) {
	gen, err := idgen.New(9, idgen.StaticIdentity{WorkerID: 21}, nil)
	require.NoError(t, err)
	a := newTestAdapter(t, service.NewIDService(gen, nil, 100))
	ctx := context.Background()

	first, err := a.Next(ctx, bufAddr)
	require.NoError(t, err)

	ids, err := a.NextBatch(ctx, bufAddr, 100)
	require.NoError(t, err)
	require.Len(t, ids, 100)
	prev := first
	for _, id := range ids {
		require.Greater(t, id, prev)
		prev = id
	}

	decoded, err := a.Decode(ctx, bufAddr, ids[99])
	require.NoError(t, err)
	assert.Equal(t, ids[99], decoded.ID)
	assert.Equal(t, int64(9), decoded.PartitionID)
	assert.Equal(t, int64(21), decoded.WorkerID)
	assert.Equal(t, decoded.UnixMilli, decoded.Time.UnixMilli())

	info, err := a.Info(ctx, bufAddr)
	require.NoError(t, err)
	assert.Equal(t, int64(idgen.DefaultEpoch), info.Epoch)
	assert.Equal(t, int64(21), info.WorkerID)
	assert.True(t, info.Healthy())
}

func TestGrpcAdapter_InvalidArgumentDoesNotTripBreaker(t *testing.T) {
	gen, err := idgen.New(0, idgen.StaticIdentity{WorkerID: 0}, nil)
	require.NoError(t, err)
	a := newTestAdapter(t, service.NewIDService(gen, nil, 10))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := a.NextBatch(ctx, bufAddr, 11)
		require.Error(t, err)
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	}
	assert.Equal(t, resilience.CircuitClosed, a.getBreaker(bufAddr).State())

	_, err = a.Next(ctx, bufAddr)
	require.NoError(t, err)
}

func TestGrpcAdapter_ClockRegressionOpensBreaker(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockIDService(ctrl)
	svc.EXPECT().Next(gomock.Any()).Return(uint64(0), &idgen.ClockRegressionError{Last: 20, Now: 10}).Times(3)

	a := newTestAdapter(t, svc)
	for i := 0; i < 3; i++ {
		_, err := a.Next(context.Background(), bufAddr)
		assert.Equal(t, codes.Unavailable, status.Code(err))
		assert.True(t, isClockRegression(err))
	}

	// Fourth call never reaches the server.
	_, err := a.Next(context.Background(), bufAddr)
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
}

func TestGrpcAdapter_InvalidBatchLocally(t *testing.T) {
	a := NewGrpcAdapter()
	_, err := a.NextBatch(context.Background(), bufAddr, -1)
	assert.ErrorIs(t, err, port.ErrInvalidBatch)
}

func TestNormalizeRPCErr(t *testing.T) {
	t.Run("grpc canceled to context canceled", func(t *testing.T) {
		err := normalizeRPCErr(context.Background(), status.Error(codes.Canceled, "canceled"))
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("eof with canceled context to context canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := normalizeRPCErr(ctx, io.EOF)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("unavailable stays failure", func(t *testing.T) {
		input := status.Error(codes.Unavailable, "unavailable")
		err := normalizeRPCErr(context.Background(), input)
		if status.Code(err) != codes.Unavailable {
			t.Fatalf("expected unavailable, got %v", err)
		}
	})
}
