package port

import (
	"context"

	"github.com/anthanhphan/go-idgen-service/internal/api/domain"
)

//go:generate mockgen -destination=../service/mocks/node_mock.go -package=mocks -source=node.go

// IDNode is a remote ID server reached over gRPC.
type IDNode interface {
	Next(ctx context.Context, addr string) (uint64, error)
	NextBatch(ctx context.Context, addr string, count int) ([]uint64, error)
	Decode(ctx context.Context, addr string, id uint64) (*domain.DecodedID, error)
	Info(ctx context.Context, addr string) (*domain.GeneratorInfo, error)
	Close()
}
