package port

import (
	"context"
	"errors"

	"github.com/anthanhphan/go-idgen-service/internal/api/domain"
)

var (
	ErrInvalidID     = errors.New("invalid id")
	ErrInvalidBatch  = errors.New("invalid batch size")
	ErrBatchTooLarge = errors.New("batch size exceeds limit")
)

//go:generate mockgen -destination=../service/mocks/service_mock.go -package=mocks -source=service.go

// IDService defines the business logic for ID issuance.
type IDService interface {
	// Next issues one ID.
	Next(ctx context.Context) (uint64, error)

	// NextBatch issues count IDs in increasing order. Either all are issued or none.
	NextBatch(ctx context.Context, count int) ([]uint64, error)

	// Decode unpacks an ID for diagnostics.
	Decode(ctx context.Context, id uint64) (*domain.DecodedID, error)

	// Info describes the local generator and its peers.
	Info(ctx context.Context) (*domain.GeneratorInfo, error)
}
