package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthanhphan/go-idgen-service/internal/api/domain"
	"github.com/anthanhphan/go-idgen-service/internal/api/port"
	"github.com/anthanhphan/go-idgen-service/pkg/gossip"
	"github.com/anthanhphan/go-idgen-service/pkg/idgen"
	"github.com/anthanhphan/gosdk/logger"
)

// IDServiceImpl issues IDs from a single generator instance.
type IDServiceImpl struct {
	gen      port.IDGenerator
	peers    port.PeerDirectory
	maxBatch int
}

// Ensure IDServiceImpl implements port.IDService.
var _ port.IDService = (*IDServiceImpl)(nil)

// NewIDService builds the service. peers may be nil when gossip is disabled.
func NewIDService(gen port.IDGenerator, peers port.PeerDirectory, maxBatch int) *IDServiceImpl {
	if maxBatch <= 0 {
		maxBatch = 1
	}
	return &IDServiceImpl{
		gen:      gen,
		peers:    peers,
		maxBatch: maxBatch,
	}
}

func (s *IDServiceImpl) Next(ctx context.Context) (uint64, error) {
	id, err := s.gen.NextContext(ctx)
	if err != nil {
		s.logFailure(err)
		return 0, err
	}

	logger.Debugw("New id generated", "id", id)
	return id, nil
}

func (s *IDServiceImpl) NextBatch(ctx context.Context, count int) ([]uint64, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: %d", port.ErrInvalidBatch, count)
	}
	if count > s.maxBatch {
		return nil, fmt.Errorf("%w: %d > %d", port.ErrBatchTooLarge, count, s.maxBatch)
	}

	ids := make([]uint64, 0, count)
	for i := 0; i < count; i++ {
		id, err := s.gen.NextContext(ctx)
		if err != nil {
			s.logFailure(err)
			return nil, fmt.Errorf("batch aborted after %d of %d ids: %w", i, count, err)
		}
		ids = append(ids, id)
	}

	logger.Debugw("New id batch generated", "count", count, "first", ids[0], "last", ids[len(ids)-1])
	return ids, nil
}

func (s *IDServiceImpl) Decode(ctx context.Context, id uint64) (*domain.DecodedID, error) {
	if id>>63 != 0 {
		return nil, fmt.Errorf("%w: sign bit set", port.ErrInvalidID)
	}

	f := s.gen.Decode(id)
	epoch := s.gen.Epoch()
	return &domain.DecodedID{
		ID:          id,
		Timestamp:   f.Timestamp,
		UnixMilli:   f.UnixMilli(epoch),
		Time:        f.Time(epoch),
		PartitionID: f.PartitionID,
		WorkerID:    f.WorkerID,
		Sequence:    f.Sequence,
	}, nil
}

func (s *IDServiceImpl) Info(ctx context.Context) (*domain.GeneratorInfo, error) {
	info := &domain.GeneratorInfo{
		Epoch:       s.gen.Epoch(),
		PartitionID: s.gen.PartitionID(),
		WorkerID:    s.gen.WorkerID(),
	}
	if s.peers != nil {
		info.Peers = toDomainPeers(s.peers.Members())
		info.Conflicts = toDomainPeers(s.peers.Conflicts())
	}
	return info, nil
}

func (s *IDServiceImpl) logFailure(err error) {
	var regression *idgen.ClockRegressionError
	if errors.As(err, &regression) {
		logger.Warnw("Clock moved backwards, refusing to issue id",
			"last_ms", regression.Last,
			"now_ms", regression.Now,
			"retry_after", regression.Backoff().String())
		return
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return
	}
	logger.Errorw("ID generation failed", "error", err.Error())
}

func toDomainPeers(peers []gossip.Peer) []domain.Peer {
	if len(peers) == 0 {
		return nil
	}
	out := make([]domain.Peer, 0, len(peers))
	for _, p := range peers {
		out = append(out, domain.Peer{
			Name:        p.Name,
			Addr:        p.Addr,
			PartitionID: p.PartitionID,
			WorkerID:    p.WorkerID,
		})
	}
	return out
}
