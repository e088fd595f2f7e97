package idgen

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Option customizes a Generator.
type Option func(*options)

type options struct {
	epoch        int64
	waitInterval time.Duration
}

// WithEpoch sets the reference point, in Unix milliseconds, of the timestamp
// field. Changing it for a live partition breaks ordering with IDs already
// issued.
func WithEpoch(epochMillis int64) Option {
	return func(o *options) {
		o.epoch = epochMillis
	}
}

// WithWaitInterval sets the poll step used while waiting for the next
// millisecond after the sequence is exhausted.
func WithWaitInterval(d time.Duration) Option {
	return func(o *options) {
		o.waitInterval = d
	}
}

// Generator generates unique 64-bit IDs.
type Generator struct {
	mu          sync.Mutex
	alloc       *SequenceAllocator
	epoch       int64
	partitionID int64
	workerID    int64
}

// New creates a new Snowflake ID generator. A nil identity resolves the
// worker ID from the host's hardware address, or its hostname when there is
// none; a nil clock uses SystemClock.
// The epoch must not be later than the clock's current reading.
func New(partitionID int64, identity IdentityResolver, clock Clock, opts ...Option) (*Generator, error) {
	o := options{epoch: DefaultEpoch}
	for _, opt := range opts {
		opt(&o)
	}

	if o.epoch < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidEpoch, o.epoch)
	}
	if err := checkField("partition_id", partitionID, MaxPartitionID); err != nil {
		return nil, err
	}

	if identity == nil {
		identity = HardwareIdentity{Fallback: HostnameIdentity{}}
	}
	workerID, err := identity.ResolveWorkerID(MaxWorkerID)
	if err != nil {
		return nil, err
	}
	if workerID < 0 || workerID > MaxWorkerID {
		return nil, &InvalidWorkerIDError{WorkerID: workerID, Max: MaxWorkerID}
	}

	if clock == nil {
		clock = &SystemClock{}
	}
	if now := clock.Now(); o.epoch > now {
		return nil, fmt.Errorf("%w: epoch %d is after clock reading %d", ErrInvalidEpoch, o.epoch, now)
	}

	return &Generator{
		alloc:       NewSequenceAllocator(clock, o.waitInterval),
		epoch:       o.epoch,
		partitionID: partitionID,
		workerID:    workerID,
	}, nil
}

// Next generates the next unique ID.
func (g *Generator) Next() (uint64, error) {
	return g.NextContext(context.Background())
}

// NextContext is Next with a context bounding the wait that follows sequence
// exhaustion.
func (g *Generator) NextContext(ctx context.Context) (uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	prev := g.alloc.snapshot()
	now, seq, err := g.alloc.Allocate(ctx)
	if err != nil {
		return 0, err
	}

	id, err := Encode(Fields{
		Timestamp:   now - g.epoch,
		PartitionID: g.partitionID,
		WorkerID:    g.workerID,
		Sequence:    seq,
	})
	if err != nil {
		// Clock outside the epoch's 41-bit window.
		g.alloc.restore(prev)
		return 0, err
	}

	return id, nil
}

// Decode unpacks an ID.
func (g *Generator) Decode(id uint64) Fields {
	return Decode(id)
}

func (g *Generator) PartitionID() int64 { return g.partitionID }

func (g *Generator) WorkerID() int64 { return g.workerID }

// Epoch returns the configured epoch in Unix milliseconds.
func (g *Generator) Epoch() int64 { return g.epoch }
