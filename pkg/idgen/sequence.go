package idgen

import (
	"context"
	"time"
)

const (
	// neverGenerated marks an allocator that has not issued anything yet.
	neverGenerated = -1

	defaultWaitInterval = 100 * time.Microsecond
)

// SequenceAllocator hands out (timestamp, sequence) pairs. It is not safe for
// concurrent use; the Generator serializes access.
type SequenceAllocator struct {
	clock        Clock
	waitInterval time.Duration

	lastTimestamp int64
	sequence      int64
}

// NewSequenceAllocator creates an allocator reading from clock.
func NewSequenceAllocator(clock Clock, waitInterval time.Duration) *SequenceAllocator {
	if waitInterval <= 0 {
		waitInterval = defaultWaitInterval
	}
	return &SequenceAllocator{
		clock:         clock,
		waitInterval:  waitInterval,
		lastTimestamp: neverGenerated,
	}
}

// Allocate returns the next pair. The timestamp is the raw clock reading.
// On error the allocator state is left untouched.
func (a *SequenceAllocator) Allocate(ctx context.Context) (int64, int64, error) {
	now := a.clock.Now()

	if now < a.lastTimestamp {
		return 0, 0, &ClockRegressionError{Last: a.lastTimestamp, Now: now}
	}

	seq := int64(0)
	if now == a.lastTimestamp {
		seq = a.sequence + 1
		if seq > MaxSequence {
			// Sequence exhausted, wait for next millisecond
			next, err := a.waitNextTick(ctx)
			if err != nil {
				return 0, 0, err
			}
			now, seq = next, 0
		}
	}

	a.lastTimestamp = now
	a.sequence = seq

	return now, seq, nil
}

// waitNextTick sleep-polls the clock until it passes lastTimestamp.
func (a *SequenceAllocator) waitNextTick(ctx context.Context) (int64, error) {
	timer := time.NewTimer(a.waitInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-timer.C:
		}

		now := a.clock.Now()
		if now > a.lastTimestamp {
			return now, nil
		}
		if now < a.lastTimestamp {
			return 0, &ClockRegressionError{Last: a.lastTimestamp, Now: now}
		}
		timer.Reset(a.waitInterval)
	}
}

type allocatorState struct {
	lastTimestamp int64
	sequence      int64
}

func (a *SequenceAllocator) snapshot() allocatorState {
	return allocatorState{lastTimestamp: a.lastTimestamp, sequence: a.sequence}
}

func (a *SequenceAllocator) restore(s allocatorState) {
	a.lastTimestamp = s.lastTimestamp
	a.sequence = s.sequence
}
