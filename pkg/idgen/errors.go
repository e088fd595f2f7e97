package idgen

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrClockRegression = errors.New("clock moved backwards")
	ErrInvalidWorkerID = errors.New("invalid worker ID")
	ErrFieldOverflow   = errors.New("field overflows its bit width")
	ErrInvalidEpoch    = errors.New("invalid epoch")
)

// ClockRegressionError reports a clock reading earlier than the last
// successful allocation.
type ClockRegressionError struct {
	Last int64
	Now  int64
}

func (e *ClockRegressionError) Error() string {
	return fmt.Sprintf("%v: last=%d now=%d (behind by %dms)", ErrClockRegression, e.Last, e.Now, e.Last-e.Now)
}

func (e *ClockRegressionError) Is(target error) bool {
	return target == ErrClockRegression
}

// Backoff is how long the clock has to advance before a retry can succeed.
func (e *ClockRegressionError) Backoff() time.Duration {
	d := time.Duration(e.Last-e.Now) * time.Millisecond
	if d < time.Millisecond {
		d = time.Millisecond
	}
	return d
}

// InvalidWorkerIDError reports a worker ID outside [0, Max].
type InvalidWorkerIDError struct {
	WorkerID int64
	Max      int64
}

func (e *InvalidWorkerIDError) Error() string {
	return fmt.Sprintf("%v: %d not in [0, %d]", ErrInvalidWorkerID, e.WorkerID, e.Max)
}

func (e *InvalidWorkerIDError) Is(target error) bool {
	return target == ErrInvalidWorkerID
}

// FieldOverflowError reports a field value that does not fit its width.
type FieldOverflowError struct {
	Field string
	Value int64
	Max   int64
}

func (e *FieldOverflowError) Error() string {
	return fmt.Sprintf("%v: %s=%d not in [0, %d]", ErrFieldOverflow, e.Field, e.Value, e.Max)
}

func (e *FieldOverflowError) Is(target error) bool {
	return target == ErrFieldOverflow
}
