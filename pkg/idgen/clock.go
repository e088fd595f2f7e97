package idgen

import "time"

// Clock abstracts the time source for the ID generator.
type Clock interface {
	// Now returns milliseconds since the Unix epoch.
	Now() int64
}

// SystemClock uses the local system time.
type SystemClock struct{}

func (s *SystemClock) Now() int64 {
	return time.Now().UnixMilli()
}

// ClockFunc adapts a plain function to Clock.
type ClockFunc func() int64

func (f ClockFunc) Now() int64 {
	return f()
}
