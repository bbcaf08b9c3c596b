package util

import "time"

// Stopwatch measures elapsed wall-clock time for evaluation runs.
type Stopwatch struct {
	start time.Time
}

// StartStopwatch begins timing at the current instant.
func StartStopwatch() Stopwatch {
	return Stopwatch{start: time.Now()}
}

// Elapsed returns the duration since the stopwatch started.
func (s Stopwatch) Elapsed() time.Duration {
	if s.start.IsZero() {
		return 0
	}
	return time.Since(s.start)
}

// ElapsedMs returns the elapsed milliseconds since start.
func (s Stopwatch) ElapsedMs() int64 {
	return s.Elapsed().Milliseconds()
}
