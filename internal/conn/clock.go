// ABOUTME: Clock abstraction for retry scheduling
// ABOUTME: Wraps time.AfterFunc so tests can substitute a fake clock
package conn

import "time"

// Clock schedules a single delayed callback.
type Clock interface {
	Schedule(d time.Duration, fn func()) Timer
}

// Timer is a cancelable handle for a scheduled callback. Stop reports
// whether the callback was prevented from running.
type Timer interface {
	Stop() bool
}

// SystemClock schedules callbacks on the wall clock.
type SystemClock struct{}

// Schedule runs fn after d elapses.
func (SystemClock) Schedule(d time.Duration, fn func()) Timer {
	return systemTimer{time.AfterFunc(d, fn)}
}

type systemTimer struct {
	t *time.Timer
}

func (s systemTimer) Stop() bool {
	return s.t.Stop()
}
