package flow

import "time"

// DefaultAdvanceDelay is the pause between an answer and the automatic
// move to the next question.
const DefaultAdvanceDelay = 600 * time.Millisecond

// Handle cancels a scheduled call. Stop reports whether the call was
// prevented from running. *time.Timer satisfies it.
type Handle interface {
	Stop() bool
}

// Scheduler runs fn once after d.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Handle
}

// TimerScheduler schedules with time.AfterFunc.
type TimerScheduler struct{}

// Schedule implements Scheduler.
func (TimerScheduler) Schedule(d time.Duration, fn func()) Handle {
	return time.AfterFunc(d, fn)
}
