package notify

import "time"

// Timer is a cancelable single-shot timer
type Timer interface {
	// Stop cancels the timer. It returns false if the timer already fired.
	Stop() bool
}

// Scheduler arms single-shot timers. The bus only ever needs AfterFunc.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SchedulerFunc adapts a function to Scheduler
type SchedulerFunc func(d time.Duration, f func()) Timer

func (fn SchedulerFunc) AfterFunc(d time.Duration, f func()) Timer {
	return fn(d, f)
}

// RealScheduler uses the runtime timer
var RealScheduler Scheduler = SchedulerFunc(func(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
})
