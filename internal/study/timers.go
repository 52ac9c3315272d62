package study

import (
	"sync"
	"time"
)

// Task is a scheduled callback that can be stopped before it fires.
// *time.Timer satisfies it.
type Task = interface {
	Stop() bool
}

// Scheduler runs fn once after d
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Task
}

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, fn func()) Task {
	return time.AfterFunc(d, fn)
}

// SystemScheduler schedules callbacks on real timers
var SystemScheduler Scheduler = systemScheduler{}

// Timing holds the fixed delays used by the study modes
type Timing struct {
	// SlideDelay is how long a card takes to leave before the index moves
	SlideDelay time.Duration
	// SettleDelay is how long the arriving card animates in
	SettleDelay time.Duration
	// FeedbackDelay is how long a correct/incorrect message stays visible
	FeedbackDelay time.Duration
}

// DefaultTiming returns the standard delays
func DefaultTiming() Timing {
	return Timing{
		SlideDelay:    150 * time.Millisecond,
		SettleDelay:   150 * time.Millisecond,
		FeedbackDelay: time.Second,
	}
}

// Timers owns the pending callbacks of one study mode.
//
// Callbacks run with the owner's lock held and only while the task is still
// pending, so a stopped mode can never be mutated by a late timer. After,
// Defer and Stop must be called with the owner's lock held.
type Timers struct {
	sched   Scheduler
	lock    sync.Locker
	next    uint64
	pending map[uint64]Task
	stopped bool
	// deferred runs once the owner's lock is released
	deferred []func()
}

// NewTimers creates timers guarded by lock
func NewTimers(sched Scheduler, lock sync.Locker) *Timers {
	if sched == nil {
		sched = SystemScheduler
	}
	return &Timers{
		sched:   sched,
		lock:    lock,
		pending: make(map[uint64]Task),
	}
}

// After schedules fn to run after d
func (t *Timers) After(d time.Duration, fn func()) {
	if t.stopped {
		return
	}

	t.next++
	id := t.next
	t.pending[id] = t.sched.AfterFunc(d, func() {
		t.lock.Lock()
		if _, ok := t.pending[id]; !ok {
			t.lock.Unlock()
			return
		}
		delete(t.pending, id)
		fn()
		t.Unlock()
	})
}

// Pending returns the number of callbacks that have not fired yet
func (t *Timers) Pending() int {
	return len(t.pending)
}

// Defer queues fn to run after the owner's lock is released by Unlock or
// by the end of the running callback. It must be called with the lock held.
func (t *Timers) Defer(fn func()) {
	if t.stopped {
		return
	}
	t.deferred = append(t.deferred, fn)
}

// Unlock releases the owner's lock, then runs the deferred functions
func (t *Timers) Unlock() {
	run := t.deferred
	t.deferred = nil
	t.lock.Unlock()

	for _, fn := range run {
		fn()
	}
}

// Stop invalidates every pending callback and deferred function. Later
// calls to After and Defer are ignored.
func (t *Timers) Stop() {
	t.stopped = true
	t.deferred = nil
	for id, task := range t.pending {
		task.Stop()
		delete(t.pending, id)
	}
}
