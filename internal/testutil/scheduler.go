package testutil

import (
	"sort"
	"sync"
	"time"
)

// FakeScheduler collects scheduled callbacks and runs them on demand, in
// due order, on the calling goroutine.
type FakeScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*fakeTask
}

type fakeTask struct {
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
}

func (t *fakeTask) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// NewFakeScheduler creates an empty scheduler
func NewFakeScheduler() *FakeScheduler {
	return &FakeScheduler{}
}

// AfterFunc records fn to run d after the current fake time. The returned
// value satisfies study.Task.
func (s *FakeScheduler) AfterFunc(d time.Duration, fn func()) interface{ Stop() bool } {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t := &fakeTask{at: s.now + d, seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Pending returns the number of callbacks waiting to run
func (s *FakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.tasks {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves fake time forward by d and runs every callback that came
// due, including ones scheduled by callbacks along the way.
func (s *FakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		t := s.popDue(target)
		if t == nil {
			break
		}
		t.fn()
	}

	s.mu.Lock()
	s.now = target
	s.mu.Unlock()
}

// RunAll runs callbacks until none are left
func (s *FakeScheduler) RunAll() {
	s.Advance(24 * time.Hour)
}

// RunStale runs a callback even though it was stopped, to check that the
// owner drops it.
func (s *FakeScheduler) RunStale() int {
	s.mu.Lock()
	var stale []*fakeTask
	for _, t := range s.tasks {
		if t.stopped {
			stale = append(stale, t)
		}
	}
	s.mu.Unlock()

	for _, t := range stale {
		t.fn()
	}
	return len(stale)
}

func (s *FakeScheduler) popDue(target time.Duration) *fakeTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].at != s.tasks[j].at {
			return s.tasks[i].at < s.tasks[j].at
		}
		return s.tasks[i].seq < s.tasks[j].seq
	})

	for i, t := range s.tasks {
		if t.stopped {
			continue
		}
		if t.at > target {
			return nil
		}
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
		if t.at > s.now {
			s.now = t.at
		}
		return t
	}
	return nil
}
