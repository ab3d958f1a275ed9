package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Timer is the part of *time.Timer the scheduler needs.
type Timer interface {
	Stop() bool
}

// Clock creates timers. Production code uses RealClock; tests drive a
// ManualClock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

var RealClock Clock = realClock{}

// ManualClock fires timers only when Advance moves its time past their
// deadline. Callbacks run synchronously inside Advance.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers map[int]*manualTimer
}

type manualTimer struct {
	clock *ManualClock
	id    int
	at    time.Duration
	fn    func()
}

func NewManualClock() *ManualClock {
	return &ManualClock{timers: make(map[int]*manualTimer)}
}

func (c *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &manualTimer{clock: c, id: c.seq, at: c.now + d, fn: f}
	c.timers[t.id] = t
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	_, ok := t.clock.timers[t.id]
	delete(t.clock.timers, t.id)
	return ok
}

// Advance moves time forward by d and fires every timer that became due,
// in deadline order.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*manualTimer
	for id, t := range c.timers {
		if t.at <= c.now {
			due = append(due, t)
			delete(c.timers, id)
		}
	}
	c.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].at == due[j].at {
			return due[i].id < due[j].id
		}
		return due[i].at < due[j].at
	})
	for _, t := range due {
		t.fn()
	}
}

// Pending reports how many timers are armed.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}
