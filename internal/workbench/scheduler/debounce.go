package scheduler

import (
	"sync"
	"time"

	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
)

// Debouncer coalesces bursts of calls per entity: each Schedule replaces the
// entity's pending call and restarts its quiet window.
type Debouncer struct {
	clock Clock
	post  func(func())

	mu      sync.Mutex
	gen     uint64
	pending map[domain.EntityID]*pendingCall
}

type pendingCall struct {
	gen   uint64
	timer Timer
	fn    func()
}

// NewDebouncer creates a debouncer whose due calls are handed to post. A nil
// post runs them on the timer's goroutine.
func NewDebouncer(clock Clock, post func(func())) *Debouncer {
	if clock == nil {
		clock = RealClock
	}
	if post == nil {
		post = func(fn func()) { fn() }
	}
	return &Debouncer{clock: clock, post: post, pending: make(map[domain.EntityID]*pendingCall)}
}

func (d *Debouncer) Schedule(id domain.EntityID, window time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p, ok := d.pending[id]; ok {
		p.timer.Stop()
	}
	d.gen++
	gen := d.gen
	p := &pendingCall{gen: gen, fn: fn}
	p.timer = d.clock.AfterFunc(window, func() { d.fire(id, gen) })
	d.pending[id] = p
}

func (d *Debouncer) fire(id domain.EntityID, gen uint64) {
	d.mu.Lock()
	p, ok := d.pending[id]
	if !ok || p.gen != gen {
		// superseded between the timer firing and taking the lock
		d.mu.Unlock()
		return
	}
	delete(d.pending, id)
	d.mu.Unlock()

	d.post(p.fn)
}

// Cancel drops the entity's pending call, if any.
func (d *Debouncer) Cancel(id domain.EntityID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if p, ok := d.pending[id]; ok {
		p.timer.Stop()
		delete(d.pending, id)
	}
}

// Flush stops every timer and returns the pending calls so the caller can
// run them in place.
func (d *Debouncer) Flush() []func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]func(), 0, len(d.pending))
	for id, p := range d.pending {
		p.timer.Stop()
		out = append(out, p.fn)
		delete(d.pending, id)
	}
	return out
}

func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}
