// Package scheduler keeps derived attributes in step with their inputs:
// trigger edits are debounced per entity and the recomputed values are
// written only into fields nobody has filled.
package scheduler

import (
	"time"

	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
)

const (
	DefaultGlassWindow = 400 * time.Millisecond
	DefaultWindWindow  = 500 * time.Millisecond
)

type Options struct {
	Clock       Clock
	GlassWindow time.Duration
	WindWindow  time.Duration
	// Post runs a due recomputation on the goroutine that owns the
	// document. Nil runs it on the timer goroutine.
	Post func(func())
	// OnResult observes every recomputation that ran.
	OnResult func(id domain.EntityID, err error)
}

type Scheduler struct {
	rules    map[domain.EntityKind]Rule
	windows  map[domain.EntityKind]time.Duration
	deb      *Debouncer
	onResult func(id domain.EntityID, err error)
}

func New(opts Options) *Scheduler {
	if opts.GlassWindow <= 0 {
		opts.GlassWindow = DefaultGlassWindow
	}
	if opts.WindWindow <= 0 {
		opts.WindWindow = DefaultWindWindow
	}
	return &Scheduler{
		rules: map[domain.EntityKind]Rule{
			GlassRule.Kind: GlassRule,
			WindRule.Kind:  WindRule,
		},
		windows: map[domain.EntityKind]time.Duration{
			domain.KindGlassUnit: opts.GlassWindow,
			domain.KindWind:      opts.WindWindow,
		},
		deb:      NewDebouncer(opts.Clock, opts.Post),
		onResult: opts.OnResult,
	}
}

// IsTrigger reports whether editing attr on an entity of kind schedules a
// recomputation.
func IsTrigger(kind domain.EntityKind, attr string) bool {
	switch kind {
	case domain.KindGlassUnit:
		return GlassRule.triggeredBy(attr)
	case domain.KindWind:
		return WindRule.triggeredBy(attr)
	}
	return false
}

// Changed is called after attr of item was edited. It (re)arms the item's
// quiet window when attr is a trigger and reports whether it did.
func (s *Scheduler) Changed(item domain.Item, attr string) bool {
	rule, ok := s.rules[item.Kind()]
	if !ok || !rule.triggeredBy(attr) {
		return false
	}
	id := item.Base().ID
	s.deb.Schedule(id, s.windows[item.Kind()], func() { s.run(rule, item) })
	return true
}

// RecomputeNow runs the item's rule immediately, dropping any pending run.
func (s *Scheduler) RecomputeNow(item domain.Item) error {
	rule, ok := s.rules[item.Kind()]
	if !ok {
		return nil
	}
	s.deb.Cancel(item.Base().ID)
	return s.run(rule, item)
}

func (s *Scheduler) run(rule Rule, item domain.Item) error {
	err := rule.Apply(item)
	if s.onResult != nil {
		s.onResult(item.Base().ID, err)
	}
	return err
}

// Cancel forgets a pending recomputation, used when the entity is removed.
func (s *Scheduler) Cancel(id domain.EntityID) {
	s.deb.Cancel(id)
}

// Flush runs every pending recomputation now, on the caller's goroutine.
func (s *Scheduler) Flush() {
	for _, fn := range s.deb.Flush() {
		fn()
	}
}

func (s *Scheduler) Pending() int {
	return s.deb.Pending()
}

// RecomputeAll applies every rule to every entity of the project at once
// and returns the per-entity failures.
func RecomputeAll(p *domain.Project) map[domain.EntityID]error {
	failures := make(map[domain.EntityID]error)
	for _, it := range p.Items() {
		var err error
		switch it.Kind() {
		case domain.KindGlassUnit:
			err = GlassRule.Apply(it)
		case domain.KindWind:
			err = WindRule.Apply(it)
		}
		if err != nil {
			failures[it.Base().ID] = err
		}
	}
	return failures
}
