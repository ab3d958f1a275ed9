// Package service runs editing sessions. Each session owns one document and
// a single goroutine that applies every mutation and every due
// recomputation in order.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/facadeworks/facade-workbench/internal/logging"
	"github.com/facadeworks/facade-workbench/internal/workbench/catalog"
	"github.com/facadeworks/facade-workbench/internal/workbench/document"
	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
	"github.com/facadeworks/facade-workbench/internal/workbench/events"
	"github.com/facadeworks/facade-workbench/internal/workbench/preview"
	"github.com/facadeworks/facade-workbench/internal/workbench/repository"
	"github.com/facadeworks/facade-workbench/internal/workbench/scheduler"
	"github.com/facadeworks/facade-workbench/internal/workbench/schema"
)

var ErrSessionClosed = errors.New("session closed")

const saveTimeout = 5 * time.Second

// Collaborator is the calculation and reporting service.
type Collaborator interface {
	CalcPreview(ctx context.Context, itemType string, payload map[string]any) (*preview.Result, error)
	WindPreview(ctx context.Context, wind map[string]any) (*preview.Result, error)
	SaveManualProfile(ctx context.Context, profileType string, profile map[string]any) error
	CheckFigures(ctx context.Context, documentText string) ([]preview.Figure, error)
	GenerateReport(ctx context.Context, documentText string) ([]byte, string, error)
	GenerateSummaryReport(ctx context.Context, documentText string) ([]byte, string, error)
	PreviewSummary(ctx context.Context, documentText string) (string, error)
}

// SessionStore persists document snapshots between restarts.
type SessionStore interface {
	Save(ctx context.Context, snap *repository.Snapshot) error
	Get(ctx context.Context, sessionID string) (*repository.Snapshot, error)
	Delete(ctx context.Context, sessionID string) error
}

// Deps are the collaborators shared by every session.
type Deps struct {
	Resolver     *schema.Resolver
	Catalog      *catalog.Service
	Collaborator Collaborator
	// Store may be nil, in which case sessions live only in memory.
	Store       SessionStore
	Clock       scheduler.Clock
	GlassWindow time.Duration
	WindWindow  time.Duration
	Now         func() time.Time
}

// Session is one open document. All exported methods are safe for
// concurrent use; they hand their work to the session loop and wait.
type Session struct {
	ID string

	res     *schema.Resolver
	catalog *catalog.Service
	collab  Collaborator
	store   SessionStore
	now     func() time.Time
	sched   *scheduler.Scheduler
	bus     *events.Bus
	tokens  *preview.Tokens

	ops     chan func()
	wake    chan struct{}
	quit    chan struct{}
	saves   chan *repository.Snapshot
	wg      sync.WaitGroup
	closeMu sync.Once

	mu     sync.Mutex
	posted []func()

	// Owned by the loop.
	project     *domain.Project
	version     uint64
	diagnostics map[domain.EntityID]string
	previews    map[domain.EntityID]PreviewState
	figures     *FigureReport
}

func newSession(id string, p *domain.Project, version uint64, deps Deps) *Session {
	clock := deps.Clock
	if clock == nil {
		clock = scheduler.RealClock
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	s := &Session{
		ID:          id,
		res:         deps.Resolver,
		catalog:     deps.Catalog,
		collab:      deps.Collaborator,
		store:       deps.Store,
		now:         now,
		bus:         events.NewBus(),
		tokens:      preview.NewTokens(),
		ops:         make(chan func()),
		wake:        make(chan struct{}, 1),
		quit:        make(chan struct{}),
		saves:       make(chan *repository.Snapshot, 1),
		project:     p,
		version:     version,
		diagnostics: make(map[domain.EntityID]string),
		previews:    make(map[domain.EntityID]PreviewState),
	}
	s.sched = scheduler.New(scheduler.Options{
		Clock:       clock,
		GlassWindow: deps.GlassWindow,
		WindWindow:  deps.WindWindow,
		Post:        s.post,
		OnResult:    s.recordResult,
	})
	s.subscribe()

	s.wg.Add(2)
	go s.loop()
	go s.saver()
	return s
}

// post queues fn for the loop. It is called from timer goroutines.
func (s *Session) post(fn func()) {
	s.mu.Lock()
	s.posted = append(s.posted, fn)
	s.mu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Session) loop() {
	defer s.wg.Done()
	for {
		select {
		case fn := <-s.ops:
			s.runPosted()
			fn()
		case <-s.wake:
			s.runPosted()
		case <-s.quit:
			return
		}
	}
}

// runPosted executes due recomputations ahead of the next operation, so an
// operation always sees every recomputation that fell due before it.
func (s *Session) runPosted() {
	s.mu.Lock()
	queue := s.posted
	s.posted = nil
	s.mu.Unlock()
	if len(queue) == 0 {
		return
	}
	for _, fn := range queue {
		fn()
	}
	s.touch()
}

// do runs fn on the loop and returns its error.
func (s *Session) do(ctx context.Context, fn func() error) error {
	errc := make(chan error, 1)
	select {
	case s.ops <- func() { errc <- fn() }:
	case <-s.quit:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// mutate is do for operations that change the document.
func (s *Session) mutate(ctx context.Context, fn func() error) error {
	return s.do(ctx, func() error {
		if err := fn(); err != nil {
			return err
		}
		s.touch()
		return nil
	})
}

// touch bumps the document version and queues a snapshot. Loop only.
func (s *Session) touch() {
	s.version++
	if s.store == nil {
		return
	}
	snap := &repository.Snapshot{
		SessionID: s.ID,
		Document:  document.Encode(s.project),
		Version:   s.version,
		UpdatedAt: s.now(),
	}
	select {
	case s.saves <- snap:
	default:
		// Replace the snapshot the saver has not picked up yet.
		select {
		case <-s.saves:
		default:
		}
		s.saves <- snap
	}
}

func (s *Session) saver() {
	defer s.wg.Done()
	for {
		select {
		case snap := <-s.saves:
			s.save(snap)
		case <-s.quit:
			select {
			case snap := <-s.saves:
				s.save(snap)
			default:
			}
			return
		}
	}
}

func (s *Session) save(snap *repository.Snapshot) {
	if s.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := s.store.Save(ctx, snap); err != nil {
		logging.FromContext(ctx).Warn("session snapshot failed",
			"session_id", snap.SessionID, "version", snap.Version, "error", err)
	}
}

// Close stops the loop and writes the last pending snapshot. Pending
// recomputations are dropped.
func (s *Session) Close() {
	s.closeMu.Do(func() {
		close(s.quit)
		s.wg.Wait()
	})
}

func (s *Session) subscribe() {
	s.bus.Subscribe(events.FieldChanged, s.onFieldChanged)
	s.bus.Subscribe(events.VariantChanged, s.onVariantChanged)
	s.bus.Subscribe(events.ProfilesChanged, func(events.Event) {
		s.catalog.SyncFrames(s.project)
	})
	s.bus.Subscribe(events.EntityRemoved, func(e events.Event) {
		id := e.Item.Base().ID
		s.sched.Cancel(id)
		s.tokens.Forget(id)
		s.forget(id)
	})
}

func (s *Session) forget(id domain.EntityID) {
	delete(s.previews, id)
	delete(s.diagnostics, id)
}

func (s *Session) recordResult(id domain.EntityID, err error) {
	if err != nil {
		s.diagnostics[id] = err.Error()
		return
	}
	delete(s.diagnostics, id)
}

func (s *Session) onFieldChanged(e events.Event) {
	switch v := e.Item.(type) {
	case *domain.AlumProfile, *domain.SteelProfile:
		if e.Attribute == "profile_name" {
			s.bus.Publish(events.Event{Type: events.ProfilesChanged, Item: e.Item})
		}
	case *domain.Frame:
		switch e.Attribute {
		case "mullion", "steel", "transom":
			s.catalog.ResolveSections(v)
		}
	case *domain.WindConfig:
		if e.Attribute == "location" {
			if speed, ok := s.catalog.WindSpeed(v.Attrs.Value("location")); ok {
				_ = v.Attrs.Set("wind_speed", speed, domain.OriginDefault)
				s.sched.Changed(v, "wind_speed")
			}
		}
	}
	s.sched.Changed(e.Item, e.Attribute)
}

func (s *Session) onVariantChanged(e events.Event) {
	id := e.Item.Base().ID
	s.tokens.Forget(id)
	s.forget(id)
	if err := s.sched.RecomputeNow(e.Item); err != nil {
		logging.FromContext(context.Background()).Debug("recompute after variant change",
			"session_id", s.ID, "entity_id", id, "error", err)
	}
	if k := e.Item.Kind(); k == domain.KindAlumProfile || k == domain.KindSteelProfile {
		s.bus.Publish(events.Event{Type: events.ProfilesChanged, Item: e.Item})
	}
}
