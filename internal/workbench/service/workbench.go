package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/facadeworks/facade-workbench/internal/logging"
	"github.com/facadeworks/facade-workbench/internal/workbench/document"
	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
	"github.com/facadeworks/facade-workbench/internal/workbench/repository"
)

var ErrArchiveDisabled = errors.New("project archive is not configured")

// Archive keeps named revisions of a session's document.
type Archive interface {
	Save(ctx context.Context, sessionID, projectName, document string) (*repository.Revision, error)
	List(ctx context.Context, sessionID string, limit int) ([]repository.Revision, error)
	Get(ctx context.Context, sessionID string, id int64) (*repository.Revision, error)
}

// Workbench owns the open sessions.
type Workbench struct {
	deps    Deps
	archive Archive

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewWorkbench creates a workbench. archive may be nil.
func NewWorkbench(deps Deps, archive Archive) *Workbench {
	return &Workbench{
		deps:     deps,
		archive:  archive,
		sessions: make(map[string]*Session),
	}
}

// CreateSession opens a session on the default project.
func (w *Workbench) CreateSession(ctx context.Context) (*Session, error) {
	return w.open(ctx, DefaultProject(w.deps.Resolver, w.deps.Catalog))
}

// OpenDocument opens a session on a document text. Nothing is created when
// the text does not parse.
func (w *Workbench) OpenDocument(ctx context.Context, text string) (*Session, *document.ImportReport, error) {
	p, report, err := document.Decode(text, w.deps.Resolver)
	if err != nil {
		return nil, nil, err
	}
	w.deps.Catalog.SyncFrames(p)
	s, err := w.open(ctx, p)
	return s, report, err
}

func (w *Workbench) open(ctx context.Context, p *domain.Project) (*Session, error) {
	s := newSession(uuid.NewString(), p, 0, w.deps)
	w.mu.Lock()
	w.sessions[s.ID] = s
	w.mu.Unlock()

	// Version 1 is the document as opened.
	if err := s.mutate(ctx, func() error { return nil }); err != nil {
		return nil, err
	}
	logging.NewLogger(ctx).LogInfof("open_session", "session %s opened", s.ID)
	return s, nil
}

// Session returns an open session, restoring it from its last snapshot
// when it is not in memory.
func (w *Workbench) Session(ctx context.Context, id string) (*Session, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if s, ok := w.sessions[id]; ok {
		return s, nil
	}
	if w.deps.Store == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	snap, err := w.deps.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p, _, err := document.Decode(snap.Document, w.deps.Resolver)
	if err != nil {
		return nil, fmt.Errorf("restore session %s: %w", id, err)
	}
	w.deps.Catalog.SyncFrames(p)
	s := newSession(id, p, snap.Version, w.deps)
	w.sessions[id] = s
	logging.NewLogger(ctx).LogInfof("restore_session", "session %s restored at version %d", id, snap.Version)
	return s, nil
}

// CloseSession stops a session and deletes its snapshot.
func (w *Workbench) CloseSession(ctx context.Context, id string) error {
	w.mu.Lock()
	s, ok := w.sessions[id]
	delete(w.sessions, id)
	w.mu.Unlock()

	if ok {
		s.Close()
	}
	if w.deps.Store != nil {
		return w.deps.Store.Delete(ctx, id)
	}
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return nil
}

// Sessions lists the sessions currently in memory.
func (w *Workbench) Sessions() []*Session {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]*Session, 0, len(w.sessions))
	for _, s := range w.sessions {
		out = append(out, s)
	}
	return out
}

// RefreshCatalog reloads profile and wind location data.
func (w *Workbench) RefreshCatalog(ctx context.Context) error {
	return w.deps.Catalog.Refresh(ctx)
}

// RefreshFigures re-checks report figures for every open session.
func (w *Workbench) RefreshFigures(ctx context.Context) {
	log := logging.NewLogger(ctx)
	for _, s := range w.Sessions() {
		report, err := s.RefreshFigures(ctx)
		if err != nil {
			if !errors.Is(err, ErrSessionClosed) {
				log.LogError("refresh_figures", err)
			}
			continue
		}
		if report.Error != "" {
			log.LogWarnf("refresh_figures", "session %s: %s", s.ID, report.Error)
		}
	}
}

// SaveRevision stores the session's current document in the archive.
func (w *Workbench) SaveRevision(ctx context.Context, id string) (*repository.Revision, error) {
	if w.archive == nil {
		return nil, ErrArchiveDisabled
	}
	s, err := w.Session(ctx, id)
	if err != nil {
		return nil, err
	}
	text, name, err := s.documentText(ctx)
	if err != nil {
		return nil, err
	}
	return w.archive.Save(ctx, id, name, text)
}

// Revisions lists archived revisions of a session, newest first.
func (w *Workbench) Revisions(ctx context.Context, id string, limit int) ([]repository.Revision, error) {
	if w.archive == nil {
		return nil, ErrArchiveDisabled
	}
	return w.archive.List(ctx, id, limit)
}

// RestoreRevision replaces the session's document with an archived one.
func (w *Workbench) RestoreRevision(ctx context.Context, id string, revisionID int64) (*document.ImportReport, error) {
	if w.archive == nil {
		return nil, ErrArchiveDisabled
	}
	rev, err := w.archive.Get(ctx, id, revisionID)
	if err != nil {
		return nil, err
	}
	s, err := w.Session(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Import(ctx, rev.Document)
}

// Shutdown closes every session. Snapshots are kept so the sessions can be
// restored later.
func (w *Workbench) Shutdown() {
	w.mu.Lock()
	sessions := w.sessions
	w.sessions = make(map[string]*Session)
	w.mu.Unlock()
	for _, s := range sessions {
		s.Close()
	}
}
