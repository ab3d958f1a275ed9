package service

import (
	"context"
	"errors"
	"maps"

	"github.com/facadeworks/facade-workbench/internal/logging"
	"github.com/facadeworks/facade-workbench/internal/workbench/document"
	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
	"github.com/facadeworks/facade-workbench/internal/workbench/preview"
)

// previewCall is a preview request prepared on the loop.
type previewCall struct {
	id    domain.EntityID
	token uint64
	// saveAs is the profile type under which a successful result is saved
	// back to the collaborator, or empty.
	saveAs string
	body   map[string]any
	call   func(ctx context.Context) (*preview.Result, error)
}

// RefreshPreview asks the collaborator to render the preview of one
// entity. Incomplete inputs and collaborator failures are reported as a
// placeholder status, not as an error. A response overtaken by a newer
// request for the same entity is dropped with ErrStaleResponse.
func (s *Session) RefreshPreview(ctx context.Context, id domain.EntityID) (PreviewState, error) {
	return s.runPreview(ctx, func() (*previewCall, PreviewState, error) {
		if s.project.Wind != nil && s.project.Wind.ID == id {
			return s.windCall()
		}
		item, cat, err := s.project.Find(id)
		if err != nil {
			return nil, PreviewState{}, err
		}
		payload, err := document.BuildPayload(item, cat, s.catalog.Data)
		if err != nil {
			return s.incomplete(id, err)
		}
		pc := &previewCall{id: id, body: payload.Body}
		pc.call = func(ctx context.Context) (*preview.Result, error) {
			return s.collab.CalcPreview(ctx, string(payload.ItemType), payload.Body)
		}
		if a, ok := item.(*domain.AlumProfile); ok && (a.Type == domain.ProfileStick || a.Type == domain.ProfileManual) {
			pc.saveAs = string(payload.ItemType)
		}
		return pc, PreviewState{}, nil
	})
}

// RefreshWindPreview renders the wind analysis preview.
func (s *Session) RefreshWindPreview(ctx context.Context) (PreviewState, error) {
	return s.runPreview(ctx, s.windCall)
}

func (s *Session) windCall() (*previewCall, PreviewState, error) {
	w := s.project.Wind
	body, err := document.WindPayload(w)
	if err != nil {
		return s.incomplete(w.ID, err)
	}
	return &previewCall{
		id:   w.ID,
		body: body,
		call: func(ctx context.Context) (*preview.Result, error) {
			return s.collab.WindPreview(ctx, body)
		},
	}, PreviewState{}, nil
}

// incomplete turns a payload validation failure into a placeholder and
// invalidates any request still in flight.
func (s *Session) incomplete(id domain.EntityID, err error) (*previewCall, PreviewState, error) {
	var inc *document.IncompleteError
	if !errors.As(err, &inc) {
		return nil, PreviewState{}, err
	}
	s.tokens.Forget(id)
	return nil, s.setPreview(id, PreviewState{Status: inc.Message}), nil
}

func (s *Session) runPreview(ctx context.Context, prepare func() (*previewCall, PreviewState, error)) (PreviewState, error) {
	var (
		pc    *previewCall
		state PreviewState
	)
	err := s.do(ctx, func() error {
		var err error
		pc, state, err = prepare()
		if err != nil || pc == nil {
			return err
		}
		pc.token = s.tokens.Next(pc.id)
		state = s.setPreview(pc.id, PreviewState{Status: preview.StatusCalculating})
		return nil
	})
	if err != nil || pc == nil {
		return state, err
	}

	log := logging.NewLogger(ctx)
	res, callErr := pc.call(ctx)
	next := PreviewState{Status: preview.StatusError}
	switch {
	case callErr != nil:
		log.LogWarnf("preview", "preview %s failed: %v", pc.id, callErr)
	case res.Status() != "":
		next.Status = res.Status()
	default:
		next = PreviewState{HTML: res.HTML}
		if pc.saveAs != "" {
			profile := maps.Clone(pc.body)
			maps.Copy(profile, res.Result)
			if err := s.collab.SaveManualProfile(ctx, pc.saveAs, profile); err != nil {
				log.LogWarnf("save_manual_profile", "profile %s not saved: %v", pc.id, err)
			}
		}
	}

	err = s.do(ctx, func() error {
		if err := s.tokens.Check(pc.id, pc.token); err != nil {
			return err
		}
		state = s.setPreview(pc.id, next)
		return nil
	})
	return state, err
}

func (s *Session) setPreview(id domain.EntityID, st PreviewState) PreviewState {
	st.UpdatedAt = s.now()
	s.previews[id] = st
	return st
}
