package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/facadeworks/facade-workbench/internal/workbench/catalog"
	"github.com/facadeworks/facade-workbench/internal/workbench/document"
	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
	"github.com/facadeworks/facade-workbench/internal/workbench/events"
	"github.com/facadeworks/facade-workbench/internal/workbench/scheduler"
	"github.com/facadeworks/facade-workbench/internal/workbench/schema"
)

// View returns the current state of the session.
func (s *Session) View(ctx context.Context) (*ProjectView, error) {
	var v *ProjectView
	err := s.do(ctx, func() error {
		v = s.view()
		return nil
	})
	return v, err
}

// target is an editable record: a list entity, the wind config, or one of
// the fixed project records.
type target struct {
	item   domain.Item
	rec    *domain.Record
	schema *schema.Schema
}

func (s *Session) target(id domain.EntityID) (target, error) {
	p := s.project
	switch {
	case p.Info != nil && p.Info.ID == id:
		return target{rec: p.Info.Attrs, schema: s.res.ProjectInfo()}, nil
	case p.Include != nil && p.Include.ID == id:
		return target{rec: p.Include.Attrs, schema: s.res.Include()}, nil
	}
	item, _, err := p.Find(id)
	if err != nil {
		return target{}, err
	}
	sc, err := s.res.SchemaOf(item)
	if err != nil {
		return target{}, err
	}
	return target{item: item, rec: item.Base().Attrs, schema: sc}, nil
}

// SetField stores a user value for one attribute and lets dependents
// react. Enumerated values are stored in their canonical spelling and flags
// as yes/no.
func (s *Session) SetField(ctx context.Context, id domain.EntityID, attr, value string) error {
	return s.mutate(ctx, func() error {
		t, err := s.target(id)
		if err != nil {
			return err
		}
		a, ok := t.schema.Attribute(attr)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrUnknownAttribute, attr)
		}
		if a.Kind == schema.Flag && strings.TrimSpace(value) != "" {
			value = schema.NormalizeFlag(value)
		}
		if err := t.schema.Check(attr, value); err != nil {
			return err
		}
		value, err = s.canonical(a, value)
		if err != nil {
			return err
		}
		if err := t.rec.Set(attr, value, domain.OriginUser); err != nil {
			return err
		}
		if t.item != nil {
			s.bus.Publish(events.Event{Type: events.FieldChanged, Item: t.item, Attribute: attr})
		}
		return nil
	})
}

// ClearField empties an attribute and gives it back to the derivation
// rules, so a cleared derived field is recomputed.
func (s *Session) ClearField(ctx context.Context, id domain.EntityID, attr string) error {
	return s.mutate(ctx, func() error {
		t, err := s.target(id)
		if err != nil {
			return err
		}
		if err := t.rec.Clear(attr); err != nil {
			return err
		}
		if t.item != nil {
			s.bus.Publish(events.Event{Type: events.FieldChanged, Item: t.item, Attribute: attr})
		}
		return nil
	})
}

func (s *Session) canonical(a schema.Attribute, value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return value, nil
	}
	switch {
	case len(a.Options) > 0:
		v, _ := a.Match(value)
		return v, nil
	case a.Catalog != schema.CatalogNone:
		opts := s.catalogOptions(a.Catalog)
		if len(opts) > 0 && !slices.Contains(opts, value) {
			return "", fmt.Errorf("%w: %s=%q", domain.ErrInvalidOption, a.Name, value)
		}
	}
	return value, nil
}

// catalogOptions lists the allowed values of a catalog-backed attribute.
// The alum catalog is only enforced once it has been loaded.
func (s *Session) catalogOptions(c schema.Catalog) []string {
	o := s.catalog.OptionsFor(s.project)
	switch c {
	case schema.CatalogAlumProfiles:
		return o.AlumCatalog
	case schema.CatalogMullions:
		return o.Mullions
	case schema.CatalogTransoms:
		return o.Transoms
	case schema.CatalogSteelProfiles:
		return o.SteelProfiles
	case schema.CatalogWindLocations:
		return o.WindLocations
	}
	return nil
}

// SetVariant switches an entity to another variant. Its record is rebuilt
// from the new schema; values of the old variant do not survive.
func (s *Session) SetVariant(ctx context.Context, id domain.EntityID, discriminants ...string) error {
	return s.mutate(ctx, func() error {
		item, _, err := s.project.Find(id)
		if err != nil {
			return err
		}
		if err := s.res.Retag(item, discriminants...); err != nil {
			return err
		}
		s.applyDefaults(item)
		s.bus.Publish(events.Event{Type: events.VariantChanged, Item: item})
		return nil
	})
}

// applyDefaults fills catalog-driven initial values of a fresh record.
func (s *Session) applyDefaults(item domain.Item) {
	switch v := item.(type) {
	case *domain.AlumProfile:
		if v.Type == domain.ProfilePredefined && v.Name() == "" {
			if names := s.catalog.AlumNames(); len(names) > 0 {
				_ = v.Attrs.Set("profile_name", names[0], domain.OriginDefault)
			}
		}
	case *domain.Frame:
		catalog.DefaultReferences(s.project, v)
		s.catalog.ResolveSections(v)
	}
}

// AddItem appends a new entity of the given kind. categoryID is ignored for
// profiles.
func (s *Session) AddItem(ctx context.Context, kind domain.EntityKind, categoryID domain.EntityID, discriminants ...string) (EntityView, error) {
	var v EntityView
	err := s.mutate(ctx, func() error {
		item, err := s.res.NewItem(kind, discriminants...)
		if err != nil {
			return err
		}
		if err := s.project.Add(item, categoryID); err != nil {
			return err
		}
		s.applyDefaults(item)
		if kind == domain.KindAlumProfile || kind == domain.KindSteelProfile {
			s.bus.Publish(events.Event{Type: events.ProfilesChanged, Item: item})
		}
		v = s.entityView(item)
		return nil
	})
	return v, err
}

// RemoveItem deletes an entity. Pending recomputations and in-flight
// previews for it are abandoned.
func (s *Session) RemoveItem(ctx context.Context, id domain.EntityID) error {
	return s.mutate(ctx, func() error {
		item, err := s.project.Remove(id)
		if err != nil {
			return err
		}
		s.bus.Publish(events.Event{Type: events.EntityRemoved, Item: item})
		if k := item.Kind(); k == domain.KindAlumProfile || k == domain.KindSteelProfile {
			s.bus.Publish(events.Event{Type: events.ProfilesChanged, Item: item})
		}
		return nil
	})
}

func (s *Session) AddCategory(ctx context.Context, name string) (CategoryView, error) {
	var v CategoryView
	err := s.mutate(ctx, func() error {
		c := s.res.NewCategory(name)
		s.project.Categories = append(s.project.Categories, c)
		v = CategoryView{ID: c.ID, Name: c.Name, GlassUnits: []EntityView{}, Frames: []EntityView{}, Connections: []EntityView{}, Anchorages: []EntityView{}}
		return nil
	})
	return v, err
}

func (s *Session) RenameCategory(ctx context.Context, id domain.EntityID, name string) error {
	return s.mutate(ctx, func() error {
		c, err := s.project.Category(id)
		if err != nil {
			return err
		}
		c.Name = name
		return nil
	})
}

// RemoveCategory deletes a category together with its entities.
func (s *Session) RemoveCategory(ctx context.Context, id domain.EntityID) error {
	return s.mutate(ctx, func() error {
		c, err := s.project.RemoveCategory(id)
		if err != nil {
			return err
		}
		for _, it := range c.Items() {
			s.bus.Publish(events.Event{Type: events.EntityRemoved, Item: it})
		}
		return nil
	})
}

// Import replaces the document with one parsed from text. On error the
// current document is left as it was.
func (s *Session) Import(ctx context.Context, text string) (*document.ImportReport, error) {
	var report *document.ImportReport
	err := s.mutate(ctx, func() error {
		p, r, err := document.Decode(text, s.res)
		if err != nil {
			return err
		}
		s.catalog.SyncFrames(p)
		s.replace(p)
		report = r
		return nil
	})
	return report, err
}

// replace swaps in a new project and drops all per-entity state of the
// old one.
func (s *Session) replace(p *domain.Project) {
	for _, it := range s.project.Items() {
		id := it.Base().ID
		s.sched.Cancel(id)
		s.tokens.Forget(id)
	}
	s.project = p
	clear(s.previews)
	clear(s.diagnostics)
	s.figures = nil
}

// Export serializes the current document.
func (s *Session) Export(ctx context.Context) (string, error) {
	var text string
	err := s.do(ctx, func() error {
		text = document.Encode(s.project)
		return nil
	})
	return text, err
}

// Flush runs every pending recomputation now.
func (s *Session) Flush(ctx context.Context) error {
	return s.do(ctx, func() error {
		if s.sched.Pending() == 0 {
			return nil
		}
		s.sched.Flush()
		s.touch()
		return nil
	})
}

// RecomputeAll applies every derivation rule to the whole document and
// returns the entities whose rule failed.
func (s *Session) RecomputeAll(ctx context.Context) (map[domain.EntityID]string, error) {
	out := make(map[domain.EntityID]string)
	err := s.mutate(ctx, func() error {
		for _, it := range s.project.Items() {
			s.sched.Cancel(it.Base().ID)
		}
		clear(s.diagnostics)
		for id, ferr := range scheduler.RecomputeAll(s.project) {
			s.diagnostics[id] = ferr.Error()
			out[id] = ferr.Error()
		}
		return nil
	})
	return out, err
}
