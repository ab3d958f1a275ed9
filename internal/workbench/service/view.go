package service

import (
	"time"

	"github.com/facadeworks/facade-workbench/internal/workbench/catalog"
	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
	"github.com/facadeworks/facade-workbench/internal/workbench/schema"
)

// PreviewState is what a preview panel shows: rendered HTML or a
// placeholder status.
type PreviewState struct {
	Status    string    `json:"status,omitempty"`
	HTML      string    `json:"html,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FieldView is one attribute with its value, origin and presentation hint.
type FieldView struct {
	schema.Attribute
	Value  string `json:"value"`
	Origin string `json:"origin"`
}

// EntityView renders an entity for API clients.
type EntityView struct {
	ID         domain.EntityID   `json:"id"`
	Kind       domain.EntityKind `json:"kind"`
	Variant    map[string]string `json:"variant,omitempty"`
	Fields     []FieldView       `json:"fields"`
	Preview    *PreviewState     `json:"preview,omitempty"`
	Diagnostic string            `json:"diagnostic,omitempty"`
}

type CategoryView struct {
	ID          domain.EntityID `json:"id"`
	Name        string          `json:"name"`
	GlassUnits  []EntityView    `json:"glass_units"`
	Frames      []EntityView    `json:"frames"`
	Connections []EntityView    `json:"connections"`
	Anchorages  []EntityView    `json:"anchorage"`
}

// ProjectView is the full editable state of a session.
type ProjectView struct {
	SessionID     string          `json:"session_id"`
	Version       uint64          `json:"version"`
	ProjectInfo   EntityView      `json:"project_info"`
	Include       EntityView      `json:"include"`
	Wind          EntityView      `json:"wind"`
	AlumProfiles  []EntityView    `json:"alum_profiles"`
	SteelProfiles []EntityView    `json:"steel_profiles"`
	Categories    []CategoryView  `json:"categories"`
	Options       catalog.Options `json:"options"`
	Figures       *FigureReport   `json:"figures,omitempty"`
}

// view builds the project view. Must run on the session loop.
func (s *Session) view() *ProjectView {
	p := s.project
	v := &ProjectView{
		SessionID:   s.ID,
		Version:     s.version,
		ProjectInfo: s.recordView(p.Info, domain.KindProjectInfo, s.res.ProjectInfo()),
		Include:     s.recordView(p.Include, domain.KindInclude, s.res.Include()),
		Wind:        s.entityView(p.Wind),
		Options:     s.catalog.OptionsFor(p),
		Figures:     s.figures,
	}
	if st, ok := s.previews[p.Wind.ID]; ok {
		v.Wind.Preview = &st
	}
	v.AlumProfiles = views(s, p.AlumProfiles)
	v.SteelProfiles = views(s, p.SteelProfiles)
	v.Categories = make([]CategoryView, 0, len(p.Categories))
	for _, c := range p.Categories {
		v.Categories = append(v.Categories, CategoryView{
			ID:          c.ID,
			Name:        c.Name,
			GlassUnits:  views(s, c.GlassUnits),
			Frames:      views(s, c.Frames),
			Connections: views(s, c.Connections),
			Anchorages:  views(s, c.Anchorages),
		})
	}
	return v
}

func views[T domain.Item](s *Session, items []T) []EntityView {
	out := make([]EntityView, 0, len(items))
	for _, it := range items {
		out = append(out, s.entityView(it))
	}
	return out
}

func (s *Session) entityView(it domain.Item) EntityView {
	sc, err := s.res.SchemaOf(it)
	if err != nil {
		sc = &schema.Schema{Kind: it.Kind()}
	}
	v := s.recordView(it.Base(), it.Kind(), sc)
	if tags := it.Tags(); len(tags) > 0 {
		v.Variant = make(map[string]string, len(tags))
		for _, t := range tags {
			v.Variant[t.Key] = t.Value
		}
	}
	if st, ok := s.previews[it.Base().ID]; ok {
		v.Preview = &st
	}
	v.Diagnostic = s.diagnostics[it.Base().ID]
	return v
}

func (s *Session) recordView(e *domain.Entity, kind domain.EntityKind, sc *schema.Schema) EntityView {
	v := EntityView{ID: e.ID, Kind: kind, Fields: make([]FieldView, 0, e.Attrs.Len())}
	for _, f := range e.Attrs.Fields() {
		a, ok := sc.Attribute(f.Name)
		if !ok {
			a = schema.Attribute{Name: f.Name, Label: f.Name, Kind: schema.Text}
		}
		v.Fields = append(v.Fields, FieldView{Attribute: a, Value: f.Value, Origin: f.Origin.String()})
	}
	return v
}
