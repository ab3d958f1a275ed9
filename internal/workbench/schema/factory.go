package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
)

func newEntity(s *Schema) domain.Entity {
	return domain.Entity{ID: domain.NewEntityID(), Attrs: s.NewRecord()}
}

// NewProject creates an empty project with its fixed records.
func (r *Resolver) NewProject() *domain.Project {
	info := newEntity(r.info)
	include := newEntity(r.include)
	return &domain.Project{
		Info:    &info,
		Include: &include,
		Wind:    &domain.WindConfig{Entity: newEntity(r.wind)},
	}
}

func (r *Resolver) NewCategory(name string) *domain.Category {
	return &domain.Category{ID: domain.NewEntityID(), Name: name}
}

// NewItem creates a list entity of the given kind and variant. Missing
// discriminants select the default variant.
func (r *Resolver) NewItem(kind domain.EntityKind, discriminants ...string) (domain.Item, error) {
	arg := func(i int, def string) string {
		if i < len(discriminants) && discriminants[i] != "" {
			return discriminants[i]
		}
		return def
	}
	switch kind {
	case domain.KindGlassUnit:
		t := domain.GlassType(arg(0, string(domain.DefaultGlassType)))
		s, err := r.Glass(t)
		if err != nil {
			return nil, err
		}
		return &domain.GlassUnit{Entity: newEntity(s), Type: t}, nil
	case domain.KindAlumProfile:
		t := domain.ProfileType(arg(0, string(domain.DefaultProfileType)))
		s, err := r.AlumProfile(t)
		if err != nil {
			return nil, err
		}
		return &domain.AlumProfile{Entity: newEntity(s), Type: t}, nil
	case domain.KindSteelProfile:
		return &domain.SteelProfile{Entity: newEntity(r.steel)}, nil
	case domain.KindFrame:
		v := domain.FrameVariant{
			Geometry:    domain.Geometry(arg(0, string(domain.DefaultFrameVariant.Geometry))),
			MullionType: domain.MullionType(arg(1, string(domain.DefaultFrameVariant.MullionType))),
		}
		s, err := r.Frame(v)
		if err != nil {
			return nil, err
		}
		return &domain.Frame{Entity: newEntity(s), Variant: v}, nil
	case domain.KindConnection:
		return &domain.Connection{Entity: newEntity(r.connection)}, nil
	case domain.KindAnchorage:
		t := domain.ClumpType(arg(0, string(domain.DefaultClumpType)))
		s, err := r.Anchorage(t)
		if err != nil {
			return nil, err
		}
		return &domain.Anchorage{Entity: newEntity(s), Type: t}, nil
	}
	return nil, fmt.Errorf("%w: entity kind %q", domain.ErrUnknownVariant, kind)
}

// Retag switches an item to another variant. The previous record is
// discarded and replaced by a fresh one carrying the new schema's defaults,
// so no attribute of the old variant survives. Empty discriminants keep the
// current value, which lets a frame change one half of its variant.
func (r *Resolver) Retag(item domain.Item, discriminants ...string) error {
	arg := func(i int, cur string) string {
		if i < len(discriminants) && discriminants[i] != "" {
			return discriminants[i]
		}
		return cur
	}
	switch v := item.(type) {
	case *domain.GlassUnit:
		t := domain.GlassType(arg(0, string(v.Type)))
		s, err := r.Glass(t)
		if err != nil {
			return err
		}
		v.Type, v.Attrs = t, s.NewRecord()
	case *domain.AlumProfile:
		t := domain.ProfileType(arg(0, string(v.Type)))
		s, err := r.AlumProfile(t)
		if err != nil {
			return err
		}
		v.Type, v.Attrs = t, s.NewRecord()
	case *domain.Frame:
		fv := domain.FrameVariant{
			Geometry:    domain.Geometry(arg(0, string(v.Variant.Geometry))),
			MullionType: domain.MullionType(arg(1, string(v.Variant.MullionType))),
		}
		s, err := r.Frame(fv)
		if err != nil {
			return err
		}
		v.Variant, v.Attrs, v.Sections = fv, s.NewRecord(), domain.FrameSections{}
	case *domain.Anchorage:
		t := domain.ClumpType(arg(0, string(v.Type)))
		s, err := r.Anchorage(t)
		if err != nil {
			return err
		}
		v.Type, v.Attrs = t, s.NewRecord()
	default:
		return fmt.Errorf("%w: %s has no discriminant", domain.ErrUnknownVariant, item.Kind())
	}
	return nil
}

// Check validates value for the named attribute. Catalog-backed options are
// resolved elsewhere and are not checked here.
func (s *Schema) Check(name, value string) error {
	a, ok := s.Attribute(name)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownAttribute, name)
	}
	if strings.TrimSpace(value) == "" || len(a.Options) == 0 {
		return nil
	}
	if _, ok := a.Match(value); !ok {
		return fmt.Errorf("%w: %s=%q", domain.ErrInvalidOption, name, value)
	}
	return nil
}

// Match finds the option equal to raw, either exactly or numerically.
func (a Attribute) Match(raw string) (string, bool) {
	for _, o := range a.Options {
		if o == raw {
			return o, true
		}
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", false
	}
	for _, o := range a.Options {
		if m, err := strconv.ParseFloat(o, 64); err == nil && m == n {
			return o, true
		}
	}
	return "", false
}

// NormalizeFlag maps the accepted truthy spellings to "yes" and anything
// else to "no".
func NormalizeFlag(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "true", "1", "on":
		return Yes
	}
	return No
}
