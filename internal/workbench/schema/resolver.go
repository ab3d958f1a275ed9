// Package schema maps every entity kind and discriminant to the ordered
// attribute set it carries, with presentation hints and defaults.
package schema

import (
	"fmt"

	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
)

// Resolver holds the compiled schema tables. It is immutable after New and
// safe for concurrent use.
type Resolver struct {
	glass      map[domain.GlassType]*Schema
	alum       map[domain.ProfileType]*Schema
	steel      *Schema
	frame      map[domain.FrameVariant]*Schema
	connection *Schema
	anchorage  map[domain.ClumpType]*Schema
	wind       *Schema
	info       *Schema
	include    *Schema
}

func New() *Resolver {
	r := &Resolver{
		glass:     make(map[domain.GlassType]*Schema),
		alum:      make(map[domain.ProfileType]*Schema),
		frame:     make(map[domain.FrameVariant]*Schema),
		anchorage: make(map[domain.ClumpType]*Schema),
	}

	for _, t := range domain.GlassTypes {
		r.glass[t] = compile(domain.KindGlassUnit, string(t), glassFields[t], glassAttrs, nil)
	}
	for _, t := range domain.ProfileTypes {
		s := compile(domain.KindAlumProfile, string(t), alumFields[t], alumAttrs, nil)
		if t == domain.ProfilePredefined {
			s.Attributes[0] = catalog("profile_name", "Profile Name", CatalogAlumProfiles)
		}
		r.alum[t] = s
	}
	for _, v := range domain.FrameVariants {
		r.frame[v] = compile(domain.KindFrame, v.String(), frameFields(v), frameAttrs, nil)
	}
	for _, t := range domain.ClumpTypes {
		r.anchorage[t] = compile(domain.KindAnchorage, string(t), anchorageFields[t], anchorageAttrs, anchorageDefaults[t])
	}

	r.steel = &Schema{Kind: domain.KindSteelProfile, Attributes: steelAttributes}
	r.connection = &Schema{Kind: domain.KindConnection, Attributes: connectionAttributes}
	r.wind = &Schema{Kind: domain.KindWind, Attributes: windAttributes, Defaults: windDefaults}
	r.info = &Schema{Kind: domain.KindProjectInfo, Attributes: projectInfoAttributes}
	r.include = &Schema{Kind: domain.KindInclude, Attributes: includeAttributes, Defaults: includeDefaults}
	return r
}

func compile(kind domain.EntityKind, variant string, names []string, attrs map[string]Attribute, defaults map[string]string) *Schema {
	s := &Schema{Kind: kind, Variant: variant, Attributes: make([]Attribute, 0, len(names))}
	for _, n := range names {
		a, ok := attrs[n]
		if !ok {
			a = num(n, n)
		}
		s.Attributes = append(s.Attributes, a)
	}
	if len(defaults) > 0 {
		s.Defaults = make(map[string]string)
		for _, n := range names {
			if v, ok := defaults[n]; ok {
				s.Defaults[n] = v
			}
		}
	}
	return s
}

func (r *Resolver) Glass(t domain.GlassType) (*Schema, error) {
	s, ok := r.glass[t]
	if !ok {
		return nil, fmt.Errorf("%w: glass type %q", domain.ErrUnknownVariant, t)
	}
	return s, nil
}

func (r *Resolver) AlumProfile(t domain.ProfileType) (*Schema, error) {
	s, ok := r.alum[t]
	if !ok {
		return nil, fmt.Errorf("%w: profile type %q", domain.ErrUnknownVariant, t)
	}
	return s, nil
}

func (r *Resolver) SteelProfile() *Schema { return r.steel }

func (r *Resolver) Frame(v domain.FrameVariant) (*Schema, error) {
	s, ok := r.frame[v]
	if !ok {
		return nil, fmt.Errorf("%w: frame %q", domain.ErrUnknownVariant, v.String())
	}
	return s, nil
}

func (r *Resolver) Connection() *Schema { return r.connection }

func (r *Resolver) Anchorage(t domain.ClumpType) (*Schema, error) {
	s, ok := r.anchorage[t]
	if !ok {
		return nil, fmt.Errorf("%w: clump type %q", domain.ErrUnknownVariant, t)
	}
	return s, nil
}

func (r *Resolver) Wind() *Schema        { return r.wind }
func (r *Resolver) ProjectInfo() *Schema { return r.info }
func (r *Resolver) Include() *Schema     { return r.include }

// Resolve returns the schema for an entity kind and its discriminant
// values. Frames take geometry then mullion type.
func (r *Resolver) Resolve(kind domain.EntityKind, discriminants ...string) (*Schema, error) {
	arg := func(i int) string {
		if i < len(discriminants) {
			return discriminants[i]
		}
		return ""
	}
	switch kind {
	case domain.KindGlassUnit:
		return r.Glass(domain.GlassType(arg(0)))
	case domain.KindAlumProfile:
		return r.AlumProfile(domain.ProfileType(arg(0)))
	case domain.KindSteelProfile:
		return r.steel, nil
	case domain.KindFrame:
		return r.Frame(domain.FrameVariant{Geometry: domain.Geometry(arg(0)), MullionType: domain.MullionType(arg(1))})
	case domain.KindConnection:
		return r.connection, nil
	case domain.KindAnchorage:
		return r.Anchorage(domain.ClumpType(arg(0)))
	case domain.KindWind:
		return r.wind, nil
	case domain.KindProjectInfo:
		return r.info, nil
	case domain.KindInclude:
		return r.include, nil
	}
	return nil, fmt.Errorf("%w: entity kind %q", domain.ErrUnknownVariant, kind)
}

// SchemaOf resolves the schema an existing item was built from.
func (r *Resolver) SchemaOf(item domain.Item) (*Schema, error) {
	tags := item.Tags()
	values := make([]string, len(tags))
	for i, t := range tags {
		values[i] = t.Value
	}
	return r.Resolve(item.Kind(), values...)
}
