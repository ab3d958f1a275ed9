package catalog

import (
	"slices"

	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
)

// Options lists the values each catalog-backed attribute may take.
type Options struct {
	AlumCatalog   []string `json:"alum_catalog"`
	Mullions      []string `json:"mullions"`
	Transoms      []string `json:"transoms"`
	SteelProfiles []string `json:"steel_profiles"`
	WindLocations []string `json:"wind_locations"`
}

// OptionsFor assembles the dependent option lists for a project. Frame
// references draw on the project's own profile definitions.
func (s *Service) OptionsFor(p *domain.Project) Options {
	locs := s.Locations()
	names := make([]string, len(locs))
	for i, l := range locs {
		names[i] = l.Name
	}
	return Options{
		AlumCatalog:   s.AlumNames(),
		Mullions:      p.MullionOptions(),
		Transoms:      p.TransomOptions(),
		SteelProfiles: p.SteelProfileNames(),
		WindLocations: names,
	}
}

// SyncFrames drops frame references that no longer name a defined
// profile, then re-resolves the cached sections of every frame. It returns
// the frames whose references changed.
func (s *Service) SyncFrames(p *domain.Project) []*domain.Frame {
	mullions, transoms, steel := p.MullionOptions(), p.TransomOptions(), p.SteelProfileNames()

	var changed []*domain.Frame
	for _, c := range p.Categories {
		for _, f := range c.Frames {
			dirty := clearStale(f.Attrs, "mullion", mullions)
			dirty = clearStale(f.Attrs, "transom", transoms) || dirty
			if f.Attrs.Has("steel") {
				dirty = clearStale(f.Attrs, "steel", steel) || dirty
			}
			s.ResolveSections(f)
			if dirty {
				changed = append(changed, f)
			}
		}
	}
	return changed
}

// ResolveSections refreshes the frame's cached section properties from the
// catalog. Names not in the catalog leave their section empty.
func (s *Service) ResolveSections(f *domain.Frame) {
	lookup := func(attr string) *domain.Section {
		if !f.Attrs.Has(attr) {
			return nil
		}
		sec, ok := s.Section(f.Attrs.Value(attr))
		if !ok {
			return nil
		}
		return sec
	}
	f.Sections = domain.FrameSections{
		Mullion: lookup("mullion"),
		Steel:   lookup("steel"),
		Transom: lookup("transom"),
	}
}

// DefaultReferences points a new frame at the first available options.
func DefaultReferences(p *domain.Project, f *domain.Frame) {
	first := func(attr string, opts []string) {
		if f.Attrs.Has(attr) && f.Attrs.Value(attr) == "" && len(opts) > 0 {
			_ = f.Attrs.Set(attr, opts[0], domain.OriginDefault)
		}
	}
	first("mullion", p.MullionOptions())
	first("steel", p.SteelProfileNames())
	first("transom", p.TransomOptions())
}

func clearStale(rec *domain.Record, attr string, allowed []string) bool {
	v := rec.Value(attr)
	if v == "" || slices.Contains(allowed, v) {
		return false
	}
	_ = rec.Clear(attr)
	return true
}
