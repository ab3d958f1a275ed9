package domain

import (
	"fmt"
	"strings"
)

// Project is the root of the document tree.
type Project struct {
	Info          *Entity
	Include       *Entity
	Wind          *WindConfig
	AlumProfiles  []*AlumProfile
	SteelProfiles []*SteelProfile
	Categories    []*Category
}

// Name returns the project name from project_info.
func (p *Project) Name() string {
	if p.Info == nil {
		return ""
	}
	return strings.TrimSpace(p.Info.Attrs.Value("project_name"))
}

// Find locates a list entity or the wind config by ID. The owning category
// is returned for category items.
func (p *Project) Find(id EntityID) (Item, *Category, error) {
	if p.Wind != nil && p.Wind.ID == id {
		return p.Wind, nil, nil
	}
	for _, a := range p.AlumProfiles {
		if a.ID == id {
			return a, nil, nil
		}
	}
	for _, s := range p.SteelProfiles {
		if s.ID == id {
			return s, nil, nil
		}
	}
	for _, c := range p.Categories {
		for _, it := range c.Items() {
			if it.Base().ID == id {
				return it, c, nil
			}
		}
	}
	return nil, nil, fmt.Errorf("%w: %s", ErrEntityNotFound, id)
}

// Record returns the attribute record addressed by id, including the
// project_info and include records.
func (p *Project) Record(id EntityID) (*Record, error) {
	if p.Info != nil && p.Info.ID == id {
		return p.Info.Attrs, nil
	}
	if p.Include != nil && p.Include.ID == id {
		return p.Include.Attrs, nil
	}
	it, _, err := p.Find(id)
	if err != nil {
		return nil, err
	}
	return it.Base().Attrs, nil
}

func (p *Project) Category(id EntityID) (*Category, error) {
	for _, c := range p.Categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
}

// Add appends item to the list it belongs to. Category items need a
// category; profiles ignore it.
func (p *Project) Add(item Item, categoryID EntityID) error {
	switch v := item.(type) {
	case *AlumProfile:
		p.AlumProfiles = append(p.AlumProfiles, v)
		return nil
	case *SteelProfile:
		p.SteelProfiles = append(p.SteelProfiles, v)
		return nil
	}

	c, err := p.Category(categoryID)
	if err != nil {
		return err
	}
	switch v := item.(type) {
	case *GlassUnit:
		c.GlassUnits = append(c.GlassUnits, v)
	case *Frame:
		c.Frames = append(c.Frames, v)
	case *Connection:
		c.Connections = append(c.Connections, v)
	case *Anchorage:
		c.Anchorages = append(c.Anchorages, v)
	default:
		return fmt.Errorf("%w: cannot add %s", ErrUnknownVariant, item.Kind())
	}
	return nil
}

// Remove detaches the entity with the given ID from its list.
func (p *Project) Remove(id EntityID) (Item, error) {
	for i, a := range p.AlumProfiles {
		if a.ID == id {
			p.AlumProfiles = append(p.AlumProfiles[:i], p.AlumProfiles[i+1:]...)
			return a, nil
		}
	}
	for i, s := range p.SteelProfiles {
		if s.ID == id {
			p.SteelProfiles = append(p.SteelProfiles[:i], p.SteelProfiles[i+1:]...)
			return s, nil
		}
	}
	for _, c := range p.Categories {
		if it, ok := removeFrom(&c.GlassUnits, id); ok {
			return it, nil
		}
		if it, ok := removeFrom(&c.Frames, id); ok {
			return it, nil
		}
		if it, ok := removeFrom(&c.Connections, id); ok {
			return it, nil
		}
		if it, ok := removeFrom(&c.Anchorages, id); ok {
			return it, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrEntityNotFound, id)
}

func removeFrom[T Item](list *[]T, id EntityID) (Item, bool) {
	for i, it := range *list {
		if it.Base().ID == id {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return it, true
		}
	}
	return nil, false
}

// RemoveCategory deletes a category with everything it owns.
func (p *Project) RemoveCategory(id EntityID) (*Category, error) {
	for i, c := range p.Categories {
		if c.ID == id {
			p.Categories = append(p.Categories[:i], p.Categories[i+1:]...)
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
}

// Items lists every entity that can carry derived attributes: the wind
// config, profiles and category items, in document order.
func (p *Project) Items() []Item {
	var out []Item
	if p.Wind != nil {
		out = append(out, p.Wind)
	}
	for _, a := range p.AlumProfiles {
		out = append(out, a)
	}
	for _, s := range p.SteelProfiles {
		out = append(out, s)
	}
	for _, c := range p.Categories {
		out = append(out, c.Items()...)
	}
	return out
}

func (p *Project) AlumProfileNames() []string {
	var out []string
	for _, a := range p.AlumProfiles {
		if n := a.Name(); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func (p *Project) SteelProfileNames() []string {
	var out []string
	for _, s := range p.SteelProfiles {
		if n := s.Name(); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// MullionOptions lists defined aluminum profiles usable as mullions: every
// name that does not start with "T".
func (p *Project) MullionOptions() []string {
	var out []string
	for _, n := range p.AlumProfileNames() {
		if !strings.HasPrefix(n, "T") {
			out = append(out, n)
		}
	}
	return out
}

// TransomOptions lists defined aluminum profiles whose name starts with "T".
func (p *Project) TransomOptions() []string {
	var out []string
	for _, n := range p.AlumProfileNames() {
		if strings.HasPrefix(n, "T") {
			out = append(out, n)
		}
	}
	return out
}

// Equal compares two projects by value: record contents, discriminants,
// category names and the order of every list. IDs, origins and cached
// sections are ignored.
func (p *Project) Equal(o *Project) bool {
	if p == nil || o == nil {
		return p == o
	}
	if !entityEqual(p.Info, o.Info) || !entityEqual(p.Include, o.Include) {
		return false
	}
	if (p.Wind == nil) != (o.Wind == nil) {
		return false
	}
	if p.Wind != nil && !itemEqual(p.Wind, o.Wind) {
		return false
	}
	if !listEqual(p.AlumProfiles, o.AlumProfiles) || !listEqual(p.SteelProfiles, o.SteelProfiles) {
		return false
	}
	if len(p.Categories) != len(o.Categories) {
		return false
	}
	for i := range p.Categories {
		a, b := p.Categories[i], o.Categories[i]
		if a.Name != b.Name ||
			!listEqual(a.GlassUnits, b.GlassUnits) ||
			!listEqual(a.Frames, b.Frames) ||
			!listEqual(a.Connections, b.Connections) ||
			!listEqual(a.Anchorages, b.Anchorages) {
			return false
		}
	}
	return true
}

func entityEqual(a, b *Entity) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Attrs.Equal(b.Attrs)
}

func itemEqual(a, b Item) bool {
	at, bt := a.Tags(), b.Tags()
	if len(at) != len(bt) {
		return false
	}
	for i := range at {
		if at[i] != bt[i] {
			return false
		}
	}
	return a.Base().Attrs.Equal(b.Base().Attrs)
}

func listEqual[T Item](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !itemEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
