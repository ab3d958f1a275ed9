package document

import (
	"fmt"
	"slices"
	"strings"

	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
	"github.com/facadeworks/facade-workbench/internal/workbench/schema"
)

// ImportReport lists what Decode skipped or replaced.
type ImportReport struct {
	Warnings []string `json:"warnings"`
}

func (r *ImportReport) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

var discriminantKeys = map[domain.EntityKind][]string{
	domain.KindGlassUnit:   {domain.KeyGlassType},
	domain.KindAlumProfile: {domain.KeyProfileType},
	domain.KindFrame:       {domain.KeyGeometry, domain.KeyMullionType},
	domain.KindAnchorage:   {domain.KeyClumpType},
}

var topLevelKeys = []string{keyProjectInfo, keyInclude, keyWind, keyAlumProfiles, keySteelProfiles, keyCategories}

// Decode parses document text and builds a project from it. Derived values
// are taken as written and frame sections are left unresolved. A parse
// failure returns ErrDocumentParse and no project.
func Decode(text string, res *schema.Resolver) (*domain.Project, *ImportReport, error) {
	root, err := parse(text)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrDocumentParse, err)
	}

	h := &hydrator{res: res, report: &ImportReport{}}
	p := res.NewProject()

	for _, k := range root.keys {
		if !slices.Contains(topLevelKeys, k) {
			h.report.warnf("unknown section %q skipped", k)
		}
	}

	if n, ok := root.get(keyProjectInfo); ok {
		h.fill(keyProjectInfo, p.Info.Attrs, res.ProjectInfo(), n, nil)
	}
	if n, ok := root.get(keyInclude); ok {
		h.fill(keyInclude, p.Include.Attrs, res.Include(), n, nil)
	}
	if n, ok := root.get(keyWind); ok {
		h.fill(keyWind, p.Wind.Attrs, res.Wind(), n, nil)
	}
	for _, n := range h.list(root, keyAlumProfiles) {
		if it := h.item(domain.KindAlumProfile, n); it != nil {
			p.AlumProfiles = append(p.AlumProfiles, it.(*domain.AlumProfile))
		}
	}
	for _, n := range h.list(root, keySteelProfiles) {
		if it := h.item(domain.KindSteelProfile, n); it != nil {
			p.SteelProfiles = append(p.SteelProfiles, it.(*domain.SteelProfile))
		}
	}
	for _, n := range h.list(root, keyCategories) {
		if c := h.category(n); c != nil {
			p.Categories = append(p.Categories, c)
		}
	}
	return p, h.report, nil
}

type hydrator struct {
	res    *schema.Resolver
	report *ImportReport
}

// list returns the entries of a sequence, dropping "{}" placeholders.
func (h *hydrator) list(parent *node, key string) []*node {
	n, ok := parent.get(key)
	if !ok {
		return nil
	}
	if n.kind != sequenceNode {
		if !n.empty() && !(n.kind == scalarNode && n.value == "") {
			h.report.warnf("%s is not a list, skipped", key)
		}
		return nil
	}
	out := make([]*node, 0, len(n.items))
	for _, it := range n.items {
		if it.empty() || (it.kind == scalarNode && it.value == "") {
			continue
		}
		if it.kind != mappingNode {
			h.report.warnf("%s entry %q is not a mapping, skipped", key, it.text())
			continue
		}
		out = append(out, it)
	}
	return out
}

func (h *hydrator) category(n *node) *domain.Category {
	name := DefaultCategoryName
	if v, ok := n.get(keyCategoryName); ok {
		name = v.text()
	}
	c := h.res.NewCategory(name)
	for _, k := range n.keys {
		switch k {
		case keyCategoryName, keyGlassUnits, keyFrames, keyConnections, keyAnchorage:
		default:
			h.report.warnf("category %q: unknown key %q skipped", name, k)
		}
	}
	for _, it := range h.list(n, keyGlassUnits) {
		if g := h.item(domain.KindGlassUnit, it); g != nil {
			c.GlassUnits = append(c.GlassUnits, g.(*domain.GlassUnit))
		}
	}
	for _, it := range h.list(n, keyFrames) {
		if f := h.item(domain.KindFrame, it); f != nil {
			c.Frames = append(c.Frames, f.(*domain.Frame))
		}
	}
	for _, it := range h.list(n, keyConnections) {
		if cn := h.item(domain.KindConnection, it); cn != nil {
			c.Connections = append(c.Connections, cn.(*domain.Connection))
		}
	}
	for _, it := range h.list(n, keyAnchorage) {
		if a := h.item(domain.KindAnchorage, it); a != nil {
			c.Anchorages = append(c.Anchorages, a.(*domain.Anchorage))
		}
	}
	return c
}

// item creates the entity with its discriminants set first, so the rest of
// the mapping is read against the right schema.
func (h *hydrator) item(kind domain.EntityKind, n *node) domain.Item {
	keys := discriminantKeys[kind]
	tags := make([]string, len(keys))
	for i, k := range keys {
		if v, ok := n.get(k); ok {
			tags[i] = v.text()
		}
	}

	it, err := h.res.NewItem(kind, tags...)
	if err != nil {
		h.report.warnf("%s: %v, using default variant", kind, err)
		if it, err = h.res.NewItem(kind); err != nil {
			h.report.warnf("%s: %v", kind, err)
			return nil
		}
	}
	s, err := h.res.SchemaOf(it)
	if err != nil {
		h.report.warnf("%s: %v", kind, err)
		return nil
	}
	h.fill(string(kind), it.Base().Attrs, s, n, keys)
	return it
}

// fill copies the mapping's values into rec. Flags are normalized and
// enumerations matched against their options; unknown keys are reported.
func (h *hydrator) fill(where string, rec *domain.Record, s *schema.Schema, n *node, skip []string) {
	if n.kind != mappingNode {
		if n.text() != "" {
			h.report.warnf("%s is not a mapping, skipped", where)
		}
		return
	}
	for i, k := range n.keys {
		if slices.Contains(skip, k) {
			continue
		}
		a, ok := s.Attribute(k)
		if !ok {
			h.report.warnf("%s: unknown key %q skipped", where, k)
			continue
		}
		v := n.vals[i]
		if v.kind != scalarNode {
			h.report.warnf("%s: %s is not a scalar, skipped", where, k)
			continue
		}
		value := v.value
		switch {
		case a.Kind == schema.Flag && strings.TrimSpace(value) != "":
			value = schema.NormalizeFlag(value)
		case len(a.Options) > 0 && value != "":
			if m, ok := a.Match(value); ok {
				value = m
			} else {
				h.report.warnf("%s: %s=%q is not one of %v", where, k, value, a.Options)
			}
		}
		_ = rec.Set(k, value, domain.OriginImported)
	}
}
