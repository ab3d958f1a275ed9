package schema

import (
	"regexp"
	"strings"

	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
)

// FieldKind tells a front-end how to render and validate an attribute.
type FieldKind string

const (
	Numeric    FieldKind = "numeric"
	Text       FieldKind = "text"
	Enumerated FieldKind = "enumerated"
	Flag       FieldKind = "flag"
)

// Catalog names a dependent option list that is resolved at runtime.
type Catalog string

const (
	CatalogNone          Catalog = ""
	CatalogAlumProfiles  Catalog = "alum_catalog"
	CatalogMullions      Catalog = "mullions"
	CatalogTransoms      Catalog = "transoms"
	CatalogSteelProfiles Catalog = "steel_profiles"
	CatalogWindLocations Catalog = "wind_locations"
)

// Flag values as stored in records and documents.
const (
	Yes = "yes"
	No  = "no"
)

// Attribute is one schema entry with its presentation hint.
type Attribute struct {
	Name    string    `json:"name"`
	Label   string    `json:"label"`
	Unit    string    `json:"unit,omitempty"`
	Kind    FieldKind `json:"kind"`
	Options []string  `json:"options,omitempty"`
	Catalog Catalog   `json:"catalog,omitempty"`
}

var unitPattern = regexp.MustCompile(`\s*\(([^)]+)\)$`)

// splitUnit separates a trailing "(unit)" from a label.
func splitUnit(label string) (string, string) {
	m := unitPattern.FindStringSubmatchIndex(label)
	if m == nil {
		return label, ""
	}
	return strings.TrimSpace(label[:m[0]]), label[m[2]:m[3]]
}

func num(name, label string) Attribute {
	l, u := splitUnit(label)
	return Attribute{Name: name, Label: l, Unit: u, Kind: Numeric}
}

func text(name, label string) Attribute {
	return Attribute{Name: name, Label: label, Kind: Text}
}

func enum(name, label string, options ...string) Attribute {
	return Attribute{Name: name, Label: label, Kind: Enumerated, Options: options}
}

func catalog(name, label string, c Catalog) Attribute {
	return Attribute{Name: name, Label: label, Kind: Enumerated, Catalog: c}
}

func flag(name, label string) Attribute {
	return Attribute{Name: name, Label: label, Kind: Flag, Options: []string{Yes, No}}
}

// Schema is the resolved attribute set for one entity kind and variant.
type Schema struct {
	Kind       domain.EntityKind `json:"kind"`
	Variant    string            `json:"variant,omitempty"`
	Attributes []Attribute       `json:"attributes"`
	Defaults   map[string]string `json:"defaults,omitempty"`
}

func (s *Schema) Names() []string {
	out := make([]string, len(s.Attributes))
	for i, a := range s.Attributes {
		out[i] = a.Name
	}
	return out
}

func (s *Schema) Attribute(name string) (Attribute, bool) {
	for _, a := range s.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// NewRecord creates an empty record for the schema with fixed defaults and
// the first option of every static enumeration filled in.
func (s *Schema) NewRecord() *domain.Record {
	r := domain.NewRecord(s.Names()...)
	for _, a := range s.Attributes {
		if v, ok := s.Defaults[a.Name]; ok {
			_ = r.Set(a.Name, v, domain.OriginDefault)
			continue
		}
		if a.Kind == Enumerated && len(a.Options) > 0 {
			_ = r.Set(a.Name, a.Options[0], domain.OriginDefault)
		}
	}
	return r
}
