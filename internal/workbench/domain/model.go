package domain

import (
	"strings"

	"github.com/google/uuid"
)

// EntityKind names an entity type. List entity kinds double as the
// item_type sent to the preview collaborator.
type EntityKind string

const (
	KindProjectInfo  EntityKind = "project_info"
	KindInclude      EntityKind = "include"
	KindWind         EntityKind = "wind"
	KindAlumProfile  EntityKind = "alum_profile"
	KindSteelProfile EntityKind = "steel_profile"
	KindGlassUnit    EntityKind = "glass_unit"
	KindFrame        EntityKind = "frame"
	KindConnection   EntityKind = "connection"
	KindAnchorage    EntityKind = "anchorage"
)

// Discriminant attribute keys as they appear in documents.
const (
	KeyGlassType   = "glass_type"
	KeyProfileType = "profile_type"
	KeyGeometry    = "geometry"
	KeyMullionType = "mullion_type"
	KeyClumpType   = "clump_type"
)

type GlassType string

const (
	GlassSGU  GlassType = "sgu"
	GlassDGU  GlassType = "dgu"
	GlassLGU  GlassType = "lgu"
	GlassLDGU GlassType = "ldgu"
)

var GlassTypes = []GlassType{GlassSGU, GlassDGU, GlassLGU, GlassLDGU}

func (t GlassType) Valid() bool {
	switch t {
	case GlassSGU, GlassDGU, GlassLGU, GlassLDGU:
		return true
	}
	return false
}

// TwoLite reports whether the unit has two separately loaded lites.
func (t GlassType) TwoLite() bool {
	return t == GlassDGU || t == GlassLDGU
}

type ProfileType string

const (
	ProfileManual     ProfileType = "Manual"
	ProfilePredefined ProfileType = "Pre-defined"
	ProfileStick      ProfileType = "Stick"
)

var ProfileTypes = []ProfileType{ProfileManual, ProfilePredefined, ProfileStick}

func (t ProfileType) Valid() bool {
	switch t {
	case ProfileManual, ProfilePredefined, ProfileStick:
		return true
	}
	return false
}

type Geometry string

const (
	GeometryRegular   Geometry = "regular"
	GeometryIrregular Geometry = "irregular"
)

type MullionType string

const (
	MullionAluminum      MullionType = "Aluminum Only"
	MullionAluminumSteel MullionType = "Aluminum + Steel"
)

// FrameVariant is the two-part frame discriminant.
type FrameVariant struct {
	Geometry    Geometry
	MullionType MullionType
}

var FrameVariants = []FrameVariant{
	{GeometryRegular, MullionAluminum},
	{GeometryRegular, MullionAluminumSteel},
	{GeometryIrregular, MullionAluminum},
	{GeometryIrregular, MullionAluminumSteel},
}

func (v FrameVariant) Valid() bool {
	return (v.Geometry == GeometryRegular || v.Geometry == GeometryIrregular) &&
		(v.MullionType == MullionAluminum || v.MullionType == MullionAluminumSteel)
}

func (v FrameVariant) String() string {
	return string(v.Geometry) + "/" + string(v.MullionType)
}

type ClumpType string

const (
	ClumpBox ClumpType = "Box Clump"
	ClumpU   ClumpType = "U Clump"
	ClumpL   ClumpType = "L Clump"
)

var ClumpTypes = []ClumpType{ClumpBox, ClumpU, ClumpL}

func (t ClumpType) Valid() bool {
	switch t {
	case ClumpBox, ClumpU, ClumpL:
		return true
	}
	return false
}

// Variants used when an entity is created without an explicit choice.
const (
	DefaultGlassType   = GlassSGU
	DefaultProfileType = ProfilePredefined
	DefaultClumpType   = ClumpBox
)

var DefaultFrameVariant = FrameVariant{GeometryRegular, MullionAluminum}

type EntityID string

func NewEntityID() EntityID {
	return EntityID(uuid.NewString())
}

// Entity is the identity and attribute record shared by every entity.
type Entity struct {
	ID    EntityID
	Attrs *Record
}

// Tag is one discriminant key/value pair.
type Tag struct {
	Key   string
	Value string
}

// Item is implemented by every entity that lives in a project list or
// holds derived attributes.
type Item interface {
	Kind() EntityKind
	Base() *Entity
	Tags() []Tag
}

type GlassUnit struct {
	Entity
	Type GlassType
}

func (g *GlassUnit) Kind() EntityKind { return KindGlassUnit }
func (g *GlassUnit) Base() *Entity    { return &g.Entity }
func (g *GlassUnit) Tags() []Tag      { return []Tag{{KeyGlassType, string(g.Type)}} }

// OverallThickness sums the nominal ply thicknesses of single and double
// glazed units, excluding the air gap. Laminated units and missing plies
// count as zero.
func (g *GlassUnit) OverallThickness() float64 {
	var names []string
	switch g.Type {
	case GlassSGU:
		names = []string{"thickness"}
	case GlassDGU:
		names = []string{"thickness1", "thickness2"}
	}
	var total float64
	for _, n := range names {
		if v, ok := g.Attrs.Float(n); ok {
			total += v
		}
	}
	return total
}

type AlumProfile struct {
	Entity
	Type ProfileType
}

func (p *AlumProfile) Kind() EntityKind { return KindAlumProfile }
func (p *AlumProfile) Base() *Entity    { return &p.Entity }
func (p *AlumProfile) Tags() []Tag      { return []Tag{{KeyProfileType, string(p.Type)}} }
func (p *AlumProfile) Name() string     { return strings.TrimSpace(p.Attrs.Value("profile_name")) }

type SteelProfile struct {
	Entity
}

func (p *SteelProfile) Kind() EntityKind { return KindSteelProfile }
func (p *SteelProfile) Base() *Entity    { return &p.Entity }
func (p *SteelProfile) Tags() []Tag      { return nil }
func (p *SteelProfile) Name() string     { return strings.TrimSpace(p.Attrs.Value("profile_name")) }

// Section holds catalog section properties for a profile.
type Section struct {
	Name  string  `json:"profile_name"`
	Ixx   float64 `json:"I_xx"`
	Iyy   float64 `json:"I_yy"`
	PhiMn float64 `json:"phi_Mn"`
}

// FrameSections caches the resolved sections of a frame's profile
// references. It is not serialized.
type FrameSections struct {
	Mullion *Section
	Steel   *Section
	Transom *Section
}

type Frame struct {
	Entity
	Variant  FrameVariant
	Sections FrameSections
}

func (f *Frame) Kind() EntityKind { return KindFrame }
func (f *Frame) Base() *Entity    { return &f.Entity }
func (f *Frame) Tags() []Tag {
	return []Tag{
		{KeyGeometry, string(f.Variant.Geometry)},
		{KeyMullionType, string(f.Variant.MullionType)},
	}
}

type Connection struct {
	Entity
}

func (c *Connection) Kind() EntityKind { return KindConnection }
func (c *Connection) Base() *Entity    { return &c.Entity }
func (c *Connection) Tags() []Tag      { return nil }

type Anchorage struct {
	Entity
	Type ClumpType
}

func (a *Anchorage) Kind() EntityKind { return KindAnchorage }
func (a *Anchorage) Base() *Entity    { return &a.Entity }
func (a *Anchorage) Tags() []Tag      { return []Tag{{KeyClumpType, string(a.Type)}} }

type WindConfig struct {
	Entity
}

func (w *WindConfig) Kind() EntityKind { return KindWind }
func (w *WindConfig) Base() *Entity    { return &w.Entity }
func (w *WindConfig) Tags() []Tag      { return nil }

type Category struct {
	ID          EntityID
	Name        string
	GlassUnits  []*GlassUnit
	Frames      []*Frame
	Connections []*Connection
	Anchorages  []*Anchorage
}

// GlassThickness is the largest overall thickness among the category's
// glass units, or 0 when it has none.
func (c *Category) GlassThickness() float64 {
	var thickest float64
	for _, g := range c.GlassUnits {
		if t := g.OverallThickness(); t > thickest {
			thickest = t
		}
	}
	return thickest
}

// Items returns the category's entities in document order.
func (c *Category) Items() []Item {
	out := make([]Item, 0, len(c.GlassUnits)+len(c.Frames)+len(c.Connections)+len(c.Anchorages))
	for _, g := range c.GlassUnits {
		out = append(out, g)
	}
	for _, f := range c.Frames {
		out = append(out, f)
	}
	for _, x := range c.Connections {
		out = append(out, x)
	}
	for _, a := range c.Anchorages {
		out = append(out, a)
	}
	return out
}
