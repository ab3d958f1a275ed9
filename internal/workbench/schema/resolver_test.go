package schema

import (
	"errors"
	"testing"

	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_EveryVariantHasSchema(t *testing.T) {
	r := New()

	for _, gt := range domain.GlassTypes {
		s, err := r.Glass(gt)
		require.NoError(t, err, gt)
		assert.NotEmpty(t, s.Attributes)
	}
	for _, pt := range domain.ProfileTypes {
		_, err := r.AlumProfile(pt)
		require.NoError(t, err, pt)
	}
	for _, fv := range domain.FrameVariants {
		_, err := r.Frame(fv)
		require.NoError(t, err, fv.String())
	}
	for _, ct := range domain.ClumpTypes {
		_, err := r.Anchorage(ct)
		require.NoError(t, err, ct)
	}
}

func TestResolver_UnknownVariant(t *testing.T) {
	r := New()

	_, err := r.Resolve(domain.KindGlassUnit, "tgu")
	assert.True(t, errors.Is(err, domain.ErrUnknownVariant))

	_, err = r.Resolve(domain.KindFrame, "regular", "Steel Only")
	assert.True(t, errors.Is(err, domain.ErrUnknownVariant))
}

func TestResolver_FieldOrder(t *testing.T) {
	r := New()

	tests := []struct {
		name  string
		kind  domain.EntityKind
		disc  []string
		names []string
	}{
		{"sgu", domain.KindGlassUnit, []string{"sgu"},
			[]string{"length", "width", "thickness", "grade", "support_type", "wind_load", "def_criteria", "nfl", "load_x_area2", "def"}},
		{"stick", domain.KindAlumProfile, []string{"Stick"},
			[]string{"profile_name", "web_length", "flange_length", "web_thk", "flange_thk", "F_y"}},
		{"regular steel frame", domain.KindFrame, []string{"regular", "Aluminum + Steel"},
			[]string{"mullion", "steel", "transom", "length", "width", "tran_spacing", "glass_thk", "wind_pos", "wind_neg"}},
		{"box clump", domain.KindAnchorage, []string{"Box Clump"},
			[]string{"bp_thk", "anchor_nos", "anchor_dia", "embed_depth", "C_a1", "h_a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := r.Resolve(tt.kind, tt.disc...)
			require.NoError(t, err)
			assert.Equal(t, tt.names, s.Names())
		})
	}

	irregular, err := r.Frame(domain.FrameVariant{Geometry: domain.GeometryIrregular, MullionType: domain.MullionAluminum})
	require.NoError(t, err)
	assert.Len(t, irregular.Attributes, 19)
	assert.NotContains(t, irregular.Names(), "steel")
}

func TestResolver_Hints(t *testing.T) {
	r := New()
	s, err := r.Glass(domain.GlassDGU)
	require.NoError(t, err)

	length, ok := s.Attribute("length")
	require.True(t, ok)
	assert.Equal(t, Numeric, length.Kind)
	assert.Equal(t, "mm", length.Unit)
	assert.Equal(t, "Glass Length, L", length.Label)

	load, _ := s.Attribute("load1_x_area2")
	assert.Equal(t, "kNm²", load.Unit)

	grade, _ := s.Attribute("grade2")
	assert.Equal(t, Enumerated, grade.Kind)
	assert.Equal(t, []string{"FT", "HS", "AN"}, grade.Options)

	criteria, _ := s.Attribute("def_criteria")
	assert.Empty(t, criteria.Unit)

	pre, err := r.AlumProfile(domain.ProfilePredefined)
	require.NoError(t, err)
	assert.Equal(t, CatalogAlumProfiles, pre.Attributes[0].Catalog)
	manual, _ := r.AlumProfile(domain.ProfileManual)
	assert.Equal(t, Text, manual.Attributes[0].Kind, "catalog hint must not leak into other variants")
}

func TestNewItem_AppliesDefaults(t *testing.T) {
	r := New()

	item, err := r.NewItem(domain.KindAnchorage, "L Clump")
	require.NoError(t, err)
	a := item.(*domain.Anchorage)
	assert.Equal(t, "250", a.Attrs.Value("front_bp_length_N"))
	assert.Equal(t, "2", a.Attrs.Value("top_anchor_nos"))
	assert.False(t, a.Attrs.Has("front_anchor_nos"))
	assert.False(t, a.Attrs.Has("top_bp_length_N"))

	f, _ := a.Attrs.Field("bp_thk")
	assert.Equal(t, domain.OriginDefault, f.Origin)

	item, err = r.NewItem(domain.KindGlassUnit)
	require.NoError(t, err)
	g := item.(*domain.GlassUnit)
	assert.Equal(t, domain.GlassSGU, g.Type)
	assert.Equal(t, "FT", g.Attrs.Value("grade"))
	assert.Equal(t, SupportFourEdges, g.Attrs.Value("support_type"))
}

func TestRetag_DiscardsForeignFields(t *testing.T) {
	r := New()
	item, err := r.NewItem(domain.KindGlassUnit, "dgu")
	require.NoError(t, err)
	g := item.(*domain.GlassUnit)
	require.NoError(t, g.Attrs.Set("thickness1", "6", domain.OriginUser))
	require.NoError(t, g.Attrs.Set("length", "1200", domain.OriginUser))
	require.NoError(t, g.Attrs.Set("grade1", "HS", domain.OriginUser))

	require.NoError(t, r.Retag(g, "sgu"))

	want, _ := r.Glass(domain.GlassSGU)
	assert.Equal(t, want.Names(), g.Attrs.Names())
	assert.False(t, g.Attrs.Has("thickness1"))
	assert.Equal(t, "", g.Attrs.Value("length"))
	assert.Equal(t, "FT", g.Attrs.Value("grade"))

	err = r.Retag(g, "xgu")
	assert.True(t, errors.Is(err, domain.ErrUnknownVariant))
	assert.Equal(t, domain.GlassSGU, g.Type, "failed retag leaves the unit alone")
}

func TestRetag_FrameKeepsOtherHalf(t *testing.T) {
	r := New()
	item, err := r.NewItem(domain.KindFrame)
	require.NoError(t, err)
	f := item.(*domain.Frame)

	require.NoError(t, r.Retag(f, "", string(domain.MullionAluminumSteel)))
	assert.Equal(t, domain.GeometryRegular, f.Variant.Geometry)
	assert.True(t, f.Attrs.Has("steel"))
}

func TestSchemaCheck(t *testing.T) {
	r := New()
	s, _ := r.Glass(domain.GlassSGU)

	assert.NoError(t, s.Check("grade", "HS"))
	assert.NoError(t, s.Check("grade", ""))
	assert.True(t, errors.Is(s.Check("grade", "XX"), domain.ErrInvalidOption))
	assert.True(t, errors.Is(s.Check("gap", "6"), domain.ErrUnknownAttribute))

	flags := r.Include()
	assert.NoError(t, flags.Check("wind", "no"))
	assert.Error(t, flags.Check("wind", "maybe"))
}

func TestAttributeMatch_Numeric(t *testing.T) {
	a := enum("spacing", "Spacing", "1", "2.5")
	got, ok := a.Match("2.50")
	assert.True(t, ok)
	assert.Equal(t, "2.5", got)

	_, ok = a.Match("3")
	assert.False(t, ok)
}

func TestNormalizeFlag(t *testing.T) {
	for _, in := range []string{"yes", "true", "1", "TRUE"} {
		assert.Equal(t, Yes, NormalizeFlag(in), in)
	}
	for _, in := range []string{"no", "", "false", "0", "maybe"} {
		assert.Equal(t, No, NormalizeFlag(in), in)
	}
}
