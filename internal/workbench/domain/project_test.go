package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func glassUnit(t GlassType, values map[string]string) *GlassUnit {
	var names []string
	for k := range values {
		names = append(names, k)
	}
	g := &GlassUnit{Entity: Entity{ID: NewEntityID(), Attrs: NewRecord(names...)}, Type: t}
	for k, v := range values {
		_ = g.Attrs.Set(k, v, OriginUser)
	}
	return g
}

func alum(name string) *AlumProfile {
	p := &AlumProfile{Entity: Entity{ID: NewEntityID(), Attrs: NewRecord("profile_name")}, Type: ProfilePredefined}
	_ = p.Attrs.Set("profile_name", name, OriginUser)
	return p
}

func TestCategory_GlassThickness(t *testing.T) {
	c := &Category{ID: NewEntityID()}
	assert.Equal(t, 0.0, c.GlassThickness())

	c.GlassUnits = append(c.GlassUnits,
		glassUnit(GlassSGU, map[string]string{"thickness": "10"}),
		glassUnit(GlassDGU, map[string]string{"thickness1": "6", "thickness2": "8"}),
		glassUnit(GlassLGU, map[string]string{"thickness1": "5", "thickness_inner": "1.52", "thickness2": ""}),
	)
	assert.Equal(t, 14.0, c.GlassThickness())

	laminated := &Category{ID: NewEntityID()}
	laminated.GlassUnits = append(laminated.GlassUnits,
		glassUnit(GlassLGU, map[string]string{"thickness1": "10", "thickness_inner": "1.52", "thickness2": "10"}),
		glassUnit(GlassLDGU, map[string]string{"thickness1_1": "6", "thickness1_2": "6", "thickness2": "8"}),
	)
	assert.Equal(t, 0.0, laminated.GlassThickness())
}

func TestProject_ProfileOptions(t *testing.T) {
	p := &Project{AlumProfiles: []*AlumProfile{alum("M100"), alum("T60"), alum(""), alum("Mx")}}

	assert.Equal(t, []string{"M100", "Mx"}, p.MullionOptions())
	assert.Equal(t, []string{"T60"}, p.TransomOptions())
}

func TestProject_AddFindRemove(t *testing.T) {
	cat := &Category{ID: NewEntityID(), Name: "Curtain wall"}
	p := &Project{Categories: []*Category{cat}}

	g := glassUnit(GlassSGU, map[string]string{"length": "1000"})
	require.NoError(t, p.Add(g, cat.ID))

	found, owner, err := p.Find(g.ID)
	require.NoError(t, err)
	assert.Same(t, g, found)
	assert.Same(t, cat, owner)

	removed, err := p.Remove(g.ID)
	require.NoError(t, err)
	assert.Same(t, g, removed)
	assert.Empty(t, cat.GlassUnits)

	_, _, err = p.Find(g.ID)
	assert.True(t, errors.Is(err, ErrEntityNotFound))

	err = p.Add(glassUnit(GlassSGU, nil), NewEntityID())
	assert.True(t, errors.Is(err, ErrCategoryNotFound))
}

func TestProject_EqualComparesValuesAndOrder(t *testing.T) {
	build := func(first, second string) *Project {
		return &Project{AlumProfiles: []*AlumProfile{alum(first), alum(second)}}
	}
	assert.True(t, build("M1", "T1").Equal(build("M1", "T1")))
	assert.False(t, build("M1", "T1").Equal(build("T1", "M1")))
}
