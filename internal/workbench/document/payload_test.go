package document

import (
	"errors"
	"testing"

	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
	"github.com/facadeworks/facade-workbench/internal/workbench/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func incomplete(t *testing.T, err error) *IncompleteError {
	t.Helper()
	require.True(t, errors.Is(err, domain.ErrIncompletePayload), "got %v", err)
	var ie *IncompleteError
	require.True(t, errors.As(err, &ie))
	return ie
}

func TestBuildPayload_Glass(t *testing.T) {
	res := schema.New()
	g := add(t, res, domain.KindGlassUnit, map[string]string{"length": "1200"}, string(domain.GlassDGU))

	_, err := BuildPayload(g, nil, nil)
	ie := incomplete(t, err)
	assert.Equal(t, MsgGlassUnit, ie.Message)
	assert.Equal(t, []string{"width"}, ie.Missing)

	set(t, g.Base().Attrs, map[string]string{"width": "1000"})
	p, err := BuildPayload(g, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.KindGlassUnit, p.ItemType)
	assert.Equal(t, "dgu", p.Body["glass_type"])
	assert.Equal(t, "1200", p.Body["length"])
}

func TestBuildPayload_CategoryContext(t *testing.T) {
	res, proj := sampleProject(t)
	cat := proj.Categories[0]
	frame := cat.Frames[0]
	frame.Sections = domain.FrameSections{
		Mullion: &domain.Section{Name: "M-125", Ixx: 100, Iyy: 50, PhiMn: 3.2},
		Steel:   &domain.Section{Name: "RHS 100x50", Ixx: 80, Iyy: 30, PhiMn: 6.1},
	}

	p, err := BuildPayload(frame, cat, nil)
	require.NoError(t, err)
	assert.Equal(t, 14.0, p.Body["glass_thickness"])
	assert.Equal(t, 100.0, p.Body["I_xa"])
	assert.Equal(t, 6.1, p.Body["mul_phi_Mn_s"])
	assert.NotContains(t, p.Body, "tran_I_xx")
	assert.Equal(t, "Aluminum + Steel", p.Body["mullion_type"])

	conn := add(t, res, domain.KindConnection, map[string]string{"screw_nos": "4"})
	_, err = BuildPayload(conn, cat, nil)
	assert.Equal(t, MsgConnection, incomplete(t, err).Message)

	set(t, conn.Base().Attrs, map[string]string{"screw_dia": "5.5"})
	p, err = BuildPayload(conn, cat, nil)
	require.NoError(t, err)
	fr, ok := p.Body["frame"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "M-125", fr["mullion"])
	assert.Equal(t, 14.0, p.Body["glass_thickness"])

	anchor := cat.Anchorages[0]
	p, err = BuildPayload(anchor, proj.Categories[1], nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, p.Body["frame"])
	assert.Equal(t, 0.0, p.Body["glass_thickness"])
	assert.Equal(t, "L Clump", p.Body["clump_type"])
}

func TestBuildPayload_Profiles(t *testing.T) {
	res := schema.New()
	catalog := map[string]map[string]any{"M-125": {"profile_name": "M-125", "I_xx": 1.2e6}}
	lookup := func(name string) (map[string]any, bool) {
		d, ok := catalog[name]
		return d, ok
	}

	pre := add(t, res, domain.KindAlumProfile, nil)
	_, err := BuildPayload(pre, nil, lookup)
	assert.Equal(t, MsgSelectProfile, incomplete(t, err).Message)

	set(t, pre.Base().Attrs, map[string]string{"profile_name": "M-999"})
	_, err = BuildPayload(pre, nil, lookup)
	assert.Equal(t, MsgProfileNotFound, incomplete(t, err).Message)

	set(t, pre.Base().Attrs, map[string]string{"profile_name": "M-125"})
	p, err := BuildPayload(pre, nil, lookup)
	require.NoError(t, err)
	assert.Equal(t, 1.2e6, p.Body["I_xx"])

	stick := add(t, res, domain.KindAlumProfile, map[string]string{
		"profile_name": "S1", "web_length": "60", "flange_length": "40", "web_thk": "2",
	}, string(domain.ProfileStick))
	_, err = BuildPayload(stick, nil, nil)
	ie := incomplete(t, err)
	assert.Equal(t, MsgStickProfile, ie.Message)
	assert.ElementsMatch(t, []string{"flange_thk", "F_y"}, ie.Missing)

	manual := add(t, res, domain.KindAlumProfile, map[string]string{"profile_name": "X1"}, string(domain.ProfileManual))
	_, err = BuildPayload(manual, nil, nil)
	assert.Equal(t, MsgManualProfile, incomplete(t, err).Message)

	steel := add(t, res, domain.KindSteelProfile, map[string]string{
		"profile_name": "RHS", "web_length": "100", "flange_length": "50", "thk": "4",
	})
	p, err = BuildPayload(steel, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"web_length": "100", "flange_length": "50", "thk": "4"}, p.Body)
}

func TestWindPayload(t *testing.T) {
	p := schema.New().NewProject()
	set(t, p.Wind.Attrs, map[string]string{"b_length": "30", "b_width": "20", "location": "Dhaka"})

	_, err := WindPayload(p.Wind)
	ie := incomplete(t, err)
	assert.Equal(t, MsgWind, ie.Message)
	assert.Equal(t, []string{"b_floor_heights"}, ie.Missing)

	set(t, p.Wind.Attrs, map[string]string{"b_floor_heights": "3.5,3.5,4"})
	body, err := WindPayload(p.Wind)
	require.NoError(t, err)
	assert.Equal(t, "Dhaka", body["location"])
}
