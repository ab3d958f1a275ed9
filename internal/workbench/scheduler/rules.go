package scheduler

import (
	"fmt"
	"math"
	"strconv"

	"github.com/facadeworks/facade-workbench/internal/workbench/derive"
	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
	"github.com/facadeworks/facade-workbench/internal/workbench/schema"
)

// Rule declares which attributes of an entity kind trigger recomputation
// and how the derived attributes are produced.
type Rule struct {
	Kind     domain.EntityKind
	Triggers []string
	Targets  []string
	Apply    func(item domain.Item) error
}

func (r Rule) triggeredBy(attr string) bool {
	for _, t := range r.Triggers {
		if t == attr {
			return true
		}
	}
	return false
}

var GlassRule = Rule{
	Kind: domain.KindGlassUnit,
	Triggers: []string{
		"length", "width", "wind_load", "support_type",
		"thickness", "thickness1", "thickness2", "thickness1_1", "thickness1_2",
	},
	Targets: []string{"load_x_area2", "def", "load1_x_area2", "load2_x_area2", "def1", "def2"},
	Apply:   applyGlass,
}

var WindRule = Rule{
	Kind: domain.KindWind,
	Triggers: []string{
		"b_length", "b_width", "b_height", "exposure_cat", "b_freq", "damping", "b_rigidity", "wind_speed",
	},
	Targets: []string{"gust_factor", "C_pw", "C_pl", "C_ps"},
	Apply:   applyWind,
}

// Fill writes value into name only when the field is blank and was not
// blanked by the user. It reports whether it wrote.
func Fill(rec *domain.Record, name, value string) bool {
	f, ok := rec.Field(name)
	if !ok || !f.Blank() || f.Origin == domain.OriginUser {
		return false
	}
	_ = rec.Set(name, value, domain.OriginDerived)
	return true
}

func fixed(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// nonZero reads a number the way the form did: blank, invalid and zero all
// count as absent.
func nonZero(rec *domain.Record, name string) (float64, bool) {
	v, ok := rec.Float(name)
	if !ok || v == 0 || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func orZero(rec *domain.Record, name string) float64 {
	v, _ := nonZero(rec, name)
	return v
}

func applyGlass(item domain.Item) error {
	g, ok := item.(*domain.GlassUnit)
	if !ok {
		return fmt.Errorf("glass rule applied to %s", item.Kind())
	}
	rec := g.Attrs

	length, okL := nonZero(rec, "length")
	width, okW := nonZero(rec, "width")
	load, okQ := nonZero(rec, "wind_load")
	if !okL || !okW || !okQ {
		return nil
	}

	lites, err := derive.LiteThicknesses(g.Type, rec)
	if err != nil {
		return err
	}
	fourEdges := rec.Value("support_type") == schema.SupportFourEdges

	if !g.Type.TwoLite() {
		Fill(rec, "load_x_area2", fixed(derive.LoadTimesAreaSquared(load, length, width), 1))
		if fourEdges && lites.One > 0 {
			if d := derive.Deflection(load, length, width, lites.One); !math.IsNaN(d) {
				Fill(rec, "def", fixed(d, 1))
			}
		}
		return nil
	}

	s1, s2, ok := derive.LoadSharing(lites.One, lites.Two)
	if !ok {
		return nil
	}
	Fill(rec, "load1_x_area2", fixed(derive.LoadTimesAreaSquared(load*s1, length, width), 1))
	Fill(rec, "load2_x_area2", fixed(derive.LoadTimesAreaSquared(load*s2, length, width), 1))
	if fourEdges {
		if d := derive.Deflection(load*s1, length, width, lites.One); !math.IsNaN(d) {
			Fill(rec, "def1", fixed(d, 1))
		}
		if d := derive.Deflection(load*s2, length, width, lites.Two); !math.IsNaN(d) {
			Fill(rec, "def2", fixed(d, 1))
		}
	}
	return nil
}

// Frequency and damping assumed for flexible buildings when left blank.
const (
	defaultFrequency = 1.2
	defaultDamping   = 0.02
)

func applyWind(item domain.Item) error {
	w, ok := item.(*domain.WindConfig)
	if !ok {
		return fmt.Errorf("wind rule applied to %s", item.Kind())
	}
	rec := w.Attrs

	length := orZero(rec, "b_length")
	width := orZero(rec, "b_width")

	cp := derive.ExternalPressureCoefficients(length, width)
	Fill(rec, "C_pw", fixed(cp.Windward, 2))
	Fill(rec, "C_pl", fixed(cp.Leeward, 2))
	Fill(rec, "C_ps", fixed(cp.Side, 2))

	switch rec.Value("b_rigidity") {
	case "", schema.RigidityRigid:
		Fill(rec, "gust_factor", fixed(derive.RigidGustFactor, 2))
	case schema.RigidityFlexible:
		height := orZero(rec, "b_height")
		speed := orZero(rec, "wind_speed")
		if !(height > 0 && length > 0 && width > 0 && speed > 0) {
			return nil
		}
		freq, ok := nonZero(rec, "b_freq")
		if !ok {
			freq = defaultFrequency
		}
		damping, ok := nonZero(rec, "damping")
		if !ok {
			damping = defaultDamping
		}
		exposure := rec.Value("exposure_cat")
		if exposure == "" {
			exposure = "B"
		}
		g := derive.GustFactor(derive.GustInput{
			Flexible:  true,
			Height:    height,
			Length:    length,
			Width:     width,
			WindSpeed: speed,
			Frequency: freq,
			Damping:   damping,
			Exposure:  exposure,
		})
		if !math.IsNaN(g) && !math.IsInf(g, 0) && g != 0 {
			Fill(rec, "gust_factor", fixed(g, 3))
		}
	}
	return nil
}
