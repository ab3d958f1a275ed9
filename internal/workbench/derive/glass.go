// Package derive computes glass mechanics and wind quantities. Every
// function is pure.
package derive

import (
	"fmt"
	"math"

	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
)

// Lengths are in mm, loads in kPa.

// minThickness maps nominal glass thickness to the ASTM E1300 minimum.
var minThickness = map[float64]float64{
	2.5: 2.16, 2.7: 2.59, 3.0: 2.92, 4.0: 3.78, 5.0: 4.57,
	6.0: 5.56, 8.0: 7.42, 10.0: 9.02, 12.0: 11.91, 16.0: 15.09,
	19.0: 18.26, 22.0: 21.44,
}

// shearTransfer is the interlayer shear coefficient used for laminated
// effective thickness.
const shearTransfer = 0.006806

// MinimumThickness looks up the minimum thickness for a nominal glass
// thickness. There is no interpolation.
func MinimumThickness(nominal float64) (float64, error) {
	m, ok := minThickness[nominal]
	if !ok {
		return 0, fmt.Errorf("%w: %g", domain.ErrUnknownThickness, nominal)
	}
	return m, nil
}

// EffectiveThicknessLaminated returns the effective thickness of a two-ply
// laminate given the nominal ply thicknesses.
func EffectiveThicknessLaminated(thk1, thk2 float64) (float64, error) {
	m1, err := MinimumThickness(thk1)
	if err != nil {
		return 0, err
	}
	m2, err := MinimumThickness(thk2)
	if err != nil {
		return 0, err
	}
	h3 := m1*m1*m1 + m2*m2*m2 + 3*shearTransfer*m1*m2*(m1+m2)
	return math.Cbrt(h3), nil
}

// Deflection is the centre deflection of a four-edge supported rectangular
// lite from the ASTM E1300 regression. It returns NaN when the load is too
// small for the regression's domain.
func Deflection(windLoad, length, width, thickness float64) float64 {
	a := math.Max(length, width)
	b := math.Min(length, width)
	if b <= 0 || thickness <= 0 {
		return math.NaN()
	}
	rho := a / b

	r0 := 0.553 - 3.83*rho + 1.11*rho*rho - 0.0969*rho*rho*rho
	r1 := -2.29 + 5.83*rho - 2.17*rho*rho + 0.2067*rho*rho*rho
	r2 := 1.485 - 1.908*rho + 0.815*rho*rho - 0.0822*rho*rho*rho

	q := 0.749 * windLoad
	ab := a * b
	inner := q * ab * ab / (71_700_000 * math.Pow(thickness, 4))
	if !(inner > 1) {
		return math.NaN()
	}
	x := math.Log(math.Log(inner))

	return thickness * math.Exp(r0+r1*x+r2*x*x)
}

// LoadSharing splits load between two lites in proportion to the cube of
// their thickness. ok is false when either thickness is unresolved.
func LoadSharing(h1, h2 float64) (s1, s2 float64, ok bool) {
	if !(h1 > 0) || !(h2 > 0) {
		return 0, 0, false
	}
	c1, c2 := h1*h1*h1, h2*h2*h2
	return c1 / (c1 + c2), c2 / (c1 + c2), true
}

// LoadTimesAreaSquared is the chart abscissa 0.749 · load · area², with the
// area in m².
func LoadTimesAreaSquared(windLoad, length, width float64) float64 {
	area := length * width / 1_000_000
	return 0.749 * windLoad * area * area
}

// Lites holds the effective thickness of each loaded lite. Two is zero for
// single-lite units; a zero value means the ply thickness was not entered.
type Lites struct {
	One float64
	Two float64
}

// LiteThicknesses resolves the effective thickness of each lite of a glass
// unit from its nominal ply thicknesses. Blank plies are left unresolved;
// a nominal value outside the ASTM table fails with ErrUnknownThickness.
func LiteThicknesses(t domain.GlassType, rec *domain.Record) (Lites, error) {
	var out Lites
	var err error
	switch t {
	case domain.GlassSGU:
		out.One, err = minOf(rec, "thickness")
	case domain.GlassLGU:
		out.One, err = laminatedOf(rec, "thickness1", "thickness2")
	case domain.GlassDGU:
		if out.One, err = minOf(rec, "thickness1"); err == nil {
			out.Two, err = minOf(rec, "thickness2")
		}
	case domain.GlassLDGU:
		if out.One, err = laminatedOf(rec, "thickness1_1", "thickness1_2"); err == nil {
			out.Two, err = minOf(rec, "thickness2")
		}
	default:
		err = fmt.Errorf("%w: glass type %q", domain.ErrUnknownVariant, t)
	}
	if err != nil {
		return Lites{}, err
	}
	return out, nil
}

func minOf(rec *domain.Record, name string) (float64, error) {
	v, ok := rec.Float(name)
	if !ok || v == 0 {
		return 0, nil
	}
	return MinimumThickness(v)
}

func laminatedOf(rec *domain.Record, a, b string) (float64, error) {
	t1, ok1 := rec.Float(a)
	t2, ok2 := rec.Float(b)
	if !ok1 || !ok2 || t1 == 0 || t2 == 0 {
		if ok1 && t1 != 0 {
			if _, err := MinimumThickness(t1); err != nil {
				return 0, err
			}
		}
		if ok2 && t2 != 0 {
			if _, err := MinimumThickness(t2); err != nil {
				return 0, err
			}
		}
		return 0, nil
	}
	return EffectiveThicknessLaminated(t1, t2)
}
