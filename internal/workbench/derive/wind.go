package derive

import "math"

// Fixed external pressure coefficients.
const (
	WindwardCp = 0.8
	SideCp     = -0.7

	// RigidGustFactor applies to every rigid building.
	RigidGustFactor = 0.85
)

// PressureCoefficients are the external pressure coefficients of a
// building's walls.
type PressureCoefficients struct {
	Windward float64
	Leeward  float64
	Side     float64
}

// ExternalPressureCoefficients picks the leeward coefficient from the plan
// aspect ratio width/length. Non-positive dimensions fall back to -0.5.
func ExternalPressureCoefficients(bLength, bWidth float64) PressureCoefficients {
	cp := PressureCoefficients{Windward: WindwardCp, Leeward: -0.5, Side: SideCp}
	if !(bLength > 0) || !(bWidth > 0) {
		return cp
	}
	ratio := bWidth / bLength
	switch {
	case ratio <= 1:
		cp.Leeward = -0.5
	case ratio < 4:
		cp.Leeward = -0.3
	default:
		cp.Leeward = -0.2
	}
	return cp
}

type exposure struct {
	alpha float64
	b     float64
	c     float64
}

var exposures = map[string]exposure{
	"A": {alpha: 0.25, b: 0.45, c: 0.30},
	"B": {alpha: 0.20, b: 0.35, c: 0.25},
	"C": {alpha: 0.15, b: 0.25, c: 0.20},
}

// GustInput carries the building data for the gust factor. Dimensions are
// in metres, wind speed in m/s, frequency in Hz.
type GustInput struct {
	Flexible  bool
	Height    float64
	Length    float64
	Width     float64
	WindSpeed float64
	Frequency float64
	Damping   float64
	Exposure  string
}

const (
	minHeight       = 9.14
	integralScale   = 97.54
	integralExpo    = 0.333
	peakBackground  = 3.4
	peakTurbulence  = 3.4
	secondsPerHour  = 3600.0
	gustCalibration = 0.925
)

// GustFactor returns 0.85 for rigid buildings and the ASCE 7 flexible
// building gust effect factor otherwise. Unknown exposure categories are
// treated as B. Inputs outside the procedure's domain yield NaN.
func GustFactor(in GustInput) float64 {
	if !in.Flexible {
		return RigidGustFactor
	}
	exp, ok := exposures[in.Exposure]
	if !ok {
		exp = exposures["B"]
	}
	f := in.Frequency

	z := math.Max(0.6*in.Height, minHeight)
	iz := exp.c * math.Pow(10/z, 1.0/6)
	lz := integralScale * math.Pow(z/10, integralExpo)

	q := math.Sqrt(1 / (1 + 0.63*math.Pow((in.Width+in.Height)/lz, 0.63)))

	logTerm := math.Log(secondsPerHour * f)
	gR := math.Sqrt(2*logTerm) + 0.577/math.Sqrt(2*logTerm)

	vz := exp.b * math.Pow(z/10, exp.alpha) * in.WindSpeed
	n1 := f * lz / vz
	rn := 7.47 * n1 / math.Pow(1+10.3*n1, 5.0/3)

	rh := aeroelastic(4.6 * f * in.Height / vz)
	rb := aeroelastic(4.6 * f * in.Width / vz)
	rl := aeroelastic(15.4 * f * in.Length / vz)

	r := math.Sqrt((1 / in.Damping) * rn * rh * rb * (0.53 + 0.47*rl))

	num := 1 + 1.7*iz*math.Sqrt(math.Pow(peakBackground*q, 2)+math.Pow(gR*r, 2))
	return gustCalibration * num / (1 + 1.7*peakTurbulence*iz)
}

func aeroelastic(eta float64) float64 {
	return 1/eta - (1/(2*eta*eta))*(1-math.Exp(-2*eta))
}
