package derive

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExternalPressureCoefficients(t *testing.T) {
	tests := []struct {
		name          string
		length, width float64
		leeward       float64
	}{
		{"ratio one", 20, 20, -0.5},
		{"just above one", 20, 20.0001, -0.3},
		{"ratio four", 10, 40, -0.2},
		{"wide", 10, 80, -0.2},
		{"narrow", 40, 10, -0.5},
		{"non-positive length", 0, 10, -0.5},
		{"negative width", 10, -5, -0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cp := ExternalPressureCoefficients(tt.length, tt.width)
			assert.Equal(t, tt.leeward, cp.Leeward)
			assert.Equal(t, 0.8, cp.Windward)
			assert.Equal(t, -0.7, cp.Side)
		})
	}
}

func TestGustFactor(t *testing.T) {
	flexible := GustInput{
		Flexible:  true,
		Height:    100,
		Length:    30,
		Width:     30,
		WindSpeed: 50,
		Frequency: 1.2,
		Damping:   0.02,
		Exposure:  "B",
	}

	t.Run("rigid", func(t *testing.T) {
		rigid := flexible
		rigid.Flexible = false
		assert.Equal(t, 0.85, GustFactor(rigid))
	})

	t.Run("flexible", func(t *testing.T) {
		assert.InDelta(t, 0.8376, GustFactor(flexible), 1e-3)
	})

	t.Run("unknown exposure falls back to B", func(t *testing.T) {
		other := flexible
		other.Exposure = "Z"
		assert.Equal(t, GustFactor(flexible), GustFactor(other))
	})

	t.Run("more damping lowers the factor", func(t *testing.T) {
		damped := flexible
		damped.Damping = 0.05
		assert.Less(t, GustFactor(damped), GustFactor(flexible))
	})

	t.Run("zero wind speed is not finite", func(t *testing.T) {
		still := flexible
		still.WindSpeed = 0
		g := GustFactor(still)
		assert.True(t, math.IsNaN(g) || math.IsInf(g, 0))
	})
}
