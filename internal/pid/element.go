package pid

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Float is the scalar element type of every controller.
type Float interface {
	constraints.Float
}

// saturationEpsilon is the minimum difference between the unclamped and the clamped
// action that counts as saturation.
const saturationEpsilon = 1e-5

const (
	// derivativeGateRatio is the share of Max the derivative term may reach
	// before integration is suspended.
	derivativeGateRatio = 0.6
	// integralDecay is applied to the integral while integration is suspended.
	integralDecay = 0.9
)

func isNaN[F Float](v F) bool {
	return v != v
}

func abs[F Float](v F) F {
	if v < 0 {
		return -v
	}
	return v
}

// clamp coerces v into [min, max]. NaN is passed through.
func clamp[F Float](v, min, max F) F {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clampOrZero behaves like clamp but maps NaN to zero.
func clampOrZero[F Float](v, min, max F) F {
	if isNaN(v) {
		return 0
	}
	return clamp(v, min, max)
}

// gate integrates value*dt while |derivative| stays below the gate threshold,
// otherwise it decays the integral.
func gate[F Float](integral, increment, derivative, max F) F {
	if abs(derivative) < derivativeGateRatio*max {
		return integral + increment
	}
	return integralDecay * integral
}

func sqrt[F Float](v F) F {
	return F(math.Sqrt(float64(v)))
}

func nan() float64 {
	return math.NaN()
}
