package pid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGatedPID_IntegratesWhileDerivativeIsSmall(t *testing.T) {
	// GIVEN
	c := NewGatedPIDWithGains[float64](0, 1, 1, -10, 10)

	// WHEN
	c.UpdateRate(1, 0, dt)

	// THEN
	assert.InDelta(t, 0.1, c.IntegralError(), 1e-9)
	assert.InDelta(t, 0.1, c.Action(), 1e-9)
}

func TestGatedPID_DecaysWhileDerivativeIsLarge(t *testing.T) {
	// GIVEN
	c := NewGatedPIDWithGains[float64](0, 1, 1, -10, 10)
	c.UpdateRate(1, 0, dt)

	// WHEN
	c.UpdateRate(1, 7, dt)

	// THEN
	assert.InDelta(t, 0.09, c.IntegralError(), 1e-9)
	assert.InDelta(t, 7.09, c.Action(), 1e-9)
}

func TestGatedPID_FiniteDifferenceWithoutRate(t *testing.T) {
	// GIVEN
	c := NewGatedPIDWithGains[float64](0, 0, 1, -10, 10)
	c.Update(1, dt)

	// WHEN
	c.Update(1.2, dt)

	// THEN
	assert.InDelta(t, 2.0, c.Action(), 1e-9)
}

func TestGatedPID_NaNRateFallsBackToFiniteDifference(t *testing.T) {
	// GIVEN
	c := NewGatedPIDWithGains[float64](0, 0, 1, -10, 10)
	c.Update(1, dt)

	// WHEN
	c.UpdateRate(1.2, math.NaN(), dt)

	// THEN
	assert.InDelta(t, 2.0, c.Action(), 1e-9)
}

func TestGatedPID_IntegralClamped(t *testing.T) {
	// GIVEN
	c := NewGatedPIDWithGains[float64](0, 100, 0, -1, 1)

	// WHEN
	c.Update(1, dt)

	// THEN
	assert.Equal(t, 1.0, c.IntegralError())
	assert.Equal(t, 1.0, c.Action())

	// WHEN
	c.Update(-5, dt)

	// THEN
	assert.Equal(t, -1.0, c.IntegralError())
	assert.Equal(t, -1.0, c.Action())
}

func TestGatedPID_NaNActionForcedToZero(t *testing.T) {
	// GIVEN
	c := NewGatedPIDWithGains[float64](1, 1, 1, -10, 10)

	// WHEN
	c.Update(1, 0)

	// THEN
	assert.Equal(t, 0.0, c.Action())
}

func TestPIDf2_Alias(t *testing.T) {
	// GIVEN
	var c PIDf2
	c.PIDGains = NewPIDGains[float32](2, 0, 0, -1, 1)

	// WHEN
	c.Update(0.25, dt)

	// THEN
	assert.Equal(t, float32(0.5), c.Action())
}
