package pid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGatedVectorPID_IntegralMagnitudeClamped(t *testing.T) {
	// GIVEN
	c := NewGatedVectorPIDWithGains[float64](0, 100, 0, -10, 1)

	// WHEN
	c.Update(NewVec3(1.0, 1.0, 0.0), dt)

	// THEN
	integral := c.IntegralError()
	assert.InDelta(t, 1.0, integral.Magnitude(), 1e-9)
	assert.InDelta(t, math.Sqrt2/2, integral.X, 1e-9)
	assert.InDelta(t, math.Sqrt2/2, integral.Y, 1e-9)
	assert.Equal(t, 0.0, integral.Z)
	assert.InDelta(t, math.Sqrt2/2, c.Action().X, 1e-9)
}

func TestGatedVectorPID_AxesGatedIndependently(t *testing.T) {
	// GIVEN
	c := NewGatedVectorPIDWithGains[float64](0, 1, 1, -10, 10)
	c.UpdateRate(Splat(1.0), Vec3d{}, dt)

	// WHEN
	c.UpdateRate(Splat(1.0), NewVec3(0.0, 7.0, 0.0), dt)

	// THEN
	integral := c.IntegralError()
	assert.InDelta(t, 0.2, integral.X, 1e-9)
	assert.InDelta(t, 0.09, integral.Y, 1e-9)
	assert.InDelta(t, 0.2, integral.Z, 1e-9)
	assert.InDelta(t, 7.09, c.Action().Y, 1e-9)
}

func TestGatedVectorPID_ActionBoxClamped(t *testing.T) {
	// GIVEN
	c := NewGatedVectorPIDWithGains[float64](1, 0, 0, -1, 2)

	// WHEN
	c.Update(NewVec3(5.0, -5.0, 0.5), dt)

	// THEN
	assert.Equal(t, NewVec3(2.0, -1.0, 0.5), c.Action())
}

func TestGatedVectorPID_NaNAxisForcedToZero(t *testing.T) {
	// GIVEN
	c := NewGatedVectorPIDWithGains[float64](1, 0, 1, -10, 10)

	// WHEN
	c.UpdateRate(NewVec3(1.0, 2.0, 3.0), NewVec3(math.NaN(), 0, 0), dt)

	// THEN
	assert.Equal(t, NewVec3(0.0, 2.0, 3.0), c.Action())
}

func TestPIDv2_Alias(t *testing.T) {
	// GIVEN
	var c PIDv2
	c.PIDGains = NewPIDGains[float32](1, 0, 0, -1, 1)

	// WHEN
	c.Update(NewVec3[float32](0.5, -0.25, 3), dt)

	// THEN
	assert.Equal(t, NewVec3[float32](0.5, -0.25, 1), c.Action())
}
