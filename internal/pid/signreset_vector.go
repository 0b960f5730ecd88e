package pid

// SignResetVectorPID is the vector analogue of RevertPID. The integral is
// dropped when it points against the error, and the whole integral step is
// reverted when any axis of the output saturates.
type SignResetVectorPID[F Float] struct {
	PIDGains[F]
	state[Vec3[F]]
}

// PIDvd is the double precision SignResetVectorPID.
type PIDvd = SignResetVectorPID[float64]

func NewSignResetVectorPID[F Float]() *SignResetVectorPID[F] {
	return &SignResetVectorPID[F]{}
}

func NewSignResetVectorPIDWithGains[F Float](p, i, d, min, max F) *SignResetVectorPID[F] {
	return &SignResetVectorPID[F]{PIDGains: NewPIDGains(p, i, d, min, max)}
}

// Update advances the controller by dt. An error with a NaN component leaves
// the controller unchanged.
func (c *SignResetVectorPID[F]) Update(err Vec3[F], dt F) {
	if err.IsNaN() {
		return
	}
	if c.lastError.IsZero() {
		c.lastError = err
	}
	if err.Dot(c.integralError) < 0 {
		c.integralError = Vec3[F]{}
	}
	oldIntegral := c.integralError
	c.integralError = c.integralError.Add(err.Scale(dt))
	act := err.Scale(c.P).
		Add(c.integralError.Scale(c.I)).
		Add(err.Sub(c.lastError).Scale(c.D / dt))
	if act.IsZero() {
		c.action = act
	} else {
		c.action = Vec3[F]{
			X: clampOrZero(act.X, c.Min, c.Max),
			Y: clampOrZero(act.Y, c.Min, c.Max),
			Z: clampOrZero(act.Z, c.Min, c.Max),
		}
		// exact comparison: clamping by any amount counts as saturation.
		// NaN components never compare equal, so they revert as well
		if act != c.action {
			c.integralError = oldIntegral
		}
	}
	c.lastError = err
}

func (c *SignResetVectorPID[F]) String() string {
	return c.PIDGains.String() + c.state.String()
}
