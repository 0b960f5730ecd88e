package pid

// GatedPID is a scalar PID controller with derivative-gated integration.
//
// The error is integrated (scaled by I) only while the derivative term stays
// below 60% of Max, otherwise the integral decays by 10% per update. The
// integral itself is kept within [Min, Max].
type GatedPID[F Float] struct {
	PIDGains[F]
	state[F]
}

// PIDf2 is the single precision GatedPID.
type PIDf2 = GatedPID[float32]

func NewGatedPID[F Float]() *GatedPID[F] {
	return &GatedPID[F]{}
}

func NewGatedPIDWithGains[F Float](p, i, d, min, max F) *GatedPID[F] {
	return &GatedPID[F]{PIDGains: NewPIDGains(p, i, d, min, max)}
}

// Update advances the controller by dt, estimating the error rate from the
// previous error.
func (c *GatedPID[F]) Update(err, dt F) {
	c.UpdateRate(err, F(nan()), dt)
}

// UpdateRate advances the controller by dt using a measured error rate for
// the derivative term. A NaN rate falls back to the finite difference.
func (c *GatedPID[F]) UpdateRate(err, rate, dt F) {
	if isNaN(err) {
		return
	}
	if c.lastError == 0 {
		c.lastError = err
	}
	if isNaN(rate) {
		rate = (err - c.lastError) / dt
	}
	derivative := c.D * rate
	c.integralError = clamp(gate(c.integralError, err*c.I*dt, derivative, c.Max), c.Min, c.Max)
	act := err*c.P + c.integralError + derivative
	c.action = clampOrZero(act, c.Min, c.Max)
	c.lastError = err
}

func (c *GatedPID[F]) String() string {
	return c.PIDGains.String() + c.state.String()
}
