package pid

// RevertPID is a scalar PID controller with clamp-and-revert anti-windup:
// whenever the output saturates, the integral step of that update is undone.
// The integral is also dropped when the error changes its sign relative to it.
type RevertPID[F Float] struct {
	PIDGains[F]
	state[F]
}

// PIDf is the single precision RevertPID.
type PIDf = RevertPID[float32]

func NewRevertPID[F Float]() *RevertPID[F] {
	return &RevertPID[F]{}
}

func NewRevertPIDWithGains[F Float](p, i, d, min, max F) *RevertPID[F] {
	return &RevertPID[F]{PIDGains: NewPIDGains(p, i, d, min, max)}
}

// Update advances the controller by dt. A NaN error leaves the controller
// unchanged.
func (c *RevertPID[F]) Update(err, dt F) {
	if isNaN(err) {
		return
	}
	if c.lastError == 0 {
		c.lastError = err
	}
	if c.integralError*err < 0 {
		c.integralError = 0
	}
	oldIntegral := c.integralError
	c.integralError += err * dt
	act := c.P*err + c.I*c.integralError + c.D*(err-c.lastError)/dt
	if isNaN(act) {
		c.action = 0
		c.integralError = oldIntegral
	} else {
		c.action = clamp(act, c.Min, c.Max)
		if abs(act-c.action) > saturationEpsilon {
			c.integralError = oldIntegral
		}
	}
	c.lastError = err
}

func (c *RevertPID[F]) String() string {
	return c.PIDGains.String() + c.state.String()
}
