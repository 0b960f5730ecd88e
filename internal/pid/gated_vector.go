package pid

// GatedVectorPID applies the derivative-gated algorithm of GatedPID to each
// axis of a Vec3, sharing scalar gains between the axes. After integration
// the integral vector is limited to a magnitude of Max.
type GatedVectorPID[F Float] struct {
	PIDGains[F]
	state[Vec3[F]]
}

// PIDv2 is the single precision GatedVectorPID.
type PIDv2 = GatedVectorPID[float32]

func NewGatedVectorPID[F Float]() *GatedVectorPID[F] {
	return &GatedVectorPID[F]{}
}

func NewGatedVectorPIDWithGains[F Float](p, i, d, min, max F) *GatedVectorPID[F] {
	return &GatedVectorPID[F]{PIDGains: NewPIDGains(p, i, d, min, max)}
}

// Update advances the controller by dt, estimating the error rate from the
// previous error.
func (c *GatedVectorPID[F]) Update(err Vec3[F], dt F) {
	if err.IsNaN() {
		return
	}
	c.seed(err)
	c.update(err, err.Sub(c.lastError).Scale(1/dt), dt)
}

// UpdateRate advances the controller by dt using the measured error rate,
// e.g. the angular velocity.
func (c *GatedVectorPID[F]) UpdateRate(err, rate Vec3[F], dt F) {
	if err.IsNaN() {
		return
	}
	c.seed(err)
	c.update(err, rate, dt)
}

func (c *GatedVectorPID[F]) seed(err Vec3[F]) {
	if c.lastError.IsZero() {
		c.lastError = err
	}
}

func (c *GatedVectorPID[F]) update(err, rate Vec3[F], dt F) {
	derivative := rate.Scale(c.D)
	increment := err.Scale(c.I * dt)
	c.integralError = Vec3[F]{
		X: gate(c.integralError.X, increment.X, derivative.X, c.Max),
		Y: gate(c.integralError.Y, increment.Y, derivative.Y, c.Max),
		Z: gate(c.integralError.Z, increment.Z, derivative.Z, c.Max),
	}.ClampMagnitude(c.Max)
	act := err.Scale(c.P).Add(c.integralError).Add(derivative)
	c.action = Vec3[F]{
		X: clampOrZero(act.X, c.Min, c.Max),
		Y: clampOrZero(act.Y, c.Min, c.Max),
		Z: clampOrZero(act.Z, c.Min, c.Max),
	}
	c.lastError = err
}

func (c *GatedVectorPID[F]) String() string {
	return c.PIDGains.String() + c.state.String()
}
