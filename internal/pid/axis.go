package pid

// AxisPID is the derivative-gated vector controller with independent gains
// and bounds for each axis. The integral is kept within [Min, Max] per axis.
type AxisPID[F Float] struct {
	PIDGains[Vec3[F]]
	state[Vec3[F]]
}

// PIDv3 is the single precision AxisPID.
type PIDv3 = AxisPID[float32]

func NewAxisPID[F Float]() *AxisPID[F] {
	return &AxisPID[F]{}
}

func NewAxisPIDWithGains[F Float](p, i, d, min, max Vec3[F]) *AxisPID[F] {
	return &AxisPID[F]{PIDGains: NewPIDGains(p, i, d, min, max)}
}

// Update advances the controller by dt, estimating the error rate from the
// previous error.
func (c *AxisPID[F]) Update(err Vec3[F], dt F) {
	if err.IsNaN() {
		return
	}
	c.seed(err)
	c.update(err, err.Sub(c.lastError).Scale(1/dt), dt)
}

// UpdateRate advances the controller by dt using the measured error rate.
func (c *AxisPID[F]) UpdateRate(err, rate Vec3[F], dt F) {
	if err.IsNaN() {
		return
	}
	c.seed(err)
	c.update(err, rate, dt)
}

func (c *AxisPID[F]) seed(err Vec3[F]) {
	if c.lastError.IsZero() {
		c.lastError = err
	}
}

func (c *AxisPID[F]) update(err, rate Vec3[F], dt F) {
	derivative := rate.Mul(c.D)
	increment := err.Mul(c.I).Scale(dt)
	c.integralError = Vec3[F]{
		X: gate(c.integralError.X, increment.X, derivative.X, c.Max.X),
		Y: gate(c.integralError.Y, increment.Y, derivative.Y, c.Max.Y),
		Z: gate(c.integralError.Z, increment.Z, derivative.Z, c.Max.Z),
	}.ClampComponents(c.Min, c.Max)
	act := err.Mul(c.P).Add(c.integralError).Add(derivative)
	c.action = Vec3[F]{
		X: clampOrZero(act.X, c.Min.X, c.Max.X),
		Y: clampOrZero(act.Y, c.Min.Y, c.Max.Y),
		Z: clampOrZero(act.Z, c.Min.Z, c.Max.Z),
	}
	c.lastError = err
}

func (c *AxisPID[F]) String() string {
	return c.PIDGains.String() + c.state.String()
}
