package pid

import "fmt"

// PIController is the plain PI controller: no clamping, no anti-windup and
// no NaN guard. It is meant for error signals that are bounded already.
type PIController[F Float] struct {
	Gains *PIGains[F]

	integralError F
	action        F
}

// PIf is the single precision PI controller.
type PIf = PIController[float32]

// NewPIController creates a PI controller with default gains.
func NewPIController[F Float]() *PIController[F] {
	return &PIController[F]{Gains: NewPIGains[F]()}
}

func NewPIControllerWithGains[F Float](p, i F) *PIController[F] {
	return &PIController[F]{Gains: NewPIGainsWithValues(p, i)}
}

// Update integrates err over dt and recomputes the action.
func (c *PIController[F]) Update(err, dt F) {
	c.integralError += err * dt
	c.action = err*c.Gains.P() + c.integralError*c.Gains.I()
}

func (c *PIController[F]) Action() F {
	return c.action
}

func (c *PIController[F]) IntegralError() F {
	return c.integralError
}

func (c *PIController[F]) Reset() {
	c.integralError = 0
	c.action = 0
}

func (c *PIController[F]) String() string {
	return fmt.Sprintf("%s\nIntegral Error: %v\nAction:         %v\n", c.Gains, c.integralError, c.action)
}
