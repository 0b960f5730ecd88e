package control_loop

import "github.com/markusressel/pid2go/internal/pid"

// plant is a simulated first order system x' = gain*action - damping*x
// that is driven towards a fixed set point.
type plant[E any, F pid.Float] interface {
	// Error is the set point minus the current value
	Error() E
	// Rate is the time derivative of Error
	Rate() E
	Step(action E, dt F)
	Value() E
	Reset()
}

type scalarPlant[F pid.Float] struct {
	gain     F
	damping  F
	initial  F
	setPoint F

	value F
	rate  F
}

func newScalarPlant[F pid.Float](gain, damping, initial, setPoint float64) *scalarPlant[F] {
	return &scalarPlant[F]{
		gain:     F(gain),
		damping:  F(damping),
		initial:  F(initial),
		setPoint: F(setPoint),
		value:    F(initial),
	}
}

func (p *scalarPlant[F]) Error() F {
	return p.setPoint - p.value
}

func (p *scalarPlant[F]) Rate() F {
	// the set point is constant
	return -p.rate
}

func (p *scalarPlant[F]) Step(action F, dt F) {
	p.rate = p.gain*action - p.damping*p.value
	p.value += p.rate * dt
}

func (p *scalarPlant[F]) Value() F {
	return p.value
}

func (p *scalarPlant[F]) Reset() {
	p.value = p.initial
	p.rate = 0
}

type vectorPlant[F pid.Float] struct {
	gain     F
	damping  F
	initial  pid.Vec3[F]
	setPoint pid.Vec3[F]

	value pid.Vec3[F]
	rate  pid.Vec3[F]
}

func newVectorPlant[F pid.Float](gain, damping float64, initial, setPoint pid.Vec3d) *vectorPlant[F] {
	return &vectorPlant[F]{
		gain:     F(gain),
		damping:  F(damping),
		initial:  convertVec[F](initial),
		setPoint: convertVec[F](setPoint),
		value:    convertVec[F](initial),
	}
}

func (p *vectorPlant[F]) Error() pid.Vec3[F] {
	return p.setPoint.Sub(p.value)
}

func (p *vectorPlant[F]) Rate() pid.Vec3[F] {
	return p.rate.Scale(-1)
}

func (p *vectorPlant[F]) Step(action pid.Vec3[F], dt F) {
	p.rate = action.Scale(p.gain).Sub(p.value.Scale(p.damping))
	p.value = p.value.Add(p.rate.Scale(dt))
}

func (p *vectorPlant[F]) Value() pid.Vec3[F] {
	return p.value
}

func (p *vectorPlant[F]) Reset() {
	p.value = p.initial
	p.rate = pid.Vec3[F]{}
}

func convertVec[T pid.Float, F pid.Float](v pid.Vec3[F]) pid.Vec3[T] {
	return pid.NewVec3(T(v.X), T(v.Y), T(v.Z))
}

func scalarSample[F pid.Float](v F) pid.Vec3d {
	return pid.Vec3d{X: float64(v)}
}

func vectorSample[F pid.Float](v pid.Vec3[F]) pid.Vec3d {
	return convertVec[float64](v)
}
