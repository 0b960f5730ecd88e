package pid

import (
	"errors"
	"fmt"
)

const (
	// PINodeName is the persistence node of the PI controller family.
	PINodeName = "PICONTROLLER"
	// PIDNodeName is the persistence node of the PID controller family.
	PIDNodeName = "PIDCONTROLLER"

	defaultP = 0.5
	defaultI = 0.5
)

// ErrLinkCycle is returned by PIGains.Link if following the master chain
// would lead back to the linked gains.
var ErrLinkCycle = errors.New("gain link would create a cycle")

// PIValues is the persisted form of PIGains.
type PIValues[F Float] struct {
	P F `json:"p" yaml:"p"`
	I F `json:"i" yaml:"i"`
}

// PIGains holds the proportional and integral gain of a PI controller.
//
// The gains can be linked to a master: while linked, P and I are read from
// the master, but setters keep writing the local values, which are used
// again (and persisted) once the link is removed.
type PIGains[F Float] struct {
	p F
	i F

	// not owned
	master *PIGains[F]
}

// NewPIGains creates gains with the default values.
func NewPIGains[F Float]() *PIGains[F] {
	return &PIGains[F]{p: defaultP, i: defaultI}
}

func NewPIGainsWithValues[F Float](p, i F) *PIGains[F] {
	return &PIGains[F]{p: p, i: i}
}

func (g *PIGains[F]) P() F {
	if g.master != nil {
		return g.master.P()
	}
	return g.p
}

func (g *PIGains[F]) I() F {
	if g.master != nil {
		return g.master.I()
	}
	return g.i
}

func (g *PIGains[F]) SetP(p F) {
	g.p = p
}

func (g *PIGains[F]) SetI(i F) {
	g.i = i
}

// Link makes g mirror the gains of master.
func (g *PIGains[F]) Link(master *PIGains[F]) error {
	for m := master; m != nil; m = m.master {
		if m == g {
			return ErrLinkCycle
		}
	}
	g.master = master
	return nil
}

func (g *PIGains[F]) Unlink() {
	g.master = nil
}

func (g *PIGains[F]) IsLinked() bool {
	return g.master != nil
}

// CopyFrom stores the effective gains of other as the local values of g.
func (g *PIGains[F]) CopyFrom(other *PIGains[F]) {
	g.p = other.P()
	g.i = other.I()
}

// Local returns the locally stored values, ignoring any link.
func (g *PIGains[F]) Local() PIValues[F] {
	return PIValues[F]{P: g.p, I: g.i}
}

// SetLocal overwrites the locally stored values.
func (g *PIGains[F]) SetLocal(values PIValues[F]) {
	g.p = values.P
	g.i = values.I
}

func (g *PIGains[F]) String() string {
	return fmt.Sprintf("[P=%v, I=%v]", g.P(), g.I())
}

// PIDGains is the configuration of a PID controller. T is either a scalar
// or a Vec3, depending on the controller.
type PIDGains[T any] struct {
	P   T `json:"p" yaml:"p"`
	I   T `json:"i" yaml:"i"`
	D   T `json:"d" yaml:"d"`
	Min T `json:"min" yaml:"min"`
	Max T `json:"max" yaml:"max"`
}

func NewPIDGains[T any](p, i, d, min, max T) PIDGains[T] {
	return PIDGains[T]{P: p, I: i, D: d, Min: min, Max: max}
}

func (g *PIDGains[T]) CopyFrom(other PIDGains[T]) {
	*g = other
}

func (g PIDGains[T]) String() string {
	return fmt.Sprintf("[P=%v, I=%v, D=%v, Min=%v, Max=%v]", g.P, g.I, g.D, g.Min, g.Max)
}
