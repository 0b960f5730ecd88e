package configuration

import "github.com/markusressel/pid2go/internal/pid"

const (
	ControllerTypePI              = "pi"
	ControllerTypeRevert          = "revert"
	ControllerTypeGated           = "gated"
	ControllerTypeGatedVector     = "gatedVector"
	ControllerTypeAxis            = "axis"
	ControllerTypeSignResetVector = "signResetVector"
)

var ControllerTypes = []string{
	ControllerTypePI,
	ControllerTypeRevert,
	ControllerTypeGated,
	ControllerTypeGatedVector,
	ControllerTypeAxis,
	ControllerTypeSignResetVector,
}

type LoopConfig struct {
	ID string `json:"id"`

	// target of scalar loops
	SetPoint float64 `json:"setPoint"`
	// target of vector loops
	SetPointVector pid.Vec3d `json:"setPointVector"`
	// feed the measured error rate of the plant into the derivative term
	// instead of the finite difference, gated controllers only
	UseMeasuredRate bool `json:"useMeasuredRate"`

	Plant PlantConfig `json:"plant"`

	PI              *PIControllerConfig   `json:"pi,omitempty"`
	Revert          *PIDControllerConfig  `json:"revert,omitempty"`
	Gated           *PIDControllerConfig  `json:"gated,omitempty"`
	GatedVector     *PIDControllerConfig  `json:"gatedVector,omitempty"`
	Axis            *AxisControllerConfig `json:"axis,omitempty"`
	SignResetVector *PIDControllerConfig  `json:"signResetVector,omitempty"`
}

// PlantConfig describes the simulated first order plant x' = gain*action - damping*x
type PlantConfig struct {
	Gain          float64   `json:"gain"`
	Damping       float64   `json:"damping"`
	Initial       float64   `json:"initial"`
	InitialVector pid.Vec3d `json:"initialVector"`
}

type PIControllerConfig struct {
	P float64 `json:"p"`
	I float64 `json:"i"`
	// id of another pi loop whose gains are mirrored
	Link string `json:"link,omitempty"`
}

type PIDControllerConfig struct {
	P   float64 `json:"p"`
	I   float64 `json:"i"`
	D   float64 `json:"d"`
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type AxisControllerConfig struct {
	P   pid.Vec3d `json:"p"`
	I   pid.Vec3d `json:"i"`
	D   pid.Vec3d `json:"d"`
	Min pid.Vec3d `json:"min"`
	Max pid.Vec3d `json:"max"`
}

// ControllerType returns the type of the first controller sub-configuration,
// or an empty string if there is none.
func (c LoopConfig) ControllerType() string {
	switch {
	case c.PI != nil:
		return ControllerTypePI
	case c.Revert != nil:
		return ControllerTypeRevert
	case c.Gated != nil:
		return ControllerTypeGated
	case c.GatedVector != nil:
		return ControllerTypeGatedVector
	case c.Axis != nil:
		return ControllerTypeAxis
	case c.SignResetVector != nil:
		return ControllerTypeSignResetVector
	}
	return ""
}

func (c LoopConfig) subConfigCount() int {
	count := 0
	if c.PI != nil {
		count++
	}
	if c.Revert != nil {
		count++
	}
	if c.Gated != nil {
		count++
	}
	if c.GatedVector != nil {
		count++
	}
	if c.Axis != nil {
		count++
	}
	if c.SignResetVector != nil {
		count++
	}
	return count
}

// IsVector reports whether the loop controls a 3-axis plant.
func (c LoopConfig) IsVector() bool {
	switch c.ControllerType() {
	case ControllerTypeGatedVector, ControllerTypeAxis, ControllerTypeSignResetVector:
		return true
	}
	return false
}
