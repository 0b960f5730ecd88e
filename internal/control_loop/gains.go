package control_loop

import (
	"encoding/json"
	"fmt"

	"github.com/markusressel/pid2go/internal/pid"
)

// gainAccess abstracts over the two gain configurations.
// Callers hold the links lock.
type gainAccess interface {
	node() string
	snapshot() interface{}
	restore(data []byte) error
	String() string
}

type piGainAccess struct {
	gains *pid.PIGains[float32]
}

func (a *piGainAccess) node() string {
	return pid.PINodeName
}

func (a *piGainAccess) snapshot() interface{} {
	return a.gains.Local()
}

func (a *piGainAccess) restore(data []byte) error {
	values := a.gains.Local()
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGains, err)
	}
	a.gains.SetLocal(values)
	return nil
}

func (a *piGainAccess) String() string {
	return a.gains.String()
}

type pidGainAccess[G any] struct {
	gains    *pid.PIDGains[G]
	validate func(gains pid.PIDGains[G]) error
}

func (a *pidGainAccess[G]) node() string {
	return pid.PIDNodeName
}

func (a *pidGainAccess[G]) snapshot() interface{} {
	return *a.gains
}

func (a *pidGainAccess[G]) restore(data []byte) error {
	values := *a.gains
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGains, err)
	}
	if err := a.validate(values); err != nil {
		return err
	}
	a.gains.CopyFrom(values)
	return nil
}

func (a *pidGainAccess[G]) String() string {
	return a.gains.String()
}

func validateScalarBounds[F pid.Float](gains pid.PIDGains[F]) error {
	if gains.Min > gains.Max {
		return fmt.Errorf("%w: min (%g) must not be greater than max (%g)", ErrInvalidGains, gains.Min, gains.Max)
	}
	return nil
}

func validateVectorBounds[F pid.Float](gains pid.PIDGains[pid.Vec3[F]]) error {
	min, max := gains.Min, gains.Max
	if min.X > max.X || min.Y > max.Y || min.Z > max.Z {
		return fmt.Errorf("%w: min %s must not be greater than max %s on any axis", ErrInvalidGains, min, max)
	}
	return nil
}
