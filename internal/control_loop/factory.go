package control_loop

import (
	"fmt"

	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/pid"
)

// NewControlLoop creates the controller and the simulated plant
// described by the given configuration. Gain links are not resolved.
func NewControlLoop(config configuration.LoopConfig) (ControlLoop, error) {
	switch config.ControllerType() {
	case configuration.ControllerTypePI:
		c := pid.NewPIControllerWithGains(float32(config.PI.P), float32(config.PI.I))
		return newScalarLoop(config, c, nil, &piGainAccess{gains: c.Gains}), nil

	case configuration.ControllerTypeRevert:
		g := config.Revert
		c := pid.NewRevertPIDWithGains(float32(g.P), float32(g.I), float32(g.D), float32(g.Min), float32(g.Max))
		return newScalarLoop(config, c, nil, scalarGains(&c.PIDGains)), nil

	case configuration.ControllerTypeGated:
		g := config.Gated
		c := pid.NewGatedPIDWithGains(float32(g.P), float32(g.I), float32(g.D), float32(g.Min), float32(g.Max))
		var rc rateController[float32, float32]
		if config.UseMeasuredRate {
			rc = c
		}
		return newScalarLoop(config, c, rc, scalarGains(&c.PIDGains)), nil

	case configuration.ControllerTypeGatedVector:
		g := config.GatedVector
		c := pid.NewGatedVectorPIDWithGains(float32(g.P), float32(g.I), float32(g.D), float32(g.Min), float32(g.Max))
		var rc rateController[pid.Vec3f, float32]
		if config.UseMeasuredRate {
			rc = c
		}
		return newVectorLoop[float32](config, c, rc, scalarGains(&c.PIDGains)), nil

	case configuration.ControllerTypeAxis:
		g := config.Axis
		c := pid.NewAxisPIDWithGains(
			convertVec[float32](g.P),
			convertVec[float32](g.I),
			convertVec[float32](g.D),
			convertVec[float32](g.Min),
			convertVec[float32](g.Max),
		)
		var rc rateController[pid.Vec3f, float32]
		if config.UseMeasuredRate {
			rc = c
		}
		gains := &pidGainAccess[pid.Vec3f]{gains: &c.PIDGains, validate: validateVectorBounds[float32]}
		return newVectorLoop[float32](config, c, rc, gains), nil

	case configuration.ControllerTypeSignResetVector:
		g := config.SignResetVector
		c := pid.NewSignResetVectorPIDWithGains(g.P, g.I, g.D, g.Min, g.Max)
		return newVectorLoop[float64](config, c, nil, scalarGains(&c.PIDGains)), nil
	}

	return nil, fmt.Errorf("loop %s: %w", config.ID, ErrUnknownControllerType)
}

func scalarGains[F pid.Float](gains *pid.PIDGains[F]) *pidGainAccess[F] {
	return &pidGainAccess[F]{gains: gains, validate: validateScalarBounds[F]}
}

func newScalarLoop(
	config configuration.LoopConfig,
	c controller[float32, float32],
	rc rateController[float32, float32],
	gains gainAccess,
) *controlLoop[float32, float32] {
	return &controlLoop[float32, float32]{
		id:             config.ID,
		controllerType: config.ControllerType(),
		controller:     c,
		rateController: rc,
		plant:          newScalarPlant[float32](config.Plant.Gain, config.Plant.Damping, config.Plant.Initial, config.SetPoint),
		gains:          gains,
		toSample:       scalarSample[float32],
	}
}

func newVectorLoop[F pid.Float](
	config configuration.LoopConfig,
	c controller[pid.Vec3[F], F],
	rc rateController[pid.Vec3[F], F],
	gains gainAccess,
) *controlLoop[pid.Vec3[F], F] {
	return &controlLoop[pid.Vec3[F], F]{
		id:             config.ID,
		controllerType: config.ControllerType(),
		controller:     c,
		rateController: rc,
		plant:          newVectorPlant[F](config.Plant.Gain, config.Plant.Damping, config.Plant.InitialVector, config.SetPointVector),
		gains:          gains,
		toSample:       vectorSample[F],
	}
}
