package control_loop

import (
	"fmt"
	"sync"

	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/pid"
)

type controller[E any, F pid.Float] interface {
	Update(err E, dt F)
	Action() E
	IntegralError() E
	Reset()
	String() string
}

type rateController[E any, F pid.Float] interface {
	controller[E, F]
	UpdateRate(err, rate E, dt F)
}

// controlLoop couples a controller with element type E to a plant.
type controlLoop[E any, F pid.Float] struct {
	mu sync.Mutex

	id             string
	controllerType string

	controller controller[E, F]
	// set if the measured plant rate replaces the finite difference
	rateController rateController[E, F]
	plant          plant[E, F]
	gains          gainAccess
	toSample       func(E) pid.Vec3d

	// id of the master loop, guarded by links
	linkedTo   string
	lastSample Sample
}

func (l *controlLoop[E, F]) GetId() string {
	return l.id
}

func (l *controlLoop[E, F]) GetControllerType() string {
	return l.controllerType
}

func (l *controlLoop[E, F]) IsVector() bool {
	switch l.controllerType {
	case configuration.ControllerTypeGatedVector, configuration.ControllerTypeAxis, configuration.ControllerTypeSignResetVector:
		return true
	}
	return false
}

func (l *controlLoop[E, F]) Cycle(dt float64) Sample {
	l.mu.Lock()
	defer l.mu.Unlock()
	links.RLock()
	defer links.RUnlock()

	err := l.plant.Error()
	if l.rateController != nil {
		l.rateController.UpdateRate(err, l.plant.Rate(), F(dt))
	} else {
		l.controller.Update(err, F(dt))
	}
	action := l.controller.Action()
	l.plant.Step(action, F(dt))

	l.lastSample = Sample{
		Error:    l.toSample(err),
		Integral: l.toSample(l.controller.IntegralError()),
		Action:   l.toSample(action),
		Measured: l.toSample(l.plant.Value()),
	}
	return l.lastSample
}

func (l *controlLoop[E, F]) LastSample() Sample {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastSample
}

func (l *controlLoop[E, F]) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.controller.Reset()
	l.plant.Reset()
	l.lastSample = Sample{}
}

func (l *controlLoop[E, F]) GainsNode() string {
	return l.gains.node()
}

func (l *controlLoop[E, F]) Gains() interface{} {
	links.RLock()
	defer links.RUnlock()
	return l.gains.snapshot()
}

func (l *controlLoop[E, F]) SetGains(data []byte) error {
	links.Lock()
	defer links.Unlock()
	err := l.gains.restore(data)
	if err != nil {
		return fmt.Errorf("loop %s: %w", l.id, err)
	}
	return nil
}

func (l *controlLoop[E, F]) Link(master ControlLoop) error {
	own, ok := l.gains.(*piGainAccess)
	if !ok {
		return fmt.Errorf("loop %s: %w", l.id, ErrNotLinkable)
	}
	m, ok := master.(*controlLoop[float32, float32])
	if !ok {
		return fmt.Errorf("loop %s: %w", master.GetId(), ErrNotLinkable)
	}
	masterGains, ok := m.gains.(*piGainAccess)
	if !ok {
		return fmt.Errorf("loop %s: %w", master.GetId(), ErrNotLinkable)
	}

	links.Lock()
	defer links.Unlock()
	err := own.gains.Link(masterGains.gains)
	if err != nil {
		return err
	}
	l.linkedTo = master.GetId()
	return nil
}

func (l *controlLoop[E, F]) Unlink() error {
	own, ok := l.gains.(*piGainAccess)
	if !ok {
		return fmt.Errorf("loop %s: %w", l.id, ErrNotLinkable)
	}

	links.Lock()
	defer links.Unlock()
	own.gains.Unlink()
	l.linkedTo = ""
	return nil
}

func (l *controlLoop[E, F]) LinkedTo() string {
	links.RLock()
	defer links.RUnlock()
	return l.linkedTo
}

func (l *controlLoop[E, F]) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	links.RLock()
	defer links.RUnlock()
	return fmt.Sprintf("Loop %s (%s)\n%s", l.id, l.controllerType, l.controller)
}
