package control_loop

import (
	"errors"
	"fmt"
	"sync"

	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/pid"
	cmap "github.com/orcaman/concurrent-map/v2"
	"golang.org/x/exp/slices"
)

var (
	LoopMap = cmap.New[ControlLoop]()

	ErrLoopNotFound          = errors.New("loop not found")
	ErrUnknownControllerType = errors.New("unknown controller type")
	ErrNotLinkable           = errors.New("only pi loops can be linked")
	ErrInvalidGains          = errors.New("invalid gains")

	// guards every read and write of controller gains, since a linked
	// loop reads the gains of its master
	links sync.RWMutex
)

// Sample is the state of a loop after a single cycle.
// Scalar loops only use the X component.
type Sample struct {
	Error    pid.Vec3d `json:"error"`
	Integral pid.Vec3d `json:"integral"`
	Action   pid.Vec3d `json:"action"`
	Measured pid.Vec3d `json:"measured"`
}

// ControlLoop drives one controller against its simulated plant.
type ControlLoop interface {
	GetId() string
	GetControllerType() string
	IsVector() bool

	// Cycle feeds the current plant error into the controller,
	// applies the resulting action to the plant for dt seconds
	// and returns the new state.
	Cycle(dt float64) Sample
	LastSample() Sample

	// Reset clears the transient controller state and restores the plant
	// to its initial value. Gains are kept.
	Reset()

	// GainsNode is the persistence bucket of the gains of this loop
	GainsNode() string
	// Gains returns a copy of the locally stored gains
	Gains() interface{}
	// SetGains merges the given JSON encoded gains into the current ones
	SetGains(data []byte) error

	Link(master ControlLoop) error
	Unlink() error
	// LinkedTo returns the id of the master loop, or an empty string
	LinkedTo() string

	String() string
}

func RegisterLoop(loop ControlLoop) {
	LoopMap.Set(loop.GetId(), loop)
}

func GetLoop(id string) (ControlLoop, error) {
	loop, ok := LoopMap.Get(id)
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrLoopNotFound)
	}
	return loop, nil
}

// GetLoops returns all registered loops ordered by id
func GetLoops() []ControlLoop {
	ids := LoopMap.Keys()
	slices.Sort(ids)

	result := make([]ControlLoop, 0, len(ids))
	for _, id := range ids {
		if loop, ok := LoopMap.Get(id); ok {
			result = append(result, loop)
		}
	}
	return result
}

// CreateLoops creates and registers a loop for each of the given
// configurations and resolves the gain links between them.
func CreateLoops(configs []configuration.LoopConfig) ([]ControlLoop, error) {
	var result []ControlLoop
	for _, config := range configs {
		loop, err := NewControlLoop(config)
		if err != nil {
			return nil, err
		}
		RegisterLoop(loop)
		result = append(result, loop)
	}

	for _, config := range configs {
		if config.PI == nil || len(config.PI.Link) <= 0 {
			continue
		}
		slave, err := GetLoop(config.ID)
		if err != nil {
			return nil, err
		}
		master, err := GetLoop(config.PI.Link)
		if err != nil {
			return nil, err
		}
		err = slave.Link(master)
		if err != nil {
			return nil, fmt.Errorf("loop %s: %w", config.ID, err)
		}
	}

	return result, nil
}
