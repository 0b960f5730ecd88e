package configuration

import (
	"fmt"
	"strings"

	"github.com/looplab/tarjan"
	"github.com/markusressel/pid2go/internal/ui"
	"golang.org/x/exp/slices"
)

func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	if config.TickRate <= 0 {
		return fmt.Errorf("tickRate must be positive, got %s", config.TickRate)
	}
	if config.ActionWindowSize <= 0 {
		return fmt.Errorf("actionWindowSize must be positive, got %d", config.ActionWindowSize)
	}
	if err := validateLoops(config); err != nil {
		return err
	}
	return validateLinks(config)
}

func validateLoops(config *Configuration) error {
	var seenIds []string
	for _, loopConfig := range config.Loops {
		if len(loopConfig.ID) <= 0 {
			return fmt.Errorf("loop without id detected")
		}
		if slices.Contains(seenIds, loopConfig.ID) {
			return fmt.Errorf("duplicate loop id detected: %s", loopConfig.ID)
		}
		seenIds = append(seenIds, loopConfig.ID)

		subConfigs := loopConfig.subConfigCount()
		if subConfigs > 1 {
			return fmt.Errorf("loop %s: only one controller type can be used per loop definition block", loopConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("loop %s: controller sub-configuration is missing, use one of: %s", loopConfig.ID, strings.Join(ControllerTypes, " | "))
		}

		if loopConfig.Plant.Gain == 0 {
			return fmt.Errorf("loop %s: plant gain must not be zero", loopConfig.ID)
		}
		if loopConfig.Plant.Damping < 0 {
			return fmt.Errorf("loop %s: plant damping must not be negative", loopConfig.ID)
		}

		if err := validateGains(loopConfig); err != nil {
			return fmt.Errorf("loop %s: %w", loopConfig.ID, err)
		}

		if loopConfig.UseMeasuredRate {
			switch loopConfig.ControllerType() {
			case ControllerTypeGated, ControllerTypeGatedVector, ControllerTypeAxis:
			default:
				ui.Warning("Loop %s: useMeasuredRate has no effect on %s controllers", loopConfig.ID, loopConfig.ControllerType())
			}
		}
	}

	return nil
}

func validateGains(loopConfig LoopConfig) error {
	if c := loopConfig.PI; c != nil {
		if c.P == 0 && c.I == 0 && len(c.Link) <= 0 {
			return fmt.Errorf("all PI constants are zero")
		}
		return nil
	}

	for _, c := range []*PIDControllerConfig{loopConfig.Revert, loopConfig.Gated, loopConfig.GatedVector, loopConfig.SignResetVector} {
		if c == nil {
			continue
		}
		if c.P == 0 && c.I == 0 && c.D == 0 {
			return fmt.Errorf("all PID constants are zero")
		}
		if c.Min > c.Max {
			return fmt.Errorf("min (%g) must not be greater than max (%g)", c.Min, c.Max)
		}
	}

	if c := loopConfig.Axis; c != nil {
		if c.P.IsZero() && c.I.IsZero() && c.D.IsZero() {
			return fmt.Errorf("all PID constants are zero")
		}
		if c.Min.X > c.Max.X || c.Min.Y > c.Max.Y || c.Min.Z > c.Max.Z {
			return fmt.Errorf("min %s must not be greater than max %s on any axis", c.Min, c.Max)
		}
	}

	return nil
}

// validateLinks checks that every gain link points to another pi loop and
// that links do not form a cycle.
func validateLinks(config *Configuration) error {
	var piLoopIds []string
	for _, loopConfig := range config.Loops {
		if loopConfig.PI != nil {
			piLoopIds = append(piLoopIds, loopConfig.ID)
		}
	}

	graph := make(map[interface{}][]interface{})
	for _, loopConfig := range config.Loops {
		if loopConfig.PI == nil || len(loopConfig.PI.Link) <= 0 {
			continue
		}
		link := loopConfig.PI.Link
		if link == loopConfig.ID {
			return fmt.Errorf("loop %s: a loop cannot link to itself", loopConfig.ID)
		}
		if !slices.Contains(piLoopIds, link) {
			return fmt.Errorf("loop %s: no pi loop with id '%s' found", loopConfig.ID, link)
		}
		graph[loopConfig.ID] = []interface{}{link}
	}

	for _, items := range tarjan.Connections(graph) {
		if len(items) > 1 {
			return fmt.Errorf("you have created a gain link cycle: %v", items)
		}
	}

	return nil
}
