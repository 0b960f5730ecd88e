package controller

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/markusressel/pid2go/internal/control_loop"
	"github.com/markusressel/pid2go/internal/persistence"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/markusressel/pid2go/internal/util"
)

type LoopController interface {
	GetId() string
	GetLoop() control_loop.ControlLoop

	// Run ticks the loop at the configured rate until ctx is done
	Run(ctx context.Context) error

	// Tick cycles the loop once with the time elapsed since the last tick.
	// Returns false if no time has passed.
	Tick(now time.Time) (control_loop.Sample, bool)

	GetStatistics() LoopControllerStatistics
}

type LoopControllerStatistics struct {
	Cycles        uint64
	SkippedCycles uint64
	// average and maximum action magnitude of the recent cycles
	ActionAvg float64
	ActionMax float64
}

type loopController struct {
	loop     control_loop.ControlLoop
	tickRate time.Duration

	mu            sync.Mutex
	lastTick      time.Time
	actionWindow  *rolling.PointPolicy
	cycles        uint64
	skippedCycles uint64
}

func NewLoopController(loop control_loop.ControlLoop, tickRate time.Duration, windowSize int) LoopController {
	return &loopController{
		loop:         loop,
		tickRate:     tickRate,
		lastTick:     time.Now(),
		actionWindow: util.CreateRollingWindow(windowSize),
	}
}

func (c *loopController) GetId() string {
	return c.loop.GetId()
}

func (c *loopController) GetLoop() control_loop.ControlLoop {
	return c.loop
}

func (c *loopController) Run(ctx context.Context) error {
	ui.Info("Starting control loop '%s' (%s)", c.loop.GetId(), c.loop.GetControllerType())

	c.mu.Lock()
	c.lastTick = time.Now()
	c.mu.Unlock()

	ticker := time.NewTicker(c.tickRate)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			ui.Info("Stopping control loop '%s'", c.loop.GetId())
			return nil
		case now := <-ticker.C:
			c.Tick(now)
		}
	}
}

func (c *loopController) Tick(now time.Time) (control_loop.Sample, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	dt := now.Sub(c.lastTick).Seconds()
	if dt <= 0 {
		c.skippedCycles++
		ui.Debug("Skipping cycle of loop '%s', elapsed time is %v", c.loop.GetId(), dt)
		return control_loop.Sample{}, false
	}
	c.lastTick = now

	sample := c.loop.Cycle(dt)
	c.actionWindow.Append(sample.Action.Magnitude())
	c.cycles++

	ui.Debug("Loop %s: error %s, action %s", c.loop.GetId(), sample.Error, sample.Action)
	return sample, true
}

func (c *loopController) GetStatistics() LoopControllerStatistics {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := LoopControllerStatistics{
		Cycles:        c.cycles,
		SkippedCycles: c.skippedCycles,
	}
	if c.cycles > 0 {
		result.ActionAvg = util.GetWindowAvg(c.actionWindow)
		result.ActionMax = util.GetWindowMax(c.actionWindow)
	}
	return result
}

// Simulate cycles the loop n times with a fixed dt, without waiting.
func Simulate(loop control_loop.ControlLoop, dt float64, n int) []control_loop.Sample {
	result := make([]control_loop.Sample, 0, n)
	for i := 0; i < n; i++ {
		result = append(result, loop.Cycle(dt))
	}
	return result
}

// RestoreGains applies the persisted gains of the given loop, if any.
func RestoreGains(p persistence.Persistence, loop control_loop.ControlLoop) error {
	var data json.RawMessage
	err := p.LoadGains(loop.GainsNode(), loop.GetId(), &data)
	if errors.Is(err, os.ErrNotExist) {
		ui.Debug("No saved gains found for loop '%s'", loop.GetId())
		return nil
	}
	if err != nil {
		return err
	}

	err = loop.SetGains(data)
	if err != nil {
		return err
	}
	ui.Info("Restored gains of loop '%s': %v", loop.GetId(), loop.Gains())
	return nil
}

// SaveGains persists the current gains of the given loop.
func SaveGains(p persistence.Persistence, loop control_loop.ControlLoop) error {
	return p.SaveGains(loop.GainsNode(), loop.GetId(), loop.Gains())
}
