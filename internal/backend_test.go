package internal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/control_loop"
	"github.com/markusressel/pid2go/internal/persistence"
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig(restoreGains bool) configuration.Configuration {
	return configuration.Configuration{
		TickRate:         20 * time.Millisecond,
		RestoreGains:     restoreGains,
		ActionWindowSize: 10,
		Loops: []configuration.LoopConfig{
			{
				ID:       "engine-1",
				SetPoint: 1,
				Plant:    configuration.PlantConfig{Gain: 1},
				PI:       &configuration.PIControllerConfig{P: 1, I: 1},
			},
			{
				ID:             "attitude",
				SetPointVector: pid.Splat(1.0),
				Plant:          configuration.PlantConfig{Gain: 1},
				GatedVector:    &configuration.PIDControllerConfig{P: 1, I: 0.5, D: 0.1, Min: -2, Max: 2},
			},
		},
	}
}

func TestInitializeObjects_RestoresGains(t *testing.T) {
	// GIVEN
	control_loop.LoopMap.Clear()
	defer control_loop.LoopMap.Clear()
	pers := persistence.NewPersistence(filepath.Join(t.TempDir(), "pid2go.db"))
	require.NoError(t, pers.Init())
	require.NoError(t, pers.SaveGains(pid.PINodeName, "engine-1", pid.PIValues[float32]{P: 4, I: 2}))
	configuration.CurrentConfig = createTestConfig(true)

	// WHEN
	controllers, err := InitializeObjects(pers)

	// THEN
	require.NoError(t, err)
	assert.Len(t, controllers, 2)
	loop, err := control_loop.GetLoop("engine-1")
	require.NoError(t, err)
	assert.Equal(t, pid.PIValues[float32]{P: 4, I: 2}, loop.Gains())
	vector, err := control_loop.GetLoop("attitude")
	require.NoError(t, err)
	assert.Equal(t, pid.NewPIDGains[float32](1, 0.5, 0.1, -2, 2), vector.Gains())
}

func TestInitializeObjects_IgnoresSavedGains(t *testing.T) {
	// GIVEN
	control_loop.LoopMap.Clear()
	defer control_loop.LoopMap.Clear()
	pers := persistence.NewPersistence(filepath.Join(t.TempDir(), "pid2go.db"))
	require.NoError(t, pers.Init())
	require.NoError(t, pers.SaveGains(pid.PINodeName, "engine-1", pid.PIValues[float32]{P: 4, I: 2}))
	configuration.CurrentConfig = createTestConfig(false)

	// WHEN
	_, err := InitializeObjects(pers)

	// THEN
	require.NoError(t, err)
	loop, _ := control_loop.GetLoop("engine-1")
	assert.Equal(t, pid.PIValues[float32]{P: 1, I: 1}, loop.Gains())
}

func TestSaveAllGains(t *testing.T) {
	// GIVEN
	control_loop.LoopMap.Clear()
	defer control_loop.LoopMap.Clear()
	pers := persistence.NewPersistence(filepath.Join(t.TempDir(), "pid2go.db"))
	require.NoError(t, pers.Init())
	configuration.CurrentConfig = createTestConfig(false)
	controllers, err := InitializeObjects(pers)
	require.NoError(t, err)

	// WHEN
	saveAllGains(pers, controllers)

	// THEN
	pi, err := pers.ListGains(pid.PINodeName)
	assert.NoError(t, err)
	assert.Contains(t, pi, "engine-1")
	var saved pid.PIDGains[float32]
	assert.NoError(t, pers.LoadGains(pid.PIDNodeName, "attitude", &saved))
	assert.Equal(t, float32(0.1), saved.D)
}
