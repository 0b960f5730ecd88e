package gains

import (
	"path/filepath"
	"testing"

	"github.com/markusressel/pid2go/internal/persistence"
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func createPersistence(t *testing.T) persistence.Persistence {
	p := persistence.NewPersistence(filepath.Join(t.TempDir(), "pid2go.db"))
	require.NoError(t, p.Init())
	require.NoError(t, p.SaveGains(pid.PINodeName, "engine-1", pid.PIValues[float32]{P: 1, I: 0.5}))
	require.NoError(t, p.SaveGains(pid.PIDNodeName, "throttle", pid.NewPIDGains[float64](1, 0.1, 0, -10, 10)))
	return p
}

func TestLoadAllGains(t *testing.T) {
	// GIVEN
	p := createPersistence(t)

	// WHEN
	all, err := loadAllGains(p, "")

	// THEN
	assert.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, map[string]interface{}{"p": 1.0, "i": 0.5}, all[pid.PINodeName]["engine-1"])
	assert.Contains(t, all[pid.PIDNodeName], "throttle")
}

func TestLoadAllGains_SingleLoop(t *testing.T) {
	// GIVEN
	p := createPersistence(t)

	// WHEN
	all, err := loadAllGains(p, "throttle")

	// THEN
	assert.NoError(t, err)
	assert.Len(t, all, 1)
	assert.NotContains(t, all, pid.PINodeName)
}

func TestExportFormat(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	all, err := loadAllGains(p, "engine-1")
	require.NoError(t, err)

	// WHEN
	data, err := yaml.Marshal(all)

	// THEN
	assert.NoError(t, err)
	assert.YAMLEq(t, "PICONTROLLER:\n  engine-1:\n    p: 1\n    i: 0.5\n", string(data))
}
