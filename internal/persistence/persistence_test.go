package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/markusressel/pid2go/internal/pid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPersistence(t *testing.T) Persistence {
	p := NewPersistence(filepath.Join(t.TempDir(), "db", "pid2go.db"))
	require.NoError(t, p.Init())
	return p
}

func TestPersistence_SaveAndLoadPIGains(t *testing.T) {
	// GIVEN
	p := newTestPersistence(t)
	expected := pid.PIValues[float32]{P: 0.25, I: 1.5}

	// WHEN
	err := p.SaveGains(pid.PINodeName, "engine-1", expected)
	require.NoError(t, err)

	var loaded pid.PIValues[float32]
	err = p.LoadGains(pid.PINodeName, "engine-1", &loaded)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, expected, loaded)
}

func TestPersistence_SaveAndLoadVectorPIDGains(t *testing.T) {
	// GIVEN
	p := newTestPersistence(t)
	expected := pid.NewPIDGains(
		pid.NewVec3(1.0, 2.0, 3.0),
		pid.Splat(0.1),
		pid.Vec3d{},
		pid.Splat(-1.0),
		pid.Splat(1.0),
	)

	// WHEN
	err := p.SaveGains(pid.PIDNodeName, "attitude", expected)
	require.NoError(t, err)

	var loaded pid.PIDGains[pid.Vec3d]
	err = p.LoadGains(pid.PIDNodeName, "attitude", &loaded)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, expected, loaded)
}

func TestPersistence_LoadMissingGains(t *testing.T) {
	// GIVEN
	p := newTestPersistence(t)
	_ = p.SaveGains(pid.PIDNodeName, "other", pid.PIDGains[float64]{})

	// WHEN
	var loaded pid.PIDGains[float64]
	errMissingBucket := p.LoadGains(pid.PINodeName, "engine-1", &loaded)
	errMissingKey := p.LoadGains(pid.PIDNodeName, "engine-1", &loaded)

	// THEN
	assert.ErrorIs(t, errMissingBucket, os.ErrNotExist)
	assert.ErrorIs(t, errMissingKey, os.ErrNotExist)
}

func TestPersistence_DeleteGains(t *testing.T) {
	// GIVEN
	p := newTestPersistence(t)
	_ = p.SaveGains(pid.PINodeName, "engine-1", pid.PIValues[float32]{P: 1, I: 1})

	// WHEN
	err := p.DeleteGains(pid.PINodeName, "engine-1")
	assert.NoError(t, err)

	// THEN
	var loaded pid.PIValues[float32]
	err = p.LoadGains(pid.PINodeName, "engine-1", &loaded)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NoError(t, p.DeleteGains(pid.PINodeName, "engine-1"))
	assert.NoError(t, p.DeleteGains("unknown", "engine-1"))
}

func TestPersistence_CorruptGainsAreDeleted(t *testing.T) {
	// GIVEN
	p := newTestPersistence(t)
	_ = p.SaveGains(pid.PIDNodeName, "throttle", "not an object")

	// WHEN
	var loaded pid.PIDGains[float64]
	err := p.LoadGains(pid.PIDNodeName, "throttle", &loaded)

	// THEN
	assert.ErrorIs(t, err, os.ErrNotExist)
	all, err := p.ListGains(pid.PIDNodeName)
	assert.NoError(t, err)
	assert.Empty(t, all)
}

func TestPersistence_CorruptGainsKeepOtherEntries(t *testing.T) {
	// GIVEN
	p := newTestPersistence(t)
	_ = p.SaveGains(pid.PINodeName, "engine-1", "not an object")
	_ = p.SaveGains(pid.PINodeName, "engine-2", pid.PIValues[float32]{P: 3, I: 4})

	// WHEN
	var loaded pid.PIValues[float32]
	err := p.LoadGains(pid.PINodeName, "engine-1", &loaded)

	// THEN
	assert.ErrorIs(t, err, os.ErrNotExist)
	all, err := p.ListGains(pid.PINodeName)
	assert.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Contains(t, all, "engine-2")
}

func TestPersistence_ListGains(t *testing.T) {
	// GIVEN
	p := newTestPersistence(t)
	_ = p.SaveGains(pid.PINodeName, "engine-1", pid.PIValues[float32]{P: 1, I: 2})
	_ = p.SaveGains(pid.PINodeName, "engine-2", pid.PIValues[float32]{P: 3, I: 4})

	// WHEN
	all, err := p.ListGains(pid.PINodeName)
	empty, emptyErr := p.ListGains(pid.PIDNodeName)

	// THEN
	assert.NoError(t, err)
	assert.Len(t, all, 2)
	assert.JSONEq(t, `{"p": 3, "i": 4}`, string(all["engine-2"]))
	assert.NoError(t, emptyErr)
	assert.Empty(t, empty)
}
