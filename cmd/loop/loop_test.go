package loop

import (
	"testing"

	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/stretchr/testify/assert"
)

func TestGetLoopConfig(t *testing.T) {
	// GIVEN
	loops := []configuration.LoopConfig{{ID: "throttle"}, {ID: "attitude"}}

	// WHEN
	found, err := getLoopConfig("attitude", loops)
	_, missingErr := getLoopConfig("engine", loops)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "attitude", found.ID)
	assert.EqualError(t, missingErr, "no loop with id found: engine, options: [throttle attitude]")
}

func TestComponent(t *testing.T) {
	// GIVEN
	v := pid.NewVec3(1.0, 2.0, 3.0)

	// THEN
	assert.Equal(t, 1.0, component(v, "x"))
	assert.Equal(t, 2.0, component(v, "y"))
	assert.Equal(t, 3.0, component(v, "z"))
	assert.Equal(t, 1.0, component(v, ""))
}
