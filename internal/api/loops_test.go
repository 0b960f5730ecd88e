package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/control_loop"
	"github.com/markusressel/pid2go/internal/persistence"
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*echo.Echo, persistence.Persistence) {
	control_loop.LoopMap.Clear()
	t.Cleanup(control_loop.LoopMap.Clear)

	_, err := control_loop.CreateLoops([]configuration.LoopConfig{
		{
			ID:       "engine-1",
			SetPoint: 1,
			Plant:    configuration.PlantConfig{Gain: 1},
			PI:       &configuration.PIControllerConfig{P: 1, I: 1},
		},
		{
			ID:       "engine-2",
			SetPoint: 1,
			Plant:    configuration.PlantConfig{Gain: 1},
			PI:       &configuration.PIControllerConfig{P: 2, I: 2, Link: "engine-1"},
		},
		{
			ID:       "throttle",
			SetPoint: 5,
			Plant:    configuration.PlantConfig{Gain: 1},
			Revert:   &configuration.PIDControllerConfig{P: 1, I: 0.1, Min: -10, Max: 10},
		},
	})
	require.NoError(t, err)

	pers := persistence.NewPersistence(filepath.Join(t.TempDir(), "pid2go.db"))
	require.NoError(t, pers.Init())

	return CreateRestService(pers, prometheus.NewRegistry()), pers
}

func request(e *echo.Echo, method string, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestIsAlive(t *testing.T) {
	// GIVEN
	e, _ := setup(t)

	// WHEN
	rec := request(e, http.MethodGet, "/alive", "")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetLoops(t *testing.T) {
	// GIVEN
	e, _ := setup(t)

	// WHEN
	rec := request(e, http.MethodGet, "/loop/", "")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var result []LoopInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result, 3)
	assert.Equal(t, "engine-1", result[0].Id)
	assert.Equal(t, "engine-1", result[1].LinkedTo)
	assert.Equal(t, configuration.ControllerTypeRevert, result[2].ControllerType)
}

func TestGetLoop(t *testing.T) {
	// GIVEN
	e, _ := setup(t)
	loop, _ := control_loop.GetLoop("throttle")
	loop.Cycle(0.1)

	// WHEN
	rec := request(e, http.MethodGet, "/loop/throttle/", "")
	missing := request(e, http.MethodGet, "/loop/unknown/", "")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var result LoopInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.InDelta(t, 5.05, result.Sample.Action.X, 1e-5)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestResetLoop(t *testing.T) {
	// GIVEN
	e, _ := setup(t)
	loop, _ := control_loop.GetLoop("throttle")
	loop.Cycle(0.1)

	// WHEN
	rec := request(e, http.MethodPost, "/loop/throttle/reset/", "")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, control_loop.Sample{}, loop.LastSample())
}

func TestSetGains(t *testing.T) {
	// GIVEN
	e, pers := setup(t)

	// WHEN
	rec := request(e, http.MethodPut, "/loop/throttle/gains/", `{"p": 2, "d": 0.5}`)

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	expected := pid.NewPIDGains[float32](2, 0.1, 0.5, -10, 10)
	loop, _ := control_loop.GetLoop("throttle")
	assert.Equal(t, expected, loop.Gains())

	var saved pid.PIDGains[float32]
	require.NoError(t, pers.LoadGains(pid.PIDNodeName, "throttle", &saved))
	assert.Equal(t, expected, saved)

	// WHEN
	rec = request(e, http.MethodGet, "/loop/throttle/gains/", "")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"p": 2, "i": 0.1, "d": 0.5, "min": -10, "max": 10}`, rec.Body.String())
}

func TestSetGains_Invalid(t *testing.T) {
	// GIVEN
	e, _ := setup(t)

	// WHEN
	bounds := request(e, http.MethodPut, "/loop/throttle/gains/", `{"min": 11}`)
	malformed := request(e, http.MethodPut, "/loop/throttle/gains/", `{"p": `)
	missing := request(e, http.MethodPut, "/loop/unknown/gains/", `{"p": 1}`)

	// THEN
	assert.Equal(t, http.StatusBadRequest, bounds.Code)
	assert.Equal(t, http.StatusBadRequest, malformed.Code)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestLinkAndUnlink(t *testing.T) {
	// GIVEN
	e, _ := setup(t)

	// WHEN
	cycle := request(e, http.MethodPost, "/loop/engine-1/link/", `{"master": "engine-2"}`)
	notLinkable := request(e, http.MethodPost, "/loop/throttle/link/", `{"master": "engine-1"}`)
	unknownMaster := request(e, http.MethodPost, "/loop/engine-1/link/", `{"master": "unknown"}`)
	unlink := request(e, http.MethodPost, "/loop/engine-2/unlink/", "")

	// THEN
	assert.Equal(t, http.StatusBadRequest, cycle.Code)
	assert.Equal(t, http.StatusBadRequest, notLinkable.Code)
	assert.Equal(t, http.StatusNotFound, unknownMaster.Code)
	assert.Equal(t, http.StatusOK, unlink.Code)
	loop, _ := control_loop.GetLoop("engine-2")
	assert.Empty(t, loop.LinkedTo())

	// WHEN
	link := request(e, http.MethodPost, "/loop/engine-1/link/", `{"master": "engine-2"}`)

	// THEN
	assert.Equal(t, http.StatusOK, link.Code)
	var result LoopInfo
	require.NoError(t, json.Unmarshal(link.Body.Bytes(), &result))
	assert.Equal(t, "engine-2", result.LinkedTo)
}
