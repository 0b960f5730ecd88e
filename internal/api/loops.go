package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/pid2go/internal/control_loop"
	"github.com/markusressel/pid2go/internal/persistence"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/qdm12/reprint"
)

type (
	LoopInfo struct {
		Id             string              `json:"id"`
		ControllerType string              `json:"controllerType"`
		LinkedTo       string              `json:"linkedTo,omitempty"`
		Gains          interface{}         `json:"gains"`
		Sample         control_loop.Sample `json:"sample"`
	}

	LinkRequest struct {
		Master string `json:"master"`
	}
)

type loopEndpoints struct {
	persistence persistence.Persistence
}

func registerLoopEndpoints(rest *echo.Echo, pers persistence.Persistence) {
	endpoints := &loopEndpoints{persistence: pers}
	group := rest.Group("/loop")

	group.GET("/", getLoops)
	group.GET("/:"+urlParamId+"/", getLoop)
	group.POST("/:"+urlParamId+"/reset/", resetLoop)
	group.GET("/:"+urlParamId+"/gains/", getGains)
	group.PUT("/:"+urlParamId+"/gains/", endpoints.setGains)
	group.POST("/:"+urlParamId+"/link/", linkLoop)
	group.POST("/:"+urlParamId+"/unlink/", unlinkLoop)
}

func newLoopInfo(loop control_loop.ControlLoop) LoopInfo {
	return LoopInfo{
		Id:             loop.GetId(),
		ControllerType: loop.GetControllerType(),
		LinkedTo:       loop.LinkedTo(),
		Gains:          loop.Gains(),
		Sample:         loop.LastSample(),
	}
}

// returns a list of all currently configured loops
func getLoops(c echo.Context) error {
	var data []LoopInfo
	for _, loop := range control_loop.GetLoops() {
		data = append(data, newLoopInfo(loop))
	}
	return c.JSONPretty(http.StatusOK, reprint.This(data), indentationChar)
}

func getLoop(c echo.Context) error {
	id := c.Param(urlParamId)
	loop, exists := control_loop.LoopMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}
	return c.JSONPretty(http.StatusOK, reprint.This(newLoopInfo(loop)), indentationChar)
}

func resetLoop(c echo.Context) error {
	id := c.Param(urlParamId)
	loop, exists := control_loop.LoopMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}
	loop.Reset()
	ui.Info("Loop '%s' was reset", id)
	return c.JSONPretty(http.StatusOK, newLoopInfo(loop), indentationChar)
}

func getGains(c echo.Context) error {
	id := c.Param(urlParamId)
	loop, exists := control_loop.LoopMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}
	return c.JSONPretty(http.StatusOK, loop.Gains(), indentationChar)
}

func (e *loopEndpoints) setGains(c echo.Context) error {
	id := c.Param(urlParamId)
	loop, exists := control_loop.LoopMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return returnBadRequest(c, err)
	}
	err = loop.SetGains(body)
	if errors.Is(err, control_loop.ErrInvalidGains) {
		return returnBadRequest(c, err)
	} else if err != nil {
		return returnError(c, err)
	}
	ui.Info("Gains of loop '%s' changed to %v", id, loop.Gains())

	if e.persistence != nil {
		err = e.persistence.SaveGains(loop.GainsNode(), id, loop.Gains())
		if err != nil {
			return returnError(c, err)
		}
	}

	return c.JSONPretty(http.StatusOK, loop.Gains(), indentationChar)
}

func linkLoop(c echo.Context) error {
	id := c.Param(urlParamId)
	loop, exists := control_loop.LoopMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}

	request := new(LinkRequest)
	if err := c.Bind(request); err != nil {
		return returnBadRequest(c, err)
	}
	master, exists := control_loop.LoopMap.Get(request.Master)
	if !exists {
		return returnNotFound(c, request.Master)
	}

	err := loop.Link(master)
	if err != nil {
		return returnBadRequest(c, err)
	}
	ui.Info("Loop '%s' is now linked to '%s'", id, request.Master)
	return c.JSONPretty(http.StatusOK, newLoopInfo(loop), indentationChar)
}

func unlinkLoop(c echo.Context) error {
	id := c.Param(urlParamId)
	loop, exists := control_loop.LoopMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}

	err := loop.Unlink()
	if err != nil {
		return returnBadRequest(c, err)
	}
	return c.JSONPretty(http.StatusOK, newLoopInfo(loop), indentationChar)
}
