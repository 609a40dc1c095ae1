package ipc

import (
	"net/http"
	"os"
	"strings"

	"github.com/chewxy/math32"
	"github.com/labstack/echo/v4"
	"github.com/matjam/zoomview"
	"github.com/spf13/viper"
)

// GET /status
func statusHandler(m ManagerInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSONPretty(http.StatusOK, StatusResponse{
			Status:  "ok",
			Message: "zoomview is running",
			Version: strings.Trim(zoomview.Version, "\n\r "),
			PID:     os.Getpid(),
			Socket:  SocketPath(),
			Config:  viper.ConfigFileUsed(),
			View:    m.ViewStatus(),
		}, "  ")
	}
}

// POST /stop
func stopHandler(m ManagerInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		return enqueue(c, m, Command{Type: CommandStop})
	}
}

// POST /toggle
func toggleHandler(m ManagerInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		return enqueue(c, m, Command{Type: CommandToggle})
	}
}

// POST /fling
func flingHandler(m ManagerInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req FlingRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, Response{Status: "error", Error: "invalid fling velocity"})
		}
		if !finite(req.VelocityX) || !finite(req.VelocityY) {
			return c.JSON(http.StatusBadRequest, Response{Status: "error", Error: "velocity must be finite"})
		}
		return enqueue(c, m, Command{Type: CommandFling, VelocityX: req.VelocityX, VelocityY: req.VelocityY})
	}
}

func enqueue(c echo.Context, m ManagerInterface, cmd Command) error {
	if !m.EnqueueCommand(cmd) {
		return c.JSON(http.StatusServiceUnavailable, Response{Status: "error", Error: "command queue full"})
	}
	return c.JSON(http.StatusOK, Response{Status: "ok", Message: string(cmd.Type) + " queued"})
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
