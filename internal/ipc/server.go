package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/matjam/zoomview/internal/middleware"
)

const socketName = "zoomview.sock"

// SocketPath is the control socket, in $XDG_RUNTIME_DIR when set.
func SocketPath() string {
	sockDir := os.Getenv("XDG_RUNTIME_DIR")
	if sockDir == "" {
		sockDir = os.TempDir()
	}
	return filepath.Join(sockDir, socketName)
}

func NewServer(manager ManagerInterface) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.CharmLog())

	RegisterRoutes(e, manager)
	return e
}

// Serve listens on the control socket until ctx is cancelled. A stale socket
// left by an earlier run is removed first.
func Serve(ctx context.Context, manager ManagerInterface) error {
	sockPath := SocketPath()
	if _, err := os.Stat(sockPath); err == nil {
		_ = os.Remove(sockPath)
	}

	listener, err := net.Listen("unix", sockPath)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", sockPath, err)
	}
	defer os.Remove(sockPath)

	e := NewServer(manager)
	e.Listener = listener

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Errorf("socket server shutdown: %v", err)
		}
	}()

	log.Debugf("control socket listening on %s", sockPath)
	if err := e.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("socket server: %w", err)
	}
	return nil
}
