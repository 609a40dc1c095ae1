// Package glhost shows a viewer in a glfw window and feeds it mouse input
// as touch events.
package glhost

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/jonboulle/clockwork"
	"github.com/matjam/zoomview/internal/gesture"
	"github.com/matjam/zoomview/internal/ipc"
	"github.com/matjam/zoomview/internal/session"
	"github.com/matjam/zoomview/internal/types"
	"github.com/matjam/zoomview/internal/viewer"
)

var _ gesture.Listener = (*viewer.View)(nil)

type Config struct {
	ImagePath    string
	WindowWidth  int
	WindowHeight int
	Framerate    int
	Density      float32
	Easing       types.EasingMode
	AnimDuration time.Duration
	RenderMode   types.RenderMode
}

type Host struct {
	cfg     Config
	win     *glfw.Window
	session *session.Session
	surface surface
	manager *ipc.Manager

	// framebuffer pixels per window coordinate
	cursorScale float32
	dirty       bool
}

// Run opens the window and runs the render loop until the window is closed,
// a stop command arrives or ctx is cancelled. It must be called from the
// main goroutine.
func Run(ctx context.Context, cfg Config, bitmap image.Image, manager *ipc.Manager) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	h, err := newHost(cfg, bitmap, manager)
	if err != nil {
		return err
	}
	defer h.cleanup()

	h.loop(ctx)
	return nil
}

func newHost(cfg Config, bitmap image.Image, manager *ipc.Manager) (*Host, error) {
	if cfg.Framerate <= 0 {
		cfg.Framerate = 60
	} else if cfg.Framerate > 240 {
		cfg.Framerate = 240
	}

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init failed: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	width, height := cfg.WindowWidth, cfg.WindowHeight
	if monitor := glfw.GetPrimaryMonitor(); monitor != nil {
		if mode := monitor.GetVideoMode(); mode != nil {
			width = min(width, mode.Width)
			height = min(height, mode.Height)
		}
	}

	win, err := glfw.CreateWindow(width, height, "zoomview - "+filepath.Base(cfg.ImagePath), nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window failed: %w", err)
	}
	win.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init failed: %w", err)
	}
	log.Debugf("OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))

	clock := clockwork.NewRealClock()
	h := &Host{
		cfg:     cfg,
		win:     win,
		manager: manager,
		session: session.New(clock, bitmap, session.Options{
			ImagePath:    cfg.ImagePath,
			Density:      cfg.Density,
			Easing:       cfg.Easing,
			AnimDuration: cfg.AnimDuration,
		}),
		cursorScale: 1,
		dirty:       true,
	}

	switch cfg.RenderMode {
	case types.RenderModeSoftware:
		h.surface = newSoftwareCanvas()
	case types.RenderModeGL, "":
		h.surface = &glCanvas{}
	default:
		log.Warnf("unknown render mode %q, using %s", cfg.RenderMode, types.RenderModeGL)
		h.surface = &glCanvas{}
	}
	log.Infof("window %dx%d, render mode %s, %d fps", width, height, cfg.RenderMode, cfg.Framerate)

	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h2 int) { h.resize(w, h2) })
	win.SetMouseButtonCallback(h.onMouseButton)
	win.SetCursorPosCallback(h.onCursorPos)
	win.SetKeyCallback(h.onKey)
	win.SetRefreshCallback(func(*glfw.Window) { h.dirty = true })

	h.resize(win.GetFramebufferSize())
	return h, nil
}

func (h *Host) resize(fbWidth, fbHeight int) {
	winWidth, _ := h.win.GetSize()
	if winWidth > 0 {
		h.cursorScale = float32(fbWidth) / float32(winWidth)
	}
	h.session.Resize(fbWidth, fbHeight)
	h.dirty = true
}

func (h *Host) cursor() (float32, float32) {
	x, y := h.win.GetCursorPos()
	return float32(x) * h.cursorScale, float32(y) * h.cursorScale
}

func (h *Host) onMouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}
	x, y := h.cursor()
	switch action {
	case glfw.Press:
		h.session.PointerDown(x, y)
	case glfw.Release:
		h.session.PointerUp(x, y)
	}
}

func (h *Host) onCursorPos(_ *glfw.Window, xpos, ypos float64) {
	h.session.PointerMove(float32(xpos)*h.cursorScale, float32(ypos)*h.cursorScale)
}

func (h *Host) onKey(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	switch key {
	case glfw.KeyEscape, glfw.KeyQ:
		w.SetShouldClose(true)
	case glfw.KeySpace:
		h.session.Apply(ipc.Command{Type: ipc.CommandToggle})
	}
}

// drainCommands applies every queued control command without blocking.
func (h *Host) drainCommands() {
	if h.manager == nil {
		return
	}
	for {
		select {
		case cmd := <-h.manager.Commands():
			log.Debugf("applying command %s", cmd.Type)
			if h.session.Apply(cmd) {
				h.win.SetShouldClose(true)
			}
		default:
			return
		}
	}
}

func (h *Host) loop(ctx context.Context) {
	err := h.session.Run(ctx, h.cfg.Framerate, func(redraw bool) bool {
		glfw.PollEvents()
		h.drainCommands()

		if redraw || h.dirty {
			h.draw()
			h.dirty = false
		}

		if h.manager != nil {
			h.manager.Publish(h.session.Status())
		}
		return !h.win.ShouldClose()
	})
	if errors.Is(err, context.Canceled) {
		log.Info("context cancelled, closing window")
	}
}

func (h *Host) draw() {
	w, ht := h.win.GetFramebufferSize()
	h.surface.Begin(w, ht)
	h.session.View().Draw(h.surface)
	h.surface.End()
	h.win.SwapBuffers()
}

func (h *Host) cleanup() {
	h.surface.Delete()
	h.win.Destroy()
	glfw.Terminate()
	log.Info("window closed")
}
