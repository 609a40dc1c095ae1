package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/matjam/zoomview/internal/bitmap"
	"github.com/matjam/zoomview/internal/cli/cmd/utils"
	"github.com/matjam/zoomview/internal/glhost"
	"github.com/matjam/zoomview/internal/ipc"
	"github.com/sevlyar/go-daemon"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// StartViewer loads imagePath and runs the viewer window until it is closed.
// With background set the process first detaches from the terminal.
func StartViewer(imagePath string, background bool) {
	settings, err := utils.LoadSettings(viper.GetViper())
	if err != nil {
		log.Fatalf("Bad configuration: %v", err)
	}

	if abs, err := filepath.Abs(imagePath); err == nil {
		imagePath = abs
	}

	if _, err := ipc.SendStatus(); err == nil {
		log.Infof("zoomview is already running, exiting")
		return
	}

	if background {
		cntxt := &daemon.Context{
			PidFileName: filepath.Join(filepath.Dir(ipc.SocketPath()), "zoomview.pid"),
			PidFilePerm: 0644,
			WorkDir:     "/",
			Umask:       027,
		}
		child, err := cntxt.Reborn()
		if err != nil {
			log.Fatalf("Failed to start in the background: %v", err)
		}
		if child != nil {
			log.Infof("zoomview started in the background with PID %d", child.Pid)
			return
		}
		defer cntxt.Release()
	}

	if daemon.WasReborn() {
		setupRotatingLogger()
	}
	log.Infof("StartViewer() started in PID: %d", os.Getpid())

	img, err := bitmap.NewLoader(afero.NewOsFs()).Load(imagePath, settings.BitmapWidth())
	if errors.Is(err, bitmap.ErrAssetUnavailable) {
		log.Fatalf("Cannot show %s: %v", imagePath, err)
	} else if err != nil {
		log.Fatalf("Failed to load %s: %v", imagePath, err)
	}
	log.Infof("Loaded %s (%dx%d)", imagePath, img.Bounds().Dx(), img.Bounds().Dy())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager := ipc.NewManager()
	go func() {
		log.Infof("Starting socket server")
		if err := ipc.Serve(ctx, manager); err != nil {
			log.Errorf("Control socket unavailable: %v", err)
		}
	}()

	err = glhost.Run(ctx, glhost.Config{
		ImagePath:    imagePath,
		WindowWidth:  settings.WindowWidth,
		WindowHeight: settings.WindowHeight,
		Framerate:    settings.FramerateLimit,
		Density:      settings.Density,
		Easing:       settings.Easing,
		AnimDuration: settings.AnimDuration,
		RenderMode:   settings.RenderMode,
	}, img, manager)
	stop()
	os.Remove(ipc.SocketPath())
	if err != nil {
		log.Fatalf("Viewer failed: %v", err)
	}
	log.Infof("zoomview exited")
}

func setupRotatingLogger() {
	home := os.Getenv("HOME")
	logDir := filepath.Join(home, ".local", "share", "zoomview")
	logPath := filepath.Join(logDir, "zoomview.log")

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Fatalf("failed to create log directory: %v", err)
	}

	writer, err := rotatelogs.New(
		logPath+".%Y%m%d%H%M",
		rotatelogs.WithLinkName(logPath),
		rotatelogs.WithMaxAge(7*24*time.Hour),
		rotatelogs.WithRotationSize(10*1024*1024),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		log.Fatalf("failed to configure log rotation: %v", err)
	}

	log.SetOutput(writer)
	if !viper.GetBool("debug") {
		log.SetLevel(log.InfoLevel)
	}
}
