package utils

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/matjam/zoomview/internal/anim"
	"github.com/matjam/zoomview/internal/types"
	"github.com/spf13/viper"
)

var ErrInvalidSetting = errors.New("invalid setting")

// Settings is the resolved viewer configuration.
type Settings struct {
	Image          string
	ImageWidth     int // density-independent pixels
	Density        float32
	WindowWidth    int
	WindowHeight   int
	AnimDuration   time.Duration
	Easing         types.EasingMode
	RenderMode     types.RenderMode
	FramerateLimit int
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("image", "")
	v.SetDefault("image_width", 300)
	v.SetDefault("density", 1.0)
	v.SetDefault("window_width", 1000)
	v.SetDefault("window_height", 2000)
	v.SetDefault("anim_duration", "300ms")
	v.SetDefault("easing", string(types.EasingEaseInOut))
	v.SetDefault("render_mode", string(types.RenderModeGL))
	v.SetDefault("framerate_limit", 60)
	v.SetDefault("debug", false)
}

func LoadSettings(v *viper.Viper) (Settings, error) {
	s := Settings{
		Image:          v.GetString("image"),
		ImageWidth:     v.GetInt("image_width"),
		Density:        float32(v.GetFloat64("density")),
		WindowWidth:    v.GetInt("window_width"),
		WindowHeight:   v.GetInt("window_height"),
		AnimDuration:   v.GetDuration("anim_duration"),
		Easing:         types.EasingMode(v.GetString("easing")),
		RenderMode:     types.RenderMode(v.GetString("render_mode")),
		FramerateLimit: v.GetInt("framerate_limit"),
	}

	switch {
	case s.ImageWidth <= 0:
		return s, fmt.Errorf("%w: image_width must be positive, got %d", ErrInvalidSetting, s.ImageWidth)
	case s.Density <= 0:
		return s, fmt.Errorf("%w: density must be positive, got %v", ErrInvalidSetting, s.Density)
	case s.WindowWidth <= 0 || s.WindowHeight <= 0:
		return s, fmt.Errorf("%w: window size %dx%d", ErrInvalidSetting, s.WindowWidth, s.WindowHeight)
	case s.AnimDuration < 0:
		return s, fmt.Errorf("%w: anim_duration must not be negative, got %v", ErrInvalidSetting, s.AnimDuration)
	case !anim.ValidEasing(s.Easing):
		return s, fmt.Errorf("%w: unknown easing %q", ErrInvalidSetting, s.Easing)
	}

	switch s.RenderMode {
	case types.RenderModeGL, types.RenderModeSoftware:
	default:
		return s, fmt.Errorf("%w: unknown render_mode %q", ErrInvalidSetting, s.RenderMode)
	}
	return s, nil
}

// BitmapWidth is the width in pixels the image is scaled to on load.
func (s Settings) BitmapWidth() int {
	return int(math.Round(float64(s.ImageWidth) * float64(s.Density)))
}
