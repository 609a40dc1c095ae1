package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/matjam/zoomview"
	"github.com/matjam/zoomview/internal/types"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T, toml string) *viper.Viper {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/zoomview.toml", []byte(toml), 0o644))

	v := viper.New()
	v.SetFs(fs)
	SetDefaults(v)
	v.SetConfigFile("/etc/zoomview.toml")
	require.NoError(t, v.ReadInConfig())
	return v
}

func TestDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	s, err := LoadSettings(v)
	require.NoError(t, err)
	assert.Equal(t, 300, s.ImageWidth)
	assert.Equal(t, float32(1), s.Density)
	assert.Equal(t, 300*time.Millisecond, s.AnimDuration)
	assert.Equal(t, types.EasingEaseInOut, s.Easing)
	assert.Equal(t, types.RenderModeGL, s.RenderMode)
	assert.Equal(t, 60, s.FramerateLimit)
	assert.Equal(t, 300, s.BitmapWidth())
}

func TestEmbeddedDefaultConfigMatchesDefaults(t *testing.T) {
	s, err := LoadSettings(newViper(t, zoomview.DefaultConfig))
	require.NoError(t, err)

	v := viper.New()
	SetDefaults(v)
	want, err := LoadSettings(v)
	require.NoError(t, err)

	assert.Equal(t, want, s)
}

func TestConfigFileOverrides(t *testing.T) {
	s, err := LoadSettings(newViper(t, `
image = "/srv/gem.png"
density = 2.0
anim_duration = "150ms"
easing = "linear"
render_mode = "software"
`))
	require.NoError(t, err)

	assert.Equal(t, "/srv/gem.png", s.Image)
	assert.Equal(t, 600, s.BitmapWidth())
	assert.Equal(t, 150*time.Millisecond, s.AnimDuration)
	assert.Equal(t, types.EasingLinear, s.Easing)
	assert.Equal(t, types.RenderModeSoftware, s.RenderMode)
}

func TestInvalidSettings(t *testing.T) {
	for _, tc := range []struct {
		name string
		toml string
		want string
	}{
		{"width", "image_width = 0", "image_width"},
		{"density", "density = -1.0", "density"},
		{"window", "window_height = 0", "window size"},
		{"duration", `anim_duration = "-1s"`, "anim_duration"},
		{"easing", `easing = "bounce"`, "easing"},
		{"render mode", `render_mode = "vulkan"`, "render_mode"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadSettings(newViper(t, tc.toml))
			require.ErrorIs(t, err, ErrInvalidSetting)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestCanonicalPath(t *testing.T) {
	t.Setenv("HOME", "/home/gem")

	assert.Equal(t, "", CanonicalPath(""))
	assert.Equal(t, "/home/gem", CanonicalPath("~"))
	assert.Equal(t, "/home/gem/pics/a.png", CanonicalPath("~/pics/a.png"))
	assert.Equal(t, "/tmp/~/a.png", CanonicalPath("/tmp/~/a.png"))
	assert.True(t, strings.HasPrefix(CanonicalPath("rel.png"), "rel"))
}
