// Package bitmap loads the image shown by the viewer.
package bitmap

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"golang.org/x/image/draw"
)

// ErrAssetUnavailable is returned for any image that cannot be read, decoded
// or scaled.
var ErrAssetUnavailable = errors.New("asset unavailable")

type Loader struct {
	Fs     afero.Fs
	Scaler draw.Scaler
}

func NewLoader(fs afero.Fs) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Loader{Fs: fs, Scaler: draw.CatmullRom}
}

// Load decodes the image at path and scales it to targetWidth pixels wide,
// keeping its aspect ratio.
func (l *Loader) Load(path string, targetWidth int) (image.Image, error) {
	if targetWidth <= 0 {
		return nil, fmt.Errorf("%w: invalid target width %d", ErrAssetUnavailable, targetWidth)
	}

	data, err := afero.ReadFile(l.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssetUnavailable, err)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %w", ErrAssetUnavailable, path, err)
	}

	srcW, srcH := img.Bounds().Dx(), img.Bounds().Dy()
	if srcW == 0 || srcH == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrAssetUnavailable, path)
	}

	targetHeight := max(1, int(math.Round(float64(srcH)*float64(targetWidth)/float64(srcW))))
	log.Debugf("decoded %s (%s, %dx%d), scaling to %dx%d", path, format, srcW, srcH, targetWidth, targetHeight)
	return Scale(l.Scaler, img, targetWidth, targetHeight), nil
}

// Scale resamples img into a new w×h RGBA image. An image that already has
// that size is copied without resampling.
func Scale(scaler draw.Scaler, img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if img.Bounds().Dx() == w && img.Bounds().Dy() == h {
		draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
		return dst
	}
	if scaler == nil {
		scaler = draw.CatmullRom
	}
	scaler.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
