// Package render rasterizes the viewer on the CPU.
package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

var identity = f64.Aff3{1, 0, 0, 0, 1, 0}

// ImageCanvas draws into an RGBA image through an affine transform stack.
type ImageCanvas struct {
	Dst         *image.RGBA
	Transformer draw.Transformer

	matrix f64.Aff3
	stack  []f64.Aff3
}

func NewImageCanvas(dst *image.RGBA) *ImageCanvas {
	return &ImageCanvas{
		Dst:         dst,
		Transformer: draw.ApproxBiLinear,
		matrix:      identity,
	}
}

// Reset clears the transform stack and fills the image with bg.
func (c *ImageCanvas) Reset(bg color.Color) {
	c.matrix = identity
	c.stack = c.stack[:0]
	draw.Draw(c.Dst, c.Dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
}

func (c *ImageCanvas) Save() {
	c.stack = append(c.stack, c.matrix)
}

func (c *ImageCanvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.matrix = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *ImageCanvas) Translate(dx, dy float32) {
	c.matrix = mul(c.matrix, translate(float64(dx), float64(dy)))
}

func (c *ImageCanvas) Scale(sx, sy, px, py float32) {
	pivot := translate(float64(px), float64(py))
	scale := f64.Aff3{float64(sx), 0, 0, 0, float64(sy), 0}
	unpivot := translate(-float64(px), -float64(py))
	c.matrix = mul(c.matrix, mul(pivot, mul(scale, unpivot)))
}

func (c *ImageCanvas) DrawImage(img image.Image, x, y float32) {
	b := img.Bounds()
	// source coordinates start at b.Min, the canvas places the image's
	// top-left corner at (x, y)
	m := mul(c.matrix, translate(float64(x)-float64(b.Min.X), float64(y)-float64(b.Min.Y)))
	c.Transformer.Transform(c.Dst, m, img, b, draw.Over, nil)
}

// Matrix returns the current transform.
func (c *ImageCanvas) Matrix() f64.Aff3 {
	return c.matrix
}

func translate(dx, dy float64) f64.Aff3 {
	return f64.Aff3{1, 0, dx, 0, 1, dy}
}

// mul returns the transform that applies b first, then a.
func mul(a, b f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		a[0]*b[0] + a[1]*b[3],
		a[0]*b[1] + a[1]*b[4],
		a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3],
		a[3]*b[1] + a[4]*b[4],
		a[3]*b[2] + a[4]*b[5] + a[5],
	}
}
