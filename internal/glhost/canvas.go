package glhost

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/matjam/zoomview/internal/render"
)

// surface is a viewer.Canvas that frames each redraw with Begin and End.
type surface interface {
	Begin(width, height int)
	End()
	Save()
	Restore()
	Translate(dx, dy float32)
	Scale(sx, sy, px, py float32)
	DrawImage(img image.Image, x, y float32)
	Delete()
}

// glCanvas maps canvas calls onto the fixed-function matrix stack with a
// y-down orthographic projection, so the GPU applies the view transform.
type glCanvas struct {
	tex texture
}

func (c *glCanvas) Begin(width, height int) {
	beginFrame(width, height)
}

func (c *glCanvas) End() {}

func (c *glCanvas) Save() {
	gl.PushMatrix()
}

func (c *glCanvas) Restore() {
	gl.PopMatrix()
}

func (c *glCanvas) Translate(dx, dy float32) {
	gl.Translatef(dx, dy, 0)
}

func (c *glCanvas) Scale(sx, sy, px, py float32) {
	gl.Translatef(px, py, 0)
	gl.Scalef(sx, sy, 1)
	gl.Translatef(-px, -py, 0)
}

func (c *glCanvas) DrawImage(img image.Image, x, y float32) {
	c.tex.upload(img)
	b := img.Bounds()
	c.tex.draw(x, y, float32(b.Dx()), float32(b.Dy()))
}

func (c *glCanvas) Delete() {
	c.tex.delete()
}

// softwareCanvas rasterizes each frame on the CPU and shows the result as a
// single full-window texture.
type softwareCanvas struct {
	*render.ImageCanvas
	tex           texture
	width, height int
}

func newSoftwareCanvas() *softwareCanvas {
	return &softwareCanvas{ImageCanvas: render.NewImageCanvas(image.NewRGBA(image.Rect(0, 0, 1, 1)))}
}

func (c *softwareCanvas) Begin(width, height int) {
	if width != c.width || height != c.height {
		c.width, c.height = width, height
		c.Dst = image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1)))
	}
	c.Reset(color.Black)
}

func (c *softwareCanvas) End() {
	beginFrame(c.width, c.height)
	c.tex.uploadRGBA(c.Dst, true)
	c.tex.draw(0, 0, float32(c.width), float32(c.height))
}

func (c *softwareCanvas) Delete() {
	c.tex.delete()
}

// beginFrame clears the framebuffer and sets up pixel coordinates with the
// origin at the top left.
func beginFrame(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.MatrixMode(gl.PROJECTION)
	gl.LoadIdentity()
	gl.Ortho(0, float64(width), float64(height), 0, -1, 1)
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()
}

// texture caches the last uploaded image.
type texture struct {
	id     uint32
	src    image.Image
	width  int
	height int
}

func (t *texture) upload(img image.Image) {
	if t.id != 0 && t.src == img {
		return
	}
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) || rgba.Stride != 4*rgba.Rect.Dx() {
		b := img.Bounds()
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	t.uploadRGBA(rgba, false)
	t.src = img
}

// uploadRGBA replaces the texture contents, reusing the storage when the
// size is unchanged.
func (t *texture) uploadRGBA(rgba *image.RGBA, nearest bool) {
	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()
	if t.id == 0 {
		gl.GenTextures(1, &t.id)
		gl.BindTexture(gl.TEXTURE_2D, t.id)
		filter := int32(gl.LINEAR)
		if nearest {
			filter = gl.NEAREST
		}
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
	}
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	if w == t.width && h == t.height {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w), int32(h),
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
		return
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(w), int32(h), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	t.width, t.height = w, h
}

// draw paints the texture as a quad with its top-left corner at (x, y).
func (t *texture) draw(x, y, w, h float32) {
	if t.id == 0 {
		return
	}
	gl.Enable(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.Color4f(1, 1, 1, 1)

	gl.Begin(gl.QUADS)
	gl.TexCoord2f(0, 0)
	gl.Vertex2f(x, y)
	gl.TexCoord2f(1, 0)
	gl.Vertex2f(x+w, y)
	gl.TexCoord2f(1, 1)
	gl.Vertex2f(x+w, y+h)
	gl.TexCoord2f(0, 1)
	gl.Vertex2f(x, y+h)
	gl.End()
	gl.Disable(gl.TEXTURE_2D)
}

func (t *texture) delete() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
	t.src = nil
	t.width, t.height = 0, 0
}
