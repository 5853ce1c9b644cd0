// Package framebuffer provides the in-memory RGB565 pixel store used by the buffered drawing mode.
//
// Every mutation grows a dirty bounding box, so a flush only has to transmit the pixels that
// changed since the previous flush. The framebuffer implements [draw.Image], which lets external
// graphics libraries render into it.
package framebuffer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/BeatGlow/gc9a01/pixel"
)

// Errors
var (
	ErrOutOfBounds = errors.New("gc9a01: out of display bounds")
	ErrBufferSize  = errors.New("gc9a01: invalid buffer size")
)

// Pixel is a single pixel write.
type Pixel struct {
	X, Y  int
	Color pixel.CRGB16
}

// Framebuffer holds the pixels of the panel in row-major order.
type Framebuffer struct {
	// Pix are the pixels, Pix[y*width+x] holds (x, y).
	Pix []pixel.CRGB16

	rect  image.Rectangle
	width int

	dirty   Box
	isDirty bool

	// known is set when the pixels outside the dirty box are known to match the panel memory.
	known bool
}

// New allocates a framebuffer of w×h pixels.
func New(w, h int) *Framebuffer {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("framebuffer: invalid size %dx%d", w, h))
	}
	return &Framebuffer{
		Pix:   make([]pixel.CRGB16, w*h),
		rect:  image.Rect(0, 0, w, h),
		width: w,
	}
}

func (f *Framebuffer) String() string {
	if f.isDirty {
		return fmt.Sprintf("framebuffer %dx%d dirty %s", f.rect.Dx(), f.rect.Dy(), f.dirty)
	}
	return fmt.Sprintf("framebuffer %dx%d", f.rect.Dx(), f.rect.Dy())
}

// Bounds is the framebuffer bounding box (dimensions).
func (f *Framebuffer) Bounds() image.Rectangle {
	return f.rect
}

// ColorModel used by the framebuffer.
func (f *Framebuffer) ColorModel() color.Model {
	return pixel.CRGB16Model
}

// At returns the color of the pixel at (x, y).
func (f *Framebuffer) At(x, y int) color.Color {
	if !f.inBounds(x, y) {
		return color.Transparent
	}
	return f.Pix[y*f.width+x]
}

// Set the pixel color at (x, y), out of bounds pixels are ignored.
func (f *Framebuffer) Set(x, y int, c color.Color) {
	_ = f.SetPixel(x, y, pixel.Convert(c))
}

// Pixel reads back the pixel at (x, y).
func (f *Framebuffer) Pixel(x, y int) (pixel.CRGB16, error) {
	if !f.inBounds(x, y) {
		return pixel.CRGB16{}, ErrOutOfBounds
	}
	return f.Pix[y*f.width+x], nil
}

// Row returns the pixels of row y from column x0 up to and including x1.
//
// The returned slice aliases the framebuffer.
func (f *Framebuffer) Row(y, x0, x1 int) []pixel.CRGB16 {
	offset := y * f.width
	return f.Pix[offset+x0 : offset+x1+1]
}

// SetPixel writes a single pixel, growing the dirty box to include it.
func (f *Framebuffer) SetPixel(x, y int, c pixel.CRGB16) error {
	if !f.inBounds(x, y) {
		return ErrOutOfBounds
	}
	f.Pix[y*f.width+x] = c
	f.mark(BoxAt(x, y))
	return nil
}

// SetPixels writes a batch of pixels in order, so later writes to the same coordinate win.
//
// The batch is validated up front; if any pixel is out of bounds nothing is written.
func (f *Framebuffer) SetPixels(pixels []Pixel) error {
	if len(pixels) == 0 {
		return nil
	}

	box := BoxAt(pixels[0].X, pixels[0].Y)
	for _, p := range pixels {
		if !f.inBounds(p.X, p.Y) {
			return ErrOutOfBounds
		}
		box = box.Union(BoxAt(p.X, p.Y))
	}

	for _, p := range pixels {
		f.Pix[p.Y*f.width+p.X] = p.Color
	}
	f.mark(box)
	return nil
}

// FillSolid fills the rectangle r, clamped to the framebuffer bounds, with a single color.
func (f *Framebuffer) FillSolid(r image.Rectangle, c pixel.CRGB16) {
	r = r.Intersect(f.rect)
	if r.Empty() {
		return
	}

	box := BoxFromRect(r)
	row := f.Row(box.MinY, box.MinX, box.MaxX)
	for i := range row {
		row[i] = c
	}
	for y := box.MinY + 1; y <= box.MaxY; y++ {
		copy(f.Row(y, box.MinX, box.MaxX), row)
	}
	f.mark(box)
}

// FillContiguous fills the rectangle r with colors in row-major order.
func (f *Framebuffer) FillContiguous(r image.Rectangle, colors []pixel.CRGB16) error {
	if r.Empty() {
		return nil
	}
	if !r.In(f.rect) {
		return ErrOutOfBounds
	}

	box := BoxFromRect(r)
	if len(colors) < box.Area() {
		return ErrBufferSize
	}

	w := box.Dx()
	for y := box.MinY; y <= box.MaxY; y++ {
		copy(f.Row(y, box.MinX, box.MaxX), colors[:w])
		colors = colors[w:]
	}
	f.mark(box)
	return nil
}

// Clear resets every pixel to the background color.
//
// The whole framebuffer is marked dirty, unless the panel is known to show the same content
// already: in that case clearing to the color it already has does not schedule a transfer.
func (f *Framebuffer) Clear(background pixel.CRGB16) {
	if f.known && !f.isDirty && f.all(background) {
		return
	}
	for i := range f.Pix {
		f.Pix[i] = background
	}
	f.MarkAll()
}

// Dirty returns the box covering all pixels changed since the last Clean.
func (f *Framebuffer) Dirty() (Box, bool) {
	if f.isDirty && !f.dirty.In(f.rect) {
		panic(fmt.Sprintf("framebuffer: corrupt dirty box %s for %s bounds", f.dirty, f.rect))
	}
	return f.dirty, f.isDirty
}

// Clean resets the dirty state after its region has been transferred.
func (f *Framebuffer) Clean() {
	if f.isDirty && f.dirty == BoxFromRect(f.rect) {
		f.known = true
	}
	f.dirty = Box{}
	f.isDirty = false
}

// MarkAll marks the whole framebuffer dirty.
func (f *Framebuffer) MarkAll() {
	f.dirty = BoxFromRect(f.rect)
	f.isDirty = true
}

// Invalidate records that the panel memory no longer reflects the framebuffer.
func (f *Framebuffer) Invalidate() {
	f.known = false
}

func (f *Framebuffer) mark(box Box) {
	if f.isDirty {
		f.dirty = f.dirty.Union(box)
	} else {
		f.dirty = box
		f.isDirty = true
	}
}

func (f *Framebuffer) all(c pixel.CRGB16) bool {
	for _, v := range f.Pix {
		if v != c {
			return false
		}
	}
	return true
}

func (f *Framebuffer) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.rect.Max.X && y < f.rect.Max.Y
}

// Interface checks.
var _ draw.Image = (*Framebuffer)(nil)
