package gc9a01

import (
	"image"

	"github.com/BeatGlow/gc9a01/framebuffer"
	"github.com/BeatGlow/gc9a01/pixel"
)

func (d *Dev) inBounds(x, y int) bool {
	size := d.Size()
	return x >= 0 && y >= 0 && x < size.X && y < size.Y
}

func (d *Dev) basicSetPixel(x, y int, c pixel.CRGB16) error {
	if !d.inBounds(x, y) {
		return ErrOutOfBounds
	}
	p := d.rotation.ToPhysical(image.Pt(x, y), d.panel)
	if err := d.setWindow(framebuffer.BoxAt(p.X, p.Y)); err != nil {
		return err
	}
	s := d.stream()
	s.write(c)
	return s.end()
}

// basicSetPixels sends runs of pixels that are adjacent on a physical row in a single window.
func (d *Dev) basicSetPixels(pixels []Pixel) error {
	for _, p := range pixels {
		if !d.inBounds(p.X, p.Y) {
			return ErrOutOfBounds
		}
	}

	for len(pixels) > 0 {
		var (
			start = d.rotation.ToPhysical(image.Pt(pixels[0].X, pixels[0].Y), d.panel)
			n     = 1
		)
		for n < len(pixels) {
			next := d.rotation.ToPhysical(image.Pt(pixels[n].X, pixels[n].Y), d.panel)
			if next.Y != start.Y || next.X != start.X+n {
				break
			}
			n++
		}

		b := Box{MinX: start.X, MinY: start.Y, MaxX: start.X + n - 1, MaxY: start.Y}
		if err := d.setWindow(b); err != nil {
			return err
		}
		s := d.stream()
		for _, p := range pixels[:n] {
			s.write(p.Color)
		}
		if err := s.end(); err != nil {
			return err
		}
		pixels = pixels[n:]
	}
	return nil
}

func (d *Dev) basicFillSolid(r image.Rectangle, c pixel.CRGB16) error {
	r = r.Intersect(d.Bounds())
	if r.Empty() {
		return nil
	}
	b := d.rotation.TransformWindow(framebuffer.BoxFromRect(r), d.panel)
	if err := d.setWindow(b); err != nil {
		return err
	}
	s := d.stream()
	s.repeat(c, b.Area())
	return s.end()
}

func (d *Dev) basicFillContiguous(r image.Rectangle, colors []pixel.CRGB16) error {
	if r.Empty() {
		return nil
	}
	if !r.In(d.Bounds()) {
		return ErrOutOfBounds
	}
	if len(colors) < r.Dx()*r.Dy() {
		return ErrBufferSize
	}

	b := d.rotation.TransformWindow(framebuffer.BoxFromRect(r), d.panel)
	if err := d.setWindow(b); err != nil {
		return err
	}
	s := d.stream()
	if d.rotation == NoRotation {
		w := r.Dx()
		for y := 0; y < r.Dy(); y++ {
			s.writeRow(colors[y*w : y*w+w])
		}
		return s.end()
	}
	d.walk(b, func(l image.Point) {
		s.write(colors[(l.Y-r.Min.Y)*r.Dx()+l.X-r.Min.X])
	})
	return s.end()
}

// walk calls fn with the logical coordinate of every pixel in the physical box, in the order
// the controller fills its memory window.
func (d *Dev) walk(b Box, fn func(image.Point)) {
	for y := b.MinY; y <= b.MaxY; y++ {
		for x := b.MinX; x <= b.MaxX; x++ {
			fn(d.rotation.ToLogical(image.Pt(x, y), d.panel))
		}
	}
}
