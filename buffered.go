package gc9a01

import (
	"image"
	"time"

	"go.uber.org/zap"
)

// flush sends the dirty box of the framebuffer.
//
// The dirty state is only cleared when every pixel was sent, a failed flush is repeated in full.
func (d *Dev) flush() error {
	dirty, ok := d.fb.Dirty()
	if !ok {
		return nil
	}

	var (
		start = time.Now()
		b     = d.rotation.TransformWindow(dirty, d.panel)
	)
	if err := d.setWindow(b); err != nil {
		return err
	}

	s := d.stream()
	if d.rotation == NoRotation {
		for y := dirty.MinY; y <= dirty.MaxY; y++ {
			s.writeRow(d.fb.Row(y, dirty.MinX, dirty.MaxX))
		}
	} else {
		pix, stride := d.fb.Pix, d.fb.Bounds().Dx()
		d.walk(b, func(l image.Point) {
			s.write(pix[l.Y*stride+l.X])
		})
	}
	if err := s.end(); err != nil {
		d.log.Debug("flush failed", zap.Stringer("box", dirty), zap.Int("sent", s.n), zap.Error(err))
		return err
	}

	d.fb.Clean()
	d.log.Debug("flush",
		zap.Stringer("box", dirty),
		zap.Stringer("window", b),
		zap.Int("bytes", s.n),
		zap.Duration("took", time.Since(start)))
	return nil
}
