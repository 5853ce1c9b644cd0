package gc9a01

import "github.com/BeatGlow/gc9a01/pixel"

// streamSize is the pixel stream buffer size in bytes.
const streamSize = 4096

// pixelStream encodes pixels into the reusable buffer and sends it as data when full.
//
// After the first failure further pixels are dropped and end reports the error.
type pixelStream struct {
	d   *Dev
	buf []byte
	n   int // bytes sent
	err error
}

func (d *Dev) stream() *pixelStream {
	return &pixelStream{d: d, buf: d.buf[:0]}
}

func (s *pixelStream) write(c pixel.CRGB16) {
	if s.err != nil {
		return
	}
	if len(s.buf)+2 > cap(s.buf) {
		s.flush()
	}
	i := len(s.buf)
	s.buf = s.buf[:i+2]
	s.d.order.PutUint16(s.buf[i:], c.V)
}

func (s *pixelStream) writeRow(row []pixel.CRGB16) {
	for _, c := range row {
		s.write(c)
	}
}

// repeat writes c n times.
func (s *pixelStream) repeat(c pixel.CRGB16, n int) {
	for ; n > 0; n-- {
		s.write(c)
	}
}

func (s *pixelStream) flush() {
	if s.err != nil || len(s.buf) == 0 {
		return
	}
	if s.err = s.d.data(s.buf); s.err == nil {
		s.n += len(s.buf)
	}
	s.buf = s.buf[:0]
}

// end sends the remaining pixels.
func (s *pixelStream) end() error {
	s.flush()
	return s.err
}
