// Package gc9a01 drives GC9A01 round RGB565 displays over a four-wire SPI connection.
//
// A [Dev] runs in one of two modes. In basic mode every drawing call is transmitted
// immediately. In buffered mode drawing goes into a software framebuffer and [Dev.Flush]
// transmits only the rectangle that changed since the previous flush.
//
// A Dev is not safe for concurrent use.
package gc9a01

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/draw"
	"os"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/gc9a01/framebuffer"
	"github.com/BeatGlow/gc9a01/pixel"
)

const (
	gc9a01DefaultWidth  = 240
	gc9a01DefaultHeight = 240
)

// Box is an inclusive pixel rectangle, see [framebuffer.Box].
type Box = framebuffer.Box

// Pixel is a single pixel write, see [framebuffer.Pixel].
type Pixel = framebuffer.Pixel

// Mode selects how drawing operations reach the panel.
type Mode uint8

// Supported modes.
const (
	BasicMode    Mode = iota // Transmit every drawing operation immediately
	BufferedMode             // Draw into a framebuffer, transmit on Flush
)

func (m Mode) String() string {
	switch m {
	case BasicMode:
		return "basic"
	case BufferedMode:
		return "buffered"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// Brightness presets.
const (
	BrightnessDimmest   uint8 = 0x00
	BrightnessDim       uint8 = 0x2F
	BrightnessNormal    uint8 = 0x5F
	BrightnessBright    uint8 = 0x9F
	BrightnessBrightest uint8 = 0xFF
)

// Config for the display.
type Config struct {
	// Width and Height are the physical panel dimensions.
	Width, Height int

	// ColOffset and RowOffset are added to the addressing window, for panels that are not
	// mapped at the start of the controller memory.
	ColOffset, RowOffset int

	// Rotation is the initial rotation.
	Rotation Rotation

	// Mode is fixed for the lifetime of the device.
	Mode Mode

	// Brightness set during Init, zero selects BrightnessNormal.
	Brightness uint8

	// ByteOrder of the pixel stream, nil selects big endian.
	ByteOrder binary.ByteOrder

	// Backlight is an optional backlight enable pin.
	Backlight OutputPin

	// Logger for debug output, nil disables logging unless GC9A01_DEBUG is set.
	Logger *zap.Logger

	// Sleep waits for the controller to settle, nil selects time.Sleep.
	Sleep func(time.Duration)
}

// DefaultConfig is the configuration for a 240x240 panel.
var DefaultConfig = Config{
	Width:      gc9a01DefaultWidth,
	Height:     gc9a01DefaultHeight,
	Rotation:   NoRotation,
	Mode:       BufferedMode,
	Brightness: BrightnessNormal,
	ByteOrder:  binary.BigEndian,
}

// Dev is a GC9A01 display.
type Dev struct {
	c         Conn
	log       *zap.Logger
	sleep     func(time.Duration)
	backlight OutputPin

	mode       Mode
	panel      image.Point // physical size
	offset     image.Point
	rotation   Rotation
	order      binary.ByteOrder
	brightness uint8

	// Last address window sent to the controller.
	window      Box
	windowValid bool

	// Buffered mode only.
	fb *framebuffer.Framebuffer

	// Reusable pixel stream buffer.
	buf []byte
}

// New creates a display on the connection. Nothing is sent until Init.
func New(c Conn, config *Config) (*Dev, error) {
	if config == nil {
		config = new(Config)
		*config = DefaultConfig
	}

	if config.Width <= 0 || config.Height <= 0 {
		return nil, fmt.Errorf("gc9a01: invalid size %dx%d", config.Width, config.Height)
	}
	if config.ColOffset < 0 || config.RowOffset < 0 ||
		config.Width+config.ColOffset > 0x10000 || config.Height+config.RowOffset > 0x10000 {
		return nil, fmt.Errorf("gc9a01: invalid offset %d,%d for size %dx%d",
			config.ColOffset, config.RowOffset, config.Width, config.Height)
	}
	if !config.Rotation.Valid() {
		return nil, ErrUnsupportedRotation
	}
	if config.Mode != BasicMode && config.Mode != BufferedMode {
		return nil, fmt.Errorf("gc9a01: invalid mode %s", config.Mode)
	}

	d := &Dev{
		c:          c,
		log:        config.Logger,
		sleep:      config.Sleep,
		backlight:  config.Backlight,
		mode:       config.Mode,
		panel:      image.Pt(config.Width, config.Height),
		offset:     image.Pt(config.ColOffset, config.RowOffset),
		rotation:   config.Rotation,
		order:      config.ByteOrder,
		brightness: config.Brightness,
		buf:        make([]byte, 0, streamSize),
	}
	if d.log == nil {
		d.log = newLogger()
	}
	if d.sleep == nil {
		d.sleep = time.Sleep
	}
	if d.order == nil {
		d.order = binary.BigEndian
	}
	if d.brightness == 0 {
		d.brightness = BrightnessNormal
	}
	if d.mode == BufferedMode {
		size := d.Size()
		d.fb = framebuffer.New(size.X, size.Y)
	}
	d.log = d.log.With(zap.Stringer("display", d))

	return d, nil
}

// newLogger returns the default logger, a development logger if GC9A01_DEBUG is set.
func newLogger() *zap.Logger {
	if os.Getenv("GC9A01_DEBUG") == "" {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func (d *Dev) String() string {
	return fmt.Sprintf("GC9A01 %dx%d", d.panel.X, d.panel.Y)
}

// Init resets the controller and sends the power-up sequence.
//
// In buffered mode the framebuffer is cleared to black and marked dirty, the next Flush
// transmits the whole panel.
func (d *Dev) Init() (err error) {
	d.windowValid = false
	d.log.Debug("init",
		zap.Stringer("mode", d.mode),
		zap.Stringer("rotation", d.rotation),
		zap.Uint8("brightness", d.brightness))

	// reset the device.
	for _, level := range []gpio.Level{gpio.High, gpio.Low, gpio.High} {
		if err = d.c.Reset(level); err != nil {
			return &TransportError{Op: "reset", Err: err}
		}
		d.sleep(resetDelay)
	}

	for _, cmd := range InitSequence() {
		if err = d.send(cmd); err != nil {
			return
		}
	}
	if err = d.send(MemoryAccessControl(gc9a01DefaultMADCTL)); err != nil {
		return
	}
	if err = d.send(SetBrightness(d.brightness)); err != nil {
		return
	}
	if d.backlight != nil {
		if err = d.backlight.Out(gpio.High); err != nil {
			return &TransportError{Op: "backlight", Err: err}
		}
	}

	if d.fb != nil {
		d.fb.Invalidate()
		d.fb.Clear(pixel.Black)
	}
	return
}

// Close turns the display and backlight off and closes the connection.
func (d *Dev) Close() error {
	err := d.send(DisplayState(false))
	if d.backlight != nil {
		if berr := d.backlight.Out(gpio.Low); berr != nil {
			err = multierr.Append(err, &TransportError{Op: "backlight", Err: berr})
		}
	}
	return multierr.Append(err, d.c.Close())
}

// Mode is the drawing mode.
func (d *Dev) Mode() Mode {
	return d.mode
}

// Rotation is the current rotation.
func (d *Dev) Rotation() Rotation {
	return d.rotation
}

// Size is the logical size, after rotation.
func (d *Dev) Size() image.Point {
	return d.rotation.Size(d.panel)
}

// Bounds is the logical drawing area.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rectangle{Max: d.Size()}
}

// Image is the framebuffer drawing surface in buffered mode, nil in basic mode.
//
// Changing the rotation of a panel that is not square replaces the framebuffer.
func (d *Dev) Image() draw.Image {
	if d.fb == nil {
		return nil
	}
	return d.fb
}

// SetRotation changes the rotation of all subsequent drawing.
//
// In buffered mode the whole panel is retransmitted by the next Flush. On a panel that is not
// square the framebuffer is reallocated and its content is lost.
func (d *Dev) SetRotation(rotation Rotation) error {
	if !rotation.Valid() {
		return ErrUnsupportedRotation
	}
	if rotation == d.rotation {
		return nil
	}

	d.log.Debug("rotate", zap.Stringer("from", d.rotation), zap.Stringer("to", rotation))
	d.rotation = rotation
	d.windowValid = false

	if d.fb != nil {
		if size := d.Size(); size != d.fb.Bounds().Size() {
			d.fb = framebuffer.New(size.X, size.Y)
		}
		d.fb.Invalidate()
		d.fb.MarkAll()
	}
	return nil
}

// SetWriteMode sets the byte order of transmitted pixels.
func (d *Dev) SetWriteMode(order binary.ByteOrder) {
	if order == nil {
		order = binary.BigEndian
	}
	d.order = order
}

// SetBrightness sets the display brightness.
func (d *Dev) SetBrightness(level uint8) error {
	if err := d.send(SetBrightness(level)); err != nil {
		return err
	}
	d.brightness = level
	return nil
}

// Invert toggles color inversion.
func (d *Dev) Invert(invert bool) error {
	return d.send(InvertColors(invert))
}

// Sleep enters or leaves the controller sleep mode.
func (d *Dev) Sleep(sleep bool) error {
	return d.send(SleepMode(sleep))
}

// Show turns the display output on or off.
func (d *Dev) Show(show bool) error {
	return d.send(DisplayState(show))
}

// SetWindow selects the physical panel area (x0, y0)-(x1, y1), inclusive, and starts a
// memory write.
func (d *Dev) SetWindow(x0, y0, x1, y1 int) error {
	return d.setWindow(Box{MinX: x0, MinY: y0, MaxX: x1, MaxY: y1})
}

// DrawBuffer writes a full panel of raw pixel bytes, as they are sent on the wire.
func (d *Dev) DrawBuffer(raw []byte) error {
	if len(raw) != d.panel.X*d.panel.Y*2 {
		return ErrBufferSize
	}
	if d.fb != nil {
		d.fb.Invalidate()
	}
	if err := d.setWindow(Box{MaxX: d.panel.X - 1, MaxY: d.panel.Y - 1}); err != nil {
		return err
	}
	return d.data(raw)
}

// SetPixel sets the pixel at logical coordinate (x, y).
func (d *Dev) SetPixel(x, y int, c pixel.CRGB16) error {
	if d.fb != nil {
		return d.fb.SetPixel(x, y, c)
	}
	return d.basicSetPixel(x, y, c)
}

// SetPixels sets a batch of pixels; if any pixel is out of bounds nothing is drawn.
func (d *Dev) SetPixels(pixels []Pixel) error {
	if d.fb != nil {
		return d.fb.SetPixels(pixels)
	}
	return d.basicSetPixels(pixels)
}

// FillSolid fills the rectangle, clamped to the logical bounds, with one color.
func (d *Dev) FillSolid(r image.Rectangle, c pixel.CRGB16) error {
	if d.fb != nil {
		d.fb.FillSolid(r, c)
		return nil
	}
	return d.basicFillSolid(r, c)
}

// FillContiguous fills the rectangle with colors in logical row-major order.
func (d *Dev) FillContiguous(r image.Rectangle, colors []pixel.CRGB16) error {
	if d.fb != nil {
		return d.fb.FillContiguous(r, colors)
	}
	return d.basicFillContiguous(r, colors)
}

// Clear sets every pixel to the background color.
func (d *Dev) Clear(background pixel.CRGB16) error {
	if d.fb != nil {
		d.fb.Clear(background)
		return nil
	}
	return d.basicFillSolid(d.Bounds(), background)
}

// Flush transmits the changed part of the framebuffer. It does nothing in basic mode.
func (d *Dev) Flush() error {
	if d.fb == nil {
		return nil
	}
	return d.flush()
}

// setWindow sends the address window, unless it is the window last sent, and a memory write.
func (d *Dev) setWindow(b Box) error {
	if !d.windowValid || d.window != b {
		commands, err := AddressWindow(b, d.panel, d.offset)
		if err != nil {
			return err
		}
		d.windowValid = false
		for _, cmd := range commands {
			if err = d.send(cmd); err != nil {
				return err
			}
		}
		d.window = b
		d.windowValid = true
	}
	return d.send(MemoryWrite())
}

func (d *Dev) send(cmd Command) error {
	if err := d.c.Command(cmd.Opcode, cmd.Params...); err != nil {
		d.windowValid = false
		return &TransportError{Op: cmd.String(), Err: err}
	}
	if cmd.Delay > 0 {
		d.sleep(cmd.Delay)
	}
	return nil
}

func (d *Dev) data(data []byte) error {
	if err := d.c.Data(data...); err != nil {
		d.windowValid = false
		return &TransportError{Op: "data", Err: err}
	}
	return nil
}
