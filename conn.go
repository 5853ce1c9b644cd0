package gc9a01

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// Conn errors.
var (
	ErrResetPin = errors.New("gc9a01: reset GPIO pin is invalid")
	ErrDCPin    = errors.New("gc9a01: data/command (DC) GPIO pin is invalid")
)

// MaxSPISpeed is the fastest bus clock accepted by OpenSPI.
const MaxSPISpeed = 100 * physic.MegaHertz

// Conn is the connection interface for communicating with hardware.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// Reset sets the reset pin to the provided level.
	Reset(gpio.Level) error

	// Command sends a command byte with optional arguments.
	Command(byte, ...byte) error

	// Data sends data bytes.
	Data(...byte) error
}

// OutputPin is a GPIO line driven by the driver, such as reset, DC or backlight.
type OutputPin interface {
	Out(gpio.Level) error
}

// SPIConfig describes the SPI bus configuration.
type SPIConfig struct {
	// Port is the SPI port name, empty selects the first port available.
	Port string

	// Speed is the bus clock.
	Speed physic.Frequency

	// DataLow inverts the DC line, so data is sent with DC low.
	DataLow bool

	// BatchSize is the largest single bus transfer.
	BatchSize uint

	// Reset pin, defaults to GPIO25.
	Reset OutputPin

	// DC (data/command) pin, defaults to GPIO24.
	DC OutputPin

	// CS is an optional chip select pin, for ports without hardware chip select.
	CS OutputPin

	// Logger for debug output.
	Logger *zap.Logger
}

// DefaultSPIConfig are the default configuration values.
var DefaultSPIConfig = SPIConfig{
	Speed:     40 * physic.MegaHertz,
	BatchSize: 4096,
}

// Default pin names, resolved when the host drivers are loaded.
const (
	DefaultResetPin = "GPIO25"
	DefaultDCPin    = "GPIO24"
)

type spiConn struct {
	port      spi.PortCloser
	bus       conn.Conn
	log       *zap.Logger
	reset     OutputPin
	dc        OutputPin
	dcLevel   gpio.Level
	dcKnown   bool
	cs        OutputPin
	dataLow   bool
	batchSize int
}

// OpenSPI opens a SPI port and connects to the display in mode 0, 8 bits per word.
//
// The host drivers must be initialized (host.Init) before calling OpenSPI.
func OpenSPI(config *SPIConfig) (Conn, error) {
	if config == nil {
		config = new(SPIConfig)
		*config = DefaultSPIConfig
	}

	if config.Speed == 0 {
		config.Speed = DefaultSPIConfig.Speed
	}
	if config.Speed < 0 || config.Speed > MaxSPISpeed {
		return nil, fmt.Errorf("gc9a01: invalid SPI speed %s", config.Speed)
	}
	if config.Reset == nil {
		config.Reset = gpioreg.ByName(DefaultResetPin)
	}
	if config.DC == nil {
		config.DC = gpioreg.ByName(DefaultDCPin)
	}

	port, err := spireg.Open(config.Port)
	if err != nil {
		return nil, err
	}

	bus, err := port.Connect(config.Speed, spi.Mode0, 8)
	if err != nil {
		_ = port.Close()
		return nil, err
	}

	c, err := NewSPIConn(bus, config)
	if err != nil {
		_ = port.Close()
		return nil, err
	}
	c.(*spiConn).port = port
	return c, nil
}

// NewSPIConn wraps an already connected bus.
func NewSPIConn(bus conn.Conn, config *SPIConfig) (Conn, error) {
	if config == nil {
		config = new(SPIConfig)
		*config = DefaultSPIConfig
	}
	if config.Reset == nil || config.Reset == gpio.INVALID {
		return nil, ErrResetPin
	}
	if config.DC == nil || config.DC == gpio.INVALID {
		return nil, ErrDCPin
	}

	batchSize := int(config.BatchSize)
	if batchSize == 0 {
		batchSize = int(DefaultSPIConfig.BatchSize)
	}
	if l, ok := bus.(conn.Limits); ok {
		if limit := l.MaxTxSize(); limit > 0 && limit < batchSize {
			batchSize = limit
		}
	}

	log := config.Logger
	if log == nil {
		log = newLogger()
	}

	return &spiConn{
		bus:       bus,
		log:       log.With(zap.Stringer("bus", bus)),
		batchSize: batchSize,
		dataLow:   config.DataLow,
		reset:     config.Reset,
		dc:        config.DC,
		cs:        config.CS,
	}, nil
}

func (c *spiConn) String() string {
	return fmt.Sprintf("SPI bus %s", c.bus)
}

func (c *spiConn) Close() error {
	if c.port == nil {
		return nil
	}
	return c.port.Close()
}

func (c *spiConn) Reset(level gpio.Level) error {
	return c.reset.Out(level)
}

func (c *spiConn) updateDC(level gpio.Level) error {
	if !c.dcKnown || c.dcLevel != level {
		if err := c.dc.Out(level); err != nil {
			c.dcKnown = false
			return err
		}
		c.dcLevel = level
		c.dcKnown = true
	}
	return nil
}

func (c *spiConn) updateCS(level gpio.Level) error {
	if c.cs == nil {
		return nil
	}
	return c.cs.Out(level)
}

func (c *spiConn) Command(cmnd byte, data ...byte) (err error) {
	if err = c.updateCS(gpio.Low); err != nil {
		return
	}
	if err = c.updateDC(gpio.Level(c.dataLow)); err != nil {
		return
	}
	if err = c.bus.Tx([]byte{cmnd}, nil); err != nil {
		return
	}
	if len(data) > 0 {
		if err = c.updateDC(gpio.Level(!c.dataLow)); err != nil {
			return
		}
		if err = c.writeChunked(data); err != nil {
			return
		}
	}
	return c.updateCS(gpio.High)
}

func (c *spiConn) Data(data ...byte) (err error) {
	if len(data) == 0 {
		return
	}
	if err = c.updateDC(gpio.Level(!c.dataLow)); err != nil {
		return
	}
	if err = c.updateCS(gpio.Low); err != nil {
		return
	}
	if err = c.writeChunked(data); err != nil {
		return
	}
	return c.updateCS(gpio.High)
}

func (c *spiConn) writeChunked(data []byte) (err error) {
	if len(data) <= c.batchSize {
		return c.bus.Tx(data, nil)
	}

	c.log.Debug("chunked write",
		zap.Int("bytes", len(data)),
		zap.Int("chunks", (len(data)+c.batchSize-1)/c.batchSize))
	for len(data) > 0 {
		n := min(len(data), c.batchSize)
		if err = c.bus.Tx(data[:n], nil); err != nil {
			return
		}
		data = data[n:]
	}
	return
}
