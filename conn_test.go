package gc9a01

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/BeatGlow/gc9a01/pixel"
)

// testPin records every level written.
type testPin struct {
	levels []gpio.Level
}

func (p *testPin) Out(level gpio.Level) error {
	p.levels = append(p.levels, level)
	return nil
}

// testLimitedBus is a bus with a maximum transfer size.
type testLimitedBus struct {
	*conntest.Record
	max int
}

func (b testLimitedBus) MaxTxSize() int {
	return b.max
}

func testWrites(r *conntest.Record) [][]byte {
	out := make([][]byte, len(r.Ops))
	for i, op := range r.Ops {
		out[i] = op.W
	}
	return out
}

func TestSPIConnCommand(t *testing.T) {
	var (
		bus   = new(conntest.Record)
		dc    = new(testPin)
		reset = &gpiotest.Pin{N: "RST"}
	)
	c, err := NewSPIConn(bus, &SPIConfig{Reset: reset, DC: dc, BatchSize: 4})
	if err != nil {
		t.Fatal(err)
	}

	if err = c.Command(0x2A, 1, 2, 3, 4, 5); err != nil {
		t.Fatal(err)
	}
	if err = c.Data(6, 7); err != nil {
		t.Fatal(err)
	}

	want := [][]byte{{0x2A}, {1, 2, 3, 4}, {5}, {6, 7}}
	if v := testWrites(bus); fmt.Sprint(v) != fmt.Sprint(want) {
		t.Errorf("expected writes %v, got %v", want, v)
	}
	// DC is only toggled when the level changes.
	if v, want := dc.levels, []gpio.Level{gpio.Low, gpio.High}; fmt.Sprint(v) != fmt.Sprint(want) {
		t.Errorf("expected DC levels %v, got %v", want, v)
	}

	if err = c.Reset(gpio.Low); err != nil {
		t.Fatal(err)
	}
	if reset.L != gpio.Low {
		t.Error("expected reset low")
	}
	if err = c.Close(); err != nil {
		t.Error(err)
	}
}

func TestSPIConnDataLow(t *testing.T) {
	var (
		bus = new(conntest.Record)
		dc  = new(testPin)
		cs  = new(testPin)
	)
	c, err := NewSPIConn(bus, &SPIConfig{Reset: new(testPin), DC: dc, CS: cs, DataLow: true})
	if err != nil {
		t.Fatal(err)
	}
	if err = c.Command(0x36, 0x18); err != nil {
		t.Fatal(err)
	}
	if v, want := dc.levels, []gpio.Level{gpio.High, gpio.Low}; fmt.Sprint(v) != fmt.Sprint(want) {
		t.Errorf("expected DC levels %v, got %v", want, v)
	}
	if v, want := cs.levels, []gpio.Level{gpio.Low, gpio.High}; fmt.Sprint(v) != fmt.Sprint(want) {
		t.Errorf("expected CS levels %v, got %v", want, v)
	}
}

func TestSPIConnMaxTxSize(t *testing.T) {
	bus := testLimitedBus{Record: new(conntest.Record), max: 3}
	c, err := NewSPIConn(bus, &SPIConfig{Reset: new(testPin), DC: new(testPin), BatchSize: 4096})
	if err != nil {
		t.Fatal(err)
	}
	data := []byte{1, 2, 3, 4, 5, 6, 7}
	if err = c.Data(data...); err != nil {
		t.Fatal(err)
	}
	var total []byte
	for _, w := range testWrites(bus.Record) {
		if len(w) > 3 {
			t.Errorf("write of %d bytes exceeds maximum transfer size", len(w))
		}
		total = append(total, w...)
	}
	if !bytes.Equal(total, data) {
		t.Errorf("expected data % x, got % x", data, total)
	}
}

func TestSPIConnInvalidPins(t *testing.T) {
	tests := []struct {
		Name   string
		Config SPIConfig
		Err    error
	}{
		{"no reset", SPIConfig{DC: new(testPin)}, ErrResetPin},
		{"invalid reset", SPIConfig{Reset: gpio.INVALID, DC: new(testPin)}, ErrResetPin},
		{"no dc", SPIConfig{Reset: new(testPin)}, ErrDCPin},
		{"invalid dc", SPIConfig{Reset: new(testPin), DC: gpio.INVALID}, ErrDCPin},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			if _, err := NewSPIConn(new(conntest.Record), &test.Config); !errors.Is(err, test.Err) {
				it.Errorf("expected %v, got %v", test.Err, err)
			}
		})
	}
}

func TestOpenSPIInvalidSpeed(t *testing.T) {
	_, err := OpenSPI(&SPIConfig{Speed: MaxSPISpeed + 1})
	if err == nil {
		t.Fatal("expected error for SPI speed above maximum")
	}
}

func TestSPIConnDriver(t *testing.T) {
	bus := new(conntest.Record)
	c, err := NewSPIConn(bus, &SPIConfig{Reset: new(testPin), DC: new(testPin)})
	if err != nil {
		t.Fatal(err)
	}
	d, err := New(c, &Config{Width: 240, Height: 240, Mode: BufferedMode})
	if err != nil {
		t.Fatal(err)
	}
	if err = d.SetPixel(1, 2, pixel.Red); err != nil {
		t.Fatal(err)
	}
	if err = d.Flush(); err != nil {
		t.Fatal(err)
	}
	want := [][]byte{{0x2A}, {0, 1, 0, 1}, {0x2B}, {0, 2, 0, 2}, {0x2C}, {0xF8, 0x00}}
	if v := testWrites(bus); fmt.Sprint(v) != fmt.Sprint(want) {
		t.Errorf("expected writes %v, got %v", want, v)
	}
}
