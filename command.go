package gc9a01

import (
	"fmt"
	"image"
	"time"
)

// Registers (from GC9A01A datasheet).
const (
	gc9a01SWRESET  = 0x01 // Software Reset
	gc9a01SLPIN    = 0x10 // Sleep In
	gc9a01SLPOUT   = 0x11 // Sleep Out
	gc9a01PTLON    = 0x12
	gc9a01NORON    = 0x13
	gc9a01INVOFF   = 0x20 // Display Inversion Off
	gc9a01INVON    = 0x21 // Display Inversion On
	gc9a01DISPOFF  = 0x28 // Display Off
	gc9a01DISPON   = 0x29 // Display On
	gc9a01CASET    = 0x2A // Column Address Set
	gc9a01RASET    = 0x2B // Row Address Set
	gc9a01RAMWR    = 0x2C // Memory Write
	gc9a01TEOFF    = 0x34 // Tearing Effect Line Off
	gc9a01TEON     = 0x35 // Tearing Effect Line On
	gc9a01MADCTL   = 0x36 // Memory Access Control
	gc9a01COLMOD   = 0x3A // Pixel Format Set
	gc9a01RAMWRC   = 0x3C
	gc9a01WRDISBV  = 0x51 // Write Display Brightness
	gc9a01DFUNCTR  = 0xB6 // Display Function Control
	gc9a01VREG1A   = 0xC3 // Vreg1a Voltage Control
	gc9a01VREG1B   = 0xC4 // Vreg1b Voltage Control
	gc9a01VREG2A   = 0xC9 // Vreg2a Voltage Control
	gc9a01FRAMERT  = 0xE8 // Frame Rate
	gc9a01INREGEN2 = 0xEF // Inter Register Enable 2
	gc9a01GAMMA1   = 0xF0 // Set Gamma 1
	gc9a01GAMMA2   = 0xF1 // Set Gamma 2
	gc9a01GAMMA3   = 0xF2 // Set Gamma 3
	gc9a01GAMMA4   = 0xF3 // Set Gamma 4
	gc9a01INREGEN1 = 0xFE // Inter Register Enable 1
)

// Memory Access Control (MADCTL) bit fields.
const (
	_                            byte = 1 << iota // D0: reserved
	_                                             // D1: reserved
	gc9a01DisplayDataLatchOrder                   // D2: MH
	gc9a01BGROrder                                // D3: BGR
	gc9a01LineAddressOrder                        // D4: ML
	gc9a01RowColumnExchange                       // D5: MV
	gc9a01ColumnAddressOrder                      // D6: MX
	gc9a01RowAddressOrder                         // D7: MY
)

// Base memory access control, rotation is applied by the driver.
const gc9a01DefaultMADCTL = gc9a01LineAddressOrder | gc9a01BGROrder

// Settle delays.
const (
	resetDelay    = 50 * time.Millisecond
	sleepInDelay  = 5 * time.Millisecond
	sleepOutDelay = 120 * time.Millisecond
	displayDelay  = 120 * time.Millisecond
)

// Command is a single controller command.
type Command struct {
	// Opcode is the command byte, sent with the DC line in command state.
	Opcode byte

	// Params are the parameter bytes, sent with the DC line in data state.
	Params []byte

	// Delay is the time the controller needs to settle after the command.
	Delay time.Duration
}

func (c Command) String() string {
	if len(c.Params) == 0 {
		return fmt.Sprintf("command 0x%02x", c.Opcode)
	}
	return fmt.Sprintf("command 0x%02x % x", c.Opcode, c.Params)
}

// InitSequence is the power-up sequence for GC9A01 240x240 round panels.
//
// The sequence leaves the controller awake with the display on, 16 bits per pixel.
func InitSequence() []Command {
	return []Command{
		{Opcode: gc9a01INREGEN1},
		{Opcode: gc9a01INREGEN2},
		{Opcode: gc9a01DFUNCTR, Params: []byte{0x00, 0x00}},        // Display Function Control: G1→G32, S1→S360
		{Opcode: gc9a01MADCTL, Params: []byte{gc9a01DefaultMADCTL}}, // Memory Access Control
		{Opcode: gc9a01COLMOD, Params: []byte{0x55}},                // Pixel Format: 16 bits DPI and DBI
		{Opcode: gc9a01VREG1A, Params: []byte{0x13}},
		{Opcode: gc9a01VREG1B, Params: []byte{0x13}},
		{Opcode: gc9a01VREG2A, Params: []byte{0x22}},
		{Opcode: gc9a01GAMMA1, Params: []byte{0x45, 0x09, 0x08, 0x08, 0x26, 0x2A}},
		{Opcode: gc9a01GAMMA2, Params: []byte{0x43, 0x70, 0x72, 0x36, 0x37, 0x6F}},
		{Opcode: gc9a01GAMMA3, Params: []byte{0x45, 0x09, 0x08, 0x08, 0x26, 0x2A}},
		{Opcode: gc9a01GAMMA4, Params: []byte{0x43, 0x70, 0x72, 0x36, 0x37, 0x6F}},
		{Opcode: gc9a01FRAMERT, Params: []byte{0x40}}, // Frame Rate: 8-dot inversion
		{Opcode: gc9a01INVON},
		// Undocumented vendor registers.
		{Opcode: 0x66, Params: []byte{0x3C, 0x00, 0xCD, 0x67, 0x45, 0x45, 0x10, 0x00, 0x00, 0x00}},
		{Opcode: 0x67, Params: []byte{0x00, 0x3C, 0x00, 0x00, 0x00, 0x01, 0x54, 0x10, 0x32, 0x98}},
		{Opcode: 0x74, Params: []byte{0x10, 0x85, 0x80, 0x00, 0x00, 0x4E, 0x00}},
		{Opcode: 0x98, Params: []byte{0x3E, 0x07}},
		{Opcode: gc9a01TEON},
		{Opcode: gc9a01INVON},
		{Opcode: gc9a01SLPOUT, Delay: sleepOutDelay},
		{Opcode: gc9a01DISPON, Delay: displayDelay},
	}
}

// AddressWindow selects the panel memory region written by the next MemoryWrite.
//
// The box is in physical panel coordinates; offset is added to the encoded addresses for panels
// that do not start at the first controller column or row.
func AddressWindow(b Box, panel, offset image.Point) ([]Command, error) {
	if b.MinX < 0 || b.MinY < 0 || !b.Valid() || b.MaxX >= panel.X || b.MaxY >= panel.Y {
		return nil, ErrInvalidWindow
	}
	var (
		x0 = b.MinX + offset.X
		y0 = b.MinY + offset.Y
		x1 = b.MaxX + offset.X
		y1 = b.MaxY + offset.Y
	)
	return []Command{
		{Opcode: gc9a01CASET, Params: []byte{byte(x0 >> 8), byte(x0), byte(x1 >> 8), byte(x1)}}, // Column address
		{Opcode: gc9a01RASET, Params: []byte{byte(y0 >> 8), byte(y0), byte(y1 >> 8), byte(y1)}}, // Row address
	}, nil
}

// MemoryWrite starts a pixel transfer into the current address window.
func MemoryWrite() Command {
	return Command{Opcode: gc9a01RAMWR}
}

// SetBrightness sets the display brightness value.
func SetBrightness(level uint8) Command {
	return Command{Opcode: gc9a01WRDISBV, Params: []byte{level}}
}

// InvertColors toggles display inversion.
func InvertColors(invert bool) Command {
	if invert {
		return Command{Opcode: gc9a01INVON}
	}
	return Command{Opcode: gc9a01INVOFF}
}

// SleepMode enters or leaves sleep mode.
func SleepMode(sleep bool) Command {
	if sleep {
		return Command{Opcode: gc9a01SLPIN, Delay: sleepInDelay}
	}
	return Command{Opcode: gc9a01SLPOUT, Delay: sleepOutDelay}
}

// DisplayState turns the panel output on or off, memory content is retained.
func DisplayState(on bool) Command {
	if on {
		return Command{Opcode: gc9a01DISPON, Delay: displayDelay}
	}
	return Command{Opcode: gc9a01DISPOFF}
}

// MemoryAccessControl sets the memory scan direction and color order.
func MemoryAccessControl(madctl byte) Command {
	return Command{Opcode: gc9a01MADCTL, Params: []byte{madctl}}
}

// TearingEffect toggles the tearing effect output line.
func TearingEffect(on bool) Command {
	if on {
		return Command{Opcode: gc9a01TEON}
	}
	return Command{Opcode: gc9a01TEOFF}
}
