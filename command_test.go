package gc9a01

import (
	"bytes"
	"errors"
	"image"
	"testing"
	"time"
)

func TestInitSequence(t *testing.T) {
	seq := InitSequence()
	if len(seq) != 22 {
		t.Fatalf("expected 22 commands, got %d", len(seq))
	}
	if v := seq[0].Opcode; v != 0xFE {
		t.Errorf("expected first command 0xfe, got %#02x", v)
	}
	if v := seq[len(seq)-1]; v.Opcode != 0x29 || v.Delay != 120*time.Millisecond {
		t.Errorf("expected display on with 120ms delay last, got %s (%s)", v, v.Delay)
	}
	if v := seq[len(seq)-2]; v.Opcode != 0x11 || v.Delay != 120*time.Millisecond {
		t.Errorf("expected sleep out with 120ms delay, got %s (%s)", v, v.Delay)
	}

	params := map[byte][]byte{
		0xB6: {0x00, 0x00},
		0x36: {0x18},
		0x3A: {0x55},
		0xE8: {0x40},
		0x98: {0x3E, 0x07},
	}
	for _, cmd := range seq {
		if want, ok := params[cmd.Opcode]; ok && !bytes.Equal(cmd.Params, want) {
			t.Errorf("%s: expected parameters % x", cmd, want)
		}
		if cmd.Delay != 0 && cmd.Opcode != 0x11 && cmd.Opcode != 0x29 {
			t.Errorf("%s: unexpected delay %s", cmd, cmd.Delay)
		}
	}

	// Every call returns a fresh copy.
	seq[3].Params[0] = 0xFF
	seq[0].Opcode = 0x00
	if again := InitSequence(); again[3].Params[0] != 0x18 || again[0].Opcode != 0xFE {
		t.Error("expected init sequence to be unaffected by changes to a previous copy")
	}
}

func TestAddressWindow(t *testing.T) {
	panel := image.Pt(240, 240)
	tests := []struct {
		Name        string
		Box         Box
		Offset      image.Point
		Column, Row []byte
	}{
		{"pixel", Box{MinX: 10, MinY: 10, MaxX: 10, MaxY: 10}, image.Point{}, []byte{0, 10, 0, 10}, []byte{0, 10, 0, 10}},
		{"row", Box{MinX: 10, MinY: 10, MaxX: 12, MaxY: 10}, image.Point{}, []byte{0, 10, 0, 12}, []byte{0, 10, 0, 10}},
		{"panel", Box{MaxX: 239, MaxY: 239}, image.Point{}, []byte{0, 0, 0, 239}, []byte{0, 0, 0, 239}},
		{"offset", Box{MaxX: 239, MaxY: 239}, image.Pt(80, 40), []byte{0, 80, 0x01, 0x3F}, []byte{0, 40, 0x01, 0x17}},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			cmds, err := AddressWindow(test.Box, panel, test.Offset)
			if err != nil {
				it.Fatal(err)
			}
			if len(cmds) != 2 {
				it.Fatalf("expected 2 commands, got %d", len(cmds))
			}
			if cmds[0].Opcode != 0x2A || !bytes.Equal(cmds[0].Params, test.Column) {
				it.Errorf("expected column address 0x2a % x, got %s", test.Column, cmds[0])
			}
			if cmds[1].Opcode != 0x2B || !bytes.Equal(cmds[1].Params, test.Row) {
				it.Errorf("expected row address 0x2b % x, got %s", test.Row, cmds[1])
			}
		})
	}
}

func TestAddressWindowInvalid(t *testing.T) {
	panel := image.Pt(240, 240)
	for _, b := range []Box{
		{MinX: 5, MinY: 5, MaxX: 3, MaxY: 3},
		{MinX: 5, MinY: 5, MaxX: 6, MaxY: 3},
		{MinX: -1, MaxX: 10, MaxY: 10},
		{MinY: -1, MaxX: 10, MaxY: 10},
		{MaxX: 240, MaxY: 10},
		{MaxX: 10, MaxY: 240},
	} {
		t.Run(b.String(), func(it *testing.T) {
			cmds, err := AddressWindow(b, panel, image.Point{})
			if !errors.Is(err, ErrInvalidWindow) {
				it.Errorf("expected %v, got %v", ErrInvalidWindow, err)
			}
			if len(cmds) != 0 {
				it.Errorf("expected no commands, got %v", cmds)
			}
		})
	}
}

func TestCommands(t *testing.T) {
	tests := []struct {
		Name    string
		Command Command
		Opcode  byte
		Params  []byte
		Delay   time.Duration
	}{
		{"memory write", MemoryWrite(), 0x2C, nil, 0},
		{"brightness", SetBrightness(BrightnessBright), 0x51, []byte{0x9F}, 0},
		{"invert on", InvertColors(true), 0x21, nil, 0},
		{"invert off", InvertColors(false), 0x20, nil, 0},
		{"sleep in", SleepMode(true), 0x10, nil, 5 * time.Millisecond},
		{"sleep out", SleepMode(false), 0x11, nil, 120 * time.Millisecond},
		{"display on", DisplayState(true), 0x29, nil, 120 * time.Millisecond},
		{"display off", DisplayState(false), 0x28, nil, 0},
		{"madctl", MemoryAccessControl(0x18), 0x36, []byte{0x18}, 0},
		{"tearing on", TearingEffect(true), 0x35, nil, 0},
		{"tearing off", TearingEffect(false), 0x34, nil, 0},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			if v := test.Command.Opcode; v != test.Opcode {
				it.Errorf("expected opcode %#02x, got %#02x", test.Opcode, v)
			}
			if v := test.Command.Params; !bytes.Equal(v, test.Params) {
				it.Errorf("expected parameters % x, got % x", test.Params, v)
			}
			if v := test.Command.Delay; v != test.Delay {
				it.Errorf("expected delay %s, got %s", test.Delay, v)
			}
		})
	}
}
