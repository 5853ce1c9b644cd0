// Package gpioline drives output pins through the Linux GPIO character device.
package gpioline

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
	"periph.io/x/conn/v3/gpio"
)

// Line is a GPIO output line.
type Line struct {
	name string
	line *gpiocdev.Line
}

// Open requests offset on chip (such as "gpiochip0") as an output, initially low.
func Open(chip string, offset int) (*Line, error) {
	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(0), gpiocdev.WithConsumer("gc9a01"))
	if err != nil {
		return nil, fmt.Errorf("gpioline: request %s line %d: %w", chip, offset, err)
	}
	return &Line{
		name: fmt.Sprintf("%s:%d", chip, offset),
		line: line,
	}, nil
}

func (l *Line) String() string {
	return l.name
}

// Out sets the line level.
func (l *Line) Out(level gpio.Level) error {
	value := 0
	if level == gpio.High {
		value = 1
	}
	return l.line.SetValue(value)
}

// Close releases the line.
func (l *Line) Close() error {
	return l.line.Close()
}
