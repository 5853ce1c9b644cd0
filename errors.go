package gc9a01

import (
	"errors"
	"fmt"

	"github.com/BeatGlow/gc9a01/framebuffer"
)

// Errors
var (
	ErrOutOfBounds         = framebuffer.ErrOutOfBounds
	ErrBufferSize          = framebuffer.ErrBufferSize
	ErrInvalidWindow       = errors.New("gc9a01: invalid addressing window")
	ErrUnsupportedRotation = errors.New("gc9a01: unsupported rotation")
)

// TransportError is a failure reported by the connection to the display.
//
// The driver never retries; Err is the error exactly as the connection returned it.
type TransportError struct {
	// Op is the operation that failed, such as "command 0x2a" or "data".
	Op  string
	Err error
}

func (err *TransportError) Error() string {
	return fmt.Sprintf("gc9a01: %s: %v", err.Op, err.Err)
}

func (err *TransportError) Unwrap() error {
	return err.Err
}
