package framebuffer

import (
	"fmt"
	"image"
)

// Box is a rectangle with inclusive corners, the way the controller addresses memory.
type Box struct {
	MinX, MinY int
	MaxX, MaxY int
}

// BoxAt is the box covering the single pixel (x, y).
func BoxAt(x, y int) Box {
	return Box{MinX: x, MinY: y, MaxX: x, MaxY: y}
}

// BoxFromRect converts a half-open rectangle. The rectangle must not be empty.
func BoxFromRect(r image.Rectangle) Box {
	return Box{MinX: r.Min.X, MinY: r.Min.Y, MaxX: r.Max.X - 1, MaxY: r.Max.Y - 1}
}

func (b Box) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", b.MinX, b.MinY, b.MaxX, b.MaxY)
}

// Dx is the box width.
func (b Box) Dx() int {
	return b.MaxX - b.MinX + 1
}

// Dy is the box height.
func (b Box) Dy() int {
	return b.MaxY - b.MinY + 1
}

// Area is the number of pixels covered by the box.
func (b Box) Area() int {
	return b.Dx() * b.Dy()
}

// Valid reports whether the corners are ordered.
func (b Box) Valid() bool {
	return b.MinX <= b.MaxX && b.MinY <= b.MaxY
}

// Union is the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	return Box{
		MinX: min(b.MinX, o.MinX),
		MinY: min(b.MinY, o.MinY),
		MaxX: max(b.MaxX, o.MaxX),
		MaxY: max(b.MaxY, o.MaxY),
	}
}

// Contains reports whether (x, y) lies inside the box.
func (b Box) Contains(x, y int) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// In reports whether b lies fully inside the rectangle r.
func (b Box) In(r image.Rectangle) bool {
	return b.Valid() && b.Rectangle().In(r)
}

// Rectangle converts the box to a half-open rectangle.
func (b Box) Rectangle() image.Rectangle {
	return image.Rect(b.MinX, b.MinY, b.MaxX+1, b.MaxY+1)
}
