package gc9a01

import (
	"image"
)

// Rotation defines pixel rotation.
type Rotation uint8

// Supported rotations.
const (
	NoRotation Rotation = iota
	Rotate90            // Rotate 90° clock wise
	Rotate180           // Rotate 180°
	Rotate270           // Rotate 270° clock wise
)

func (r Rotation) String() string {
	switch r {
	case NoRotation:
		return "0°"
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return "invalid rotation"
	}
}

// Valid reports whether r is one of the supported rotations.
func (r Rotation) Valid() bool {
	return r <= Rotate270
}

// Swapped reports whether the rotation exchanges width and height.
func (r Rotation) Swapped() bool {
	return r == Rotate90 || r == Rotate270
}

// Size is the logical size of a panel with the given physical size.
func (r Rotation) Size(panel image.Point) image.Point {
	if r.Swapped() {
		return image.Point{X: panel.Y, Y: panel.X}
	}
	return panel
}

// ToPhysical maps a logical coordinate to the panel coordinate it is displayed at.
func (r Rotation) ToPhysical(p, panel image.Point) image.Point {
	switch r {
	case Rotate90:
		return image.Point{X: panel.X - 1 - p.Y, Y: p.X}
	case Rotate180:
		return image.Point{X: panel.X - 1 - p.X, Y: panel.Y - 1 - p.Y}
	case Rotate270:
		return image.Point{X: p.Y, Y: panel.Y - 1 - p.X}
	default:
		return p
	}
}

// ToLogical is the inverse of ToPhysical.
func (r Rotation) ToLogical(p, panel image.Point) image.Point {
	switch r {
	case Rotate90:
		return image.Point{X: p.Y, Y: panel.X - 1 - p.X}
	case Rotate180:
		return image.Point{X: panel.X - 1 - p.X, Y: panel.Y - 1 - p.Y}
	case Rotate270:
		return image.Point{X: panel.Y - 1 - p.Y, Y: p.X}
	default:
		return p
	}
}

// TransformWindow maps a logical box to the physical box covering the same pixels.
func (r Rotation) TransformWindow(b Box, panel image.Point) Box {
	var (
		p0 = r.ToPhysical(image.Point{X: b.MinX, Y: b.MinY}, panel)
		p1 = r.ToPhysical(image.Point{X: b.MaxX, Y: b.MaxY}, panel)
	)
	return Box{
		MinX: min(p0.X, p1.X),
		MinY: min(p0.Y, p1.Y),
		MaxX: max(p0.X, p1.X),
		MaxY: max(p0.Y, p1.Y),
	}
}
