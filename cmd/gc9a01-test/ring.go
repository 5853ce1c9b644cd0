package main

import (
	"image"
	"image/color"
	"image/draw"
)

// ring outlines the largest circle inside img, the visible edge of a round panel.
func ring(dst draw.Image, c color.Color) {
	var (
		r      = dst.Bounds()
		radius = min(r.Dx(), r.Dy())/2 - 1
		center = image.Pt(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2)
	)
	circle(dst, center, radius, c)
}

// circle draws a circle outline with the midpoint algorithm.
func circle(dst draw.Image, center image.Point, radius int, c color.Color) {
	var (
		f    = 1 - radius
		ddFx = 1
		ddFy = -2 * radius
		x    = 0
		y    = radius
	)
	plot := func(dx, dy int) {
		dst.Set(center.X+dx, center.Y+dy, c)
		dst.Set(center.X-dx, center.Y+dy, c)
		dst.Set(center.X+dx, center.Y-dy, c)
		dst.Set(center.X-dx, center.Y-dy, c)
		dst.Set(center.X+dy, center.Y+dx, c)
		dst.Set(center.X-dy, center.Y+dx, c)
		dst.Set(center.X+dy, center.Y-dx, c)
		dst.Set(center.X-dy, center.Y-dx, c)
	}
	plot(x, y)
	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}
		x++
		ddFx += 2
		f += ddFx
		plot(x, y)
	}
}
