// Package pixel implements the RGB565 color used by GC9A01 panels.
//
// [CRGB16] is compatible with Go's native [color.Color], so any [image.Image] can be converted
// into panel colors through [CRGB16Model].
package pixel
