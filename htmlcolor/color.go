package htmlcolor

import (
	"fmt"
	"math"
)

// Color is an opaque 24-bit sRGB colour produced by the legacy parser.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// String renders the colour as Color(#RRGGBB).
func (c Color) String() string {
	return fmt.Sprintf("Color(#%02X%02X%02X)", c.R, c.G, c.B)
}

// Hex renders the colour as a lowercase #rrggbb CSS value.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA implements image/color.Color. The colour is always fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Brightness is the perceived brightness in [0,255] (ITU-R BT.601 weights).
func (c Color) Brightness() int {
	return int(0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B))
}

// RelativeLuminance follows the WCAG 2 definition.
func (c Color) RelativeLuminance() float64 {
	toLinear := func(channel uint8) float64 {
		v := float64(channel) / 255.0
		if v <= 0.03928 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return 0.2126*toLinear(c.R) + 0.7152*toLinear(c.G) + 0.0722*toLinear(c.B)
}

// ContrastRatio returns the WCAG contrast ratio between c and other, in [1,21].
func (c Color) ContrastRatio(other Color) float64 {
	la := c.RelativeLuminance()
	lb := other.RelativeLuminance()
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}
