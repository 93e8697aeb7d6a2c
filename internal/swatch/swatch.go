// Package swatch renders a parsed colour as a small solid image.
package swatch

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"legacycolor/htmlcolor"
)

// Format selects the image encoding.
type Format string

const (
	FormatPNG Format = "png"
	FormatBMP Format = "bmp"
)

var (
	black = htmlcolor.Color{}
	white = htmlcolor.Color{R: 255, G: 255, B: 255}
)

// Render fills a size×size square with c and outlines it in black or white,
// whichever contrasts more with c. Sizes below 3 get no border.
func Render(c htmlcolor.Color, size int) *image.RGBA {
	if size < 1 {
		size = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	if size >= 3 {
		border := black
		if c.ContrastRatio(white) > c.ContrastRatio(black) {
			border = white
		}
		draw.Draw(img, img.Bounds(), image.NewUniform(border), image.Point{}, draw.Src)
		draw.Draw(img, img.Bounds().Inset(1), image.NewUniform(c), image.Point{}, draw.Src)
		return img
	}
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// FormatFromPath picks the encoding from a file extension; anything other
// than .bmp is PNG.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".bmp") {
		return FormatBMP
	}
	return FormatPNG
}

// Encode writes img in format.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPNG, "":
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encode png: %w", err)
		}
	case FormatBMP:
		if err := bmp.Encode(w, img); err != nil {
			return fmt.Errorf("encode bmp: %w", err)
		}
	default:
		return fmt.Errorf("unsupported swatch format %q", format)
	}
	return nil
}
