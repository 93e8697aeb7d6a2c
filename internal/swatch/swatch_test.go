package swatch

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"legacycolor/htmlcolor"
)

func TestRender(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		in     htmlcolor.Color
		border color.RGBA
	}{
		{"dark_gets_white_border", htmlcolor.Color{R: 0x10, G: 0x10, B: 0x40}, color.RGBA{255, 255, 255, 255}},
		{"light_gets_black_border", htmlcolor.Color{R: 0xf0, G: 0xf0, B: 0xa0}, color.RGBA{0, 0, 0, 255}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			img := Render(tc.in, 16)
			assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())
			assert.Equal(t, color.RGBA{tc.in.R, tc.in.G, tc.in.B, 255}, img.RGBAAt(8, 8))
			assert.Equal(t, tc.border, img.RGBAAt(0, 0))
			assert.Equal(t, tc.border, img.RGBAAt(15, 15))
		})
	}
}

func TestRenderTiny(t *testing.T) {
	t.Parallel()
	c := htmlcolor.Color{R: 1, G: 2, B: 3}
	img := Render(c, 0)
	assert.Equal(t, image.Rect(0, 0, 1, 1), img.Bounds())
	assert.Equal(t, color.RGBA{1, 2, 3, 255}, img.RGBAAt(0, 0))
}

func TestEncodeRoundTrip(t *testing.T) {
	t.Parallel()
	c := htmlcolor.Color{R: 0x33, G: 0x66, B: 0x99}
	img := Render(c, 8)

	var pngBuf bytes.Buffer
	require.NoError(t, Encode(&pngBuf, img, FormatPNG))
	decoded, err := png.Decode(&pngBuf)
	require.NoError(t, err)
	r, g, b, _ := decoded.At(4, 4).RGBA()
	assert.Equal(t, []uint32{0x3333, 0x6666, 0x9999}, []uint32{r, g, b})

	var bmpBuf bytes.Buffer
	require.NoError(t, Encode(&bmpBuf, img, FormatBMP))
	decoded, err = bmp.Decode(&bmpBuf)
	require.NoError(t, err)
	r, g, b, _ = decoded.At(4, 4).RGBA()
	assert.Equal(t, []uint32{0x3333, 0x6666, 0x9999}, []uint32{r, g, b})

	require.Error(t, Encode(&bytes.Buffer{}, img, Format("gif")))
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()
	assert.Equal(t, FormatBMP, FormatFromPath("out/swatch.BMP"))
	assert.Equal(t, FormatPNG, FormatFromPath("swatch.png"))
	assert.Equal(t, FormatPNG, FormatFromPath("swatch"))
}
