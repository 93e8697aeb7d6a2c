package htmlcolor

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   Color
		str  string
		hex  string
	}{
		{"black", Color{}, "Color(#000000)", "#000000"},
		{"mixed", Color{0xff, 0x00, 0xaa}, "Color(#FF00AA)", "#ff00aa"},
		{"low_nibbles", Color{1, 2, 3}, "Color(#010203)", "#010203"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.str, tc.in.String())
			assert.Equal(t, tc.hex, tc.in.Hex())
		})
	}
}

func TestColorRGBA(t *testing.T) {
	t.Parallel()
	var c color.Color = Color{0x12, 0x34, 0x56}
	got := color.RGBAModel.Convert(c).(color.RGBA)
	assert.Equal(t, color.RGBA{0x12, 0x34, 0x56, 0xff}, got)
}

func TestColorContrast(t *testing.T) {
	t.Parallel()
	black, white := Color{}, Color{255, 255, 255}
	assert.InDelta(t, 21.0, black.ContrastRatio(white), 0.01)
	assert.InDelta(t, 21.0, white.ContrastRatio(black), 0.01)
	assert.InDelta(t, 1.0, white.ContrastRatio(white), 0.0001)
	assert.Equal(t, 0, black.Brightness())
	assert.Equal(t, 255, white.Brightness())
	assert.InDelta(t, 1.0, white.RelativeLuminance(), 0.0001)
}
