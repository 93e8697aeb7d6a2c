package browsercheck

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legacycolor/htmlcolor"
	"legacycolor/internal/logging"
)

func TestCompare(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		ours     htmlcolor.Color
		oursErr  error
		computed string
		rejected bool
		match    bool
	}{
		{"same", htmlcolor.Color{R: 0xc0}, nil, "rgb(192, 0, 0)", false, true},
		{"different", htmlcolor.Color{R: 0, G: 0x0e, B: 0x0d}, nil, "rgb(255, 0, 0)", false, false},
		{"both_reject", htmlcolor.Color{}, htmlcolor.ErrTransparent, "rgba(0, 0, 0, 0)", true, true},
		{"browser_rejects_only", htmlcolor.Color{}, nil, "rgba(0, 0, 0, 0)", true, false},
		{"ours_rejects_only", htmlcolor.Color{}, htmlcolor.ErrEmptyInput, "rgb(0, 0, 0)", false, false},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res, err := compare("x", tc.ours, tc.oursErr, tc.computed)
			require.NoError(t, err)
			assert.Equal(t, tc.rejected, res.BrowserRejected)
			assert.Equal(t, tc.match, res.Match)
			if tc.match {
				assert.Contains(t, res.String(), "MATCH")
			} else {
				assert.Contains(t, res.String(), "DIFF")
			}
		})
	}
}

func TestCompareUnparseable(t *testing.T) {
	t.Parallel()
	_, err := compare("x", htmlcolor.Color{}, nil, "not a colour")
	require.ErrorIs(t, err, errUnparsedComputed)
}

func TestBgcolorScriptEscapes(t *testing.T) {
	t.Parallel()
	script, err := bgcolorScript("a\"b\U0001F600")
	require.NoError(t, err)
	assert.Contains(t, script, `("a\"b`)
	assert.Contains(t, script, `setAttribute("bgcolor", v)`)
}

// Needs a local Chrome; enable with LEGACYCOLOR_CHROME=1.
func TestCheckAgainstChrome(t *testing.T) {
	if os.Getenv("LEGACYCOLOR_CHROME") != "1" {
		t.Skip("set LEGACYCOLOR_CHROME=1 to run against a local Chrome")
	}
	c := New(htmlcolor.NewParser(htmlcolor.DefaultNames()), 30*time.Second, logging.Nop())
	defer c.Close()

	inputs := []string{"chucknorris", "#abc", "#336699", "transparent", "red", "#0000FF0000FF0000FF"}
	results, err := c.Check(context.Background(), inputs...)
	require.NoError(t, err)
	require.Len(t, results, len(inputs))
	for _, res := range results {
		assert.True(t, res.Match, res.String())
	}
}
