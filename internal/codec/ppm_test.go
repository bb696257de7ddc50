package codec

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/pixel-engine-mcp/internal/imaging"
)

func newTestGrid(width, height int) *imaging.Grid {
	g := imaging.NewGrid(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.Set(x, y, 50*x, 50*y, 25*(x+y))
		}
	}
	return g
}

func TestWritePPM_Layout(t *testing.T) {
	g := imaging.NewGrid(2, 1)
	g.Set(0, 0, 1, 2, 3)
	g.Set(1, 0, 255, 0, 128)

	var buf bytes.Buffer
	require.NoError(t, WritePPM(&buf, g))

	want := "P3\n# Created by pixel-engine\n2 1\n255\n1\n2\n3\n255\n0\n128\n"
	assert.Equal(t, want, buf.String())
}

func TestPPM_RoundTrip(t *testing.T) {
	g := newTestGrid(4, 3)

	var buf bytes.Buffer
	require.NoError(t, WritePPM(&buf, g))

	back, err := ReadPPM(&buf)
	require.NoError(t, err)
	assert.True(t, g.Equal(back), "round trip changed the grid")
}

func TestReadPPM_FreeFormHeader(t *testing.T) {
	data := "P3 # magic\n# a comment line\n  2\t1 #width height\n255\n10 20 30   40 50 60"

	g, err := ReadPPM(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 2, g.Width())
	require.Equal(t, 1, g.Height())
	assert.Equal(t, imaging.RGB{R: 10, G: 20, B: 30}, g.At(0, 0))
	assert.Equal(t, imaging.RGB{R: 40, G: 50, B: 60}, g.At(1, 0))
}

func TestReadPPM_ScalesMaxValue(t *testing.T) {
	tests := []struct {
		name   string
		maxVal string
		sample string
		want   uint8
	}{
		{"15 full", "15", "15", 255},
		{"15 zero", "15", "0", 0},
		{"15 mid", "15", "7", 119}, // 7*255/15 = 119
		{"1023 half", "1023", "512", 128},
		{"65535 full", "65535", "65535", 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := "P3\n1 1\n" + tt.maxVal + "\n" + tt.sample + " 0 0\n"
			g, err := ReadPPM(strings.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, g.At(0, 0).R)
		})
	}
}

func TestReadPPM_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"binary magic", "P6\n1 1\n255\n", ErrUnsupportedFormat},
		{"empty", "", ErrMalformedPPM},
		{"bad width", "P3\nx 1\n255\n", ErrMalformedPPM},
		{"zero max", "P3\n1 1\n0\n0 0 0", ErrMalformedPPM},
		{"truncated samples", "P3\n2 1\n255\n1 2 3 4", ErrMalformedPPM},
		{"sample over max", "P3\n1 1\n100\n101 0 0", ErrMalformedPPM},
		{"negative sample", "P3\n1 1\n255\n-1 0 0", ErrMalformedPPM},
		{"dimensions overflow", "P3\n4294967296 4294967296\n255\n1 2 3\n", ErrMalformedPPM},
		{"too many pixels", "P3\n100000 100000\n255\n1 2 3\n", ErrMalformedPPM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadPPM(strings.NewReader(tt.data))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReadPPM_SizeLimit(t *testing.T) {
	_, err := ReadPPM(strings.NewReader(fmt.Sprintf("P3\n%d 1\n255\n", MaxPPMPixels+1)))
	require.ErrorIs(t, err, ErrMalformedPPM)
	assert.Contains(t, err.Error(), "exceed")
}

func TestReadPPM_EmptyGrid(t *testing.T) {
	g, err := ReadPPM(strings.NewReader("P3\n0 0\n255\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, g.Width())
	assert.Equal(t, 0, g.Height())
}

func TestWritePPM_NilGrid(t *testing.T) {
	assert.ErrorIs(t, WritePPM(&bytes.Buffer{}, nil), imaging.ErrNilGrid)
}
