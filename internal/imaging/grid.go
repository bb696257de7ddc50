package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is a single pixel with 8-bit red, green and blue channels.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex returns the pixel as "#RRGGBB".
func (p RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", p.R, p.G, p.B)
}

// HSL returns hue in degrees (0-360), saturation and lightness in percent (0-100).
func (p RGB) HSL() (h, s, l int) {
	c := colorful.Color{R: float64(p.R) / 255, G: float64(p.G) / 255, B: float64(p.B) / 255}
	hf, sf, lf := c.Hsl()
	return int(hf), int(sf * 100), int(lf * 100)
}

// channel returns the sample for channel index 0 (red), 1 (green) or 2 (blue).
func (p RGB) channel(i int) uint8 {
	switch i {
	case 0:
		return p.R
	case 1:
		return p.G
	default:
		return p.B
	}
}

// Grid is a width x height raster of RGB samples.
//
// Samples are stored interleaved in a single row-major buffer (3 bytes per pixel).
// Every stored value is already clamped to [0,255]; the setters clamp on write.
//
// A Grid is populated through Set/SetRGB while it is being built. Once an operation
// returns it to a caller it is treated as immutable: every engine operation reads its
// inputs and allocates a fresh output, so grids never share storage.
type Grid struct {
	width  int
	height int
	pix    []uint8
}

// NewGrid creates a uniformly black grid. Negative dimensions are treated as zero.
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*3),
	}
}

// NewGridFromPlanes builds a grid from three row-major channel planes.
//
// Each plane must hold exactly width*height samples. Samples outside [0,255]
// are clamped.
func NewGridFromPlanes(r, g, b []int, width, height int) (*Grid, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("negative dimensions %dx%d: %w", width, height, ErrInvalidArgument)
	}
	n := width * height
	if len(r) != n || len(g) != n || len(b) != n {
		return nil, fmt.Errorf("plane sizes (%d,%d,%d) do not match %dx%d: %w",
			len(r), len(g), len(b), width, height, ErrInvalidArgument)
	}

	grid := NewGrid(width, height)
	for i := 0; i < n; i++ {
		grid.pix[i*3] = clampByte(r[i])
		grid.pix[i*3+1] = clampByte(g[i])
		grid.pix[i*3+2] = clampByte(b[i])
	}
	return grid, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// At returns the pixel at (x, y). It panics if the coordinate is outside the grid.
func (g *Grid) At(x, y int) RGB {
	i := g.offset(x, y)
	return RGB{R: g.pix[i], G: g.pix[i+1], B: g.pix[i+2]}
}

// Set writes the pixel at (x, y), clamping each channel to [0,255].
func (g *Grid) Set(x, y, r, gr, b int) {
	i := g.offset(x, y)
	g.pix[i] = clampByte(r)
	g.pix[i+1] = clampByte(gr)
	g.pix[i+2] = clampByte(b)
}

// SetRGB writes an already in-range pixel at (x, y).
func (g *Grid) SetRGB(x, y int, p RGB) {
	i := g.offset(x, y)
	g.pix[i] = p.R
	g.pix[i+1] = p.G
	g.pix[i+2] = p.B
}

func (g *Grid) offset(x, y int) int {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		panic(fmt.Sprintf("imaging: coordinate (%d,%d) outside %dx%d grid", x, y, g.width, g.height))
	}
	return (y*g.width + x) * 3
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := &Grid{width: g.width, height: g.height, pix: make([]uint8, len(g.pix))}
	copy(out.pix, g.pix)
	return out
}

// SameSize reports whether both grids have identical dimensions.
func (g *Grid) SameSize(other *Grid) bool {
	return other != nil && g.width == other.width && g.height == other.height
}

// Equal reports whether both grids have identical dimensions and samples.
func (g *Grid) Equal(other *Grid) bool {
	if !g.SameSize(other) {
		return false
	}
	for i := range g.pix {
		if g.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// Planes returns copies of the red, green and blue channels as row-major slices.
func (g *Grid) Planes() (r, gr, b []int) {
	n := g.width * g.height
	r = make([]int, n)
	gr = make([]int, n)
	b = make([]int, n)
	for i := 0; i < n; i++ {
		r[i] = int(g.pix[i*3])
		gr[i] = int(g.pix[i*3+1])
		b[i] = int(g.pix[i*3+2])
	}
	return r, gr, b
}

// Bytes returns a copy of the interleaved RGB sample buffer.
func (g *Grid) Bytes() []byte {
	out := make([]byte, len(g.pix))
	copy(out, g.pix)
	return out
}

// FromImage converts any image.Image into a grid. Alpha is discarded.
//
// The source is first normalised to NRGBA with imaging.Clone so that every
// colour model (paletted, YCbCr, 16-bit) is read the same way, and the result
// is anchored at (0,0) regardless of the source bounds.
func FromImage(img image.Image) *Grid {
	src := imaging.Clone(img)
	b := src.Bounds()
	grid := NewGrid(b.Dx(), b.Dy())
	for y := 0; y < grid.height; y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < grid.width; x++ {
			i := (y*grid.width + x) * 3
			grid.pix[i] = row[x*4]
			grid.pix[i+1] = row[x*4+1]
			grid.pix[i+2] = row[x*4+2]
		}
	}
	return grid
}

// ToImage converts the grid into an opaque NRGBA image.
func (g *Grid) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.width, g.height))
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			p := g.At(x, y)
			img.SetNRGBA(x, y, color.NRGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return img
}

// clampByte constrains an integer sample to [0,255].
func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// clamp constrains an integer value to the range [min, max].
// Used for edge handling in convolution and resampling.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// requireGrids fails fast on the first nil argument.
func requireGrids(grids ...*Grid) error {
	for _, g := range grids {
		if g == nil {
			return ErrNilGrid
		}
	}
	return nil
}
