package imaging

// FlipHorizontal mirrors the grid left to right: (x,y) moves to (width-1-x, y).
func FlipHorizontal(g *Grid) (*Grid, error) {
	if err := requireGrids(g); err != nil {
		return nil, err
	}
	result := NewGrid(g.width, g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			result.SetRGB(g.width-1-x, y, g.At(x, y))
		}
	}
	return result, nil
}

// FlipVertical mirrors the grid top to bottom: (x,y) moves to (x, height-1-y).
func FlipVertical(g *Grid) (*Grid, error) {
	if err := requireGrids(g); err != nil {
		return nil, err
	}
	result := NewGrid(g.width, g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			result.SetRGB(x, g.height-1-y, g.At(x, y))
		}
	}
	return result, nil
}

// Brighten adds delta to every channel of every pixel, clamping to [0,255].
// A negative delta darkens.
func Brighten(g *Grid, delta int) (*Grid, error) {
	if err := requireGrids(g); err != nil {
		return nil, err
	}
	result := NewGrid(g.width, g.height)
	for i, v := range g.pix {
		result.pix[i] = clampByte(int(v) + delta)
	}
	return result, nil
}

// Darken is Brighten with a magnitude of -|delta|.
func Darken(g *Grid, delta int) (*Grid, error) {
	if delta > 0 {
		delta = -delta
	}
	return Brighten(g, delta)
}

// ColorMatrix maps an input (r,g,b) to an output (r,g,b): out[i] = sum_j m[i][j]*in[j].
type ColorMatrix [3][3]float64

var (
	// GreyscaleMatrix writes luma to every output channel.
	GreyscaleMatrix = ColorMatrix{
		{lumaRed, lumaGreen, lumaBlue},
		{lumaRed, lumaGreen, lumaBlue},
		{lumaRed, lumaGreen, lumaBlue},
	}

	// SepiaMatrix is the standard sepia tone matrix.
	SepiaMatrix = ColorMatrix{
		{0.393, 0.769, 0.189},
		{0.349, 0.686, 0.168},
		{0.272, 0.534, 0.131},
	}
)

// ApplyColorMatrix transforms every pixel by m. Each output channel is truncated
// toward zero and clamped to [0,255].
func ApplyColorMatrix(g *Grid, m ColorMatrix) (*Grid, error) {
	if err := requireGrids(g); err != nil {
		return nil, err
	}
	result := NewGrid(g.width, g.height)
	for i := 0; i < len(g.pix); i += 3 {
		in := [3]float64{float64(g.pix[i]), float64(g.pix[i+1]), float64(g.pix[i+2])}
		for c := 0; c < 3; c++ {
			sum := m[c][0]*in[0] + m[c][1]*in[1] + m[c][2]*in[2]
			result.pix[i+c] = clampByte(truncate(sum))
		}
	}
	return result, nil
}

// Greyscale applies GreyscaleMatrix.
func Greyscale(g *Grid) (*Grid, error) { return ApplyColorMatrix(g, GreyscaleMatrix) }

// Sepia applies SepiaMatrix.
func Sepia(g *Grid) (*Grid, error) { return ApplyColorMatrix(g, SepiaMatrix) }
