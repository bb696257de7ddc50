package imaging

import "fmt"

// Kernel is an odd-sized square matrix of convolution weights.
//
// The edge length is 2k+1 where k is the radius. Weights are stored row-major.
type Kernel struct {
	size    int
	weights []float64
}

// NewKernel builds a kernel from rows of weights. The matrix must be square and
// have an odd edge length.
func NewKernel(rows [][]float64) (Kernel, error) {
	n := len(rows)
	if n == 0 || n%2 == 0 {
		return Kernel{}, fmt.Errorf("kernel edge length %d must be odd: %w", n, ErrInvalidArgument)
	}
	weights := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return Kernel{}, fmt.Errorf("kernel row %d has %d weights, want %d: %w", i, len(row), n, ErrInvalidArgument)
		}
		weights = append(weights, row...)
	}
	return Kernel{size: n, weights: weights}, nil
}

// mustKernel is used for the package's fixed kernels.
func mustKernel(rows [][]float64) Kernel {
	k, err := NewKernel(rows)
	if err != nil {
		panic(err)
	}
	return k
}

// Size returns the edge length of the kernel.
func (k Kernel) Size() int { return k.size }

// Radius returns k for an edge length of 2k+1.
func (k Kernel) Radius() int { return k.size / 2 }

// Weight returns the weight at offset (dx, dy) from the kernel centre.
func (k Kernel) Weight(dx, dy int) float64 {
	r := k.Radius()
	return k.weights[(dy+r)*k.size+(dx+r)]
}

var (
	// BlurKernel is a 3x3 normalized Gaussian-like kernel:
	//
	//	1/16 1/8 1/16
	//	1/8  1/4 1/8
	//	1/16 1/8 1/16
	BlurKernel = mustKernel([][]float64{
		{1.0 / 16, 1.0 / 8, 1.0 / 16},
		{1.0 / 8, 1.0 / 4, 1.0 / 8},
		{1.0 / 16, 1.0 / 8, 1.0 / 16},
	})

	// SharpenKernel is a 5x5 kernel with a centre weight of 1, the eight
	// surrounding weights 1/4 and the outer ring -1/8.
	SharpenKernel = mustKernel([][]float64{
		{-1.0 / 8, -1.0 / 8, -1.0 / 8, -1.0 / 8, -1.0 / 8},
		{-1.0 / 8, 1.0 / 4, 1.0 / 4, 1.0 / 4, -1.0 / 8},
		{-1.0 / 8, 1.0 / 4, 1.0, 1.0 / 4, -1.0 / 8},
		{-1.0 / 8, 1.0 / 4, 1.0 / 4, 1.0 / 4, -1.0 / 8},
		{-1.0 / 8, -1.0 / 8, -1.0 / 8, -1.0 / 8, -1.0 / 8},
	})
)

// Convolve applies k to every pixel of g, independently per channel.
//
// Samples outside the grid use the nearest edge pixel (clamped coordinates).
// Each weighted sum is truncated toward zero and clamped to [0,255].
func Convolve(g *Grid, k Kernel) (*Grid, error) {
	if err := requireGrids(g); err != nil {
		return nil, err
	}
	if k.size == 0 {
		return nil, fmt.Errorf("empty kernel: %w", ErrInvalidArgument)
	}

	r := k.Radius()
	result := NewGrid(g.width, g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			var sum [3]float64
			for ky := -r; ky <= r; ky++ {
				py := clamp(y+ky, 0, g.height-1)
				for kx := -r; kx <= r; kx++ {
					px := clamp(x+kx, 0, g.width-1)
					w := k.Weight(kx, ky)
					i := g.offset(px, py)
					sum[0] += float64(g.pix[i]) * w
					sum[1] += float64(g.pix[i+1]) * w
					sum[2] += float64(g.pix[i+2]) * w
				}
			}
			result.Set(x, y, truncate(sum[0]), truncate(sum[1]), truncate(sum[2]))
		}
	}
	return result, nil
}

// Blur convolves g with BlurKernel.
func Blur(g *Grid) (*Grid, error) { return Convolve(g, BlurKernel) }

// Sharpen convolves g with SharpenKernel.
func Sharpen(g *Grid) (*Grid, error) { return Convolve(g, SharpenKernel) }
