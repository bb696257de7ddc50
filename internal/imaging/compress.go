package imaging

import (
	"fmt"
	"math"
	"sort"
)

// nextPowerOfTwo returns the smallest power of two >= n (1 for n <= 1).
func nextPowerOfTwo(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}

// Compress performs lossy compression with a 2D Haar wavelet and returns the
// reconstructed grid.
//
// Parameters:
//   - g: Source grid.
//   - percentage: Share of wavelet coefficients (0-100) to discard. 0 is lossless;
//     100 keeps only the largest-magnitude coefficients and yields a near-flat image.
//
// # Algorithm
//
//  1. Pad each channel with zeros to size x size, where size is the next power of
//     two >= max(width, height).
//  2. Forward 2D Haar transform per channel (ForwardHaar2D).
//  3. Sort the absolute values of all coefficients of all three channels. The value
//     at index floor(N*percentage/100) (capped at N-1) is the cutoff; coefficients
//     strictly below it become zero.
//  4. Inverse 2D Haar transform per channel (InverseHaar2D).
//  5. Crop to the original size, round to nearest and clamp to [0,255].
func Compress(g *Grid, percentage float64) (*Grid, error) {
	if err := requireGrids(g); err != nil {
		return nil, err
	}
	if math.IsNaN(percentage) || percentage < 0 || percentage > 100 {
		return nil, fmt.Errorf("compression percentage %v must be between 0 and 100: %w", percentage, ErrInvalidArgument)
	}
	if g.width == 0 || g.height == 0 {
		return g.Clone(), nil
	}

	size := nextPowerOfTwo(max(g.width, g.height))
	planes := padPlanes(g, size)

	for c := range planes {
		ForwardHaar2D(planes[c], size)
	}
	applyThreshold(planes, percentage)
	for c := range planes {
		InverseHaar2D(planes[c], size)
	}

	result := NewGrid(g.width, g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			result.Set(x, y,
				int(math.Round(planes[0][y][x])),
				int(math.Round(planes[1][y][x])),
				int(math.Round(planes[2][y][x])))
		}
	}
	return result, nil
}

// padPlanes copies each channel into a zero-filled size x size buffer indexed [row][col].
func padPlanes(g *Grid, size int) [3][][]float64 {
	var planes [3][][]float64
	for c := range planes {
		planes[c] = make([][]float64, size)
		for i := range planes[c] {
			planes[c][i] = make([]float64, size)
		}
	}
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			i := (y*g.width + x) * 3
			planes[0][y][x] = float64(g.pix[i])
			planes[1][y][x] = float64(g.pix[i+1])
			planes[2][y][x] = float64(g.pix[i+2])
		}
	}
	return planes
}

// thresholdCutoff returns the magnitude below which coefficients are discarded.
func thresholdCutoff(planes [3][][]float64, percentage float64) float64 {
	var magnitudes []float64
	for _, plane := range planes {
		for _, row := range plane {
			for _, v := range row {
				magnitudes = append(magnitudes, math.Abs(v))
			}
		}
	}
	if len(magnitudes) == 0 {
		return 0
	}
	sort.Float64s(magnitudes)

	idx := int(float64(len(magnitudes)) * percentage / 100)
	if idx >= len(magnitudes) {
		idx = len(magnitudes) - 1
	}
	return magnitudes[idx]
}

func applyThreshold(planes [3][][]float64, percentage float64) {
	cutoff := thresholdCutoff(planes, percentage)
	for _, plane := range planes {
		for _, row := range plane {
			for j, v := range row {
				if math.Abs(v) < cutoff {
					row[j] = 0
				}
			}
		}
	}
}
