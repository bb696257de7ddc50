package imaging

import "math"

// Haar1D performs one Haar analysis pass over span[:n] in place.
//
// Pairwise averages (a+b)/√2 go to the first half and differences (a-b)/√2 to the
// second half. n must be even.
func Haar1D(span []float64, n int) {
	temp := make([]float64, n)
	half := n / 2
	for i := 0; i < half; i++ {
		a, b := span[2*i], span[2*i+1]
		temp[i] = (a + b) / math.Sqrt2
		temp[half+i] = (a - b) / math.Sqrt2
	}
	copy(span[:n], temp)
}

// InverseHaar1D undoes Haar1D over span[:n] in place.
func InverseHaar1D(span []float64, n int) {
	temp := make([]float64, n)
	half := n / 2
	for i := 0; i < half; i++ {
		avg, diff := span[i], span[half+i]
		temp[2*i] = (avg + diff) / math.Sqrt2
		temp[2*i+1] = (avg - diff) / math.Sqrt2
	}
	copy(span[:n], temp)
}

// ForwardHaar2D decomposes a size x size plane (indexed [row][col]) in place.
//
// For step = size, size/2, ..., 2 it transforms the first step samples of every
// row, then the first step samples of each of the first step columns.
func ForwardHaar2D(plane [][]float64, size int) {
	col := make([]float64, size)
	for step := size; step > 1; step /= 2 {
		for i := 0; i < size; i++ {
			Haar1D(plane[i], step)
		}
		for j := 0; j < step; j++ {
			for i := 0; i < step; i++ {
				col[i] = plane[i][j]
			}
			Haar1D(col, step)
			for i := 0; i < step; i++ {
				plane[i][j] = col[i]
			}
		}
	}
}

// InverseHaar2D reverses ForwardHaar2D: step doubles from 2 to size, columns are
// reconstructed before rows.
func InverseHaar2D(plane [][]float64, size int) {
	col := make([]float64, size)
	for step := 2; step <= size; step *= 2 {
		for j := 0; j < step; j++ {
			for i := 0; i < step; i++ {
				col[i] = plane[i][j]
			}
			InverseHaar1D(col, step)
			for i := 0; i < step; i++ {
				plane[i][j] = col[i]
			}
		}
		for i := 0; i < size; i++ {
			InverseHaar1D(plane[i], step)
		}
	}
}
