package imaging

import (
	"fmt"
	"math"
)

// Downscale resizes g to targetW x targetH with bilinear interpolation.
//
// Each target pixel (x,y) samples the source at
//
//	srcX = (x+0.5)*width/targetW - 0.5
//	srcY = (y+0.5)*height/targetH - 0.5
//
// and blends the four surrounding pixels (floor/ceil on each axis, clamped to the
// grid) using the fractional parts of srcX and srcY. Channel results are truncated.
// Targets must satisfy 0 < targetW <= width and 0 < targetH <= height.
func Downscale(g *Grid, targetW, targetH int) (*Grid, error) {
	if err := requireGrids(g); err != nil {
		return nil, err
	}
	if targetW <= 0 || targetH <= 0 || targetW > g.width || targetH > g.height {
		return nil, fmt.Errorf("downscale target %dx%d must be positive and within %dx%d: %w",
			targetW, targetH, g.width, g.height, ErrInvalidArgument)
	}

	result := NewGrid(targetW, targetH)
	for y := 0; y < targetH; y++ {
		srcY := (float64(y)+0.5)*float64(g.height)/float64(targetH) - 0.5
		y0 := clamp(int(math.Floor(srcY)), 0, g.height-1)
		y1 := clamp(int(math.Ceil(srcY)), 0, g.height-1)
		fy := srcY - math.Floor(srcY)

		for x := 0; x < targetW; x++ {
			srcX := (float64(x)+0.5)*float64(g.width)/float64(targetW) - 0.5
			x0 := clamp(int(math.Floor(srcX)), 0, g.width-1)
			x1 := clamp(int(math.Ceil(srcX)), 0, g.width-1)
			fx := srcX - math.Floor(srcX)

			q11 := g.At(x0, y0)
			q21 := g.At(x1, y0)
			q12 := g.At(x0, y1)
			q22 := g.At(x1, y1)

			var out [3]int
			for c := 0; c < 3; c++ {
				v := float64(q11.channel(c))*(1-fx)*(1-fy) +
					float64(q21.channel(c))*fx*(1-fy) +
					float64(q12.channel(c))*(1-fx)*fy +
					float64(q22.channel(c))*fx*fy
				out[c] = truncate(v)
			}
			result.Set(x, y, out[0], out[1], out[2])
		}
	}
	return result, nil
}
