package imaging

import (
	"fmt"
	"math"
)

// Histogram holds per-channel frequency counts indexed by sample value.
// Each channel's counts sum to width*height of the grid that produced it.
type Histogram struct {
	Red   [256]int `json:"red"`
	Green [256]int `json:"green"`
	Blue  [256]int `json:"blue"`
}

// channels returns the three count arrays in red, green, blue order.
func (h *Histogram) channels() [3]*[256]int {
	return [3]*[256]int{&h.Red, &h.Green, &h.Blue}
}

// Max returns the largest single-bin count across all three channels.
func (h *Histogram) Max() int {
	m := 0
	for _, counts := range h.channels() {
		for _, c := range counts {
			if c > m {
				m = c
			}
		}
	}
	return m
}

// CalculateHistogram counts the occurrences of every sample value per channel.
func CalculateHistogram(g *Grid) (*Histogram, error) {
	if err := requireGrids(g); err != nil {
		return nil, err
	}
	h := &Histogram{}
	for i := 0; i < len(g.pix); i += 3 {
		h.Red[g.pix[i]]++
		h.Green[g.pix[i+1]]++
		h.Blue[g.pix[i+2]]++
	}
	return h, nil
}

// PeakRange bounds the sample values considered during peak detection.
// Low is inclusive and High is exclusive.
type PeakRange struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// DefaultPeakRange ignores near-black and near-white bins (values 10..244).
var DefaultPeakRange = PeakRange{Low: 10, High: 245}

func (r PeakRange) validate() error {
	if r.Low < 0 || r.High > 256 || r.Low >= r.High {
		return fmt.Errorf("peak range [%d,%d) must satisfy 0 <= low < high <= 256: %w",
			r.Low, r.High, ErrInvalidArgument)
	}
	return nil
}

// Peaks returns, per channel, the sample value with the highest count inside r.
// Ties keep the first value seen. A channel with no counts inside r reports 0.
func (h *Histogram) Peaks(r PeakRange) ([3]int, error) {
	var peaks [3]int
	if err := r.validate(); err != nil {
		return peaks, err
	}
	for c, counts := range h.channels() {
		best := 0
		for v := r.Low; v < r.High; v++ {
			if counts[v] > best {
				best = counts[v]
				peaks[c] = v
			}
		}
	}
	return peaks, nil
}

// ColorCorrect aligns the three channel peaks using DefaultPeakRange.
func ColorCorrect(g *Grid) (*Grid, error) {
	return ColorCorrectRange(g, DefaultPeakRange)
}

// ColorCorrectRange removes a colour cast by shifting each channel so that its
// histogram peak lands on the average of the three peaks.
//
// The per-channel correction map is out[v] = clamp(v - peak + averagePeak).
// Contrast is unchanged apart from clipping at the ends of the range.
func ColorCorrectRange(g *Grid, r PeakRange) (*Grid, error) {
	if err := requireGrids(g); err != nil {
		return nil, err
	}
	h, err := CalculateHistogram(g)
	if err != nil {
		return nil, err
	}
	peaks, err := h.Peaks(r)
	if err != nil {
		return nil, err
	}
	avg := (peaks[0] + peaks[1] + peaks[2]) / 3

	var maps [3][256]uint8
	for c := 0; c < 3; c++ {
		for v := 0; v < 256; v++ {
			maps[c][v] = clampByte(v - peaks[c] + avg)
		}
	}

	result := NewGrid(g.width, g.height)
	for i := 0; i < len(g.pix); i += 3 {
		result.pix[i] = maps[0][g.pix[i]]
		result.pix[i+1] = maps[1][g.pix[i+1]]
		result.pix[i+2] = maps[2][g.pix[i+2]]
	}
	return result, nil
}

const (
	histogramSize    = 256
	histogramSpacing = 32
)

var (
	histogramBackground = RGB{255, 255, 255}
	histogramGridLine   = RGB{220, 220, 220}
	histogramColors     = [3]RGB{{255, 0, 0}, {0, 255, 0}, {0, 0, 255}}
)

// RenderHistogram draws the grid's histogram as a 256x256 line chart.
//
// The chart has a white background, light-gray grid lines every 32 pixels on both
// axes, and one polyline per channel in red, green and blue. Each polyline passes
// through (x, 255 - round(count[x]*255/maxCount)) where maxCount is the largest bin
// across all channels (1 if the histogram is empty).
func RenderHistogram(g *Grid) (*Grid, error) {
	h, err := CalculateHistogram(g)
	if err != nil {
		return nil, err
	}

	chart := NewGrid(histogramSize, histogramSize)
	for y := 0; y < histogramSize; y++ {
		for x := 0; x < histogramSize; x++ {
			chart.SetRGB(x, y, histogramBackground)
		}
	}

	// Grid lines, vertical then horizontal.
	for x := 0; x < histogramSize; x += histogramSpacing {
		for y := 0; y < histogramSize; y++ {
			chart.SetRGB(x, y, histogramGridLine)
		}
	}
	for y := 0; y < histogramSize; y += histogramSpacing {
		for x := 0; x < histogramSize; x++ {
			chart.SetRGB(x, y, histogramGridLine)
		}
	}

	maxCount := h.Max()
	if maxCount == 0 {
		maxCount = 1
	}
	for c, counts := range h.channels() {
		prevX, prevY := 0, histogramY(counts[0], maxCount)
		for x := 1; x < histogramSize; x++ {
			y := histogramY(counts[x], maxCount)
			drawLine(chart, prevX, prevY, x, y, histogramColors[c])
			prevX, prevY = x, y
		}
	}
	return chart, nil
}

func histogramY(count, maxCount int) int {
	return histogramSize - 1 - int(math.Round(float64(count)*float64(histogramSize-1)/float64(maxCount)))
}

// drawLine plots a line from (x1,y1) to (x2,y2) with Bresenham's algorithm.
// Points outside the grid are skipped.
func drawLine(g *Grid, x1, y1, x2, y2 int, c RGB) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := -1, -1
	if x1 < x2 {
		sx = 1
	}
	if y1 < y2 {
		sy = 1
	}
	err := dx - dy

	for {
		if x1 >= 0 && x1 < g.width && y1 >= 0 && y1 < g.height {
			g.SetRGB(x1, y1, c)
		}
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
