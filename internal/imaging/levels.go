package imaging

import (
	"fmt"
	"math"
)

// ToneCurve is the quadratic f(v) = A*v^2 + B*v + C.
type ToneCurve struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
}

// Eval returns the unrounded curve value at v.
func (t ToneCurve) Eval(v float64) float64 {
	return t.A*v*v + t.B*v + t.C
}

// Apply maps a sample through the curve, rounding to nearest and clamping to [0,255].
func (t ToneCurve) Apply(v int) uint8 {
	return clampByte(int(math.Round(t.Eval(float64(v)))))
}

// NormalizeLevels applies the levels clamping contract in order:
//
//	b = clamp(b, 0, 255)
//	m = clamp(m, b+1, w-1)
//	w = clamp(w, m+1, 255)
//
// When a clamp range is empty the lower bound wins. The returned points are
// rejected unless 0 <= b < m < w <= 255.
func NormalizeLevels(b, m, w int) (int, int, int, error) {
	b = clamp(b, 0, 255)
	m = max(b+1, min(m, w-1))
	w = max(m+1, min(w, 255))
	if !(0 <= b && b < m && m < w && w <= 255) {
		return b, m, w, fmt.Errorf("levels (%d,%d,%d) cannot satisfy 0 <= black < mid < white <= 255: %w",
			b, m, w, ErrInvalidArgument)
	}
	return b, m, w, nil
}

// FitToneCurve solves for the quadratic through (b,0), (m,128) and (w,255).
//
// The 3x3 system
//
//	| b² b 1 |   | A |   |   0 |
//	| m² m 1 | * | B | = | 128 |
//	| w² w 1 |   | C |   | 255 |
//
// is solved in closed form with Cramer's rule. The determinant is the Vandermonde
// product (b-m)(m-w)(w-b), non-zero whenever the three points are distinct.
func FitToneCurve(b, m, w int) (ToneCurve, error) {
	if b == m || m == w || b == w {
		return ToneCurve{}, fmt.Errorf("levels (%d,%d,%d) must be distinct: %w", b, m, w, ErrInvalidArgument)
	}
	fb, fm, fw := float64(b), float64(m), float64(w)
	const y1, y2 = 128.0, 255.0

	det := fb*fb*(fm-fw) - fb*(fm*fm-fw*fw) + (fw*fm*fm - fm*fw*fw)
	detA := -fb*(y1-y2) + (y1*fw - y2*fm)
	detB := fb*fb*(y1-y2) + (y2*fm*fm - y1*fw*fw)
	detC := fb*fb*(y2*fm-y1*fw) - fb*(y2*fm*fm-y1*fw*fw)

	return ToneCurve{A: detA / det, B: detB / det, C: detC / det}, nil
}

// LevelsAdjust maps every channel through the tone curve anchored at the shadow,
// midtone and highlight points after NormalizeLevels.
func LevelsAdjust(g *Grid, b, m, w int) (*Grid, error) {
	if err := requireGrids(g); err != nil {
		return nil, err
	}
	b, m, w, err := NormalizeLevels(b, m, w)
	if err != nil {
		return nil, err
	}
	curve, err := FitToneCurve(b, m, w)
	if err != nil {
		return nil, err
	}

	var lut [256]uint8
	for v := range lut {
		lut[v] = curve.Apply(v)
	}

	result := NewGrid(g.width, g.height)
	for i, v := range g.pix {
		result.pix[i] = lut[v]
	}
	return result, nil
}
