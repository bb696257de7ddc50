package imaging

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNormalizeLevels(t *testing.T) {
	tests := []struct {
		name                string
		b, m, w             int
		wantB, wantM, wantW int
	}{
		{"already valid", 10, 128, 240, 10, 128, 240},
		{"clamps ends", -10, 128, 300, 0, 128, 255},
		{"mid below black", 100, 50, 200, 100, 101, 200},
		{"mid above white", 10, 250, 200, 10, 199, 200},
		{"all zero", 0, 0, 0, 0, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, m, w, err := NormalizeLevels(tt.b, tt.m, tt.w)
			if err != nil {
				t.Fatalf("NormalizeLevels failed: %v", err)
			}
			if b != tt.wantB || m != tt.wantM || w != tt.wantW {
				t.Errorf("got (%d,%d,%d), want (%d,%d,%d)", b, m, w, tt.wantB, tt.wantM, tt.wantW)
			}
		})
	}
}

func TestNormalizeLevels_Unsatisfiable(t *testing.T) {
	for _, in := range [][3]int{{255, 255, 255}, {254, 0, 0}} {
		if _, _, _, err := NormalizeLevels(in[0], in[1], in[2]); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("levels %v: got %v, want ErrInvalidArgument", in, err)
		}
	}
}

func TestFitToneCurve_Identity(t *testing.T) {
	curve, err := FitToneCurve(0, 128, 255)
	if err != nil {
		t.Fatalf("FitToneCurve failed: %v", err)
	}
	for v := 0; v < 256; v++ {
		if got := curve.Apply(v); int(got) != v {
			t.Errorf("Apply(%d) = %d, want %d", v, got, v)
		}
	}
}

// The closed-form solution is checked against a general linear solver.
func TestFitToneCurve_MatchesLinearSolve(t *testing.T) {
	for _, pts := range [][3]int{{0, 128, 255}, {10, 100, 240}, {30, 200, 210}, {0, 1, 2}} {
		curve, err := FitToneCurve(pts[0], pts[1], pts[2])
		if err != nil {
			t.Fatalf("FitToneCurve%v failed: %v", pts, err)
		}

		a := mat.NewDense(3, 3, nil)
		for i, p := range pts {
			v := float64(p)
			a.SetRow(i, []float64{v * v, v, 1})
		}
		var coef mat.VecDense
		if err := coef.SolveVec(a, mat.NewVecDense(3, []float64{0, 128, 255})); err != nil {
			t.Fatalf("SolveVec%v failed: %v", pts, err)
		}

		for _, p := range pts {
			v := float64(p)
			want := coef.AtVec(0)*v*v + coef.AtVec(1)*v + coef.AtVec(2)
			if got := curve.Eval(v); math.Abs(got-want) > 1e-4 {
				t.Errorf("levels %v at %d: got %v, want %v", pts, p, got, want)
			}
		}
	}
}

func TestFitToneCurve_NotDistinct(t *testing.T) {
	if _, err := FitToneCurve(10, 10, 200); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v, want ErrInvalidArgument", err)
	}
}

func TestLevelsAdjust_Anchors(t *testing.T) {
	tests := []struct{ b, m, w int }{
		{0, 128, 255},
		{20, 90, 230},
		{60, 61, 62},
		{0, 200, 255},
	}

	for _, tt := range tests {
		g := NewGrid(3, 1)
		g.Set(0, 0, tt.b, tt.b, tt.b)
		g.Set(1, 0, tt.m, tt.m, tt.m)
		g.Set(2, 0, tt.w, tt.w, tt.w)

		result, err := LevelsAdjust(g, tt.b, tt.m, tt.w)
		if err != nil {
			t.Fatalf("LevelsAdjust(%d,%d,%d) failed: %v", tt.b, tt.m, tt.w, err)
		}
		for x, want := range []uint8{0, 128, 255} {
			if got := result.At(x, 0); got != (RGB{want, want, want}) {
				t.Errorf("levels (%d,%d,%d) pixel %d: got %v, want grey %d", tt.b, tt.m, tt.w, x, got, want)
			}
		}
	}
}

func TestLevelsAdjust_Errors(t *testing.T) {
	if _, err := LevelsAdjust(nil, 0, 128, 255); !errors.Is(err, ErrNilGrid) {
		t.Errorf("nil grid: got %v, want ErrNilGrid", err)
	}
	if _, err := LevelsAdjust(NewGrid(1, 1), 255, 255, 255); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("unsatisfiable: got %v, want ErrInvalidArgument", err)
	}
}
