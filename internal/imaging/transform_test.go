package imaging

import (
	"errors"
	"testing"

	"github.com/anthonynsimon/bild/transform"
)

func TestFlipHorizontal(t *testing.T) {
	g := newRampGrid(4, 3)

	result, err := FlipHorizontal(g)
	if err != nil {
		t.Fatalf("FlipHorizontal failed: %v", err)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if got, want := result.At(x, y), g.At(3-x, y); got != want {
				t.Errorf("pixel (%d,%d): got %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestFlipVertical(t *testing.T) {
	g := newRampGrid(4, 3)

	result, err := FlipVertical(g)
	if err != nil {
		t.Fatalf("FlipVertical failed: %v", err)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if got, want := result.At(x, y), g.At(x, 2-y); got != want {
				t.Errorf("pixel (%d,%d): got %v, want %v", x, y, got, want)
			}
		}
	}
}

// bild's flips serve as an independent reference implementation.
func TestFlips_MatchBild(t *testing.T) {
	g := newNoiseGrid(9, 6, 7)

	h, err := FlipHorizontal(g)
	if err != nil {
		t.Fatalf("FlipHorizontal failed: %v", err)
	}
	assertSameGrid(t, FromImage(transform.FlipH(g.ToImage())), h)

	v, err := FlipVertical(g)
	if err != nil {
		t.Fatalf("FlipVertical failed: %v", err)
	}
	assertSameGrid(t, FromImage(transform.FlipV(g.ToImage())), v)
}

func TestFlips_AreInvolutions(t *testing.T) {
	flips := map[string]func(*Grid) (*Grid, error){
		"horizontal": FlipHorizontal,
		"vertical":   FlipVertical,
	}

	for name, flip := range flips {
		t.Run(name, func(t *testing.T) {
			g := newNoiseGrid(5, 8, 3)
			once, err := flip(g)
			if err != nil {
				t.Fatalf("flip failed: %v", err)
			}
			twice, err := flip(once)
			if err != nil {
				t.Fatalf("flip failed: %v", err)
			}
			assertSameGrid(t, g, twice)
		})
	}
}

func TestBrighten(t *testing.T) {
	tests := []struct {
		name  string
		in    RGB
		delta int
		want  RGB
	}{
		{"positive", RGB{250, 5, 100}, 10, RGB{255, 15, 110}},
		{"negative", RGB{250, 5, 100}, -10, RGB{240, 0, 90}},
		{"zero", RGB{1, 2, 3}, 0, RGB{1, 2, 3}},
		{"saturate", RGB{0, 128, 255}, 1000, RGB{255, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Brighten(newUniformGrid(2, 2, tt.in), tt.delta)
			if err != nil {
				t.Fatalf("Brighten failed: %v", err)
			}
			if got := result.At(1, 0); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDarken_IgnoresSign(t *testing.T) {
	g := newNoiseGrid(4, 4, 11)

	want, err := Brighten(g, -25)
	if err != nil {
		t.Fatalf("Brighten failed: %v", err)
	}
	for _, delta := range []int{25, -25} {
		got, err := Darken(g, delta)
		if err != nil {
			t.Fatalf("Darken(%d) failed: %v", delta, err)
		}
		assertSameGrid(t, want, got)
	}
}

func TestGreyscale_Idempotent(t *testing.T) {
	g := newNoiseGrid(16, 16, 5)

	once, err := Greyscale(g)
	if err != nil {
		t.Fatalf("Greyscale failed: %v", err)
	}
	twice, err := Greyscale(once)
	if err != nil {
		t.Fatalf("Greyscale failed: %v", err)
	}
	assertSameGrid(t, once, twice)
}

func TestGreyscale_GreyLevelsUnchanged(t *testing.T) {
	g := NewGrid(256, 1)
	for v := 0; v < 256; v++ {
		g.Set(v, 0, v, v, v)
	}

	result, err := Greyscale(g)
	if err != nil {
		t.Fatalf("Greyscale failed: %v", err)
	}
	assertSameGrid(t, g, result)
}

func TestSepia(t *testing.T) {
	tests := []struct {
		name string
		in   RGB
		want RGB
	}{
		{"mid grey", RGB{100, 100, 100}, RGB{135, 120, 93}},
		{"white", RGB{255, 255, 255}, RGB{255, 255, 238}},
		{"black", RGB{0, 0, 0}, RGB{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Sepia(newUniformGrid(1, 1, tt.in))
			if err != nil {
				t.Fatalf("Sepia failed: %v", err)
			}
			if got := result.At(0, 0); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransforms_NilGrid(t *testing.T) {
	ops := map[string]func(*Grid) (*Grid, error){
		"FlipHorizontal": FlipHorizontal,
		"FlipVertical":   FlipVertical,
		"Greyscale":      Greyscale,
		"Sepia":          Sepia,
		"Brighten":       func(g *Grid) (*Grid, error) { return Brighten(g, 1) },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			if _, err := op(nil); !errors.Is(err, ErrNilGrid) {
				t.Errorf("got %v, want ErrNilGrid", err)
			}
		})
	}
}
