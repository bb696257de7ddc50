package imaging

import "fmt"

// Luma weights (ITU-R BT.709) used by luma visualization and greyscale.
const (
	lumaRed   = 0.2126
	lumaGreen = 0.7152
	lumaBlue  = 0.0722
)

// truncGuard absorbs floating-point error in weighted sums whose exact value is an
// integer. Kernel, luma and colour-matrix weights have at most four decimal places,
// so their exact results are multiples of 1e-4 and the guard cannot move them across
// an integer boundary. Bilinear weights are arbitrary fractions; there the guard only
// matters for sums within 1e-6 below an integer, such as a uniform region whose
// weights sum to 1 up to rounding.
const truncGuard = 1e-6

// truncate rounds a weighted sum toward zero.
func truncate(v float64) int {
	if v < 0 {
		return int(v - truncGuard)
	}
	return int(v + truncGuard)
}

// Component selects the single value a channel visualization writes to all three channels.
type Component int

const (
	ComponentRed Component = iota
	ComponentGreen
	ComponentBlue
	ComponentValue     // max(R,G,B)
	ComponentIntensity // (R+G+B)/3, truncated
	ComponentLuma      // 0.2126R + 0.7152G + 0.0722B, truncated
)

var componentNames = map[Component]string{
	ComponentRed:       "red",
	ComponentGreen:     "green",
	ComponentBlue:      "blue",
	ComponentValue:     "value",
	ComponentIntensity: "intensity",
	ComponentLuma:      "luma",
}

func (c Component) String() string {
	if name, ok := componentNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Component(%d)", int(c))
}

// ParseComponent maps "red", "green", "blue", "value", "intensity" or "luma" to a Component.
func ParseComponent(name string) (Component, error) {
	for c, n := range componentNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown component %q: %w", name, ErrInvalidArgument)
}

func (c Component) value(p RGB) (int, error) {
	switch c {
	case ComponentRed:
		return int(p.R), nil
	case ComponentGreen:
		return int(p.G), nil
	case ComponentBlue:
		return int(p.B), nil
	case ComponentValue:
		return max(int(p.R), int(p.G), int(p.B)), nil
	case ComponentIntensity:
		return (int(p.R) + int(p.G) + int(p.B)) / 3, nil
	case ComponentLuma:
		return truncate(lumaRed*float64(p.R) + lumaGreen*float64(p.G) + lumaBlue*float64(p.B)), nil
	default:
		return 0, fmt.Errorf("unknown component %d: %w", int(c), ErrInvalidArgument)
	}
}

// VisualizeComponent produces a grayscale grid where every channel of each pixel is
// set to the selected component of the source pixel.
func VisualizeComponent(g *Grid, c Component) (*Grid, error) {
	if err := requireGrids(g); err != nil {
		return nil, err
	}
	if _, ok := componentNames[c]; !ok {
		return nil, fmt.Errorf("unknown component %d: %w", int(c), ErrInvalidArgument)
	}

	result := NewGrid(g.width, g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			v, _ := c.value(g.At(x, y))
			result.Set(x, y, v, v, v)
		}
	}
	return result, nil
}

// VisualizeRed copies the red channel into all three channels.
func VisualizeRed(g *Grid) (*Grid, error) { return VisualizeComponent(g, ComponentRed) }

// VisualizeGreen copies the green channel into all three channels.
func VisualizeGreen(g *Grid) (*Grid, error) { return VisualizeComponent(g, ComponentGreen) }

// VisualizeBlue copies the blue channel into all three channels.
func VisualizeBlue(g *Grid) (*Grid, error) { return VisualizeComponent(g, ComponentBlue) }

// VisualizeValue writes the per-pixel maximum channel.
func VisualizeValue(g *Grid) (*Grid, error) { return VisualizeComponent(g, ComponentValue) }

// VisualizeIntensity writes the per-pixel channel mean.
func VisualizeIntensity(g *Grid) (*Grid, error) { return VisualizeComponent(g, ComponentIntensity) }

// VisualizeLuma writes the per-pixel luma.
func VisualizeLuma(g *Grid) (*Grid, error) { return VisualizeComponent(g, ComponentLuma) }

// SplitChannels returns one grayscale grid per channel (red, green, blue).
func SplitChannels(g *Grid) (red, green, blue *Grid, err error) {
	if red, err = VisualizeRed(g); err != nil {
		return nil, nil, nil, err
	}
	if green, err = VisualizeGreen(g); err != nil {
		return nil, nil, nil, err
	}
	if blue, err = VisualizeBlue(g); err != nil {
		return nil, nil, nil, err
	}
	return red, green, blue, nil
}

// CombineChannels builds a grid whose red channel comes from red, green from green
// and blue from blue. The result covers the smallest common width and height.
func CombineChannels(red, green, blue *Grid) (*Grid, error) {
	if err := requireGrids(red, green, blue); err != nil {
		return nil, err
	}

	width := min(red.width, green.width, blue.width)
	height := min(red.height, green.height, blue.height)

	result := NewGrid(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			result.SetRGB(x, y, RGB{
				R: red.At(x, y).R,
				G: green.At(x, y).G,
				B: blue.At(x, y).B,
			})
		}
	}
	return result, nil
}
