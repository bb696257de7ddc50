package imaging

import "fmt"

// MaskTolerance is the exclusive upper bound on every channel of a selected mask pixel.
const MaskTolerance = 10

// IsSelected reports whether a mask pixel marks its location for processing.
// Only near-black pixels (all channels below MaskTolerance) are selected.
func IsSelected(p RGB) bool {
	return p.R < MaskTolerance && p.G < MaskTolerance && p.B < MaskTolerance
}

// Operation enumerates the transforms that can be gated by a mask.
type Operation int

const (
	OpBlur Operation = iota
	OpSharpen
	OpSepia
	OpGreyscale
	OpRedComponent
	OpGreenComponent
	OpBlueComponent
	OpValueComponent
	OpIntensityComponent
	OpLumaComponent
)

type operationEntry struct {
	name  string
	apply func(*Grid) (*Grid, error)
}

var operations = map[Operation]operationEntry{
	OpBlur:               {"blur", Blur},
	OpSharpen:            {"sharpen", Sharpen},
	OpSepia:              {"sepia", Sepia},
	OpGreyscale:          {"greyscale", Greyscale},
	OpRedComponent:       {"red-component", VisualizeRed},
	OpGreenComponent:     {"green-component", VisualizeGreen},
	OpBlueComponent:      {"blue-component", VisualizeBlue},
	OpValueComponent:     {"value-component", VisualizeValue},
	OpIntensityComponent: {"intensity-component", VisualizeIntensity},
	OpLumaComponent:      {"luma-component", VisualizeLuma},
}

// Operations returns every supported operation in declaration order.
func Operations() []Operation {
	ops := make([]Operation, 0, len(operations))
	for op := OpBlur; op <= OpLumaComponent; op++ {
		ops = append(ops, op)
	}
	return ops
}

func (op Operation) String() string {
	if e, ok := operations[op]; ok {
		return e.name
	}
	return fmt.Sprintf("Operation(%d)", int(op))
}

// ParseOperation maps a command name such as "blur" or "luma-component" to an Operation.
func ParseOperation(name string) (Operation, error) {
	for op, e := range operations {
		if e.name == name {
			return op, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnsupportedOperation)
}

// Apply runs the operation on g.
func (op Operation) Apply(g *Grid) (*Grid, error) {
	e, ok := operations[op]
	if !ok {
		return nil, fmt.Errorf("%v: %w", op, ErrUnsupportedOperation)
	}
	return e.apply(g)
}

// ApplyWithMask applies op only where mask is selected (see IsSelected).
//
// Parameters:
//   - src: Source grid.
//   - mask: Grid with the same dimensions as src. Near-black pixels take the
//     processed value; every other pixel keeps the source value.
//   - op: The transform to apply.
//
// Returns an error if either grid is nil, the dimensions differ or op is unknown.
// No partial output is produced on error.
func ApplyWithMask(src, mask *Grid, op Operation) (*Grid, error) {
	if err := requireGrids(src, mask); err != nil {
		return nil, err
	}
	if !src.SameSize(mask) {
		return nil, fmt.Errorf("source %dx%d, mask %dx%d: %w",
			src.width, src.height, mask.width, mask.height, ErrDimensionMismatch)
	}
	processed, err := op.Apply(src)
	if err != nil {
		return nil, err
	}

	result := NewGrid(src.width, src.height)
	for y := 0; y < src.height; y++ {
		for x := 0; x < src.width; x++ {
			if IsSelected(mask.At(x, y)) {
				result.SetRGB(x, y, processed.At(x, y))
			} else {
				result.SetRGB(x, y, src.At(x, y))
			}
		}
	}
	return result, nil
}
