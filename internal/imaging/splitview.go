package imaging

import "fmt"

// SplitSide selects which half of a split view shows the processed grid.
type SplitSide int

const (
	// ProcessedLeft shows the processed grid left of the split line. This is the
	// live-preview convention.
	ProcessedLeft SplitSide = iota
	// ProcessedRight shows the processed grid right of the split line.
	ProcessedRight
)

// ParseSplitSide maps "left" or "right" (or "" for the default) to a SplitSide.
func ParseSplitSide(s string) (SplitSide, error) {
	switch s {
	case "", "left":
		return ProcessedLeft, nil
	case "right":
		return ProcessedRight, nil
	default:
		return 0, fmt.Errorf("unknown split side %q: %w", s, ErrInvalidArgument)
	}
}

// ApplySplitView composites original and processed side by side.
//
// The split column is splitX = width*percentage/100 (integer division). With
// ProcessedLeft, columns x < splitX come from processed and the rest from original;
// ProcessedRight swaps the two sources. Both grids must have the same dimensions
// and percentage must be in [0,100].
func ApplySplitView(original, processed *Grid, percentage int, side SplitSide) (*Grid, error) {
	if err := requireGrids(original, processed); err != nil {
		return nil, err
	}
	if !original.SameSize(processed) {
		return nil, fmt.Errorf("original %dx%d, processed %dx%d: %w",
			original.width, original.height, processed.width, processed.height, ErrDimensionMismatch)
	}
	if percentage < 0 || percentage > 100 {
		return nil, fmt.Errorf("split percentage %d must be between 0 and 100: %w", percentage, ErrInvalidArgument)
	}

	left, right := processed, original
	switch side {
	case ProcessedLeft:
	case ProcessedRight:
		left, right = original, processed
	default:
		return nil, fmt.Errorf("unknown split side %d: %w", int(side), ErrInvalidArgument)
	}

	splitX := original.width * percentage / 100
	result := NewGrid(original.width, original.height)
	for y := 0; y < original.height; y++ {
		for x := 0; x < original.width; x++ {
			if x < splitX {
				result.SetRGB(x, y, left.At(x, y))
			} else {
				result.SetRGB(x, y, right.At(x, y))
			}
		}
	}
	return result, nil
}
