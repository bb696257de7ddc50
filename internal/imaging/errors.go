package imaging

import "errors"

var (
	// ErrNilGrid is returned when a required grid or mask is missing.
	ErrNilGrid = errors.New("grid is nil")

	// ErrInvalidArgument is returned when a scalar parameter is outside its valid range.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDimensionMismatch is returned when two grids must share dimensions but do not.
	ErrDimensionMismatch = errors.New("grid dimensions do not match")

	// ErrUnsupportedOperation is returned for an operation the mask dispatcher does not know.
	ErrUnsupportedOperation = errors.New("unsupported operation")
)
