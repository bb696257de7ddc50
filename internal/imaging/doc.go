// Package imaging implements the deterministic pixel transforms of the editor.
//
// Every operation reads one or more immutable source grids and returns a freshly
// allocated Grid. Nothing here performs I/O, logs, or keeps state between calls,
// so independent operations may run concurrently on different goroutines.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner:
//   - X: horizontal position (0 = leftmost column)
//   - Y: vertical position (0 = topmost row)
//
// # Samples
//
// A Grid stores three 8-bit channels (red, green, blue) per pixel. Every write goes
// through a clamp to [0,255], so no operation can produce an out-of-range sample.
// Weighted sums (convolution, colour matrices, luma, bilinear resampling) are
// truncated toward zero; the tone curve and wavelet reconstruction round to nearest.
//
// # Operations
//
// Point and kernel transforms:
//   - VisualizeComponent (red, green, blue, value, intensity, luma)
//   - FlipHorizontal, FlipVertical
//   - Brighten, Darken
//   - Convolve with BlurKernel or SharpenKernel
//   - ApplyColorMatrix with GreyscaleMatrix or SepiaMatrix
//   - SplitChannels, CombineChannels
//
// Analytics and correction:
//   - CalculateHistogram, RenderHistogram
//   - ColorCorrect, ColorCorrectRange (peak alignment)
//   - LevelsAdjust (quadratic tone curve through three control points)
//
// Codec and resampling:
//   - Compress (2D Haar wavelet with percentile thresholding)
//   - Downscale (bilinear)
//
// Composition:
//   - ApplyWithMask (apply an Operation where a mask is near-black)
//   - ApplySplitView (before/after preview)
//
// # Error Handling
//
// Functions return errors wrapping one of the package sentinels:
//   - ErrNilGrid: a required grid or mask is nil
//   - ErrInvalidArgument: a scalar parameter is out of range
//   - ErrDimensionMismatch: grids that must match in size do not
//   - ErrUnsupportedOperation: an unknown mask operation
//
// Use errors.Is to classify them. Degenerate numeric inputs, such as an empty
// histogram, fall back locally instead of failing.
package imaging
