// Package codec moves pixel grids in and out of files.
//
// Two families of formats are supported:
//
//   - Plain-text PPM (P3), read and written directly. The reader accepts comments
//     anywhere in the header and any whitespace between tokens, and rescales samples
//     when the declared maximum value is not 255.
//   - Raster formats (PNG, JPEG, GIF, BMP, TIFF) through the disintegration/imaging
//     codecs. WebP files can be decoded but not encoded.
//
// Load and Save pick the format from the file extension. Decoding discards alpha.
package codec
