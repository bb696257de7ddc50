package codec

import (
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	imgio "github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/pixel-engine-mcp/internal/imaging"
)

// Format identifies a file format the codecs can read or write.
type Format int

const (
	PPM Format = iota
	PNG
	JPEG
	GIF
	BMP
	TIFF
	WebP
)

var formatNames = map[Format]string{
	PPM:  "ppm",
	PNG:  "png",
	JPEG: "jpeg",
	GIF:  "gif",
	BMP:  "bmp",
	TIFF: "tiff",
	WebP: "webp",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// CanEncode reports whether grids can be written in this format.
func (f Format) CanEncode() bool {
	return f != WebP && formatNames[f] != ""
}

// DefaultJPEGQuality is used when Encode is called with a quality outside 1..100.
const DefaultJPEGQuality = 95

// FormatFromPath picks the format from the file extension (case-insensitive).
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".ppm":
		return PPM, nil
	case ".webp":
		return WebP, nil
	}

	f, err := imgio.FormatFromExtension(ext)
	if err != nil {
		return 0, fmt.Errorf("extension %q: %w", ext, ErrUnsupportedFormat)
	}
	switch f {
	case imgio.PNG:
		return PNG, nil
	case imgio.JPEG:
		return JPEG, nil
	case imgio.GIF:
		return GIF, nil
	case imgio.BMP:
		return BMP, nil
	case imgio.TIFF:
		return TIFF, nil
	}
	return 0, fmt.Errorf("extension %q: %w", ext, ErrUnsupportedFormat)
}

func (f Format) rasterFormat() (imgio.Format, error) {
	switch f {
	case PNG:
		return imgio.PNG, nil
	case JPEG:
		return imgio.JPEG, nil
	case GIF:
		return imgio.GIF, nil
	case BMP:
		return imgio.BMP, nil
	case TIFF:
		return imgio.TIFF, nil
	}
	return 0, fmt.Errorf("cannot encode %v: %w", f, ErrUnsupportedFormat)
}

// Decode reads any registered raster format (PNG, JPEG, GIF, BMP, TIFF, WebP).
// EXIF orientation is applied so the grid matches what viewers display.
func Decode(r io.Reader) (*imaging.Grid, error) {
	img, err := imgio.Decode(r, imgio.AutoOrientation(true))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("failed to decode image: %w", ErrUnsupportedFormat)
		}
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return imaging.FromImage(img), nil
}

// Encode writes g in the given format. Quality only applies to JPEG; values
// outside 1..100 fall back to DefaultJPEGQuality. PPM is written as text.
func Encode(w io.Writer, g *imaging.Grid, f Format, quality int) error {
	if g == nil {
		return imaging.ErrNilGrid
	}
	if f == PPM {
		return WritePPM(w, g)
	}
	rf, err := f.rasterFormat()
	if err != nil {
		return err
	}
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	if err := imgio.Encode(w, g.ToImage(), rf, imgio.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("failed to encode %v: %w", f, err)
	}
	return nil
}
