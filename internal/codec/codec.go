package codec

import (
	"fmt"
	"os"

	"github.com/ironsheep/pixel-engine-mcp/internal/imaging"
)

// FileInfo describes an image file on disk.
type FileInfo struct {
	Path          string `json:"path"`
	Format        string `json:"format"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	FileSizeBytes int64  `json:"file_size_bytes"`
}

// Load reads the image at path, choosing the codec from the extension.
func Load(path string) (*imaging.Grid, error) {
	grid, _, err := LoadWithInfo(path)
	return grid, err
}

// LoadWithInfo reads the image at path and also reports its format and size.
func LoadWithInfo(path string) (*imaging.Grid, *FileInfo, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	var grid *imaging.Grid
	if f == PPM {
		grid, err = ReadPPM(file)
	} else {
		grid, err = Decode(file)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	return grid, &FileInfo{
		Path:          path,
		Format:        f.String(),
		Width:         grid.Width(),
		Height:        grid.Height(),
		FileSizeBytes: stat.Size(),
	}, nil
}

// Save writes g to path, choosing the codec from the extension. Quality is
// passed to Encode.
func Save(path string, g *imaging.Grid, quality int) error {
	if g == nil {
		return imaging.ErrNilGrid
	}
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if !f.CanEncode() {
		return fmt.Errorf("cannot encode %v: %w", f, ErrUnsupportedFormat)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Encode(file, g, f, quality); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}
