package codec

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/ironsheep/pixel-engine-mcp/internal/imaging"
)

const (
	ppmMagic   = "P3"
	ppmComment = "# Created by pixel-engine"
	ppmMaxVal  = 255

	// MaxPPMPixels caps width*height so a header cannot demand an unbounded allocation.
	MaxPPMPixels = 1 << 26
)

// ReadPPM decodes a plain-text (P3) PPM stream.
//
// The header is the magic number, width, height and maximum sample value, each
// separated by whitespace. A '#' starts a comment that runs to the end of the line.
// Samples follow in row-major order, red, green then blue. When the maximum value
// is not 255 every sample is rescaled to [0,255] with rounding.
func ReadPPM(r io.Reader) (*imaging.Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Split(scanPPMTokens)

	magic, err := nextToken(sc)
	if err != nil {
		return nil, err
	}
	if magic != ppmMagic {
		return nil, fmt.Errorf("magic number %q is not %s: %w", magic, ppmMagic, ErrUnsupportedFormat)
	}

	var header [3]int
	for i, field := range []string{"width", "height", "max value"} {
		v, err := nextInt(sc, field)
		if err != nil {
			return nil, err
		}
		header[i] = v
	}
	width, height, maxVal := header[0], header[1], header[2]
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("negative dimensions %dx%d: %w", width, height, ErrMalformedPPM)
	}
	if width > 0 && height > MaxPPMPixels/width {
		return nil, fmt.Errorf("dimensions %dx%d exceed %d pixels: %w", width, height, MaxPPMPixels, ErrMalformedPPM)
	}
	if maxVal < 1 || maxVal > 65535 {
		return nil, fmt.Errorf("max value %d outside 1..65535: %w", maxVal, ErrMalformedPPM)
	}

	g := imaging.NewGrid(width, height)
	var px [3]int
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for c := range px {
				v, err := nextInt(sc, "sample")
				if err != nil {
					return nil, fmt.Errorf("pixel (%d,%d): %w", x, y, err)
				}
				if v < 0 || v > maxVal {
					return nil, fmt.Errorf("pixel (%d,%d): sample %d outside 0..%d: %w", x, y, v, maxVal, ErrMalformedPPM)
				}
				px[c] = scaleSample(v, maxVal)
			}
			g.Set(x, y, px[0], px[1], px[2])
		}
	}
	return g, nil
}

// scaleSample maps v in [0,maxVal] onto [0,255], rounding half up.
func scaleSample(v, maxVal int) int {
	if maxVal == ppmMaxVal {
		return v
	}
	return (v*ppmMaxVal*2 + maxVal) / (maxVal * 2)
}

// WritePPM encodes g as plain-text PPM: the P3 header with a comment line, then
// one sample per line.
func WritePPM(w io.Writer, g *imaging.Grid) error {
	if g == nil {
		return imaging.ErrNilGrid
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%s\n%d %d\n%d\n", ppmMagic, ppmComment, g.Width(), g.Height(), ppmMaxVal)

	buf := make([]byte, 0, 4)
	for _, v := range g.Bytes() {
		buf = strconv.AppendUint(buf[:0], uint64(v), 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("failed to write PPM: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM: %w", err)
	}
	return nil
}

func nextToken(sc *bufio.Scanner) (string, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", fmt.Errorf("failed to read PPM: %w", err)
		}
		return "", fmt.Errorf("unexpected end of data: %w", ErrMalformedPPM)
	}
	return sc.Text(), nil
}

func nextInt(sc *bufio.Scanner, field string) (int, error) {
	tok, err := nextToken(sc)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", field, err)
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not an integer: %w", field, tok, ErrMalformedPPM)
	}
	return v, nil
}

// scanPPMTokens is a bufio.SplitFunc yielding whitespace-separated tokens with
// '#' comments removed.
func scanPPMTokens(data []byte, atEOF bool) (advance int, token []byte, err error) {
	i := 0
	for i < len(data) {
		switch {
		case isSpace(data[i]):
			i++
		case data[i] == '#':
			nl := bytes.IndexByte(data[i:], '\n')
			if nl < 0 {
				if atEOF {
					return len(data), nil, nil
				}
				// Need the rest of the comment line.
				return i, nil, nil
			}
			i += nl + 1
		default:
			start := i
			for i < len(data) && !isSpace(data[i]) && data[i] != '#' {
				i++
			}
			if i == len(data) && !atEOF {
				return start, nil, nil
			}
			return i, data[start:i], nil
		}
	}
	return i, nil, nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}
