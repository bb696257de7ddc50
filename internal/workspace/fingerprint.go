package workspace

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/cespare/xxhash/v2"

	"github.com/ironsheep/pixel-engine-mcp/internal/imaging"
)

// Fingerprint returns the xxHash64 of a grid's dimensions and samples as 16 hex
// characters. Grids with equal dimensions and samples share a fingerprint.
func Fingerprint(g *imaging.Grid) string {
	if g == nil {
		return ""
	}
	h := xxhash.New()

	var dims [16]byte
	binary.BigEndian.PutUint64(dims[:8], uint64(g.Width()))
	binary.BigEndian.PutUint64(dims[8:], uint64(g.Height()))
	h.Write(dims[:])
	h.Write(g.Bytes())

	var sum [8]byte
	binary.BigEndian.PutUint64(sum[:], h.Sum64())
	return hex.EncodeToString(sum[:])
}
