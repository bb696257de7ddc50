package workspace

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/pixel-engine-mcp/internal/codec"
	"github.com/ironsheep/pixel-engine-mcp/internal/imaging"
)

func newFilledGrid(width, height int, v int) *imaging.Grid {
	g := imaging.NewGrid(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.Set(x, y, v, v+x, v+y)
		}
	}
	return g
}

func TestStore_PutGet(t *testing.T) {
	s := NewStore()
	g := newFilledGrid(2, 2, 10)

	name, err := s.Put("koala", g)
	require.NoError(t, err)
	assert.Equal(t, "koala", name)

	got, err := s.Get("koala")
	require.NoError(t, err)
	assert.Same(t, g, got)
}

func TestStore_PutReplaces(t *testing.T) {
	s := NewStore()
	_, err := s.Put("a", newFilledGrid(1, 1, 1))
	require.NoError(t, err)
	second := newFilledGrid(1, 1, 2)
	_, err = s.Put("a", second)
	require.NoError(t, err)

	got, err := s.Get("a")
	require.NoError(t, err)
	assert.Same(t, second, got)
	assert.Equal(t, 1, s.Len())
}

func TestStore_PutGeneratesName(t *testing.T) {
	s := NewStore()

	a, err := s.Put("", newFilledGrid(1, 1, 0))
	require.NoError(t, err)
	b, err := s.Put("", newFilledGrid(1, 1, 0))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a, "img-"))
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, s.Len())
}

func TestStore_PutErrors(t *testing.T) {
	s := NewStore()

	_, err := s.Put("x", nil)
	assert.ErrorIs(t, err, imaging.ErrNilGrid)

	_, err = s.Put("two words", newFilledGrid(1, 1, 0))
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestStore_GetMissing(t *testing.T) {
	_, err := NewStore().Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_GetAll(t *testing.T) {
	s := NewStore()
	for _, n := range []string{"r", "g", "b"} {
		_, err := s.Put(n, newFilledGrid(1, 1, 0))
		require.NoError(t, err)
	}

	grids, err := s.GetAll("r", "g", "b")
	require.NoError(t, err)
	assert.Len(t, grids, 3)

	_, err = s.GetAll("r", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_NamesDeleteClear(t *testing.T) {
	s := NewStore()
	for _, n := range []string{"zeta", "alpha", "mid"} {
		_, err := s.Put(n, newFilledGrid(1, 1, 0))
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, s.Names())

	s.Delete("mid")
	s.Delete("never-existed")
	assert.Equal(t, []string{"alpha", "zeta"}, s.Names())

	s.Clear()
	assert.Empty(t, s.Names())
	assert.Equal(t, 0, s.Len())
}

func TestStore_LoadSave(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.ppm")
	require.NoError(t, codec.Save(src, newFilledGrid(3, 2, 40), 0))

	s := NewStore()
	g, info, err := s.Load(src, "koala")
	require.NoError(t, err)
	assert.Equal(t, "ppm", info.Format)
	assert.Equal(t, 3, g.Width())

	dst := filepath.Join(dir, "out.png")
	require.NoError(t, s.Save(dst, "koala", 0))

	back, err := codec.Load(dst)
	require.NoError(t, err)
	assert.True(t, g.Equal(back))
}

func TestStore_LoadErrors(t *testing.T) {
	s := NewStore()

	_, _, err := s.Load("whatever.ppm", "")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, _, err = s.Load(filepath.Join(t.TempDir(), "missing.ppm"), "x")
	assert.Error(t, err)
	assert.Equal(t, 0, s.Len(), "failed load must not register a name")

	assert.ErrorIs(t, s.Save(filepath.Join(t.TempDir(), "o.png"), "ghost", 0), ErrNotFound)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("img%d", i)
			_, err := s.Put(name, newFilledGrid(2, 2, i))
			assert.NoError(t, err)
			_, err = s.Get(name)
			assert.NoError(t, err)
			_ = s.Names()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 16, s.Len())
}
