package workspace

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ironsheep/pixel-engine-mcp/internal/codec"
	"github.com/ironsheep/pixel-engine-mcp/internal/imaging"
)

// ErrNotFound is returned when no grid is registered under a name.
var ErrNotFound = errors.New("image not found")

// ErrInvalidName is returned for names containing whitespace or nothing at all.
var ErrInvalidName = errors.New("invalid image name")

// Store maps names to grids. It is safe for concurrent use.
//
// Grids are treated as immutable once stored: Put replaces the entry for a name
// rather than modifying the grid already registered under it.
type Store struct {
	mu     sync.RWMutex
	images map[string]*imaging.Grid
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		images: make(map[string]*imaging.Grid),
	}
}

// ValidateName rejects empty names and names that contain whitespace, since
// script commands split on whitespace.
func ValidateName(name string) error {
	if name == "" || strings.ContainsAny(name, " \t\r\n") {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	return nil
}

// Put registers g under name, replacing any previous entry. An empty name is
// replaced by a generated one. The name actually used is returned.
func (s *Store) Put(name string, g *imaging.Grid) (string, error) {
	if g == nil {
		return "", imaging.ErrNilGrid
	}
	if name == "" {
		name = "img-" + uuid.NewString()
	}
	if err := ValidateName(name); err != nil {
		return "", err
	}

	s.mu.Lock()
	s.images[name] = g
	s.mu.Unlock()
	return name, nil
}

// Get returns the grid registered under name.
func (s *Store) Get(name string) (*imaging.Grid, error) {
	s.mu.RLock()
	g, ok := s.images[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return g, nil
}

// GetAll resolves several names at once, failing on the first unknown one.
func (s *Store) GetAll(names ...string) ([]*imaging.Grid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	grids := make([]*imaging.Grid, len(names))
	for i, name := range names {
		g, ok := s.images[name]
		if !ok {
			return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
		}
		grids[i] = g
	}
	return grids, nil
}

// Delete removes name from the store. Unknown names are ignored.
func (s *Store) Delete(name string) {
	s.mu.Lock()
	delete(s.images, name)
	s.mu.Unlock()
}

// Clear removes every entry.
func (s *Store) Clear() {
	s.mu.Lock()
	s.images = make(map[string]*imaging.Grid)
	s.mu.Unlock()
}

// Len returns the number of stored grids.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.images)
}

// Names returns every registered name in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.images))
	for name := range s.images {
		names = append(names, name)
	}
	s.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Load reads the image at path and registers it under name.
func (s *Store) Load(path, name string) (*imaging.Grid, *codec.FileInfo, error) {
	if err := ValidateName(name); err != nil {
		return nil, nil, err
	}
	g, info, err := codec.LoadWithInfo(path)
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.Put(name, g); err != nil {
		return nil, nil, err
	}
	return g, info, nil
}

// Save writes the grid registered under name to path. Quality applies to JPEG output.
func (s *Store) Save(path, name string, quality int) error {
	g, err := s.Get(name)
	if err != nil {
		return err
	}
	return codec.Save(path, g, quality)
}
