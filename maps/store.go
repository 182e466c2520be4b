package maps

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed *.json
var mapsFS embed.FS

// Store loads maps from a filesystem. Map IDs are file paths relative to the
// store root without the .json extension.
type Store struct {
	fsys fs.FS
}

// Embedded returns a store over the maps compiled into the binary.
func Embedded() *Store {
	return &Store{fsys: mapsFS}
}

// NewStore creates a store over an arbitrary filesystem, mainly for tests.
func NewStore(fsys fs.FS) *Store {
	return &Store{fsys: fsys}
}

// IDs lists every map ID reachable under the store root, sorted.
func (s *Store) IDs() ([]string, error) {
	if s == nil || s.fsys == nil {
		return nil, fmt.Errorf("maps: store not initialized")
	}
	var ids []string
	err := fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".json") {
			return nil
		}
		ids = append(ids, strings.TrimSuffix(p, ".json"))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("maps: walk store: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

// Load reads and decodes the map with the given ID.
func (s *Store) Load(id string) (*Map, error) {
	if s == nil || s.fsys == nil {
		return nil, fmt.Errorf("maps: store not initialized")
	}
	clean := path.Clean(strings.TrimSuffix(id, ".json"))
	data, err := fs.ReadFile(s.fsys, clean+".json")
	if err != nil {
		return nil, fmt.Errorf("maps: read %q: %w", id, err)
	}
	m, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("maps: decode %q: %w", id, err)
	}
	m.ID = clean
	return m, nil
}
