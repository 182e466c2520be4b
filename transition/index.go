package transition

import (
	"log"
	"regexp"

	"github.com/milk9111/backtrack/common"
	"github.com/milk9111/backtrack/maps"
)

// TransitionsLayer is the object layer name scanned for transition
// rectangles.
const TransitionsLayer = "transitions"

var namePattern = regexp.MustCompile(`^transition\d+$`)

// Source provides the set of map files the index is built from.
type Source interface {
	IDs() ([]string, error)
	Load(id string) (*maps.Map, error)
}

// Object is one named transition rectangle in one map.
type Object struct {
	Name   string
	MapID  string
	Bounds common.Rect
	Props  maps.Props
}

// Index maps each transition name to its unique cross-map destination. Names
// with zero candidates outside the current map are absent; names with two or
// more are absent too — an ambiguous pairing is an authoring error that is
// logged, never guessed.
type Index struct {
	resolved map[string]Object
}

// BuildIndex scans the transitions layer of every map reachable through src
// and reduces each name's candidate list against the current map. A map that
// fails to load is skipped with a warning; it does not abort the scan. Only a
// failure to enumerate the map set at all is returned as an error.
func BuildIndex(src Source, currentID string) (*Index, error) {
	ids, err := src.IDs()
	if err != nil {
		return nil, err
	}

	candidates := make(map[string][]Object)
	for _, id := range ids {
		m, err := src.Load(id)
		if err != nil {
			log.Printf("transition: index: skipping map %q: %v", id, err)
			continue
		}
		for _, obj := range CollectObjects(m) {
			candidates[obj.Name] = append(candidates[obj.Name], obj)
		}
	}

	ix := &Index{resolved: make(map[string]Object)}
	for name, list := range candidates {
		var remote []Object
		for _, obj := range list {
			if obj.MapID != currentID {
				remote = append(remote, obj)
			}
		}
		switch len(remote) {
		case 0:
			// transition only exists on the current map; inert
		case 1:
			ix.resolved[name] = remote[0]
		default:
			log.Printf("transition: index: %q is ambiguous (%d candidate maps outside %q), leaving unresolved",
				name, len(remote), currentID)
		}
	}
	return ix, nil
}

// Resolve returns the unique destination for a transition name, if any.
func (ix *Index) Resolve(name string) (Object, bool) {
	if ix == nil {
		return Object{}, false
	}
	obj, ok := ix.resolved[name]
	return obj, ok
}

// CollectObjects extracts the named transition rectangles from one map's
// transitions layer. A missing layer yields nothing.
func CollectObjects(m *maps.Map) []Object {
	if m == nil {
		return nil
	}
	layer, ok := m.Layer(TransitionsLayer)
	if !ok {
		return nil
	}
	var out []Object
	for _, obj := range layer.Objects {
		if !namePattern.MatchString(obj.Name) {
			continue
		}
		out = append(out, Object{
			Name:   obj.Name,
			MapID:  m.ID,
			Bounds: obj.Bounds(),
			Props:  obj.Props,
		})
	}
	return out
}
