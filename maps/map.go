package maps

import (
	"encoding/json"
	"fmt"

	"github.com/milk9111/backtrack/common"
)

// Map is a tile map stored as JSON. Layers come in two flavors: tile layers
// (Tiles is a flat Width*Height row-major array) and object layers (Objects
// holds named rectangles with free-form properties).
type Map struct {
	// ID is the map's load path without extension. Set by the Store on load,
	// not stored in the file.
	ID string `json:"-"`

	Width  int `json:"width"`
	Height int `json:"height"`

	Layers   []Layer  `json:"layers"`
	Entities []Entity `json:"entities,omitempty"`
}

type Layer struct {
	Name string `json:"name"`
	// Physics marks a tile layer's tiles as solid collision geometry.
	Physics bool     `json:"physics,omitempty"`
	Tiles   []int    `json:"tiles,omitempty"`
	Objects []Object `json:"objects,omitempty"`
}

// Object is a named rectangle authored on an object layer.
type Object struct {
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Props  Props   `json:"props,omitempty"`
}

func (o Object) Bounds() common.Rect {
	return common.Rect{X: o.X, Y: o.Y, W: o.Width, H: o.Height}
}

// Entity is a point-placed spawn marker (player spawn, camera anchor, etc.).
type Entity struct {
	Type  string  `json:"type"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Props Props   `json:"props,omitempty"`
}

// Props holds authored key-value properties. Values are whatever the JSON
// decoder produced: bool, float64, or string.
type Props map[string]any

func (p Props) Bool(key string) (bool, bool) {
	v, ok := p[key]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

func (p Props) Number(key string) (float64, bool) {
	v, ok := p[key]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

func (p Props) String(key string) (string, bool) {
	v, ok := p[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func decode(data []byte) (*Map, error) {
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal map: %w", err)
	}
	if m.Width <= 0 || m.Height <= 0 {
		return nil, fmt.Errorf("invalid map dimensions: %dx%d", m.Width, m.Height)
	}
	for i := range m.Layers {
		if m.Layers[i].Tiles != nil && len(m.Layers[i].Tiles) != m.Width*m.Height {
			return nil, fmt.Errorf("layer %q: tile count %d does not match %dx%d",
				m.Layers[i].Name, len(m.Layers[i].Tiles), m.Width, m.Height)
		}
	}
	return &m, nil
}

// Layer returns the first layer with the given name.
func (m *Map) Layer(name string) (*Layer, bool) {
	if m == nil {
		return nil, false
	}
	for i := range m.Layers {
		if m.Layers[i].Name == name {
			return &m.Layers[i], true
		}
	}
	return nil, false
}

// PixelSize returns the map dimensions in world pixels.
func (m *Map) PixelSize() (float64, float64) {
	if m == nil {
		return 0, 0
	}
	return float64(m.Width * common.TileSize), float64(m.Height * common.TileSize)
}

// SpawnPosition returns the "spawn" entity's position, or the map center if
// none is authored.
func (m *Map) SpawnPosition() (float64, float64) {
	if m == nil {
		return 0, 0
	}
	for _, ent := range m.Entities {
		if ent.Type == "spawn" {
			return ent.X, ent.Y
		}
	}
	w, h := m.PixelSize()
	return w / 2, h / 2
}
