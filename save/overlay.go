// Package save implements the save-data overlay: a write-through key-value
// cache over a YAML file on disk.
package save

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Overlay caches save values in memory and writes the whole file back on
// every Set. Values are bool, float64, or string.
type Overlay struct {
	path   string
	values map[string]any
}

// New returns an empty overlay bound to path without reading the file. Used
// to start fresh over an unreadable save.
func New(path string) *Overlay {
	return &Overlay{path: path, values: make(map[string]any)}
}

// Open loads the overlay at path. A missing file is an empty overlay, not an
// error; a corrupt file is reported so the caller can decide whether to start
// fresh.
func Open(path string) (*Overlay, error) {
	o := &Overlay{path: path, values: make(map[string]any)}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return o, nil
	}
	if err != nil {
		return nil, fmt.Errorf("save: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &o.values); err != nil {
		return nil, fmt.Errorf("save: unmarshal %s: %w", path, err)
	}
	if o.values == nil {
		o.values = make(map[string]any)
	}
	return o, nil
}

// Set stores a value and writes the file through. Unsupported value types are
// skipped with the original value retained, matching how corrupted overlay
// input is treated on read.
func (o *Overlay) Set(key string, value any) {
	if o == nil {
		return
	}
	switch v := value.(type) {
	case bool, string, float64:
		o.values[key] = v
	case int:
		o.values[key] = float64(v)
	case int64:
		o.values[key] = float64(v)
	default:
		log.Printf("save: skipping %q: unsupported value type %T", key, value)
		return
	}
	o.flush()
}

// Delete removes a key and writes the file through.
func (o *Overlay) Delete(key string) {
	if o == nil {
		return
	}
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	o.flush()
}

func (o *Overlay) String(key string) (string, bool) {
	if o == nil {
		return "", false
	}
	v, ok := o.values[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Number returns a stored numeric value. A non-numeric value under the key is
// treated as absent; the stored value stays untouched.
func (o *Overlay) Number(key string) (float64, bool) {
	if o == nil {
		return 0, false
	}
	v, ok := o.values[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		log.Printf("save: %q holds %T, expected number", key, v)
		return 0, false
	}
}

func (o *Overlay) Bool(key string) (bool, bool) {
	if o == nil {
		return false, false
	}
	v, ok := o.values[key]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Len reports how many keys are stored.
func (o *Overlay) Len() int {
	if o == nil {
		return 0
	}
	return len(o.values)
}

func (o *Overlay) flush() {
	if o.path == "" {
		return
	}
	data, err := yaml.Marshal(o.values)
	if err != nil {
		log.Printf("save: marshal: %v", err)
		return
	}
	if err := os.WriteFile(o.path, data, 0o644); err != nil {
		log.Printf("save: write %s: %v", o.path, err)
	}
}
