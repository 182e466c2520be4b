package trigger

import (
	"sort"
	"strings"
)

// Sensors is the author-facing view over plain sensor triggers.
type Sensors struct {
	reg *Registry
}

func NewSensors(reg *Registry) *Sensors {
	return &Sensors{reg: reg}
}

func (s *Sensors) IsInside(name string) bool {
	if s == nil || s.reg == nil {
		return false
	}
	if k, ok := s.reg.KindOf(name); ok && k != KindPlain {
		return false
	}
	return s.reg.IsInside(name)
}

func (s *Sensors) RegisterOnEnter(name string, fn func(name string)) {
	if s == nil || s.reg == nil {
		return
	}
	s.reg.RegisterOnEnter(name, fn)
}

func (s *Sensors) RegisterOnExit(name string, fn func(name string)) {
	if s == nil || s.reg == nil {
		return
	}
	s.reg.RegisterOnExit(name, fn)
}

// Interactables extends the sensor view with a key-gated activation query.
type Interactables struct {
	reg *Registry
}

func NewInteractables(reg *Registry) *Interactables {
	return &Interactables{reg: reg}
}

func (i *Interactables) IsInside(name string) bool {
	if i == nil || i.reg == nil {
		return false
	}
	if k, ok := i.reg.KindOf(name); ok && k != KindInteractable {
		return false
	}
	return i.reg.IsInside(name)
}

// Press reports whether pressing key would activate the named trigger right
// now. It is a pure query: callers that want toggle or momentary behavior own
// their own press state.
func (i *Interactables) Press(name, key string) bool {
	if !i.IsInside(name) {
		return false
	}
	required, ok := i.reg.RequiredKey(name)
	if !ok {
		return true
	}
	return strings.ToLower(key) == required
}

// Any returns the first currently-inside interactable name that accepts key.
// Names are scanned in sorted order so the answer is stable across frames.
func (i *Interactables) Any(key string) (string, bool) {
	if i == nil || i.reg == nil {
		return "", false
	}
	names := make([]string, 0, len(i.reg.entries))
	for name, e := range i.reg.entries {
		if e.kind == KindInteractable && e.count > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		if i.Press(name, key) {
			return name, true
		}
	}
	return "", false
}

func (i *Interactables) RequiredKey(name string) (string, bool) {
	if i == nil || i.reg == nil {
		return "", false
	}
	return i.reg.RequiredKey(name)
}

func (i *Interactables) RegisterOnEnter(name string, fn func(name string)) {
	if i == nil || i.reg == nil {
		return
	}
	i.reg.RegisterOnEnter(name, fn)
}

func (i *Interactables) RegisterOnExit(name string, fn func(name string)) {
	if i == nil || i.reg == nil {
		return
	}
	i.reg.RegisterOnExit(name, fn)
}
