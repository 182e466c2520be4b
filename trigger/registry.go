package trigger

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/backtrack/maps"
)

// ShapeBinding pairs a physics shape with the authored object it was built
// from.
type ShapeBinding struct {
	Shape  *cp.Shape
	Object maps.Object
}

// entry tracks overlap state for one logical trigger name. count always
// equals len(active); count > 0 means "inside".
type entry struct {
	kind        Kind
	count       int
	active      map[*cp.Shape]struct{}
	requiredKey string
}

// Registry deduplicates per-shape overlap events into clean per-name
// enter/exit edges. It owns the shape-to-names mapping exclusively.
//
// Rebuild never seeds overlap state: immediately after a rebuild every
// trigger reports "not inside" until the physics engine delivers begin
// events, matching chipmunk's begin/separate semantics.
type Registry struct {
	names   map[*cp.Shape][]Name
	entries map[string]*entry

	onEnter map[string]func(name string)
	onExit  map[string]func(name string)
}

func NewRegistry() *Registry {
	return &Registry{
		names:   make(map[*cp.Shape][]Name),
		entries: make(map[string]*entry),
		onEnter: make(map[string]func(string)),
		onExit:  make(map[string]func(string)),
	}
}

// Rebuild replaces all shape mappings and overlap state with the given
// bindings. Registered callbacks survive: gameplay scripts register once at
// startup and expect to keep working after map switches.
func (r *Registry) Rebuild(bindings []ShapeBinding) {
	if r == nil {
		return
	}
	r.names = make(map[*cp.Shape][]Name)
	r.entries = make(map[string]*entry)
	for _, b := range bindings {
		if b.Shape == nil {
			continue
		}
		names := NamesFromObject(b.Object)
		if len(names) == 0 {
			continue
		}
		r.names[b.Shape] = append(r.names[b.Shape], names...)
		for _, n := range names {
			e, ok := r.entries[n.Raw]
			if !ok {
				e = &entry{kind: n.Kind, active: make(map[*cp.Shape]struct{})}
				r.entries[n.Raw] = e
			}
			if n.Kind == KindInteractable && e.requiredKey == "" {
				e.requiredKey = RequiredKeyFromObject(b.Object)
			}
		}
	}
}

// OnOverlapBegin processes a begin event between two shapes. For each side
// that is a trigger shape whose counterpart is the player, every name on that
// shape that was not already active for that specific shape increments its
// count; the enter callback fires exactly on the 0 -> 1 edge.
func (r *Registry) OnOverlapBegin(a, b *cp.Shape, isPlayer func(*cp.Shape) bool) {
	if r == nil || isPlayer == nil {
		return
	}
	r.beginOne(a, b, isPlayer)
	r.beginOne(b, a, isPlayer)
}

func (r *Registry) beginOne(shape, other *cp.Shape, isPlayer func(*cp.Shape) bool) {
	names, ok := r.names[shape]
	if !ok || !isPlayer(other) {
		return
	}
	for _, n := range names {
		e := r.entries[n.Raw]
		if e == nil {
			continue
		}
		if _, dup := e.active[shape]; dup {
			// duplicate begin for the same pair
			continue
		}
		e.active[shape] = struct{}{}
		e.count++
		if e.count == 1 {
			if fn := r.onEnter[n.Raw]; fn != nil {
				fn(n.Raw)
			}
		}
	}
}

// OnOverlapEnd is the symmetric decrement, floored at zero. A spurious end
// with no matching begin is a no-op. The exit callback fires exactly on the
// 1 -> 0 edge.
func (r *Registry) OnOverlapEnd(a, b *cp.Shape, isPlayer func(*cp.Shape) bool) {
	if r == nil || isPlayer == nil {
		return
	}
	r.endOne(a, b, isPlayer)
	r.endOne(b, a, isPlayer)
}

func (r *Registry) endOne(shape, other *cp.Shape, isPlayer func(*cp.Shape) bool) {
	names, ok := r.names[shape]
	if !ok || !isPlayer(other) {
		return
	}
	for _, n := range names {
		e := r.entries[n.Raw]
		if e == nil {
			continue
		}
		if _, active := e.active[shape]; !active {
			continue
		}
		delete(e.active, shape)
		if e.count > 0 {
			e.count--
		}
		if e.count == 0 {
			if fn := r.onExit[n.Raw]; fn != nil {
				fn(n.Raw)
			}
		}
	}
}

// IsInside reports whether the player currently overlaps any shape carrying
// the name. Unknown names report false; a trigger missing from the current
// map is a normal authoring scenario, not an error.
func (r *Registry) IsInside(name string) bool {
	if r == nil {
		return false
	}
	e, ok := r.entries[name]
	return ok && e.count > 0
}

// KindOf returns the build-time classification for a known name.
func (r *Registry) KindOf(name string) (Kind, bool) {
	if r == nil {
		return 0, false
	}
	e, ok := r.entries[name]
	if !ok {
		return 0, false
	}
	return e.kind, true
}

// RequiredKey returns the authored activation key for an interactable name.
// ok is false when the name is unknown or accepts any key.
func (r *Registry) RequiredKey(name string) (string, bool) {
	if r == nil {
		return "", false
	}
	e, ok := r.entries[name]
	if !ok || e.requiredKey == "" {
		return "", false
	}
	return e.requiredKey, true
}

// RegisterOnEnter sets the enter callback for a name, replacing any previous
// one.
func (r *Registry) RegisterOnEnter(name string, fn func(name string)) {
	if r == nil {
		return
	}
	if fn == nil {
		delete(r.onEnter, name)
		return
	}
	r.onEnter[name] = fn
}

// RegisterOnExit sets the exit callback for a name, replacing any previous
// one.
func (r *Registry) RegisterOnExit(name string, fn func(name string)) {
	if r == nil {
		return
	}
	if fn == nil {
		delete(r.onExit, name)
		return
	}
	r.onExit[name] = fn
}
