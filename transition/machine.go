package transition

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/backtrack/common"
	"github.com/milk9111/backtrack/maps"
)

// Cooldown suppresses new transition activations for a short window after a
// switch is queued and again after it executes, absorbing the frame where the
// player may spawn still inside the destination's trigger volume.
const Cooldown = 0.25

// Override property keys recognized on a transition object. They let map
// authors resolve an ambiguous pairing explicitly.
const (
	PropTargetMap        = "target_map"
	PropTargetTransition = "target_transition"
)

// Player exposes what the machine needs to know about the player body.
type Player interface {
	Shape() *cp.Shape
	Position() (x, y float64)
	HalfSize() (w, h float64)
}

// SwitchFunc performs the actual map switch. It is invoked exactly once per
// executed switch, from Update, never from inside an overlap callback:
// destroying shapes while the physics engine iterates live contacts is
// undefined behavior.
type SwitchFunc func(mapID string, x, y float64)

// Binding pairs a transition fixture with its authored rectangle.
type Binding struct {
	Shape  *cp.Shape
	Object maps.Object
}

type pendingSwitch struct {
	mapID string
	x, y  float64
}

// Machine drives cross-map travel for the current map. It records the desired
// switch during the overlap callback and performs it on the next Update call.
// Once queued a switch always executes; there is no abort path.
type Machine struct {
	src      Source
	player   Player
	switchFn SwitchFunc

	mapID    string
	index    *Index
	shapes   map[*cp.Shape]Object
	cooldown float64
	pending  *pendingSwitch
}

func NewMachine(src Source, player Player, switchFn SwitchFunc) *Machine {
	return &Machine{
		src:      src,
		player:   player,
		switchFn: switchFn,
		shapes:   make(map[*cp.Shape]Object),
	}
}

// Rebuild points the machine at a freshly loaded map: it re-scans the
// destination index and adopts the new map's transition fixtures. The
// cooldown timer deliberately survives so arriving inside a destination
// volume cannot re-trigger immediately.
func (m *Machine) Rebuild(mapID string, bindings []Binding) error {
	if m == nil {
		return nil
	}
	ix, err := BuildIndex(m.src, mapID)
	if err != nil {
		return err
	}
	m.mapID = mapID
	m.index = ix
	m.shapes = make(map[*cp.Shape]Object, len(bindings))
	for _, b := range bindings {
		if b.Shape == nil || !namePattern.MatchString(b.Object.Name) {
			continue
		}
		m.shapes[b.Shape] = Object{
			Name:   b.Object.Name,
			MapID:  mapID,
			Bounds: b.Object.Bounds(),
			Props:  b.Object.Props,
		}
	}
	return nil
}

// MapID returns the current map the machine is bound to.
func (m *Machine) MapID() string {
	if m == nil {
		return ""
	}
	return m.mapID
}

// CooldownRemaining is how long new activations stay suppressed.
func (m *Machine) CooldownRemaining() float64 {
	if m == nil {
		return 0
	}
	return m.cooldown
}

// OnOverlapBegin handles a physics begin event. While the cooldown is running
// transition triggers are ignored entirely — not queued, not deferred.
func (m *Machine) OnOverlapBegin(a, b *cp.Shape) {
	if m == nil || m.player == nil || m.cooldown > 0 {
		return
	}
	playerShape := m.player.Shape()
	var fixture *cp.Shape
	switch {
	case a == playerShape:
		fixture = b
	case b == playerShape:
		fixture = a
	default:
		return
	}
	src, ok := m.shapes[fixture]
	if !ok {
		return
	}
	m.activate(src)
}

// OnOverlapEnd is part of the contact-event surface. The fixed-duration
// cooldown strategy does not track exits, so this is a no-op.
func (m *Machine) OnOverlapEnd(a, b *cp.Shape) {}

func (m *Machine) activate(src Object) {
	dest, ok := m.resolveDestination(src)
	if !ok {
		return
	}

	px, py := m.player.Position()
	halfW, halfH := m.player.HalfSize()
	x, y := SpawnPosition(src.Bounds, dest.Bounds, px, py, halfW, halfH)

	if m.pending != nil {
		log.Printf("transition: overwriting pending switch to %q with %q", m.pending.mapID, dest.MapID)
	}
	m.pending = &pendingSwitch{mapID: dest.MapID, x: x, y: y}
	m.cooldown = Cooldown
}

// resolveDestination picks the destination rectangle for a touched transition.
// A per-object override always wins over the index; a trigger with no
// resolvable destination is inert.
func (m *Machine) resolveDestination(src Object) (Object, bool) {
	if targetMap, ok := src.Props.String(PropTargetMap); ok && targetMap != "" {
		return m.resolveOverride(src, targetMap)
	}
	dest, ok := m.index.Resolve(src.Name)
	if !ok {
		log.Printf("transition: %q on map %q has no destination, ignoring", src.Name, m.mapID)
		return Object{}, false
	}
	return dest, true
}

func (m *Machine) resolveOverride(src Object, targetMap string) (Object, bool) {
	targetName := src.Name
	if n, ok := src.Props.String(PropTargetTransition); ok && n != "" {
		targetName = n
	}
	dm, err := m.src.Load(targetMap)
	if err != nil {
		log.Printf("transition: override on %q names map %q which failed to load: %v", src.Name, targetMap, err)
		return Object{}, false
	}
	for _, obj := range CollectObjects(dm) {
		if obj.Name == targetName {
			return obj, true
		}
	}
	// still switch maps, but with degraded placement at the source trigger's
	// own center
	log.Printf("transition: override on %q names %q in map %q which does not exist, using degraded placement",
		src.Name, targetName, targetMap)
	return Object{
		Name:   targetName,
		MapID:  dm.ID,
		Bounds: common.Rect{X: src.Bounds.CenterX(), Y: src.Bounds.CenterY()},
	}, true
}

// Update ticks the cooldown toward zero and executes at most one pending
// switch. Call it once per frame after the physics step. The switch callback
// runs here precisely because shape teardown is safe at this point.
func (m *Machine) Update(dt float64) {
	if m == nil {
		return
	}
	if m.cooldown > 0 {
		m.cooldown -= dt
		if m.cooldown < 0 {
			m.cooldown = 0
		}
	}
	if m.pending == nil {
		return
	}
	p := *m.pending
	m.pending = nil
	m.cooldown = Cooldown
	if m.switchFn != nil {
		m.switchFn(p.mapID, p.x, p.y)
	}
}

// HasPending reports whether a switch is queued for the next Update.
func (m *Machine) HasPending() bool {
	return m != nil && m.pending != nil
}
