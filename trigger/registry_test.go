package trigger

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/backtrack/maps"
)

func newShape() *cp.Shape {
	return cp.NewCircle(cp.NewBody(1, 1), 1, cp.Vector{})
}

func TestRegistryRefcount(t *testing.T) {
	s1 := newShape()
	s2 := newShape()
	player := newShape()

	reg := NewRegistry()
	reg.Rebuild([]ShapeBinding{
		{Shape: s1, Object: maps.Object{Name: "sensor1"}},
		{Shape: s2, Object: maps.Object{Name: "sensor1"}},
	})

	var enters, exits int
	reg.RegisterOnEnter("sensor1", func(string) { enters++ })
	reg.RegisterOnExit("sensor1", func(string) { exits++ })

	isPlayer := func(s *cp.Shape) bool { return s == player }

	reg.OnOverlapBegin(s1, player, isPlayer)
	if !reg.IsInside("sensor1") {
		t.Fatalf("expected inside after first begin")
	}
	if enters != 1 {
		t.Fatalf("expected 1 enter, got %d", enters)
	}

	// second shape of the same name: no second enter edge
	reg.OnOverlapBegin(s2, player, isPlayer)
	if enters != 1 {
		t.Fatalf("expected still 1 enter after second shape, got %d", enters)
	}

	// leaving one shape keeps the name inside
	reg.OnOverlapEnd(s1, player, isPlayer)
	if !reg.IsInside("sensor1") {
		t.Fatalf("expected still inside with one shape remaining")
	}
	if exits != 0 {
		t.Fatalf("expected 0 exits, got %d", exits)
	}

	reg.OnOverlapEnd(s2, player, isPlayer)
	if reg.IsInside("sensor1") {
		t.Fatalf("expected outside after last end")
	}
	if exits != 1 {
		t.Fatalf("expected 1 exit, got %d", exits)
	}
}

func TestRegistryDuplicateBegin(t *testing.T) {
	s1 := newShape()
	player := newShape()

	reg := NewRegistry()
	reg.Rebuild([]ShapeBinding{{Shape: s1, Object: maps.Object{Name: "sensor1"}}})

	var enters int
	reg.RegisterOnEnter("sensor1", func(string) { enters++ })

	isPlayer := func(s *cp.Shape) bool { return s == player }

	reg.OnOverlapBegin(s1, player, isPlayer)
	reg.OnOverlapBegin(s1, player, isPlayer)
	if enters != 1 {
		t.Fatalf("expected duplicate begin to be ignored, got %d enters", enters)
	}

	reg.OnOverlapEnd(s1, player, isPlayer)
	if reg.IsInside("sensor1") {
		t.Fatalf("expected outside: one logical begin needs only one end")
	}
}

func TestRegistrySpuriousEnd(t *testing.T) {
	s1 := newShape()
	player := newShape()

	reg := NewRegistry()
	reg.Rebuild([]ShapeBinding{{Shape: s1, Object: maps.Object{Name: "sensor1"}}})

	var exits int
	reg.RegisterOnExit("sensor1", func(string) { exits++ })

	isPlayer := func(s *cp.Shape) bool { return s == player }

	// end with no begin: no-op, count floored at zero
	reg.OnOverlapEnd(s1, player, isPlayer)
	if exits != 0 {
		t.Fatalf("expected no exit for spurious end, got %d", exits)
	}

	reg.OnOverlapBegin(s1, player, isPlayer)
	if !reg.IsInside("sensor1") {
		t.Fatalf("expected inside after begin following spurious end")
	}
}

func TestRegistryUnknownName(t *testing.T) {
	reg := NewRegistry()
	if reg.IsInside("sensor99") {
		t.Fatalf("expected unknown name to report false")
	}
	if _, ok := reg.KindOf("sensor99"); ok {
		t.Fatalf("expected unknown name to have no kind")
	}
}

func TestRegistryNonPlayerIgnored(t *testing.T) {
	s1 := newShape()
	other := newShape()

	reg := NewRegistry()
	reg.Rebuild([]ShapeBinding{{Shape: s1, Object: maps.Object{Name: "sensor1"}}})

	reg.OnOverlapBegin(s1, other, func(s *cp.Shape) bool { return false })
	if reg.IsInside("sensor1") {
		t.Fatalf("expected non-player overlap to be ignored")
	}
}

func TestRegistryMultiNameShape(t *testing.T) {
	s1 := newShape()
	player := newShape()

	reg := NewRegistry()
	reg.Rebuild([]ShapeBinding{{
		Shape:  s1,
		Object: maps.Object{Name: "sensor1", Props: maps.Props{"sensor2": true}},
	}})

	isPlayer := func(s *cp.Shape) bool { return s == player }
	reg.OnOverlapBegin(s1, player, isPlayer)

	if !reg.IsInside("sensor1") || !reg.IsInside("sensor2") {
		t.Fatalf("expected both names inside from one shape")
	}

	reg.OnOverlapEnd(s1, player, isPlayer)
	if reg.IsInside("sensor1") || reg.IsInside("sensor2") {
		t.Fatalf("expected both names outside after end")
	}
}

func TestRegistryRebuild(t *testing.T) {
	s1 := newShape()
	player := newShape()

	reg := NewRegistry()
	reg.Rebuild([]ShapeBinding{{Shape: s1, Object: maps.Object{Name: "sensor1"}}})

	var enters int
	reg.RegisterOnEnter("sensor1", func(string) { enters++ })

	isPlayer := func(s *cp.Shape) bool { return s == player }
	reg.OnOverlapBegin(s1, player, isPlayer)
	if enters != 1 {
		t.Fatalf("expected 1 enter, got %d", enters)
	}

	// rebuild clears overlap state but keeps callbacks
	s2 := newShape()
	reg.Rebuild([]ShapeBinding{{Shape: s2, Object: maps.Object{Name: "sensor1"}}})
	if reg.IsInside("sensor1") {
		t.Fatalf("expected rebuild to clear overlap state")
	}

	reg.OnOverlapBegin(s2, player, isPlayer)
	if enters != 2 {
		t.Fatalf("expected callback to survive rebuild, got %d enters", enters)
	}
}

func TestRegistryInteractableKey(t *testing.T) {
	s1 := newShape()
	reg := NewRegistry()
	reg.Rebuild([]ShapeBinding{{
		Shape:  s1,
		Object: maps.Object{Name: "interactableSensor1", Props: maps.Props{"key": "Q"}},
	}})

	key, ok := reg.RequiredKey("interactableSensor1")
	if !ok || key != "q" {
		t.Fatalf("expected required key %q, got %q ok=%v", "q", key, ok)
	}

	kind, ok := reg.KindOf("interactableSensor1")
	if !ok || kind != KindInteractable {
		t.Fatalf("expected interactable kind, got %v ok=%v", kind, ok)
	}
}
