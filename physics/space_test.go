package physics

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/backtrack/maps"
)

func testMap() *maps.Map {
	// 6x6 tiles, solid bottom row
	tiles := make([]int, 36)
	for x := 0; x < 6; x++ {
		tiles[5*6+x] = 1
	}
	return &maps.Map{
		ID:     "test",
		Width:  6,
		Height: 6,
		Layers: []maps.Layer{
			{Name: "ground", Physics: true, Tiles: tiles},
			{Name: "sensors", Objects: []maps.Object{
				{Name: "sensor1", X: 32, Y: 96, Width: 32, Height: 64},
			}},
			{Name: "transitions", Objects: []maps.Object{
				{Name: "transition1", X: 160, Y: 96, Width: 24, Height: 64},
			}},
			{Name: "doors", Objects: []maps.Object{
				{Name: "door1", X: 96, Y: 96, Width: 16, Height: 64},
			}},
		},
	}
}

func TestNewSpaceBindings(t *testing.T) {
	s, err := NewSpace(testMap())
	if err != nil {
		t.Fatalf("NewSpace: %v", err)
	}

	bindings := s.SensorBindings()
	if len(bindings) != 2 {
		t.Fatalf("expected 2 sensor bindings, got %d", len(bindings))
	}
	for _, b := range bindings {
		if !b.Shape.Sensor() {
			t.Fatalf("expected %q to be a sensor shape", b.Object.Name)
		}
	}

	names := s.DoorNames()
	if len(names) != 1 || names[0] != "door1" {
		t.Fatalf("expected door1, got %v", names)
	}
}

func TestNewSpaceRejectsZeroSizeObject(t *testing.T) {
	m := testMap()
	m.Layers[1].Objects = append(m.Layers[1].Objects, maps.Object{Name: "sensor2", X: 10, Y: 10})
	if _, err := NewSpace(m); err == nil {
		t.Fatalf("expected error for zero-size object")
	}
}

func TestDoorOpenClose(t *testing.T) {
	s, err := NewSpace(testMap())
	if err != nil {
		t.Fatalf("NewSpace: %v", err)
	}

	if s.DoorOpen("door1") {
		t.Fatalf("expected door closed initially")
	}
	if !s.SetDoorOpen("door1", true) {
		t.Fatalf("expected SetDoorOpen to find door1")
	}
	if !s.DoorOpen("door1") {
		t.Fatalf("expected door open")
	}
	// setting the same state twice is a no-op, not a crash
	if !s.SetDoorOpen("door1", true) {
		t.Fatalf("expected repeated open to succeed")
	}
	if !s.SetDoorOpen("door1", false) {
		t.Fatalf("expected close to succeed")
	}
	if s.DoorOpen("door1") {
		t.Fatalf("expected door closed again")
	}

	if s.SetDoorOpen("door99", true) {
		t.Fatalf("expected unknown door to report false")
	}
}

func TestPlayerLandsOnGround(t *testing.T) {
	s, err := NewSpace(testMap())
	if err != nil {
		t.Fatalf("NewSpace: %v", err)
	}
	// drop the player from mid-air onto the bottom row
	s.AttachPlayer(96, 64, 20, 28, 0, 0)

	for i := 0; i < 120; i++ {
		s.BeginStep()
		s.Step(1.0 / 60.0)
	}
	if !s.IsGrounded() {
		t.Fatalf("expected player grounded after settling")
	}
	pos := s.PlayerBody().Position()
	// feet should rest on the solid row at y=160
	if pos.Y < 100 || pos.Y > 160 {
		t.Fatalf("expected player resting above the floor, got y=%v", pos.Y)
	}
}

func TestOverlapEventsReachListeners(t *testing.T) {
	s, err := NewSpace(testMap())
	if err != nil {
		t.Fatalf("NewSpace: %v", err)
	}

	var begins int
	s.AddListener(&countListener{begins: &begins})

	// spawn the player inside the sensor volume
	s.AttachPlayer(48, 128, 20, 28, 0, 0)
	for i := 0; i < 10; i++ {
		s.BeginStep()
		s.Step(1.0 / 60.0)
	}
	if begins == 0 {
		t.Fatalf("expected at least one begin event for the overlapping sensor")
	}
}

type countListener struct {
	begins *int
}

func (l *countListener) OnOverlapBegin(a, b *cp.Shape) { *l.begins++ }
func (l *countListener) OnOverlapEnd(a, b *cp.Shape)   {}
