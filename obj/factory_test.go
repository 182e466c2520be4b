package obj

import (
	"testing"

	"github.com/milk9111/backtrack/maps"
	"github.com/milk9111/backtrack/script"
)

func buildTestMap() *maps.Map {
	return &maps.Map{
		ID:     "test",
		Width:  10,
		Height: 10,
		Layers: []maps.Layer{
			{Name: "doors", Objects: []maps.Object{
				{Name: "door1", X: 96, Y: 96, Width: 16, Height: 64},
				{Name: "decoration", X: 0, Y: 0, Width: 16, Height: 16},
			}},
			{Name: "sensors", Objects: []maps.Object{
				{Name: "sensor1", X: 32, Y: 96, Width: 32, Height: 64,
					Props: maps.Props{"script": "bell"}},
				{Name: "sensor2", X: 64, Y: 96, Width: 32, Height: 64},
				{Name: "interactableSensor1", X: 128, Y: 96, Width: 32, Height: 64,
					Props: maps.Props{"script": "button", "door": "door1", "toggle": true}},
				{Name: "interactableSensor2", X: 192, Y: 96, Width: 32, Height: 64,
					Props: maps.Props{"script": "savepoint"}},
			}},
			{Name: "transitions", Objects: []maps.Object{
				{Name: "transition1", X: 256, Y: 96, Width: 24, Height: 64},
			}},
		},
	}
}

func TestBuildObjects(t *testing.T) {
	host := script.NewHost(script.API{})
	ctx := &BuildContext{Host: host, MapID: "test"}

	if err := BuildObjects(ctx, buildTestMap()); err != nil {
		t.Fatalf("BuildObjects: %v", err)
	}

	if len(ctx.Doors) != 1 {
		t.Fatalf("expected 1 door, got %d", len(ctx.Doors))
	}
	d := ctx.Doors[0]
	if d.Name != "door1" {
		t.Fatalf("expected door1, got %q", d.Name)
	}
	if d.Bounds.W != 16 || d.Bounds.H != 64 {
		t.Fatalf("expected door bounds from the map, got %v", d.Bounds)
	}
}

func TestBuildObjectsNilTolerant(t *testing.T) {
	if err := BuildObjects(nil, buildTestMap()); err != nil {
		t.Fatalf("expected nil ctx to be a no-op, got %v", err)
	}
	host := script.NewHost(script.API{})
	if err := BuildObjects(&BuildContext{Host: host}, nil); err != nil {
		t.Fatalf("expected nil map to be a no-op, got %v", err)
	}
}

func TestBuildObjectsPlainSensorNoScript(t *testing.T) {
	host := script.NewHost(script.API{})
	ctx := &BuildContext{Host: host, MapID: "test"}
	m := &maps.Map{
		ID: "test", Width: 4, Height: 4,
		Layers: []maps.Layer{{Name: "sensors", Objects: []maps.Object{
			{Name: "sensor1", X: 0, Y: 0, Width: 16, Height: 16},
		}}},
	}
	// a plain trigger with no script binds nothing and is not an error
	if err := BuildObjects(ctx, m); err != nil {
		t.Fatalf("BuildObjects: %v", err)
	}
}
