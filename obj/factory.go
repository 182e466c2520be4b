package obj

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/milk9111/backtrack/maps"
	"github.com/milk9111/backtrack/prefabs"
	"github.com/milk9111/backtrack/script"
)

// BuildContext carries what constructors need to wire an authored object into
// the running game.
type BuildContext struct {
	Host  *script.Host
	MapID string

	// Doors accumulates drawable doors as they are built.
	Doors []*Door
}

type builderFunc func(ctx *BuildContext, obj maps.Object) error

// builders is the dispatch table mapping object-name patterns to
// constructors. First match wins.
var builders = []struct {
	pattern *regexp.Regexp
	build   builderFunc
}{
	{regexp.MustCompile(`^door\d+$`), buildDoor},
	{regexp.MustCompile(`^interactableSensor\d+$`), buildInteractable},
	{regexp.MustCompile(`^sensor\d+$`), buildSensor},
}

// BuildObjects walks the map's object layers and constructs whatever the
// dispatch table recognizes. Unrecognized names are left alone; they may
// still act as plain triggers.
func BuildObjects(ctx *BuildContext, m *maps.Map) error {
	if ctx == nil || m == nil {
		return nil
	}
	for _, layer := range m.Layers {
		name := strings.ToLower(layer.Name)
		if name != "doors" && name != "sensor" && name != "sensors" {
			continue
		}
		for _, obj := range layer.Objects {
			for _, b := range builders {
				if !b.pattern.MatchString(obj.Name) {
					continue
				}
				if err := b.build(ctx, obj); err != nil {
					return fmt.Errorf("factory: %s: %w", obj.Name, err)
				}
				break
			}
		}
	}
	return nil
}

func buildDoor(ctx *BuildContext, obj maps.Object) error {
	spec, err := prefabs.LoadSpec[prefabs.DoorSpec]("door.yaml")
	if err != nil {
		return err
	}
	if err := ctx.Host.Spawn(spec.Script, map[string]any{"name": obj.Name}); err != nil {
		return err
	}
	ctx.Doors = append(ctx.Doors, &Door{
		Name:   obj.Name,
		Bounds: obj.Bounds(),
		col:    spec.Color.Value(),
	})
	return nil
}

func buildInteractable(ctx *BuildContext, obj maps.Object) error {
	kind, _ := obj.Props.String("script")
	switch kind {
	case "savepoint":
		spec, err := prefabs.LoadSpec[prefabs.SavePointSpec]("savepoint.yaml")
		if err != nil {
			return err
		}
		return ctx.Host.Spawn(spec.Script, map[string]any{"name": obj.Name})
	case "button", "":
		spec, err := prefabs.LoadSpec[prefabs.ButtonSpec]("button.yaml")
		if err != nil {
			return err
		}
		door, _ := obj.Props.String("door")
		toggle := spec.Toggle
		if v, ok := obj.Props.Bool("toggle"); ok {
			toggle = v
		}
		return ctx.Host.Spawn(spec.Script, map[string]any{
			"name":   obj.Name,
			"door":   door,
			"toggle": toggle,
		})
	default:
		// custom behavior script named directly in the map
		return ctx.Host.Spawn(kind, map[string]any{"name": obj.Name})
	}
}

func buildSensor(ctx *BuildContext, obj maps.Object) error {
	kind, ok := obj.Props.String("script")
	if !ok {
		// plain trigger, driven entirely through the sensor engine
		return nil
	}
	if kind == "bell" {
		spec, err := prefabs.LoadSpec[prefabs.BellSpec]("bell.yaml")
		if err != nil {
			return err
		}
		return ctx.Host.Spawn(spec.Script, map[string]any{"name": obj.Name})
	}
	return ctx.Host.Spawn(kind, map[string]any{"name": obj.Name})
}
