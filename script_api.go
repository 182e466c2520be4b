package main

import (
	"strings"

	"github.com/d5/tengo/v2"

	"github.com/milk9111/backtrack/obj"
	"github.com/milk9111/backtrack/script"
)

// scriptAPI builds the engine surface behavior scripts call through the `api`
// global. Every function degrades to a false/empty result on bad arguments;
// a script typo must not bring the frame loop down.
func (g *Game) scriptAPI() script.API {
	return script.API{
		// inside(name) -> bool
		"inside": func(args ...tengo.Object) (tengo.Object, error) {
			name := argString(args, 0)
			if name == "" {
				return tengo.FalseValue, nil
			}
			return boolValue(g.registry.IsInside(name)), nil
		},

		// pressed(name) -> bool; true only on the frame the interact key
		// fires while inside the named interactable
		"pressed": func(args ...tengo.Object) (tengo.Object, error) {
			name := argString(args, 0)
			if name == "" || !g.input.InteractPressed {
				return tengo.FalseValue, nil
			}
			return boolValue(g.inter.Press(name, obj.InteractKey)), nil
		},

		// flag(key) -> bool
		"flag": func(args ...tengo.Object) (tengo.Object, error) {
			return boolValue(g.flags[argString(args, 0)]), nil
		},

		// set_flag(key, value)
		"set_flag": func(args ...tengo.Object) (tengo.Object, error) {
			key := argString(args, 0)
			if key == "" {
				return tengo.FalseValue, nil
			}
			g.flags[key] = argBool(args, 1)
			return tengo.TrueValue, nil
		},

		// door_open(name) -> bool
		"door_open": func(args ...tengo.Object) (tengo.Object, error) {
			return boolValue(g.space.DoorOpen(argString(args, 0))), nil
		},

		// open_door(name, open) -> bool; false when the door doesn't exist
		"open_door": func(args ...tengo.Object) (tengo.Object, error) {
			name := argString(args, 0)
			if name == "" {
				return tengo.FalseValue, nil
			}
			return boolValue(g.space.SetDoorOpen(name, argBool(args, 1))), nil
		},

		// ring(name) starts a chime notification
		"ring": func(args ...tengo.Object) (tengo.Object, error) {
			name := argString(args, 0)
			if name == "" {
				return tengo.FalseValue, nil
			}
			g.chimes[name] = g.chimeFrames
			return tengo.TrueValue, nil
		},

		// save_set(key, value) writes through to the save overlay
		"save_set": func(args ...tengo.Object) (tengo.Object, error) {
			key := argString(args, 0)
			if key == "" || len(args) < 2 {
				return tengo.FalseValue, nil
			}
			g.overlay.Set(key, tengo.ToInterface(args[1]))
			return tengo.TrueValue, nil
		},

		// save_flag(key) -> bool from the save overlay
		"save_flag": func(args ...tengo.Object) (tengo.Object, error) {
			v, _ := g.overlay.Bool(argString(args, 0))
			return boolValue(v), nil
		},

		// map_id() -> string
		"map_id": func(args ...tengo.Object) (tengo.Object, error) {
			return &tengo.String{Value: g.machine.MapID()}, nil
		},
	}
}

func argString(args []tengo.Object, i int) string {
	if i >= len(args) || args[i] == nil {
		return ""
	}
	switch v := args[i].(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func argBool(args []tengo.Object, i int) bool {
	if i >= len(args) || args[i] == nil {
		return false
	}
	return !args[i].IsFalsy()
}

func boolValue(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}
