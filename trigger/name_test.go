package trigger

import (
	"testing"

	"github.com/milk9111/backtrack/maps"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		in   string
		kind Kind
		ok   bool
	}{
		{"sensor1", KindPlain, true},
		{"sensor42", KindPlain, true},
		{"interactableSensor3", KindInteractable, true},
		{"transition7", KindTransition, true},
		{"sensor", 0, false},
		{"sensor1b", 0, false},
		{"Sensor1", 0, false},
		{"interactablesensor1", 0, false},
		{"transition", 0, false},
		{"", 0, false},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			n, ok := Classify(c.in)
			if ok != c.ok {
				t.Fatalf("expected ok=%v, got %v", c.ok, ok)
			}
			if ok && n.Kind != c.kind {
				t.Fatalf("expected kind %v, got %v", c.kind, n.Kind)
			}
		})
	}
}

func TestNamesFromObject(t *testing.T) {
	cases := []struct {
		name string
		obj  maps.Object
		want []string
	}{
		{
			name: "own_name_only",
			obj:  maps.Object{Name: "sensor1"},
			want: []string{"sensor1"},
		},
		{
			name: "bool_props_add_names",
			obj: maps.Object{Name: "sensor1", Props: maps.Props{
				"sensor2":     true,
				"transition1": true,
			}},
			want: []string{"sensor1", "sensor2", "transition1"},
		},
		{
			name: "false_prop_ignored",
			obj: maps.Object{Name: "sensor1", Props: maps.Props{
				"sensor2": false,
			}},
			want: []string{"sensor1"},
		},
		{
			name: "non_bool_prop_ignored",
			obj: maps.Object{Name: "sensor1", Props: maps.Props{
				"sensor2": "true",
			}},
			want: []string{"sensor1"},
		},
		{
			name: "duplicate_of_own_name",
			obj: maps.Object{Name: "sensor1", Props: maps.Props{
				"sensor1": true,
			}},
			want: []string{"sensor1"},
		},
		{
			name: "unrecognized_name_no_props",
			obj:  maps.Object{Name: "decoration", Props: maps.Props{"color": "red"}},
			want: nil,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := NamesFromObject(c.obj)
			if len(got) != len(c.want) {
				t.Fatalf("expected %d names, got %d (%v)", len(c.want), len(got), got)
			}
			for i, n := range got {
				if n.Raw != c.want[i] {
					t.Fatalf("expected name %q at %d, got %q", c.want[i], i, n.Raw)
				}
			}
		})
	}
}

func TestRequiredKeyFromObject(t *testing.T) {
	obj := maps.Object{Name: "interactableSensor1", Props: maps.Props{"key": "E"}}
	if got := RequiredKeyFromObject(obj); got != "e" {
		t.Fatalf("expected lowercased key %q, got %q", "e", got)
	}
	if got := RequiredKeyFromObject(maps.Object{Name: "interactableSensor2"}); got != "" {
		t.Fatalf("expected empty key, got %q", got)
	}
}
