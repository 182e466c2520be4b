package prefabs

import (
	"image/color"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLoadEmbeddedSpecs(t *testing.T) {
	player, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	if player.MoveSpeed <= 0 || player.JumpSpeed <= 0 {
		t.Fatalf("expected positive speeds, got %v/%v", player.MoveSpeed, player.JumpSpeed)
	}
	if player.Width <= 0 || player.Height <= 0 {
		t.Fatalf("expected positive size, got %vx%v", player.Width, player.Height)
	}

	button, err := LoadSpec[ButtonSpec]("button.yaml")
	if err != nil {
		t.Fatalf("button: %v", err)
	}
	if button.Script == "" {
		t.Fatalf("expected button script name")
	}

	bell, err := LoadSpec[BellSpec]("bell.yaml")
	if err != nil {
		t.Fatalf("bell: %v", err)
	}
	if bell.ChimeDuration <= 0 {
		t.Fatalf("expected positive chime duration, got %v", bell.ChimeDuration)
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		want    color.NRGBA
		wantErr bool
	}{
		{"rgb", `color: "#ff8000"`, color.NRGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}, false},
		{"rgba", `color: "#ff800080"`, color.NRGBA{R: 0xff, G: 0x80, B: 0x00, A: 0x80}, false},
		{"no_hash", `color: "ff8000"`, color.NRGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}, false},
		{"too_short", `color: "#fff"`, color.NRGBA{}, true},
		{"not_hex", `color: "#zzzzzz"`, color.NRGBA{}, true},
	}

	type holder struct {
		Color *YAMLColor `yaml:"color"`
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var h holder
			err := yaml.Unmarshal([]byte(c.yaml), &h)
			if (err != nil) != c.wantErr {
				t.Fatalf("expected err=%v, got %v", c.wantErr, err)
			}
			if err != nil {
				return
			}
			got, ok := h.Color.Color.(color.NRGBA)
			if !ok || got != c.want {
				t.Fatalf("expected %v, got %v", c.want, h.Color.Color)
			}
		})
	}
}

func TestYAMLColorFallback(t *testing.T) {
	var c *YAMLColor
	if c.Value() == nil {
		t.Fatalf("expected fallback color for nil")
	}
}
