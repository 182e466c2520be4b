package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PlayerSpec struct {
	Name      string     `yaml:"name"`
	MoveSpeed float64    `yaml:"move_speed"`
	JumpSpeed float64    `yaml:"jump_speed"`
	Width     float64    `yaml:"width"`
	Height    float64    `yaml:"height"`
	Color     *YAMLColor `yaml:"color"`
}

type DoorSpec struct {
	Name   string     `yaml:"name"`
	Script string     `yaml:"script"`
	Color  *YAMLColor `yaml:"color"`
}

type ButtonSpec struct {
	Name   string     `yaml:"name"`
	Script string     `yaml:"script"`
	Toggle bool       `yaml:"toggle"`
	Color  *YAMLColor `yaml:"color"`
}

type BellSpec struct {
	Name          string     `yaml:"name"`
	Script        string     `yaml:"script"`
	ChimeDuration float64    `yaml:"chime_duration"`
	Color         *YAMLColor `yaml:"color"`
}

type SavePointSpec struct {
	Name   string     `yaml:"name"`
	Script string     `yaml:"script"`
	Color  *YAMLColor `yaml:"color"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Value returns the parsed color or an opaque fallback when the spec omitted
// one.
func (c *YAMLColor) Value() color.Color {
	if c == nil || c.Color == nil {
		return color.NRGBA{R: 0x3c, G: 0x78, B: 0xff, A: 0xff}
	}
	return c.Color
}
