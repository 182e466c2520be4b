package physics

import (
	"fmt"
	"math"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/backtrack/common"
	"github.com/milk9111/backtrack/maps"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypePlayerGround
	collisionTypeSolid
	collisionTypeSensor
)

// Layer names whose objects become trigger-only shapes. Membership in one of
// these layers always disables solid collision, whether or not the object's
// name matches a recognized trigger pattern.
var sensorLayers = map[string]bool{
	"sensor":      true,
	"sensors":     true,
	"transitions": true,
}

// Binding pairs a created sensor shape with the authored object and the layer
// it came from.
type Binding struct {
	Shape  *cp.Shape
	Layer  string
	Object maps.Object
}

// OverlapListener receives raw begin/end overlap events between the player
// and trigger shapes, in whatever order chipmunk reports contact pairs.
type OverlapListener interface {
	OnOverlapBegin(a, b *cp.Shape)
	OnOverlapEnd(a, b *cp.Shape)
}

// Space owns the chipmunk space built from one map: merged solid tile boxes,
// world bounds, trigger-only object shapes, door shapes, and the player body.
type Space struct {
	m     *maps.Map
	space *cp.Space

	playerBody  *cp.Body
	playerShape *cp.Shape
	groundShape *cp.Shape

	grounded    bool
	groundGrace int

	sensors   []Binding
	doors     map[string]*cp.Shape
	doorOpen  map[string]bool
	listeners []OverlapListener

	handlersReady bool
}

// NewSpace builds a physics space for a loaded map. A zero-sized authored
// rectangle fails the whole load.
func NewSpace(m *maps.Map) (*Space, error) {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})

	s := &Space{m: m, space: space, doors: make(map[string]*cp.Shape), doorOpen: make(map[string]bool)}
	s.buildStaticShapes()
	if err := s.buildObjectShapes(); err != nil {
		return nil, err
	}
	s.setupHandlers()
	return s, nil
}

func (s *Space) buildStaticShapes() {
	if s == nil || s.space == nil || s.m == nil {
		return
	}

	for _, layer := range s.m.Layers {
		if !layer.Physics || len(layer.Tiles) != s.m.Width*s.m.Height {
			continue
		}
		s.mergeTileBoxes(layer.Tiles)
	}

	worldW, worldH := s.m.PixelSize()
	if worldW > 0 && worldH > 0 {
		thickness := 1.0
		segments := []struct {
			a cp.Vector
			b cp.Vector
		}{
			{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},
			{a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}},
			{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},
			{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}},
		}
		for _, seg := range segments {
			shape := cp.NewSegment(s.space.StaticBody, seg.a, seg.b, thickness)
			shape.SetFriction(0.8)
			shape.SetCollisionType(collisionTypeSolid)
			s.space.AddShape(shape)
		}
	}
}

// mergeTileBoxes greedily merges contiguous solid tiles into larger static
// boxes so the space holds a few wide boxes instead of one box per tile.
func (s *Space) mergeTileBoxes(tiles []int) {
	width, height := s.m.Width, s.m.Height
	processed := make([]bool, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if processed[idx] {
				continue
			}
			if tiles[idx] == 0 {
				processed[idx] = true
				continue
			}

			w := 1
			for x+w < width {
				idx2 := y*width + (x + w)
				if processed[idx2] || tiles[idx2] == 0 {
					break
				}
				w++
			}

			h := 1
		heightLoop:
			for y+h < height {
				for xi := x; xi < x+w; xi++ {
					idx2 := (y+h)*width + xi
					if processed[idx2] || tiles[idx2] == 0 {
						break heightLoop
					}
				}
				h++
			}

			x0 := float64(x * common.TileSize)
			y0 := float64(y * common.TileSize)
			bb := cp.BB{L: x0, B: y0, R: x0 + float64(w*common.TileSize), T: y0 + float64(h*common.TileSize)}
			shape := cp.NewBox2(s.space.StaticBody, bb, 0)
			shape.SetFriction(0.8)
			shape.SetCollisionType(collisionTypeSolid)
			s.space.AddShape(shape)

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*width+xx] = true
				}
			}
		}
	}
}

// buildObjectShapes creates one static shape per authored rectangle on the
// sensor and transition layers (trigger-only) and on the doors layer (solid).
func (s *Space) buildObjectShapes() error {
	if s == nil || s.space == nil || s.m == nil {
		return nil
	}
	for _, layer := range s.m.Layers {
		lname := strings.ToLower(layer.Name)
		switch {
		case sensorLayers[lname]:
			for _, obj := range layer.Objects {
				shape, err := s.addObjectBox(obj, layer.Name)
				if err != nil {
					return err
				}
				shape.SetSensor(true)
				shape.SetCollisionType(collisionTypeSensor)
				s.sensors = append(s.sensors, Binding{Shape: shape, Layer: layer.Name, Object: obj})
			}
		case lname == "doors":
			for _, obj := range layer.Objects {
				shape, err := s.addObjectBox(obj, layer.Name)
				if err != nil {
					return err
				}
				shape.SetFriction(0.8)
				shape.SetCollisionType(collisionTypeSolid)
				s.doors[obj.Name] = shape
			}
		}
	}
	return nil
}

func (s *Space) addObjectBox(obj maps.Object, layerName string) (*cp.Shape, error) {
	if obj.Width <= 0 || obj.Height <= 0 {
		return nil, fmt.Errorf("physics: object %q on layer %q has invalid size %gx%g",
			obj.Name, layerName, obj.Width, obj.Height)
	}
	bb := cp.BB{L: obj.X, B: obj.Y, R: obj.X + obj.Width, T: obj.Y + obj.Height}
	shape := cp.NewBox2(s.space.StaticBody, bb, 0)
	s.space.AddShape(shape)
	return shape, nil
}

// AttachPlayer creates the dynamic player body plus its ground sensor. The
// initial velocity carries across map switches.
func (s *Space) AttachPlayer(x, y, width, height, vx, vy float64) {
	if s == nil || s.space == nil || s.playerBody != nil {
		return
	}

	mass := 1.0
	body := cp.NewBody(mass, math.Inf(1))
	body.SetAngle(0)
	body.SetAngularVelocity(0)
	body.SetPosition(cp.Vector{X: x, Y: y})
	body.SetVelocity(vx, vy)
	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(0.0)
	shape.SetCollisionType(collisionTypePlayer)

	groundBB := cp.BB{
		L: -width * 0.45,
		B: height / 2.0,
		R: width * 0.45,
		T: height/2.0 + 2,
	}
	groundShape := cp.NewBox2(body, groundBB, 0)
	groundShape.SetSensor(true)
	groundShape.SetCollisionType(collisionTypePlayerGround)

	s.space.AddBody(body)
	s.space.AddShape(shape)
	s.space.AddShape(groundShape)

	s.playerBody = body
	s.playerShape = shape
	s.groundShape = groundShape
}

func (s *Space) setupHandlers() {
	if s == nil || s.handlersReady || s.space == nil {
		return
	}

	groundHandler := s.space.NewCollisionHandler(collisionTypePlayerGround, collisionTypeSolid)
	groundHandler.UserData = s
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*Space)
		if !ok || world == nil {
			return true
		}
		world.grounded = true
		world.groundGrace = 6
		return true
	}

	sensorHandler := s.space.NewCollisionHandler(collisionTypePlayer, collisionTypeSensor)
	sensorHandler.UserData = s
	sensorHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*Space)
		if ok && world != nil {
			a, b := arb.Shapes()
			for _, l := range world.listeners {
				l.OnOverlapBegin(a, b)
			}
		}
		return true
	}
	sensorHandler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		world, ok := userData.(*Space)
		if ok && world != nil {
			a, b := arb.Shapes()
			for _, l := range world.listeners {
				l.OnOverlapEnd(a, b)
			}
		}
	}

	s.handlersReady = true
}

// AddListener registers an overlap listener. Listeners are invoked during
// Step; they must not create or destroy shapes from inside the callback.
func (s *Space) AddListener(l OverlapListener) {
	if s == nil || l == nil {
		return
	}
	s.listeners = append(s.listeners, l)
}

// SensorBindings returns the trigger-only shapes built from object layers.
func (s *Space) SensorBindings() []Binding {
	if s == nil {
		return nil
	}
	return s.sensors
}

// SetDoorOpen removes or restores a door's solid shape. Safe only outside
// Step.
func (s *Space) SetDoorOpen(name string, open bool) bool {
	if s == nil || s.space == nil {
		return false
	}
	shape, ok := s.doors[name]
	if !ok {
		return false
	}
	if open == s.doorOpen[name] {
		return true
	}
	if open {
		s.space.RemoveShape(shape)
	} else {
		s.space.AddShape(shape)
	}
	s.doorOpen[name] = open
	return true
}

// DoorOpen reports whether a door's solid shape is currently removed.
func (s *Space) DoorOpen(name string) bool {
	if s == nil {
		return false
	}
	return s.doorOpen[name]
}

// DoorNames lists the doors this map carries.
func (s *Space) DoorNames() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.doors))
	for name := range s.doors {
		out = append(out, name)
	}
	return out
}

// BeginStep clears per-frame contact flags; call before Step.
func (s *Space) BeginStep() {
	if s == nil {
		return
	}
	if s.groundGrace > 0 {
		s.groundGrace--
	}
	s.grounded = false
}

// Step advances the simulation; overlap callbacks fire from inside.
func (s *Space) Step(dt float64) {
	if s == nil || s.space == nil {
		return
	}
	s.space.Step(dt)
}

// IsGrounded reports whether the player's ground sensor touched a solid this
// frame (with a few frames of grace).
func (s *Space) IsGrounded() bool {
	if s == nil {
		return false
	}
	return s.grounded || s.groundGrace > 0
}

// PlayerBody returns the player's dynamic body.
func (s *Space) PlayerBody() *cp.Body {
	if s == nil {
		return nil
	}
	return s.playerBody
}

// PlayerShape returns the player's main collision shape.
func (s *Space) PlayerShape() *cp.Shape {
	if s == nil {
		return nil
	}
	return s.playerShape
}
