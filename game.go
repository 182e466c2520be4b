package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/backtrack/maps"
	"github.com/milk9111/backtrack/obj"
	"github.com/milk9111/backtrack/physics"
	"github.com/milk9111/backtrack/prefabs"
	"github.com/milk9111/backtrack/save"
	"github.com/milk9111/backtrack/script"
	"github.com/milk9111/backtrack/transition"
	"github.com/milk9111/backtrack/trigger"
)

const (
	baseWidth  = 640
	baseHeight = 360

	savePath = "save.yaml"
	stepDT   = 1.0 / 60.0
)

type Game struct {
	frames int
	debug  bool

	store   *maps.Store
	overlay *save.Overlay
	watcher *script.Watcher

	m        *maps.Map
	space    *physics.Space
	tilemap  *obj.Tilemap
	doors    []*obj.Door
	registry *trigger.Registry
	sensors  *trigger.Sensors
	inter    *trigger.Interactables
	machine  *transition.Machine
	host     *script.Host

	input  *obj.Input
	player *obj.Player
	camera *obj.Camera
	fade   *obj.Fade

	// flags is the per-session scratch state behavior scripts read and write
	// through the api; tengo globals don't persist across runs.
	flags map[string]bool
	// chimes holds active chime notifications: trigger name -> frames left.
	chimes      map[string]int
	chimeFrames int

	paused  bool
	pauseUI *ebitenui.UI
}

func NewGame(mapID string, debug bool) (*Game, error) {
	overlay, err := save.Open(savePath)
	if err != nil {
		log.Printf("save file unreadable, starting fresh: %v", err)
		overlay = save.New(savePath)
	}

	player, err := obj.NewPlayer()
	if err != nil {
		return nil, err
	}

	g := &Game{
		debug:       debug,
		store:       maps.Embedded(),
		overlay:     overlay,
		registry:    trigger.NewRegistry(),
		input:       obj.NewInput(),
		player:      player,
		camera:      obj.NewCamera(baseWidth, baseHeight),
		fade:        obj.NewFade(),
		flags:       make(map[string]bool),
		chimes:      make(map[string]int),
		chimeFrames: 48,
	}
	g.sensors = trigger.NewSensors(g.registry)
	g.inter = trigger.NewInteractables(g.registry)
	g.machine = transition.NewMachine(g.store, g.player, g.queueSwitch)
	g.host = script.NewHost(g.scriptAPI())
	g.pauseUI = NewPauseUI(g)

	if spec, err := prefabs.LoadSpec[prefabs.BellSpec]("bell.yaml"); err == nil && spec.ChimeDuration > 0 {
		g.chimeFrames = int(spec.ChimeDuration * 60)
	}

	startID, err := g.startMap(mapID)
	if err != nil {
		return nil, err
	}
	m, err := g.store.Load(startID)
	if err != nil {
		return nil, err
	}
	x, y := m.SpawnPosition()
	if err := g.loadMap(startID, x, y, 0, 0); err != nil {
		return nil, err
	}

	if debug {
		w, err := script.NewWatcher("script/scripts", "prefabs")
		if err != nil {
			log.Printf("hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	return g, nil
}

// startMap picks the initial map: an explicit flag wins, then the saved
// last_map, then the first embedded map.
func (g *Game) startMap(flagID string) (string, error) {
	if flagID != "" {
		return flagID, nil
	}
	if id, ok := g.overlay.String("last_map"); ok {
		if _, err := g.store.Load(id); err == nil {
			return id, nil
		}
		log.Printf("saved map %q no longer loads, falling back", id)
	}
	ids, err := g.store.IDs()
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("no maps embedded")
	}
	return ids[0], nil
}

// loadMap tears down the current world and builds a new one from the map with
// the given ID, placing the player at (x, y) with the given velocity.
func (g *Game) loadMap(mapID string, x, y, vx, vy float64) error {
	m, err := g.store.Load(mapID)
	if err != nil {
		return err
	}
	space, err := physics.NewSpace(m)
	if err != nil {
		return fmt.Errorf("build space for %q: %w", mapID, err)
	}
	space.AddListener(g)
	g.player.Attach(space, x, y, vx, vy)

	bindings := space.SensorBindings()
	shapeBindings := make([]trigger.ShapeBinding, 0, len(bindings))
	machineBindings := make([]transition.Binding, 0, len(bindings))
	for _, b := range bindings {
		shapeBindings = append(shapeBindings, trigger.ShapeBinding{Shape: b.Shape, Object: b.Object})
		if strings.ToLower(b.Layer) == transition.TransitionsLayer {
			machineBindings = append(machineBindings, transition.Binding{Shape: b.Shape, Object: b.Object})
		}
	}
	g.registry.Rebuild(shapeBindings)
	if err := g.machine.Rebuild(mapID, machineBindings); err != nil {
		return fmt.Errorf("rebuild transitions for %q: %w", mapID, err)
	}

	if g.debug {
		for _, b := range shapeBindings {
			for _, n := range trigger.NamesFromObject(b.Object) {
				if n.Kind != trigger.KindPlain {
					continue
				}
				g.sensors.RegisterOnEnter(n.Raw, func(name string) { log.Printf("enter %s", name) })
				g.sensors.RegisterOnExit(n.Raw, func(name string) { log.Printf("exit %s", name) })
			}
		}
	}

	// door scripts re-run their saved-state restore against the new space
	for k := range g.flags {
		if strings.HasPrefix(k, "door_init:") {
			delete(g.flags, k)
		}
	}

	g.host.Clear()
	ctx := &obj.BuildContext{Host: g.host, MapID: mapID}
	if err := obj.BuildObjects(ctx, m); err != nil {
		return err
	}

	g.m = m
	g.space = space
	g.tilemap = obj.NewTilemap(m)
	g.doors = ctx.Doors

	g.camera.SetWorldBounds(m.PixelSize())
	px, py := g.player.Position()
	g.camera.Snap(px, py)
	return nil
}

// queueSwitch is the transition machine's switch callback. The actual
// teardown happens at the fade midpoint, safely outside the physics step.
func (g *Game) queueSwitch(mapID string, x, y float64) {
	g.fade.Start(func() {
		vx, vy := g.player.Velocity()
		if err := g.loadMap(mapID, x, y, vx, vy); err != nil {
			log.Printf("map switch to %q failed: %v", mapID, err)
		}
	})
}

// OnOverlapBegin dispatches a physics begin event to the trigger registry and
// the transition machine.
func (g *Game) OnOverlapBegin(a, b *cp.Shape) {
	g.registry.OnOverlapBegin(a, b, g.isPlayerShape)
	g.machine.OnOverlapBegin(a, b)
}

func (g *Game) OnOverlapEnd(a, b *cp.Shape) {
	g.registry.OnOverlapEnd(a, b, g.isPlayerShape)
	g.machine.OnOverlapEnd(a, b)
}

func (g *Game) isPlayerShape(s *cp.Shape) bool {
	return s != nil && s == g.space.PlayerShape()
}

func (g *Game) Update() error {
	g.frames++
	g.input.Update()

	if g.input.PausePressed {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.pollWatcher()

	if g.fade.Update() {
		// world is frozen mid-switch
		return nil
	}

	g.space.BeginStep()
	g.player.Update(g.input)
	g.space.Step(stepDT)
	g.host.Update()
	g.machine.Update(stepDT)

	for name, frames := range g.chimes {
		if frames <= 1 {
			delete(g.chimes, name)
		} else {
			g.chimes[name] = frames - 1
		}
	}

	px, py := g.player.Position()
	g.camera.Follow(px, py)
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if strings.HasSuffix(path, ".tengo") {
				g.host.Reload(path)
			} else {
				log.Printf("prefab %s changed, applies on next map load", path)
			}
		case err := <-g.watcher.Errors:
			log.Printf("watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	camX, camY := g.camera.ViewTopLeft()

	g.tilemap.Draw(screen, camX, camY)
	for _, d := range g.doors {
		d.Draw(screen, g.space, camX, camY)
	}
	g.player.Draw(screen, camX, camY)

	if _, ok := g.inter.Any(obj.InteractKey); ok {
		ebitenutil.DebugPrintAt(screen, "press E", baseWidth/2-24, baseHeight-32)
	}
	line := 0
	for name := range g.chimes {
		ebitenutil.DebugPrintAt(screen, "* "+name+" chimes *", 8, baseHeight-48-line*14)
		line++
	}

	if g.debug {
		px, py := g.player.Position()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f  map: %s  pos: %.0f,%.0f  cooldown: %.2f",
			ebiten.ActualFPS(), g.machine.MapID(), px, py, g.machine.CooldownRemaining()))
	}

	g.fade.Draw(screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
