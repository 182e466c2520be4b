// Package script runs the gameplay behavior scripts (buttons, doors, bells,
// save points) on an embedded tengo runtime.
package script

import (
	"embed"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

//go:embed scripts/*.tengo
var scriptsFS embed.FS

// API is the set of engine functions exposed to scripts under the `api`
// global.
type API map[string]tengo.CallableFunc

// Instance is one script bound to one authored object. The whole script body
// runs once per frame with `self` describing the bound object.
type Instance struct {
	script   string
	self     map[string]any
	compiled *tengo.Compiled
}

// Host compiles behavior scripts once per file and clones the compiled form
// per bound object.
type Host struct {
	api       map[string]tengo.Object
	templates map[string]*tengo.Compiled
	instances []*Instance
}

func NewHost(api API) *Host {
	objs := make(map[string]tengo.Object, len(api))
	for name, fn := range api {
		objs[name] = &tengo.UserFunction{Name: name, Value: fn}
	}
	return &Host{
		api:       objs,
		templates: make(map[string]*tengo.Compiled),
	}
}

// Spawn binds a script file to an object. self is visible to the script as
// the `self` global (name, props, whatever the factory put there).
func (h *Host) Spawn(script string, self map[string]any) error {
	if h == nil {
		return fmt.Errorf("script: host not initialized")
	}
	tmpl, err := h.template(script)
	if err != nil {
		return err
	}
	h.instances = append(h.instances, &Instance{
		script:   cleanName(script),
		self:     self,
		compiled: tmpl.Clone(),
	})
	return nil
}

func (h *Host) template(script string) (*tengo.Compiled, error) {
	script = cleanName(script)
	if tmpl, ok := h.templates[script]; ok {
		return tmpl, nil
	}
	src, err := load(script)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", script, err)
	}
	s := tengo.NewScript([]byte(src))
	s.SetImports(stdlib.GetModuleMap("math", "text", "fmt"))
	if err := s.Add("api", &tengo.ImmutableMap{Value: h.api}); err != nil {
		return nil, fmt.Errorf("script: bind api for %s: %w", script, err)
	}
	if err := s.Add("self", map[string]any{}); err != nil {
		return nil, fmt.Errorf("script: bind self for %s: %w", script, err)
	}
	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", script, err)
	}
	h.templates[script] = compiled
	return compiled, nil
}

// Update runs every bound script once. A failing script is logged and skipped
// this frame; one bad behavior must not take the frame loop down.
func (h *Host) Update() {
	if h == nil {
		return
	}
	for _, inst := range h.instances {
		if err := inst.compiled.Set("self", inst.self); err != nil {
			log.Printf("script: %s: set self: %v", inst.script, err)
			continue
		}
		if err := inst.compiled.Run(); err != nil {
			log.Printf("script: %s: %v", inst.script, err)
		}
	}
}

// Clear drops all bound instances. Called on map switch before the factory
// rebinds against the new map's objects. Compiled templates are kept.
func (h *Host) Clear() {
	if h == nil {
		return
	}
	h.instances = nil
}

// Reload recompiles the template for a changed script file and rebinds the
// live instances that use it. Development-time only, driven by the watcher.
func (h *Host) Reload(script string) {
	if h == nil {
		return
	}
	script = cleanName(script)
	delete(h.templates, script)
	tmpl, err := h.template(script)
	if err != nil {
		log.Printf("script: reload %s: %v", script, err)
		return
	}
	n := 0
	for _, inst := range h.instances {
		if inst.script == script {
			inst.compiled = tmpl.Clone()
			n++
		}
	}
	log.Printf("script: reloaded %s (%d instances)", script, n)
}

// load reads a script, preferring a working-tree copy over the embedded one
// so edits take effect without recompiling the game.
func load(name string) (string, error) {
	clean := cleanName(name)
	if data, err := os.ReadFile(filepath.Join("script", "scripts", clean)); err == nil {
		return string(data), nil
	}
	data, err := scriptsFS.ReadFile("scripts/" + clean)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func cleanName(name string) string {
	s := filepath.ToSlash(name)
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	if !strings.HasSuffix(s, ".tengo") {
		s += ".tengo"
	}
	return s
}
