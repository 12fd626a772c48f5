package app

import (
	"flag"
	"fmt"
	"runtime"
	"sort"
	"strings"

	"starfield/internal/core"
	"starfield/internal/field"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Scene    string
	Width    int
	Height   int
	Cores    int
	TPS      int
	Seed     int64
	Lensing  bool
	Intro    bool
	HUDWidth int
	Set      ParamFlags
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Scene:    core.SceneHome,
		Width:    1280,
		Height:   720,
		Cores:    runtime.NumCPU(),
		TPS:      60,
		Seed:     42,
		Intro:    true,
		HUDWidth: 280,
		Set:      ParamFlags{},
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Scene, "scene", c.Scene, "scene to open with")
	fs.IntVar(&c.Width, "width", c.Width, "window width")
	fs.IntVar(&c.Height, "height", c.Height, "window height")
	fs.IntVar(&c.Cores, "cores", c.Cores, "reported CPU cores, used to pick the device class")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for formation generation")
	fs.BoolVar(&c.Lensing, "lensing", c.Lensing, "enable the black hole lensing effect")
	fs.BoolVar(&c.Intro, "intro", c.Intro, "show the warp intro before the first scene")
	fs.IntVar(&c.HUDWidth, "hud-width", c.HUDWidth, "tuning panel width")
	fs.Var(c.Set, "set", "engine parameter override key=value (repeatable)")
}

// Device describes the machine for particle budgeting.
func (c *Config) Device() core.Device {
	return core.Device{Width: c.Width, Cores: c.Cores}
}

// Viewport is the initial window viewport.
func (c *Config) Viewport() core.Viewport {
	return core.Viewport{W: c.Width, H: c.Height}
}

// Params builds engine parameters from -set overrides and the dedicated
// flags, which win.
func (c *Config) Params() field.Params {
	p := field.FromMap(c.Set)
	p.Seed = c.Seed
	if c.Lensing {
		p.Lensing = true
	}
	return p
}

// ParamFlags collects repeated key=value flags.
type ParamFlags map[string]string

func (p ParamFlags) String() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + p[k]
	}
	return strings.Join(parts, ",")
}

// Set parses one key=value pair.
func (p ParamFlags) Set(v string) error {
	key, value, ok := strings.Cut(v, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", v)
	}
	p[key] = strings.TrimSpace(value)
	return nil
}
