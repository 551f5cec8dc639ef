package app

import (
	"flag"

	"lifegl/internal/core"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Width   int
	Height  int
	Pattern string
	Seed    int64
	Workers int
	TPS     int

	WindowWidth  int
	WindowHeight int
	ShowStats    bool

	ZoomMin  float64
	ZoomMax  float64
	ZoomStep float64

	LogLevel  string
	LogFormat string

	ConfigPath string // optional hcl file
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Width:        512,
		Height:       256,
		Pattern:      string(core.PatternAlternating),
		Seed:         42,
		Workers:      1,
		TPS:          60,
		WindowWidth:  1024,
		WindowHeight: 512,
		ShowStats:    true,
		ZoomMin:      0.5,
		ZoomMax:      2,
		ZoomStep:     0.1,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "grid height in cells")
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "initial population: alternating, random or empty")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the random pattern")
	fs.IntVar(&c.Workers, "workers", c.Workers, "parallel row bands per step")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.WindowWidth, "window-width", c.WindowWidth, "initial window width")
	fs.IntVar(&c.WindowHeight, "window-height", c.WindowHeight, "initial window height")
	fs.BoolVar(&c.ShowStats, "stats", c.ShowStats, "show the frame statistics overlay")
	fs.Float64Var(&c.ZoomMin, "zoom-min", c.ZoomMin, "smallest zoom reachable with the wheel")
	fs.Float64Var(&c.ZoomMax, "zoom-max", c.ZoomMax, "largest zoom reachable with the wheel")
	fs.Float64Var(&c.ZoomStep, "zoom-step", c.ZoomStep, "zoom change per wheel notch")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "text or json")
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "optional hcl config file")
}

// hclConfigFile is the layout of a config file. Every attribute is optional;
// absent ones keep their current value.
type hclConfigFile struct {
	TPS       *int  `hcl:"tps,optional"`
	ShowStats *bool `hcl:"show_stats,optional"`

	Grid   *hclGridBlock   `hcl:"grid,block"`
	Window *hclWindowBlock `hcl:"window,block"`
	View   *hclViewBlock   `hcl:"view,block"`
	Log    *hclLogBlock    `hcl:"log,block"`
}

type hclGridBlock struct {
	Width   *int    `hcl:"width,optional"`
	Height  *int    `hcl:"height,optional"`
	Pattern *string `hcl:"pattern,optional"`
	Seed    *int64  `hcl:"seed,optional"`
	Workers *int    `hcl:"workers,optional"`
}

type hclWindowBlock struct {
	Width  *int `hcl:"width,optional"`
	Height *int `hcl:"height,optional"`
}

type hclViewBlock struct {
	ZoomMin  *float64 `hcl:"zoom_min,optional"`
	ZoomMax  *float64 `hcl:"zoom_max,optional"`
	ZoomStep *float64 `hcl:"zoom_step,optional"`
}

type hclLogBlock struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

// LoadFile overlays the attributes set in an HCL file onto c.
func (c *Config) LoadFile(path string) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return errors.Wrapf(diags, "[Config.LoadFile] parse %s", path)
	}
	var parsed hclConfigFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return errors.Wrapf(diags, "[Config.LoadFile] decode %s", path)
	}

	set(&c.TPS, parsed.TPS)
	set(&c.ShowStats, parsed.ShowStats)
	if g := parsed.Grid; g != nil {
		set(&c.Width, g.Width)
		set(&c.Height, g.Height)
		set(&c.Pattern, g.Pattern)
		set(&c.Seed, g.Seed)
		set(&c.Workers, g.Workers)
	}
	if w := parsed.Window; w != nil {
		set(&c.WindowWidth, w.Width)
		set(&c.WindowHeight, w.Height)
	}
	if v := parsed.View; v != nil {
		set(&c.ZoomMin, v.ZoomMin)
		set(&c.ZoomMax, v.ZoomMax)
		set(&c.ZoomStep, v.ZoomStep)
	}
	if l := parsed.Log; l != nil {
		set(&c.LogLevel, l.Level)
		set(&c.LogFormat, l.Format)
	}
	return nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Validate rejects settings the application cannot start with.
func (c *Config) Validate() error {
	if !(core.Size{W: c.Width, H: c.Height}).Valid() {
		return errors.Wrapf(core.ErrInvalidSize, "[Config.Validate] grid %dx%d", c.Width, c.Height)
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return errors.Errorf("[Config.Validate] window %dx%d must be positive", c.WindowWidth, c.WindowHeight)
	}
	if c.TPS <= 0 {
		return errors.Errorf("[Config.Validate] tps %d must be positive", c.TPS)
	}
	if c.Workers < 0 {
		return errors.Errorf("[Config.Validate] workers %d must not be negative", c.Workers)
	}
	if _, err := core.ParsePattern(c.Pattern); err != nil {
		return errors.Wrap(err, "[Config.Validate]")
	}
	if c.ZoomMin <= 0 || c.ZoomMax < c.ZoomMin {
		return errors.Errorf("[Config.Validate] zoom range [%g, %g] is invalid", c.ZoomMin, c.ZoomMax)
	}
	if c.ZoomStep <= 0 {
		return errors.Errorf("[Config.Validate] zoom step %g must be positive", c.ZoomStep)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "[Config.Validate]")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return errors.Errorf("[Config.Validate] unknown log format %q", c.LogFormat)
	}
	return nil
}

// Load parses args into a fresh Config. When -config names a file its values
// apply first and flags given explicitly on the command line win over them.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := NewConfig()
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.ConfigPath != "" {
		merged := NewConfig()
		if err := merged.LoadFile(cfg.ConfigPath); err != nil {
			return nil, err
		}
		overrides := flag.NewFlagSet("overrides", flag.ContinueOnError)
		merged.Bind(overrides)
		var setErr error
		fs.Visit(func(f *flag.Flag) {
			if setErr != nil || overrides.Lookup(f.Name) == nil {
				return
			}
			setErr = overrides.Set(f.Name, f.Value.String())
		})
		if setErr != nil {
			return nil, errors.Wrap(setErr, "[Load]")
		}
		cfg = merged
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParsedPattern returns the validated initial pattern.
func (c *Config) ParsedPattern() core.Pattern {
	p, err := core.ParsePattern(c.Pattern)
	if err != nil {
		return core.PatternAlternating
	}
	return p
}
