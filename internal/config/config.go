// Package config loads the optional TOML configuration of the neoscore CLI.
//
// Values given in a scene file take precedence over the configuration, and
// the configuration over the built-in defaults of the layout package.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Xavman42/neoscore/layout"
)

// Config mirrors the TOML file.
type Config struct {
	Paper  PaperConfig  `toml:"paper"`
	Frame  FrameConfig  `toml:"frame"`
	Render RenderConfig `toml:"render"`
}

type PaperConfig struct {
	Size      string `toml:"size"`
	Landscape bool   `toml:"landscape"`
	Margin    string `toml:"margin"` // 1-4 lengths, CSS order
	Gutter    string `toml:"gutter"`
}

type FrameConfig struct {
	LineHeight string `toml:"line_height"`
	Spacing    string `toml:"spacing"`
}

type RenderConfig struct {
	StrokeWidth string `toml:"stroke_width"`
	Color       string `toml:"color"`
	Guides      bool   `toml:"guides"`
}

// Default returns an empty configuration, which resolves to the layout
// defaults.
func Default() Config { return Config{} }

// Load reads path. An empty path yields Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(string(data))
}

// Parse decodes a TOML document. Unknown keys are rejected so typos do not
// pass silently.
func Parse(data string) (Config, error) {
	var cfg Config
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}

// BuildOptions resolves the configuration into layout build options.
func (c Config) BuildOptions() (layout.BuildOptions, error) {
	opts := layout.DefaultBuildOptions()

	if c.Paper.Size != "" {
		p, err := layout.PaperPreset(c.Paper.Size)
		if err != nil {
			return opts, fmt.Errorf("paper.size: %w", err)
		}
		opts.Paper = p
	}
	if c.Paper.Landscape {
		opts.Paper = opts.Paper.Landscape()
	}
	if c.Paper.Margin != "" {
		var vals []layout.Length
		for _, f := range strings.Fields(c.Paper.Margin) {
			v, err := layout.ParseLength(f)
			if err != nil {
				return opts, fmt.Errorf("paper.margin: %w", err)
			}
			vals = append(vals, v)
		}
		opts.Paper.Margin = layout.MarginFromValues(vals)
	}
	if err := setLength(&opts.Paper.Gutter, c.Paper.Gutter, "paper.gutter"); err != nil {
		return opts, err
	}
	if err := opts.Paper.Validate(); err != nil {
		return opts, fmt.Errorf("paper: %w", err)
	}

	if err := setLength(&opts.Frame.LineHeight, c.Frame.LineHeight, "frame.line_height"); err != nil {
		return opts, err
	}
	if err := setLength(&opts.Frame.Spacing, c.Frame.Spacing, "frame.spacing"); err != nil {
		return opts, err
	}
	if err := setLength(&opts.Style.StrokeWidth, c.Render.StrokeWidth, "render.stroke_width"); err != nil {
		return opts, err
	}
	if c.Render.Color != "" {
		col, err := layout.ParseColor(c.Render.Color)
		if err != nil {
			return opts, fmt.Errorf("render.color: %w", err)
		}
		opts.Style.Stroke = col
	}
	return opts, nil
}

func setLength(dst *layout.Length, value, key string) error {
	if value == "" {
		return nil
	}
	l, err := layout.ParseLength(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = l
	return nil
}
