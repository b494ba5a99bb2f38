// Package config loads the clock's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/kjkrol/glclock/assets"
	"github.com/kjkrol/glclock/pkg/clockface"
)

// Duration decodes TOML strings such as "1s" or "500ms".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	VSync  bool   `toml:"vsync"`
}

type ShadersConfig struct {
	// Dir reads shaders from disk; empty uses the embedded pair.
	Dir string `toml:"dir"`
	// BaseURL fetches shaders over HTTP; it takes precedence over Dir.
	BaseURL  string `toml:"base_url"`
	Vertex   string `toml:"vertex"`
	Fragment string `toml:"fragment"`
}

type RenderConfig struct {
	Driver string     `toml:"driver"`
	Tick   Duration   `toml:"tick"`
	Clear  [4]float32 `toml:"clear"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Shaders ShadersConfig `toml:"shaders"`
	Render  RenderConfig  `toml:"render"`
	Log     LogConfig     `toml:"log"`
}

func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "Clock",
			Width:  800,
			Height: 800,
			VSync:  true,
		},
		Shaders: ShadersConfig{
			Vertex:   assets.VertexShader,
			Fragment: assets.FragmentShader,
		},
		Render: RenderConfig{
			Driver: clockface.IntervalDriver.String(),
			Tick:   Duration(clockface.DefaultTick),
			Clear:  [4]float32{0, 0, 0, 1},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := Decode(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode overlays TOML data onto cfg and validates the result.
func Decode(data []byte, cfg *Config) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("decode config at %d:%d: %w", row, col, err)
		}
		return fmt.Errorf("decode config: %w", err)
	}
	return cfg.Validate()
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 {
		return fmt.Errorf("window.width must be positive, got %d", c.Window.Width)
	}
	if c.Window.Height <= 0 {
		return fmt.Errorf("window.height must be positive, got %d", c.Window.Height)
	}
	if c.Shaders.Vertex == "" {
		return errors.New("shaders.vertex is required")
	}
	if c.Shaders.Fragment == "" {
		return errors.New("shaders.fragment is required")
	}
	if _, err := clockface.ParseDriver(c.Render.Driver); err != nil {
		return fmt.Errorf("render.driver: %w", err)
	}
	if c.Render.Tick <= 0 {
		return fmt.Errorf("render.tick must be positive, got %s", c.Render.Tick.Duration())
	}
	for i, v := range c.Render.Clear {
		if v < 0 || v > 1 {
			return fmt.Errorf("render.clear[%d] must be within [0,1], got %g", i, v)
		}
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// Driver returns the parsed render driver. Valid after Validate.
func (c Config) Driver() clockface.Driver {
	d, _ := clockface.ParseDriver(c.Render.Driver)
	return d
}

func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.Level))
	return level, err
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}
