package isotrix

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

// RGB is an opaque colour as written in config files: [r, g, b].
type RGB [3]uint8

func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}
}

func RGBFrom(c color.RGBA) RGB {
	return RGB{c.R, c.G, c.B}
}

type LightConfig struct {
	Intensity float64    `toml:"intensity"`
	Direction [3]float64 `toml:"direction"`
	Colour    RGB        `toml:"colour"`
}

type Config struct {
	FrameWidth  int `toml:"frame_width"`
	FrameHeight int `toml:"frame_height"`
	TrixelSize  int `toml:"trixel_size"`

	ViewTranslation [3]float64 `toml:"view_translation"`
	RotateSpeed     float64    `toml:"rotate_speed"`

	Ambient    RGB           `toml:"ambient"`
	Lights     []LightConfig `toml:"lights"`
	Background RGB           `toml:"background"`

	BaseColour      RGB   `toml:"base_colour"`
	ColourDeviation int   `toml:"colour_deviation"`
	ColourSeed      int64 `toml:"colour_seed"`

	LogLevel string `toml:"log_level"`
}

const (
	MinColourDeviation = 0
	MaxColourDeviation = 100
	DefaultTrixelSize  = 10
)

func DefaultConfig() Config {
	return Config{
		FrameWidth:      1000,
		FrameHeight:     600,
		TrixelSize:      DefaultTrixelSize,
		ViewTranslation: [3]float64{0, 300, 0},
		RotateSpeed:     0.01,
		Ambient:         RGB{20, 20, 20},
		Lights: []LightConfig{{
			Intensity: 0.8,
			Direction: [3]float64{0.39056706, -0.13019001, -0.9113221},
			Colour:    RGB{150, 150, 250},
		}},
		Background:      RGB{0, 0, 0},
		BaseColour:      RGB{120, 150, 200},
		ColourDeviation: 20,
		ColourSeed:      15274910874912,
		LogLevel:        "info",
	}
}

// LoadConfig reads a TOML file over the defaults. Keys missing from the
// file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	path, err := homedir.Expand(path)
	if err != nil {
		return cfg, fmt.Errorf("could not expand config path %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read config %s: %w", path, err)
	}
	// lights in the file replace the default lights rather than adding to them
	defaultLights := cfg.Lights
	cfg.Lights = nil
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("error parsing config %s: %w", path, err)
	}
	if cfg.Lights == nil {
		cfg.Lights = defaultLights
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.TrixelSize <= 0 {
		return fmt.Errorf("trixel_size must be positive, got %d", c.TrixelSize)
	}
	if c.FrameWidth <= 0 || c.FrameHeight <= 0 {
		return fmt.Errorf("frame size must be positive, got %dx%d", c.FrameWidth, c.FrameHeight)
	}
	if c.ColourDeviation < MinColourDeviation || c.ColourDeviation > MaxColourDeviation {
		return fmt.Errorf("colour_deviation must be within [%d,%d], got %d",
			MinColourDeviation, MaxColourDeviation, c.ColourDeviation)
	}
	return nil
}

// FrameTop is the y value the screen flip mirrors about.
func (c Config) FrameTop() float64 {
	return float64(c.FrameHeight)
}

func (c Config) View() Vector3 {
	return Vector3{X: c.ViewTranslation[0], Y: c.ViewTranslation[1], Z: c.ViewTranslation[2]}
}

func (c Config) LightSources() []LightSource {
	lights := make([]LightSource, 0, len(c.Lights))
	for _, l := range c.Lights {
		lights = append(lights, NewLightSource(
			l.Intensity,
			Vector3{X: l.Direction[0], Y: l.Direction[1], Z: l.Direction[2]},
			l.Colour.RGBA(),
		))
	}
	return lights
}

func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}
