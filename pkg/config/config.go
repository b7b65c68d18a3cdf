package config

import (
	"errors"
	"fmt"
	"math"
	"net"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/prometheus/common/model"

	"github.com/rhobs/launch-dash/pkg/launches"
	"github.com/rhobs/launch-dash/pkg/layout"
)

const (
	DefaultListen          = "127.0.0.1:8050"
	DefaultDataPath        = "spacex_launch_dash.csv"
	DefaultSliderStep      = 1000
	DefaultMarkStep        = 2000
	DefaultShutdownTimeout = model.Duration(10 * time.Second)
	DefaultChartWidth      = 800
	DefaultChartHeight     = 450
)

// Config holds launch-dash configuration
type Config struct {
	// Listen is the address the HTTP server binds to.
	// Default: "127.0.0.1:8050"
	Listen string `toml:"listen,omitempty" env:"LAUNCH_DASH_LISTEN"`

	// DataPath is the launch records CSV file loaded at startup.
	DataPath string `toml:"data_path,omitempty" env:"LAUNCH_DASH_DATA_PATH"`

	// Sites is the list of launch sites offered by the dropdown.
	// Sites found in the data but not listed here are appended.
	Sites []string `toml:"sites,omitempty" env:"LAUNCH_DASH_SITES" envSeparator:","`

	// SliderStep is the payload slider granularity, in kg.
	SliderStep float64 `toml:"slider_step,omitempty" env:"LAUNCH_DASH_SLIDER_STEP"`

	// MarkStep is the spacing of the labelled slider marks, in kg.
	MarkStep float64 `toml:"mark_step,omitempty" env:"LAUNCH_DASH_MARK_STEP"`

	// ShutdownTimeout bounds graceful shutdown. Accepts Prometheus durations ("10s", "1m").
	ShutdownTimeout model.Duration `toml:"shutdown_timeout,omitempty" env:"LAUNCH_DASH_SHUTDOWN_TIMEOUT"`

	ChartWidth  int `toml:"chart_width,omitempty" env:"LAUNCH_DASH_CHART_WIDTH"`
	ChartHeight int `toml:"chart_height,omitempty" env:"LAUNCH_DASH_CHART_HEIGHT"`

	// EnableMCP mounts the MCP endpoint on /mcp.
	EnableMCP bool `toml:"enable_mcp" env:"LAUNCH_DASH_ENABLE_MCP"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Listen:          DefaultListen,
		DataPath:        DefaultDataPath,
		Sites:           append([]string(nil), layout.DefaultSites...),
		SliderStep:      DefaultSliderStep,
		MarkStep:        DefaultMarkStep,
		ShutdownTimeout: DefaultShutdownTimeout,
		ChartWidth:      DefaultChartWidth,
		ChartHeight:     DefaultChartHeight,
		EnableMCP:       true,
	}
}

// Load builds a Config from the defaults, the optional TOML file at path, and
// LAUNCH_DASH_* environment variables, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := cfg.decode(string(data)); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return cfg, nil
}

func (c *Config) decode(data string) error {
	md, err := toml.Decode(data, c)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown keys: %v", undecoded)
	}
	return nil
}

// Validate checks that the configuration values are valid.
func (c *Config) Validate() error {
	var errs []error

	if _, _, err := net.SplitHostPort(c.Listen); err != nil {
		errs = append(errs, fmt.Errorf("invalid listen address %q: %w", c.Listen, err))
	}
	if c.DataPath == "" {
		errs = append(errs, errors.New("data_path must not be empty"))
	}
	for _, s := range c.Sites {
		if s == "" || s == launches.AllSites {
			errs = append(errs, fmt.Errorf("invalid site name %q", s))
		}
	}
	if !positive(c.SliderStep) {
		errs = append(errs, fmt.Errorf("slider_step must be positive, got %v", c.SliderStep))
	}
	if !positive(c.MarkStep) {
		errs = append(errs, fmt.Errorf("mark_step must be positive, got %v", c.MarkStep))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("shutdown_timeout must be positive, got %s", c.ShutdownTimeout))
	}
	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		errs = append(errs, fmt.Errorf("chart size must be positive, got %dx%d", c.ChartWidth, c.ChartHeight))
	}

	return errors.Join(errs...)
}

// LayoutOptions returns the view settings derived from the configuration.
func (c *Config) LayoutOptions() layout.Options {
	return layout.Options{
		Sites:      c.Sites,
		SliderStep: c.SliderStep,
		MarkStep:   c.MarkStep,
	}
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
