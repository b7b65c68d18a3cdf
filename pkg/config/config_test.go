package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/common/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "launch-dash.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should be valid: %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
listen = "0.0.0.0:9000"
data_path = "/data/launches.csv"
sites = ["A", "B"]
slider_step = 500
shutdown_timeout = "1m"
enable_mcp = false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Default()
	want.Listen = "0.0.0.0:9000"
	want.DataPath = "/data/launches.csv"
	want.Sites = []string{"A", "B"}
	want.SliderStep = 500
	want.ShutdownTimeout = model.Duration(time.Minute)
	want.EnableMCP = false

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `listen = "0.0.0.0:9000"`)
	t.Setenv("LAUNCH_DASH_LISTEN", "127.0.0.1:7000")
	t.Setenv("LAUNCH_DASH_SITES", "X,Y")
	t.Setenv("LAUNCH_DASH_SHUTDOWN_TIMEOUT", "30s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Listen != "127.0.0.1:7000" {
		t.Errorf("expected env listen, got %q", cfg.Listen)
	}
	if diff := cmp.Diff([]string{"X", "Y"}, cfg.Sites); diff != "" {
		t.Errorf("sites mismatch (-want +got):\n%s", diff)
	}
	if time.Duration(cfg.ShutdownTimeout) != 30*time.Second {
		t.Errorf("expected 30s, got %s", cfg.ShutdownTimeout)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr string
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.toml") },
			wantErr: "failed to read config file",
		},
		{
			name:    "malformed toml",
			path:    func(t *testing.T) string { return writeConfig(t, "listen = ") },
			wantErr: "failed to parse config file",
		},
		{
			name:    "unknown key",
			path:    func(t *testing.T) string { return writeConfig(t, `colour = "red"`) },
			wantErr: "unknown keys",
		},
		{
			name:    "bad duration",
			path:    func(t *testing.T) string { return writeConfig(t, `shutdown_timeout = "soon"`) },
			wantErr: "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path(t))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "bad listen", mutate: func(c *Config) { c.Listen = "8050" }, wantErr: "invalid listen address"},
		{name: "empty data path", mutate: func(c *Config) { c.DataPath = "" }, wantErr: "data_path"},
		{name: "reserved site", mutate: func(c *Config) { c.Sites = []string{"ALL"} }, wantErr: "invalid site name"},
		{name: "zero slider step", mutate: func(c *Config) { c.SliderStep = 0 }, wantErr: "slider_step"},
		{name: "negative mark step", mutate: func(c *Config) { c.MarkStep = -1 }, wantErr: "mark_step"},
		{name: "zero timeout", mutate: func(c *Config) { c.ShutdownTimeout = 0 }, wantErr: "shutdown_timeout"},
		{name: "zero chart width", mutate: func(c *Config) { c.ChartWidth = 0 }, wantErr: "chart size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLayoutOptions(t *testing.T) {
	opts := Default().LayoutOptions()
	if opts.SliderStep != DefaultSliderStep || opts.MarkStep != DefaultMarkStep || len(opts.Sites) != 4 {
		t.Errorf("unexpected layout options %+v", opts)
	}
}
