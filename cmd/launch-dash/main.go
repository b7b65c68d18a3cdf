package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"time"

	"github.com/prometheus/common/model"
	"github.com/prometheus/common/promslog"

	"github.com/rhobs/launch-dash/pkg/config"
	"github.com/rhobs/launch-dash/pkg/dispatch"
	"github.com/rhobs/launch-dash/pkg/launches"
	"github.com/rhobs/launch-dash/pkg/layout"
	"github.com/rhobs/launch-dash/pkg/mcp"
	"github.com/rhobs/launch-dash/pkg/metrics"
	"github.com/rhobs/launch-dash/pkg/render"
	"github.com/rhobs/launch-dash/pkg/server"
)

func main() {
	// Parse command line flags
	var configPath = flag.String("config", "", "Path to a TOML configuration file")
	var listen = flag.String("listen", config.DefaultListen, "Listen address for the dashboard (e.g., :8050, 127.0.0.1:8050)")
	var dataPath = flag.String("data", config.DefaultDataPath, "Path to the launch records CSV file")
	var shutdownTimeout = flag.String("shutdown-timeout", config.DefaultShutdownTimeout.String(), "Graceful shutdown timeout (e.g., 10s, 1m)")
	var enableMCP = flag.Bool("enable-mcp", true, "Serve the chart tools over MCP on /mcp")
	var logLevel = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	var logFormat = flag.String("log-format", "logfmt", "Log format: logfmt, json")
	flag.Parse()

	// Configure slog with specified log level
	configureLogging(*logLevel, *logFormat)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Explicitly set flags take precedence over the file and the environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "listen":
			cfg.Listen = *listen
		case "data":
			cfg.DataPath = *dataPath
		case "enable-mcp":
			cfg.EnableMCP = *enableMCP
		case "shutdown-timeout":
			d, err := model.ParseDuration(*shutdownTimeout)
			if err != nil {
				log.Fatalf("Invalid shutdown timeout: %v", err)
			}
			cfg.ShutdownTimeout = d
		}
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	table, err := launches.Load(cfg.DataPath)
	if err != nil {
		log.Fatalf("Failed to load launch records: %v", err)
	}

	m := metrics.New()
	m.SetTableRows(table.Len())

	dispatcher, err := dispatch.NewDefault(table, dispatch.WithMetrics(m))
	if err != nil {
		log.Fatalf("Failed to create dispatcher: %v", err)
	}

	layoutOpts := cfg.LayoutOptions()
	if err := layoutOpts.Validate(table.PayloadBounds()); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	pageLayout := layout.Build(table, layoutOpts)

	opts := server.Options{
		Dispatcher:      dispatcher,
		Layout:          pageLayout,
		Metrics:         m,
		Chart:           render.Options{Width: cfg.ChartWidth, Height: cfg.ChartHeight},
		ShutdownTimeout: time.Duration(cfg.ShutdownTimeout),
	}

	if cfg.EnableMCP {
		mcpServer, err := mcp.NewMCPServer(mcp.LaunchDashOptions{
			Dispatcher: dispatcher,
			Layout:     pageLayout,
		})
		if err != nil {
			log.Fatalf("Failed to create MCP server: %v", err)
		}
		opts.MCP = mcp.Handler(mcpServer)
	}

	slog.Info("Starting server", "data_path", cfg.DataPath, "launches", table.Len(), "mcp", cfg.EnableMCP)

	if err := server.Serve(context.Background(), opts, cfg.Listen); err != nil {
		log.Fatalf("HTTP server failed: %v", err)
	}
}

// configureLogging sets up the slog logger with the specified log level and format
func configureLogging(levelStr, formatStr string) {
	level := promslog.NewLevel()
	err := level.Set(levelStr)
	if err != nil {
		log.Fatal(err.Error())
	}

	format := promslog.NewFormat()
	err = format.Set(formatStr)
	if err != nil {
		log.Fatal(err.Error())
	}

	logger := promslog.New(&promslog.Config{
		Level:  level,
		Format: format,
		Style:  promslog.GoKitStyle,
	})
	slog.SetDefault(logger)
}
