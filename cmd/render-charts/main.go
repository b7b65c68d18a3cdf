// render-charts renders every dashboard chart to image files for local
// preview, without starting the web server.
//
// Usage:
//
//	go run ./cmd/render-charts -data spacex_launch_dash.csv -site "KSC LC-39A" -payload 2000,8000
//
// Images are written to the -out directory as <output>.<format>.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rhobs/launch-dash/pkg/config"
	"github.com/rhobs/launch-dash/pkg/controls"
	"github.com/rhobs/launch-dash/pkg/dispatch"
	"github.com/rhobs/launch-dash/pkg/figure"
	"github.com/rhobs/launch-dash/pkg/launches"
	"github.com/rhobs/launch-dash/pkg/render"
)

func main() {
	dataPath := flag.String("data", config.DefaultDataPath, "Path to the launch records CSV file")
	site := flag.String("site", launches.AllSites, "Launch site, or ALL")
	payload := flag.String("payload", "", "Payload interval in kg as low,high (default: whole table)")
	formatStr := flag.String("format", "svg", "Image format: svg, png")
	outDir := flag.String("out", ".", "Output directory")
	width := flag.Int("width", config.DefaultChartWidth, "Image width in pixels")
	height := flag.Int("height", config.DefaultChartHeight, "Image height in pixels")
	flag.Parse()

	if err := run(*dataPath, *site, *payload, *formatStr, *outDir, render.Options{Width: *width, Height: *height}); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(dataPath, site, payload, formatStr, outDir string, opts render.Options) error {
	format, err := render.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	table, err := launches.Load(dataPath)
	if err != nil {
		return err
	}

	d, err := dispatch.NewDefault(table)
	if err != nil {
		return err
	}

	values := controls.Values{controls.SiteDropdownID: site}
	if payload != "" {
		v, err := controls.ParseQueryValue(controls.PayloadSlider, payload)
		if err != nil {
			return err
		}
		values[controls.PayloadSliderID] = v
	}

	updates, err := d.Dispatch(context.Background(), dispatch.Event{Values: values})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	for _, u := range updates {
		if u.Result.IsError() {
			return fmt.Errorf("%s: %w", u.Output, u.Result.Error)
		}
		fig, ok := u.Result.Data.(figure.Figure)
		if !ok {
			return fmt.Errorf("%s did not produce a figure", u.Output)
		}

		var buf bytes.Buffer
		if err := render.Figure(&buf, fig, format, opts); err != nil {
			return fmt.Errorf("%s: %w", u.Output, err)
		}

		path := filepath.Join(outDir, u.Output+"."+string(format))
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return err
		}
		fmt.Printf("✓ %s: %s\n", path, fig.FigureTitle())
	}

	return nil
}
