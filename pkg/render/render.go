package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/rhobs/launch-dash/pkg/figure"
)

// Format is an image encoding supported by the renderer.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 450

	emptyLabel = "No launches"
	// minimum visible width of the payload axis, in kg
	minXSpan = 1000
)

var emptyColor = drawing.ColorFromHex("D3D3D3")

// ParseFormat maps a file extension to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimPrefix(s, "."))) {
	case FormatSVG:
		return FormatSVG, nil
	case FormatPNG:
		return FormatPNG, nil
	}
	return "", fmt.Errorf("unsupported image format %q (valid options: svg, png)", s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (f Format) provider() chart.RendererProvider {
	if f == FormatPNG {
		return chart.PNG
	}
	return chart.SVG
}

// Options sets the image size.
type Options struct {
	Width  int
	Height int
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// Figure renders fig to w. Figures built from zero rows render as a
// placeholder rather than failing.
func Figure(w io.Writer, fig figure.Figure, format Format, opts Options) error {
	switch f := fig.(type) {
	case *figure.Pie:
		return Pie(w, f, format, opts)
	case *figure.Scatter:
		return Scatter(w, f, format, opts)
	case nil:
		return errors.New("no figure to render")
	default:
		return fmt.Errorf("unsupported figure kind %q", fig.FigureKind())
	}
}

// Pie renders a pie figure as a donut chart.
func Pie(w io.Writer, p *figure.Pie, format Format, opts Options) error {
	width, height := opts.size()

	var values []chart.Value
	for _, s := range p.Slices {
		if s.Count == 0 {
			continue
		}
		col := hexColor(s.Color)
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%d)", s.Name, s.Count),
			Value: float64(s.Count),
			Style: chart.Style{FillColor: col, StrokeColor: drawing.ColorWhite},
		})
	}

	if len(values) == 0 {
		values = []chart.Value{{
			Label: emptyLabel,
			Value: 1,
			Style: chart.Style{FillColor: emptyColor, StrokeColor: drawing.ColorWhite},
		}}
	}

	donut := chart.DonutChart{
		Title:      p.Title,
		TitleStyle: chart.Style{FontSize: 14},
		Width:      width,
		Height:     height,
		Values:     values,
	}

	if err := donut.Render(format.provider(), w); err != nil {
		return fmt.Errorf("error rendering pie chart: %w", err)
	}
	return nil
}

// pointStyle returns a style that renders points only (no connecting line)
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

// Scatter renders a scatter figure with one point series per category.
func Scatter(w io.Writer, s *figure.Scatter, format Format, opts Options) error {
	width, height := opts.size()
	xMin, xMax := xRange(s)

	var series []chart.Series
	for _, ser := range s.Series {
		if len(ser.Points) == 0 {
			continue
		}
		xs := make([]float64, len(ser.Points))
		ys := make([]float64, len(ser.Points))
		for i, pt := range ser.Points {
			xs[i] = pt.PayloadMassKg
			ys[i] = float64(pt.Outcome)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    ser.Name,
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(hexColor(ser.Color)),
		})
	}

	hasData := len(series) > 0
	if !hasData {
		// invisible series so the axes still render
		series = append(series, chart.ContinuousSeries{
			XValues: []float64{xMin, xMax},
			YValues: []float64{0, 1},
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				StrokeColor: drawing.ColorTransparent,
			},
		})
	}

	ch := chart.Chart{
		Title:      s.Title,
		TitleStyle: chart.Style{FontSize: 14},
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           s.XLabel,
			Range:          &chart.ContinuousRange{Min: xMin, Max: xMax},
			ValueFormatter: kgFormatter,
		},
		YAxis: chart.YAxis{
			Name:  s.YLabel,
			Range: &chart.ContinuousRange{Min: -0.25, Max: 1.25},
			Ticks: []chart.Tick{{Value: 0, Label: "0"}, {Value: 1, Label: "1"}},
		},
		Series: series,
	}
	if hasData {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}

	if err := ch.Render(format.provider(), w); err != nil {
		return fmt.Errorf("error rendering scatter chart: %w", err)
	}
	return nil
}

// xRange returns the payload axis bounds: the requested interval widened to
// cover every plotted point, padded so it is never degenerate.
func xRange(s *figure.Scatter) (float64, float64) {
	lo, hi := s.XRange[0], s.XRange[1]
	if lo > hi || math.IsNaN(lo) || math.IsNaN(hi) {
		lo, hi = math.Inf(1), math.Inf(-1)
	}
	for _, ser := range s.Series {
		for _, pt := range ser.Points {
			lo = math.Min(lo, pt.PayloadMassKg)
			hi = math.Max(hi, pt.PayloadMassKg)
		}
	}
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return 0, minXSpan
	}
	if span := hi - lo; span < minXSpan {
		pad := (minXSpan - span) / 2
		lo, hi = lo-pad, hi+pad
	}
	return lo, hi
}

func kgFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return ""
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
