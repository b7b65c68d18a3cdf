// Package figure defines the chart descriptions returned by the dashboard
// handlers. They are plain data: the browser, the MCP tools and the image
// renderer all consume the same values.
package figure

// Kind identifies the chart type of a figure.
type Kind string

const (
	KindPie     Kind = "pie"
	KindScatter Kind = "scatter"
)

// Figure is implemented by every chart description.
type Figure interface {
	FigureKind() Kind
	FigureTitle() string
	// Empty reports whether the figure was built from zero rows.
	Empty() bool
}

// Pie defines the output schema for the success pie chart.
type Pie struct {
	Kind   Kind    `json:"kind" jsonschema:"description=Chart type, always pie"`
	Title  string  `json:"title" jsonschema:"description=Chart title"`
	Label  string  `json:"label" jsonschema:"description=Legend label of the slice dimension"`
	Hole   float64 `json:"hole" jsonschema:"description=Fraction of the radius cut out of the centre"`
	Slices []Slice `json:"slices" jsonschema:"description=One slice per launch outcome"`
	Total  int     `json:"total" jsonschema:"description=Number of launches summarized by the chart"`
}

// Slice is one outcome of a pie chart.
type Slice struct {
	Name    string `json:"name" jsonschema:"description=Outcome name (Success or Failure)"`
	Outcome int    `json:"outcome" jsonschema:"description=Outcome value as stored in the class column"`
	Count   int    `json:"count" jsonschema:"description=Number of launches with this outcome"`
	Color   string `json:"color" jsonschema:"description=Slice colour as #RRGGBB"`
}

func (p *Pie) FigureKind() Kind    { return KindPie }
func (p *Pie) FigureTitle() string { return p.Title }
func (p *Pie) Empty() bool         { return p.Total == 0 }

// Scatter defines the output schema for the payload/outcome scatter chart.
type Scatter struct {
	Kind   Kind            `json:"kind" jsonschema:"description=Chart type, always scatter"`
	Title  string          `json:"title" jsonschema:"description=Chart title"`
	XLabel string          `json:"xLabel" jsonschema:"description=X axis label"`
	YLabel string          `json:"yLabel" jsonschema:"description=Y axis label"`
	XRange [2]float64      `json:"xRange" jsonschema:"description=Requested payload interval [low, high]"`
	Series []ScatterSeries `json:"series" jsonschema:"description=One series per booster version category"`
	Count  int             `json:"count" jsonschema:"description=Number of plotted launches"`
}

// ScatterSeries groups the points of one booster version category.
type ScatterSeries struct {
	Name   string  `json:"name" jsonschema:"description=Booster version category"`
	Color  string  `json:"color" jsonschema:"description=Marker colour as #RRGGBB"`
	Points []Point `json:"points" jsonschema:"description=Plotted launches"`
}

// Point is one plotted launch.
type Point struct {
	PayloadMassKg float64 `json:"x" jsonschema:"description=Payload mass in kg"`
	Outcome       int     `json:"y" jsonschema:"description=Launch outcome (0 or 1)"`
	Site          string  `json:"site" jsonschema:"description=Launch site"`
}

func (s *Scatter) FigureKind() Kind    { return KindScatter }
func (s *Scatter) FigureTitle() string { return s.Title }
func (s *Scatter) Empty() bool         { return s.Count == 0 }

// Ensure chart types implement Figure at compile time
var (
	_ Figure = (*Pie)(nil)
	_ Figure = (*Scatter)(nil)
)
