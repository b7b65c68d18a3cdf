package layout

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"

	"github.com/rhobs/launch-dash/pkg/controls"
	"github.com/rhobs/launch-dash/pkg/launches"
)

// Node types of the view tree.
const (
	NodeHeading     = "heading"
	NodeBreak       = "break"
	NodeLabel       = "label"
	NodeParagraph   = "paragraph"
	NodeDropdown    = "dropdown"
	NodeRangeSlider = "range-slider"
	NodeGraph       = "graph"
	NodeContainer   = "container"
)

const (
	Title = "SpaceX Launch Records Dashboard"

	allSitesLabel = "All Sites"
	placeholder   = "Select a Launch Site"
)

// Upper bounds on the slider positions and tick marks a payload range may
// produce for the configured steps.
const (
	MaxSliderSteps = 100000
	MaxMarks       = 1000
)

// ErrStepTooSmall is returned when a step splits the payload range into more
// positions than the page can render.
var ErrStepTooSmall = errors.New("step too small for payload range")

// DefaultSites is the dropdown's list of known launch sites.
var DefaultSites = []string{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A", "CCAFS SLC-40"}

// Node is one element of the declarative view tree.
type Node struct {
	Type     string            `json:"type"`
	ID       string            `json:"id,omitempty"`
	Text     string            `json:"text,omitempty"`
	Style    map[string]string `json:"style,omitempty"`
	Dropdown *Dropdown         `json:"dropdown,omitempty"`
	Slider   *RangeSlider      `json:"slider,omitempty"`
	Children []Node            `json:"children,omitempty"`
}

// Dropdown holds the properties of a select control.
type Dropdown struct {
	Options     []Option `json:"options"`
	Value       string   `json:"value"`
	Placeholder string   `json:"placeholder"`
	Searchable  bool     `json:"searchable"`
}

// Option is one dropdown entry.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// RangeSlider holds the properties of a two-handle slider.
type RangeSlider struct {
	Min   float64    `json:"min"`
	Max   float64    `json:"max"`
	Step  float64    `json:"step"`
	Value [2]float64 `json:"value"`
	Marks []Mark     `json:"marks"`
}

// Mark is a labelled slider tick.
type Mark struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// Options configures the generated layout.
type Options struct {
	Sites      []string
	SliderStep float64
	MarkStep   float64
}

// Validate checks the steps against the payload range [minKg, maxKg].
func (o Options) Validate(minKg, maxKg float64) error {
	return errors.Join(
		checkStep("slider_step", o.SliderStep, minKg, maxKg, MaxSliderSteps),
		checkStep("mark_step", o.MarkStep, minKg, maxKg, MaxMarks),
	)
}

func checkStep(name string, step, minKg, maxKg float64, limit int) error {
	if !(step > 0) || math.IsInf(step, 0) {
		return fmt.Errorf("%s must be a positive number, got %v", name, step)
	}
	if n := (maxKg - minKg) / step; n > float64(limit) {
		return fmt.Errorf("%w: %s %v yields %.0f positions between %v and %v kg, at most %d allowed",
			ErrStepTooSmall, name, step, math.Ceil(n), minKg, maxKg, limit)
	}
	return nil
}

// Layout is the page description built once at startup.
type Layout struct {
	Title string `json:"title"`
	Root  Node   `json:"root"`
}

// Build describes the dashboard page for table.
func Build(table *launches.Table, opts Options) Layout {
	minKg, maxKg := table.PayloadBounds()

	root := Node{
		Type: NodeContainer,
		Children: []Node{
			{
				Type: NodeHeading,
				Text: Title,
				Style: map[string]string{
					"text-align": "center",
					"color":      "#503D36",
					"font-size":  "40px",
				},
			},
			{Type: NodeBreak},
			{
				Type: NodeContainer,
				Children: []Node{
					{Type: NodeLabel, ID: controls.SiteDropdownID + "-label", Text: controls.SiteDropdown.Label},
					{
						Type: NodeDropdown,
						ID:   controls.SiteDropdownID,
						Dropdown: &Dropdown{
							Options:     SiteOptions(table, opts.Sites),
							Value:       launches.AllSites,
							Placeholder: placeholder,
							Searchable:  true,
						},
					},
				},
			},
			{Type: NodeBreak},
			{Type: NodeGraph, ID: controls.SuccessPieChartID, Text: controls.SuccessPieChart.Title},
			{Type: NodeBreak},
			{Type: NodeParagraph, Text: controls.PayloadSlider.Label},
			{
				Type: NodeRangeSlider,
				ID:   controls.PayloadSliderID,
				Slider: &RangeSlider{
					Min:   minKg,
					Max:   maxKg,
					Step:  opts.SliderStep,
					Value: [2]float64{minKg, maxKg},
					Marks: marks(minKg, maxKg, opts.MarkStep),
				},
			},
			{Type: NodeGraph, ID: controls.PayloadScatterChartID, Text: controls.PayloadScatterChart.Title},
		},
	}

	return Layout{Title: Title, Root: root}
}

// SiteOptions returns the dropdown entries: All Sites, the known sites, then
// any site present in the data but missing from the known list.
func SiteOptions(table *launches.Table, known []string) []Option {
	if len(known) == 0 {
		known = DefaultSites
	}

	options := []Option{{Label: allSitesLabel, Value: launches.AllSites}}
	seen := map[string]bool{launches.AllSites: true}
	for _, s := range known {
		if seen[s] {
			continue
		}
		seen[s] = true
		options = append(options, Option{Label: s, Value: s})
	}

	var extra []string
	for _, s := range table.Sites() {
		if !seen[s] {
			seen[s] = true
			extra = append(extra, s)
		}
	}
	if len(extra) > 0 {
		slog.Warn("Launch data contains sites missing from the configured site list", "sites", extra)
		slices.Sort(extra)
		for _, s := range extra {
			options = append(options, Option{Label: s, Value: s})
		}
	}

	return options
}

func marks(minKg, maxKg, step float64) []Mark {
	if !(step > 0) || maxKg < minKg {
		return nil
	}
	n := math.Floor((maxKg - minKg) / step)
	if n > MaxMarks {
		slog.Warn("Mark step too small, slider drawn without marks", "mark_step", step, "marks", n+1, "max", MaxMarks)
		return nil
	}

	out := make([]Mark, 0, int(n)+1)
	for i := 0; i <= int(n); i++ {
		v := minKg + float64(i)*step
		out = append(out, Mark{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)})
	}
	return out
}

// Find returns the first node with the given ID.
func (l Layout) Find(id string) (Node, bool) {
	return find(l.Root, id)
}

func find(n Node, id string) (Node, bool) {
	if n.ID == id {
		return n, true
	}
	for _, c := range n.Children {
		if found, ok := find(c, id); ok {
			return found, true
		}
	}
	return Node{}, false
}
