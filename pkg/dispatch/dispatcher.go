package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/rhobs/launch-dash/pkg/controls"
	"github.com/rhobs/launch-dash/pkg/figure"
	"github.com/rhobs/launch-dash/pkg/launches"
	"github.com/rhobs/launch-dash/pkg/metrics"
	"github.com/rhobs/launch-dash/pkg/resultutil"
)

var (
	ErrUnknownOutput  = errors.New("unknown output")
	ErrUnknownControl = errors.New("unknown control")
	ErrInvalidValues  = errors.New("invalid control values")
)

// HandlerFunc builds a figure from the launch table and the current control
// values. Values always contain every control, defaults filled in.
type HandlerFunc func(ctx context.Context, table *launches.Table, values controls.Values) (figure.Figure, error)

// Callback binds an output component to the controls it depends on.
type Callback struct {
	Output string
	Inputs []string
	Handle HandlerFunc
}

// Event is a control change delivered by the page. An empty Changed list
// requests every output, as on first render.
type Event struct {
	Changed []string        `json:"changed"`
	Values  controls.Values `json:"values"`
}

// Update is the recomputed figure of one output.
type Update struct {
	Output string             `json:"output"`
	Result *resultutil.Result `json:"result"`
}

// Dispatcher routes control changes to the handlers that depend on them.
// It is safe for concurrent use once all callbacks are registered.
type Dispatcher struct {
	table    *launches.Table
	controls map[string]controls.ControlDef
	schema   *jsonschema.Resolved
	metrics  *metrics.Metrics

	callbacks []Callback
	byOutput  map[string]int
	byInput   map[string][]int
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithMetrics records handler timings in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// NewDispatcher creates a dispatcher over the given table and controls.
func NewDispatcher(table *launches.Table, defs []controls.ControlDef, opts ...Option) (*Dispatcher, error) {
	if table == nil {
		return nil, errors.New("dispatcher requires a launch table")
	}

	schema, err := controls.ValuesSchema(defs).Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("error resolving control schema: %w", err)
	}

	d := &Dispatcher{
		table:    table,
		controls: make(map[string]controls.ControlDef, len(defs)),
		schema:   schema,
		byOutput: make(map[string]int),
		byInput:  make(map[string][]int),
	}
	for _, def := range defs {
		d.controls[def.ID] = def
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// NewDefault creates a dispatcher wired with the dashboard's two charts.
func NewDefault(table *launches.Table, opts ...Option) (*Dispatcher, error) {
	d, err := NewDispatcher(table, controls.AllControls(), opts...)
	if err != nil {
		return nil, err
	}
	for _, cb := range DefaultCallbacks() {
		if err := d.Register(cb); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Register adds a callback. Outputs must be unique and inputs must name
// known controls.
func (d *Dispatcher) Register(cb Callback) error {
	if cb.Handle == nil {
		return fmt.Errorf("output %s has no handler", cb.Output)
	}
	if _, dup := d.byOutput[cb.Output]; dup {
		return fmt.Errorf("output %s registered twice", cb.Output)
	}
	for _, in := range cb.Inputs {
		if _, ok := d.controls[in]; !ok {
			return fmt.Errorf("output %s: %w %s", cb.Output, ErrUnknownControl, in)
		}
	}

	i := len(d.callbacks)
	d.callbacks = append(d.callbacks, cb)
	d.byOutput[cb.Output] = i
	for _, in := range cb.Inputs {
		d.byInput[in] = append(d.byInput[in], i)
	}
	return nil
}

// Outputs returns the registered output IDs in registration order.
func (d *Dispatcher) Outputs() []string {
	ids := make([]string, len(d.callbacks))
	for i, cb := range d.callbacks {
		ids[i] = cb.Output
	}
	return ids
}

// Table returns the data context handed to every handler.
func (d *Dispatcher) Table() *launches.Table {
	return d.table
}

// Defaults returns the initial value of every control.
func (d *Dispatcher) Defaults() controls.Values {
	minKg, maxKg := d.table.PayloadBounds()
	values := controls.Values{}
	for id, def := range d.controls {
		switch def.Type {
		case controls.ControlTypeRangeSlider:
			values[id] = []any{minKg, maxKg}
		default:
			values[id] = launches.AllSites
		}
	}
	return values
}

// Dispatch recomputes every output depending on a changed control.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) ([]Update, error) {
	values, err := d.resolveValues(ev.Values)
	if err != nil {
		return nil, err
	}

	var targets []int
	if len(ev.Changed) == 0 {
		for i := range d.callbacks {
			targets = append(targets, i)
		}
	} else {
		for _, id := range ev.Changed {
			if _, ok := d.controls[id]; !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownControl, id)
			}
			for _, i := range d.byInput[id] {
				if !slices.Contains(targets, i) {
					targets = append(targets, i)
				}
			}
		}
		slices.Sort(targets)
	}

	slog.Debug("Dispatching control change", "changed", ev.Changed, "outputs", len(targets))

	updates := make([]Update, 0, len(targets))
	for _, i := range targets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cb := d.callbacks[i]
		updates = append(updates, Update{Output: cb.Output, Result: d.invoke(ctx, cb, values)})
	}
	return updates, nil
}

// Call runs a single output with the given values.
func (d *Dispatcher) Call(ctx context.Context, output string, values controls.Values) (*resultutil.Result, error) {
	i, ok := d.byOutput[output]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOutput, output)
	}

	resolved, err := d.resolveValues(values)
	if err != nil {
		return nil, err
	}
	return d.invoke(ctx, d.callbacks[i], resolved), nil
}

func (d *Dispatcher) invoke(ctx context.Context, cb Callback, values controls.Values) *resultutil.Result {
	start := time.Now()
	fig, err := cb.Handle(ctx, d.table, values)
	d.metrics.ObserveHandler(cb.Output, time.Since(start), err)

	if err != nil {
		slog.Error("chart handler failed", "output", cb.Output, "error", err)
		return resultutil.NewErrorResult(fmt.Errorf("failed to build %s: %w", cb.Output, err))
	}
	return resultutil.NewSuccessResult(fig)
}

// resolveValues validates the supplied values and fills in defaults for
// controls that were omitted.
func (d *Dispatcher) resolveValues(supplied controls.Values) (controls.Values, error) {
	instance, err := normalize(supplied)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidValues, err)
	}
	if err := d.schema.Validate(instance); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidValues, err)
	}

	values := d.Defaults()
	for id, v := range instance {
		if _, ok := d.controls[id]; !ok {
			slog.Debug("Ignoring value for unknown control", "control", id)
			continue
		}
		values[id] = v
	}
	return values, nil
}

// normalize round-trips values through JSON so the schema validator only
// sees JSON types regardless of how the caller built the map.
func normalize(values controls.Values) (map[string]any, error) {
	out := map[string]any{}
	if len(values) == 0 {
		return out, nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
