package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveHandler(t *testing.T) {
	m := New()

	m.ObserveHandler("success-pie-chart", time.Millisecond, nil)
	m.ObserveHandler("success-pie-chart", time.Millisecond, errors.New("boom"))

	if got := testutil.CollectAndCount(m.handlerDuration); got != 1 {
		t.Errorf("expected 1 histogram series, got %d", got)
	}
	if got := testutil.ToFloat64(m.handlerErrors.WithLabelValues("success-pie-chart")); got != 1 {
		t.Errorf("expected 1 error, got %v", got)
	}
}

func TestObserveRenderAndRows(t *testing.T) {
	m := New()

	m.ObserveRender("success-payload-scatter-chart", "svg")
	m.ObserveRender("success-payload-scatter-chart", "svg")
	m.SetTableRows(56)

	expected := `
# HELP launch_dash_table_rows Number of launch records loaded at startup.
# TYPE launch_dash_table_rows gauge
launch_dash_table_rows 56
`
	if err := testutil.CollectAndCompare(m.tableRows, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected gauge: %v", err)
	}
	if got := testutil.ToFloat64(m.chartRenders.WithLabelValues("success-payload-scatter-chart", "svg")); got != 2 {
		t.Errorf("expected 2 renders, got %v", got)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveHandler("x", time.Second, nil)
	m.ObserveRender("x", "png")
	m.SetTableRows(1)
}
