package handlers

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rhobs/launch-dash/pkg/figure"
	"github.com/rhobs/launch-dash/pkg/launches"
)

func newTestTable(t *testing.T) *launches.Table {
	t.Helper()
	table, err := launches.NewTable([]launches.Record{
		{Site: "A", PayloadMassKg: 500, BoosterVersionCategory: "v1.0", Outcome: launches.Success},
		{Site: "A", PayloadMassKg: 1500, BoosterVersionCategory: "v1.1", Outcome: launches.Success},
		{Site: "A", PayloadMassKg: 2500, BoosterVersionCategory: "FT", Outcome: launches.Success},
		{Site: "A", PayloadMassKg: 2500, BoosterVersionCategory: "FT", Outcome: launches.Failure},
		{Site: "B", PayloadMassKg: 0, BoosterVersionCategory: "v1.0", Outcome: launches.Success},
		{Site: "B", PayloadMassKg: 4000, BoosterVersionCategory: "B4", Outcome: launches.Success},
		{Site: "B", PayloadMassKg: 7000, BoosterVersionCategory: "B5", Outcome: launches.Failure},
		{Site: "B", PayloadMassKg: 9600, BoosterVersionCategory: "B5", Outcome: launches.Failure},
	})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return table
}

func sliceCounts(p *figure.Pie) (success, failure int) {
	for _, s := range p.Slices {
		switch s.Outcome {
		case int(launches.Success):
			success += s.Count
		case int(launches.Failure):
			failure += s.Count
		}
	}
	return success, failure
}

func TestSuccessPieChart(t *testing.T) {
	table := newTestTable(t)

	tests := []struct {
		name        string
		site        string
		wantTitle   string
		wantSuccess int
		wantFailure int
	}{
		{
			name:        "all sites",
			site:        launches.AllSites,
			wantTitle:   "Total Success Launches by Site",
			wantSuccess: 5,
			wantFailure: 3,
		},
		{
			name:        "site A",
			site:        "A",
			wantTitle:   "Success vs. Failed Launches for Site A",
			wantSuccess: 3,
			wantFailure: 1,
		},
		{
			name:        "site B",
			site:        "B",
			wantTitle:   "Success vs. Failed Launches for Site B",
			wantSuccess: 2,
			wantFailure: 2,
		},
		{
			name:      "site without launches",
			site:      "CCAFS SLC-40",
			wantTitle: "Success vs. Failed Launches for Site CCAFS SLC-40",
		},
		{
			name:        "cleared dropdown behaves like all sites",
			site:        "",
			wantTitle:   "Total Success Launches by Site",
			wantSuccess: 5,
			wantFailure: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pie := SuccessPieChart(table, PieInput{Site: tt.site})

			if pie.Title != tt.wantTitle {
				t.Errorf("expected title %q, got %q", tt.wantTitle, pie.Title)
			}
			success, failure := sliceCounts(pie)
			if success != tt.wantSuccess || failure != tt.wantFailure {
				t.Errorf("expected %d success / %d failure, got %d / %d", tt.wantSuccess, tt.wantFailure, success, failure)
			}

			wantTotal := table.Filter(launches.SiteEquals(tt.site)).Len()
			if pie.Total != wantTotal || success+failure != wantTotal {
				t.Errorf("expected total %d, got total %d (slices sum %d)", wantTotal, pie.Total, success+failure)
			}
			if pie.Empty() != (wantTotal == 0) {
				t.Errorf("Empty() = %v with total %d", pie.Empty(), wantTotal)
			}
		})
	}
}

func TestSuccessPieChart_Styling(t *testing.T) {
	pie := SuccessPieChart(newTestTable(t), PieInput{Site: launches.AllSites})

	want := []figure.Slice{
		{Name: "Success", Outcome: 1, Count: 5, Color: figure.SuccessColor},
		{Name: "Failure", Outcome: 0, Count: 3, Color: figure.FailureColor},
	}
	if diff := cmp.Diff(want, pie.Slices); diff != "" {
		t.Errorf("slices mismatch (-want +got):\n%s", diff)
	}
	if pie.Hole != 0.5 {
		t.Errorf("expected hole 0.5, got %v", pie.Hole)
	}
	if pie.Label != OutcomeLabel {
		t.Errorf("expected label %q, got %q", OutcomeLabel, pie.Label)
	}
}

func scatterRows(s *figure.Scatter) []figure.Point {
	var points []figure.Point
	for _, series := range s.Series {
		points = append(points, series.Points...)
	}
	return points
}

func TestPayloadScatterChart_MatchesFilter(t *testing.T) {
	table := newTestTable(t)
	minKg, maxKg := table.PayloadBounds()

	tests := []struct {
		name      string
		site      string
		low, high float64
		want      int
	}{
		{name: "all sites full range returns every row", site: launches.AllSites, low: minKg, high: maxKg, want: 8},
		{name: "site A full range", site: "A", low: minKg, high: maxKg, want: 4},
		{name: "all sites narrow range", site: launches.AllSites, low: 1000, high: 5000, want: 4},
		{name: "degenerate interval", site: launches.AllSites, low: 2500, high: 2500, want: 2},
		{name: "degenerate interval no match", site: launches.AllSites, low: 3000, high: 3000, want: 0},
		{name: "inverted interval", site: launches.AllSites, low: maxKg, high: minKg, want: 0},
		{name: "unknown site", site: "C", low: minKg, high: maxKg, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scatter := PayloadScatterChart(table, ScatterInput{Site: tt.site, PayloadLow: tt.low, PayloadHigh: tt.high})

			if scatter.Count != tt.want {
				t.Errorf("expected %d rows, got %d", tt.want, scatter.Count)
			}

			var want []figure.Point
			for _, r := range table.Filter(launches.SiteEquals(tt.site), launches.PayloadWithin(tt.low, tt.high)).Records() {
				want = append(want, figure.Point{PayloadMassKg: r.PayloadMassKg, Outcome: int(r.Outcome), Site: r.Site})
			}
			got := scatterRows(scatter)
			if len(got) != len(want) {
				t.Fatalf("expected %d points, got %d", len(want), len(got))
			}

			// points are grouped by category, so compare as multisets
			seen := make(map[figure.Point]int)
			for _, p := range want {
				seen[p]++
			}
			for _, p := range got {
				seen[p]--
			}
			for p, n := range seen {
				if n != 0 {
					t.Errorf("point %+v count off by %d", p, n)
				}
			}
		})
	}
}

func TestPayloadScatterChart_Series(t *testing.T) {
	scatter := PayloadScatterChart(newTestTable(t), ScatterInput{Site: launches.AllSites, PayloadLow: 0, PayloadHigh: 10000})

	var names, colors []string
	for _, s := range scatter.Series {
		names = append(names, s.Name)
		colors = append(colors, s.Color)
	}

	if diff := cmp.Diff([]string{"v1.0", "v1.1", "FT", "B4", "B5"}, names); diff != "" {
		t.Errorf("series order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(figure.Qualitative[:5], colors); diff != "" {
		t.Errorf("series colours mismatch (-want +got):\n%s", diff)
	}

	if scatter.XLabel != PayloadMassLabel || scatter.YLabel != OutcomeLabel {
		t.Errorf("unexpected axis labels %q / %q", scatter.XLabel, scatter.YLabel)
	}
	if scatter.Title != "Payload and Launch Success Correlation" {
		t.Errorf("unexpected title %q", scatter.Title)
	}
}

func TestPayloadScatterChart_SiteTitle(t *testing.T) {
	scatter := PayloadScatterChart(newTestTable(t), ScatterInput{Site: "B", PayloadLow: 0, PayloadHigh: 10000})
	if scatter.Title != "Payload and Launch Success Correlation for Site B" {
		t.Errorf("unexpected title %q", scatter.Title)
	}
}

func TestPayloadScatterChart_EmptyIsValidJSON(t *testing.T) {
	scatter := PayloadScatterChart(newTestTable(t), ScatterInput{Site: "A", PayloadLow: 9000, PayloadHigh: 1000})
	if !scatter.Empty() {
		t.Fatal("expected empty scatter")
	}

	data, err := json.Marshal(scatter)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if series, ok := decoded["series"].([]any); !ok || len(series) != 0 {
		t.Errorf("expected empty series array, got %v", decoded["series"])
	}
}
