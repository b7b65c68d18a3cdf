package launches

import (
	"math"
	"slices"
)

// AllSites is the site selection that matches every launch.
const AllSites = "ALL"

// Outcome is the binary result of a launch as stored in the class column.
type Outcome int

const (
	Failure Outcome = 0
	Success Outcome = 1
)

func (o Outcome) String() string {
	if o == Success {
		return "Success"
	}
	return "Failure"
}

// Record is a single launch row.
type Record struct {
	Site                   string
	PayloadMassKg          float64
	BoosterVersionCategory string
	Outcome                Outcome
}

// Table is the immutable set of launch records loaded at startup.
// It is safe for concurrent readers.
type Table struct {
	records    []Record
	minPayload float64
	maxPayload float64
	sites      []string
}

// NewTable builds a table from records. The slice is copied.
func NewTable(records []Record) (*Table, error) {
	if len(records) == 0 {
		return nil, ErrEmptyTable
	}

	t := &Table{
		records:    slices.Clone(records),
		minPayload: math.Inf(1),
		maxPayload: math.Inf(-1),
	}

	seen := make(map[string]bool)
	for _, r := range t.records {
		t.minPayload = math.Min(t.minPayload, r.PayloadMassKg)
		t.maxPayload = math.Max(t.maxPayload, r.PayloadMassKg)
		if !seen[r.Site] {
			seen[r.Site] = true
			t.sites = append(t.sites, r.Site)
		}
	}

	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns a copy of all rows in load order.
func (t *Table) Records() []Record {
	return slices.Clone(t.records)
}

// PayloadBounds returns the minimum and maximum payload mass observed at load.
func (t *Table) PayloadBounds() (minKg, maxKg float64) {
	return t.minPayload, t.maxPayload
}

// Sites returns the distinct launch sites in order of first appearance.
func (t *Table) Sites() []string {
	return slices.Clone(t.sites)
}

// Filter returns the rows matching every predicate. With no predicates the
// view holds the full table.
func (t *Table) Filter(preds ...Predicate) View {
	rows := make([]Record, 0, len(t.records))
	for _, r := range t.records {
		if matchesAll(r, preds) {
			rows = append(rows, r)
		}
	}
	return View{rows: rows}
}

func matchesAll(r Record, preds []Predicate) bool {
	for _, p := range preds {
		if !p(r) {
			return false
		}
	}
	return true
}

// View is a transient subset of table rows.
type View struct {
	rows []Record
}

func (v View) Len() int {
	return len(v.rows)
}

// Records returns the rows of the view. Callers must not modify them.
func (v View) Records() []Record {
	return v.rows
}

// OutcomeCounts returns how many rows succeeded and failed.
func (v View) OutcomeCounts() (success, failure int) {
	for _, r := range v.rows {
		if r.Outcome == Success {
			success++
		} else {
			failure++
		}
	}
	return success, failure
}
