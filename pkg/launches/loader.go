package launches

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
)

// Column names required in the launch CSV.
const (
	ColumnSite                   = "Launch Site"
	ColumnPayloadMass            = "Payload Mass (kg)"
	ColumnBoosterVersionCategory = "Booster Version Category"
	ColumnClass                  = "class"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrInvalidValue  = errors.New("invalid value")
	ErrEmptyTable    = errors.New("launch table has no rows")
)

// RequiredColumns lists the columns Parse looks up in the header.
var RequiredColumns = []string{
	ColumnSite,
	ColumnPayloadMass,
	ColumnBoosterVersionCategory,
	ColumnClass,
}

// Load reads the launch CSV at path.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening launch data: %w", err)
	}
	defer f.Close()

	table, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", path, err)
	}

	minKg, maxKg := table.PayloadBounds()
	slog.Info("Loaded launch records", "path", path, "rows", table.Len(), "sites", len(table.Sites()),
		"minPayloadKg", minKg, "maxPayloadKg", maxKg)
	return table, nil
}

// Parse reads launch records from comma-separated input with a header row.
// Columns other than RequiredColumns are ignored.
func Parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyTable
	}
	if err != nil {
		return nil, fmt.Errorf("error reading header: %w", err)
	}

	idx, err := columnIndexes(header)
	if err != nil {
		return nil, err
	}

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading row: %w", err)
		}

		line, _ := reader.FieldPos(0)
		rec, err := parseRecord(row, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return NewTable(records)
}

// columns maps each of RequiredColumns to its position in the header.
type columns map[string]int

func columnIndexes(header []string) (columns, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := positions[name]; !dup {
			positions[name] = i
		}
	}

	c := make(columns, len(RequiredColumns))
	var missing []string
	for _, name := range RequiredColumns {
		i, ok := positions[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		c[name] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return c, nil
}

func parseRecord(row []string, c columns) (Record, error) {
	payloadRaw := strings.TrimSpace(row[c[ColumnPayloadMass]])
	payload, err := strconv.ParseFloat(payloadRaw, 64)
	if err != nil || math.IsNaN(payload) || math.IsInf(payload, 0) {
		return Record{}, fmt.Errorf("%w: %s %q is not a finite number", ErrInvalidValue, ColumnPayloadMass, payloadRaw)
	}

	outcome, err := parseOutcome(strings.TrimSpace(row[c[ColumnClass]]))
	if err != nil {
		return Record{}, err
	}

	return Record{
		Site:                   strings.TrimSpace(row[c[ColumnSite]]),
		PayloadMassKg:          payload,
		BoosterVersionCategory: strings.TrimSpace(row[c[ColumnBoosterVersionCategory]]),
		Outcome:                outcome,
	}, nil
}

func parseOutcome(raw string) (Outcome, error) {
	v, err := strconv.ParseFloat(raw, 64)
	switch {
	case err == nil && v == 0:
		return Failure, nil
	case err == nil && v == 1:
		return Success, nil
	default:
		return 0, fmt.Errorf("%w: %s %q must be 0 or 1", ErrInvalidValue, ColumnClass, raw)
	}
}
