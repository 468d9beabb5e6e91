package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

const (
	// NumFeatures is the number of numeric feature columns expected in the source table.
	NumFeatures = 4
	// NumClasses is the number of distinct label values expected in the source table.
	NumClasses = 3
)

// Row is a single labeled sample of the source table.
type Row struct {
	Features []float64
	Label    string
}

// Table is an immutable in-memory copy of the source table.
type Table struct {
	Rows    []Row
	Classes []string
}

// Load reads a labeled table from a csv file.
// The file must have exactly NumFeatures numeric columns followed by one label column
// with at most NumClasses distinct values. With hasHeader the first line is skipped.
func Load(path string, hasHeader bool) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open dataset file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read dataset file: %w", err)
	}

	start := 0
	if hasHeader {
		start = 1
	}
	if len(records) <= start {
		return nil, fmt.Errorf("dataset file has no data rows")
	}

	table := &Table{
		Rows:    make([]Row, 0, len(records)-start),
		Classes: make([]string, 0, NumClasses),
	}
	seen := make(map[string]bool, NumClasses)

	for i := start; i < len(records); i++ {
		record := records[i]
		if len(record) != NumFeatures+1 {
			return nil, fmt.Errorf("row %d has %d columns, expected %d", i+1, len(record), NumFeatures+1)
		}
		features := make([]float64, NumFeatures)
		for j := 0; j < NumFeatures; j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("could not parse feature at row %d col %d: %w", i+1, j+1, err)
			}
			features[j] = v
		}
		label := record[NumFeatures]
		if !seen[label] {
			if len(table.Classes) == NumClasses {
				return nil, fmt.Errorf("row %d introduces label %q, expected at most %d distinct labels", i+1, label, NumClasses)
			}
			seen[label] = true
			table.Classes = append(table.Classes, label)
		}
		table.Rows = append(table.Rows, Row{Features: features, Label: label})
	}

	log.Info().
		Str("file", path).
		Int("rows", len(table.Rows)).
		Strs("classes", table.Classes).
		Msg("loaded dataset")

	return table, nil
}

// Features returns the feature matrix of the table.
func (t *Table) Features() [][]float64 {
	x := make([][]float64, len(t.Rows))
	for i, row := range t.Rows {
		x[i] = row.Features
	}
	return x
}
