package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/JustJay7/tdlc-stats/internal/domain"
)

// table is a raw CSV file: header index plus string rows
type table struct {
	name      string
	columns   map[string]int
	rows      [][]string
	malformed int
}

// readTable opens path and reads every record. Header names are trimmed, and
// lowercased too when foldHeaders is set.
func readTable(name, path string, foldHeaders bool) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.NewDatasetUnavailableError(name, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = false

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &table{name: name, columns: map[string]int{}}, nil
		}
		return nil, domain.NewDatasetUnavailableError(name, path, fmt.Errorf("reading header: %w", err))
	}

	t := &table{name: name, columns: make(map[string]int, len(header))}
	for i, col := range header {
		col = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
		if foldHeaders {
			col = strings.ToLower(col)
		}
		if _, dup := t.columns[col]; !dup {
			t.columns[col] = i
		}
	}

	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				t.malformed++
				continue
			}
			return nil, domain.NewDatasetUnavailableError(name, path, err)
		}
		if isBlank(record) {
			continue
		}
		if len(record) != len(header) {
			t.malformed++
		}
		t.rows = append(t.rows, record)
	}

	return t, nil
}

// get returns the trimmed value of the first of names present in the header.
// Missing columns and short rows read as "".
func (t *table) get(row []string, names ...string) string {
	for _, name := range names {
		idx, ok := t.columns[name]
		if !ok {
			continue
		}
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// parseBool accepts the spellings the collectors have written over time
func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "si", "sí", "yes", "verdadero":
		return true
	default:
		return false
	}
}
