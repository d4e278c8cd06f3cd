package geodash

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// PopulationRecord holds the census counts of one state. State is the
// canonical name used as the join key.
type PopulationRecord struct {
	State  string
	Total  int64
	Male   int64
	Female int64
}

// Population table column names, matched case-insensitively.
const (
	colState  = "state"
	colTotal  = "total_population"
	colMale   = "population_male"
	colFemale = "population_female"
)

// LoadPopulation reads a CSV of per-state population counts keyed by canonical
// state name.
//
// Counts may carry "," thousands separators or a fractional part; fractions are
// truncated toward zero. Empty, non-numeric or negative counts, a missing
// column, and two rows naming the same canonical state are all *LoadError.
func LoadPopulation(path string) (map[string]PopulationRecord, error) {
	fi, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer fi.Close()

	r := csv.NewReader(fi)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, &LoadError{Path: path, Err: errors.New("empty file")}
	}
	if err != nil {
		return nil, loadErrorf(path, "reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		// Spreadsheet exports often start with a UTF-8 BOM.
		h = strings.TrimPrefix(h, "\ufeff")
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	idx := make(map[string]int, 4)
	for _, name := range []string{colState, colTotal, colMale, colFemale} {
		i, ok := cols[name]
		if !ok {
			return nil, loadErrorf(path, "missing column %q", name)
		}
		idx[name] = i
	}

	out := make(map[string]PopulationRecord)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, loadErrorf(path, "reading row: %w", err)
		}
		line, _ := r.FieldPos(0)

		state := Canonicalize(row[idx[colState]])
		if state == "" {
			return nil, loadErrorf(path, "line %d: empty state name", line)
		}
		if _, dup := out[state]; dup {
			return nil, loadErrorf(path, "line %d: duplicate state %q", line, state)
		}

		rec := PopulationRecord{State: state}
		for _, f := range []struct {
			col string
			dst *int64
		}{
			{colTotal, &rec.Total},
			{colMale, &rec.Male},
			{colFemale, &rec.Female},
		} {
			n, err := parseCount(row[idx[f.col]])
			if err != nil {
				return nil, loadErrorf(path, "line %d: %s: %w", line, f.col, err)
			}
			*f.dst = n
		}
		out[state] = rec
	}

	if len(out) == 0 {
		return nil, &LoadError{Path: path, Err: errors.New("no data rows")}
	}
	return out, nil
}

// parseCount parses a population count. Fractional values are truncated
// toward zero, matching an integer conversion of the source value.
func parseCount(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, errors.New("empty value")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative value %d", n)
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-numeric value %q", s)
	}
	if f < 0 {
		return 0, fmt.Errorf("negative value %q", s)
	}
	if f > math.MaxInt64 {
		return 0, fmt.Errorf("value %q out of range", s)
	}
	return int64(math.Trunc(f)), nil
}
