package result

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const (
	ColName    = "name"
	ColNumRuns = "num_runs"
	ColMean    = "rmse_mean"
	ColMedian  = "rmse_median"
	ColMin     = "rmse_min"
	ColMax     = "rmse_max"
	ColLast    = "rmse_last"

	runPrefix = "run_"
)

var summaryColumns = []string{ColName, ColNumRuns, ColMean, ColMedian, ColMin, ColMax, ColLast}

func RunColumn(i int) string {
	return fmt.Sprintf("%s%d", runPrefix, i)
}

// Header returns the column layout for a table whose widest row has maxRuns
// observations: summary columns, then run_1..run_maxRuns.
func Header(maxRuns int) []string {
	h := append([]string(nil), summaryColumns...)
	for i := 1; i <= maxRuns; i++ {
		h = append(h, RunColumn(i))
	}
	return h
}

// WriteCSV writes the table to path, replacing any existing file.
func WriteCSV(path string, t *Table) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating csv dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv: %w", err)
	}
	defer f.Close()

	maxRuns := t.MaxRuns()
	w := csv.NewWriter(f)
	if err := w.Write(Header(maxRuns)); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range t.Rows {
		rec := []string{
			r.Name,
			strconv.Itoa(r.NumRuns),
			formatFloat(r.Mean),
			formatFloat(r.Median),
			formatFloat(r.Min),
			formatFloat(r.Max),
			formatFloat(r.Last),
		}
		for i := 0; i < maxRuns; i++ {
			if i < len(r.Runs) {
				rec = append(rec, formatFloat(r.Runs[i]))
			} else {
				rec = append(rec, "")
			}
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("writing csv row %s: %w", r.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return f.Close()
}

// ReadCSV loads a table written by WriteCSV or any producer with the same
// column names. Columns are located by header, so their order may differ.
// A missing or empty rmse_median is recomputed from the row's run columns.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("reading csv %s: missing header", path)
	}

	header := records[0]
	idx := make(map[string]int, len(header))
	type runCol struct{ n, col int }
	var runCols []runCol
	for i, h := range header {
		h = strings.TrimSpace(h)
		idx[h] = i
		if n, ok := strings.CutPrefix(h, runPrefix); ok {
			if k, err := strconv.Atoi(n); err == nil && k > 0 {
				runCols = append(runCols, runCol{k, i})
			}
		}
	}
	if _, ok := idx[ColName]; !ok {
		return nil, fmt.Errorf("reading csv %s: no %q column", path, ColName)
	}
	sort.Slice(runCols, func(i, j int) bool { return runCols[i].n < runCols[j].n })

	t := &Table{}
	for line, rec := range records[1:] {
		cell := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		parse := func(col, s string) (float64, error) {
			if s == "" {
				return math.NaN(), nil
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return 0, fmt.Errorf("reading csv %s: row %d column %s: %w", path, line+2, col, err)
			}
			return v, nil
		}
		num := func(col string) (float64, error) { return parse(col, cell(col)) }

		row := SummaryRow{Name: cell(ColName)}
		for _, rc := range runCols {
			if rc.col >= len(rec) || strings.TrimSpace(rec[rc.col]) == "" {
				continue
			}
			v, err := parse(RunColumn(rc.n), strings.TrimSpace(rec[rc.col]))
			if err != nil {
				return nil, err
			}
			row.Runs = append(row.Runs, v)
		}

		for _, fld := range []struct {
			col string
			dst *float64
		}{
			{ColMean, &row.Mean},
			{ColMedian, &row.Median},
			{ColMin, &row.Min},
			{ColMax, &row.Max},
			{ColLast, &row.Last},
		} {
			v, err := num(fld.col)
			if err != nil {
				return nil, err
			}
			*fld.dst = v
		}
		if math.IsNaN(row.Median) {
			row.Median = Median(row.Runs)
		}

		row.NumRuns = len(row.Runs)
		if s := cell(ColNumRuns); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("reading csv %s: row %d column %s: %w", path, line+2, ColNumRuns, err)
			}
			row.NumRuns = n
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
