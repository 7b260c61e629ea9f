package result

import (
	"math"
	"sort"
)

// SummaryRow is one experiment's statistics plus its per-run RMSE values in
// run order.
type SummaryRow struct {
	Name    string
	NumRuns int
	Mean    float64
	Median  float64
	Min     float64
	Max     float64
	Last    float64
	Runs    []float64
}

type Table struct {
	Rows []SummaryRow
}

// MaxRuns is the widest run count in the table, which fixes the number of
// run_i columns.
func (t *Table) MaxRuns() int {
	n := 0
	for _, r := range t.Rows {
		if len(r.Runs) > n {
			n = len(r.Runs)
		}
	}
	return n
}

func (t *Table) Names() []string {
	names := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		names[i] = r.Name
	}
	return names
}

// Summarize builds a row from a non-empty sequence of observations.
func Summarize(name string, runs []float64) SummaryRow {
	row := SummaryRow{
		Name:    name,
		NumRuns: len(runs),
		Runs:    append([]float64(nil), runs...),
	}
	if len(runs) == 0 {
		row.Mean, row.Median, row.Min, row.Max, row.Last = math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return row
	}
	row.Min, row.Max = runs[0], runs[0]
	var sum float64
	for _, v := range runs {
		sum += v
		row.Min = math.Min(row.Min, v)
		row.Max = math.Max(row.Max, v)
	}
	row.Mean = sum / float64(len(runs))
	row.Median = Median(runs)
	row.Last = runs[len(runs)-1]
	return row
}

// Median returns the middle value of values, or the mean of the two middle
// values for an even count. NaN for an empty slice. values is not modified.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
