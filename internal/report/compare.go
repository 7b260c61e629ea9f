package report

import (
	"errors"
	"log"
	"math"

	"github.com/signalnine/rmsedash/internal/config"
	"github.com/signalnine/rmsedash/internal/pivot"
)

// BaseVariant is the column every other column is compared against.
const BaseVariant = "base"

const (
	// BestEpsilon is the tolerance for treating a value as the row minimum.
	BestEpsilon = 1e-4
	// ChangeThreshold is the percent change, either way, at which a
	// difference from baseline counts as an improvement or degradation.
	ChangeThreshold = 1.0
)

// ErrEmptyGroup means none of a group's columns exist in the data.
var ErrEmptyGroup = errors.New("no columns available")

type Change int

const (
	Neutral Change = iota
	Improvement
	Degradation
)

// Classify maps a percent change to its direction. Lower RMSE is better.
func Classify(pct float64) Change {
	switch {
	case pct <= -ChangeThreshold:
		return Improvement
	case pct >= ChangeThreshold:
		return Degradation
	default:
		return Neutral
	}
}

func (c Change) Class() string {
	switch c {
	case Improvement:
		return "improvement"
	case Degradation:
		return "degradation"
	}
	return ""
}

// PercentChange is (value - baseline) / baseline * 100.
func PercentChange(value, baseline float64) float64 {
	return (value - baseline) / baseline * 100
}

// IsOutlier reports whether v is at or above threshold and so counts as a
// failed run.
func IsOutlier(v, threshold float64) bool {
	return v >= threshold
}

type Cell struct {
	Variant string
	Value   float64
	Present bool
	Outlier bool
	Best    bool
	HasPct  bool
	Pct     float64
	Change  Change
}

type Row struct {
	Sequence string
	Cells    []Cell
}

// SummaryCell is the mean percent change of one column over every row that
// had a valid baseline comparison. Count is zero when there was none.
type SummaryCell struct {
	Variant string
	Base    bool
	Count   int
	Mean    float64
	Change  Change
}

type GroupTable struct {
	Group     config.Group
	Columns   []string
	Dropped   []string
	Threshold float64
	HasBase   bool
	Rows      []Row
	Summary   []SummaryCell
}

// Compare builds the table for one group. Requested columns that are not in
// the pivot are dropped; if none remain, ErrEmptyGroup is returned.
func Compare(p *pivot.Table, g config.Group, threshold float64) (*GroupTable, error) {
	gt := &GroupTable{Group: g, Threshold: threshold}
	for _, col := range g.Columns {
		if p.HasVariant(col) {
			gt.Columns = append(gt.Columns, col)
			if col == BaseVariant {
				gt.HasBase = true
			}
		} else {
			gt.Dropped = append(gt.Dropped, col)
		}
	}
	if len(gt.Columns) == 0 {
		return nil, ErrEmptyGroup
	}
	if len(gt.Dropped) > 0 {
		log.Printf("warning: %s: no data for %v", g.Title, gt.Dropped)
	}

	changes := make(map[string][]float64)
	for _, seq := range p.Sequences() {
		row := Row{Sequence: seq, Cells: make([]Cell, len(gt.Columns))}
		best := math.Inf(1)
		for i, col := range gt.Columns {
			v, ok := p.Value(seq, col)
			c := Cell{Variant: col, Value: v, Present: ok}
			if ok && IsOutlier(v, threshold) {
				c.Outlier = true
			}
			if ok && !c.Outlier && v < best {
				best = v
			}
			row.Cells[i] = c
		}

		base, baseOK := p.Value(seq, BaseVariant)
		baseOK = baseOK && gt.HasBase && !IsOutlier(base, threshold) && base != 0

		for i := range row.Cells {
			c := &row.Cells[i]
			if !c.Present || c.Outlier {
				continue
			}
			c.Best = math.Abs(c.Value-best) < BestEpsilon
			if baseOK && c.Variant != BaseVariant {
				c.HasPct = true
				c.Pct = PercentChange(c.Value, base)
				c.Change = Classify(c.Pct)
				changes[c.Variant] = append(changes[c.Variant], c.Pct)
			}
		}
		gt.Rows = append(gt.Rows, row)
	}

	if gt.HasBase {
		for _, col := range gt.Columns {
			sc := SummaryCell{Variant: col, Base: col == BaseVariant}
			if pcts := changes[col]; len(pcts) > 0 {
				var sum float64
				for _, v := range pcts {
					sum += v
				}
				sc.Count = len(pcts)
				sc.Mean = sum / float64(len(pcts))
				sc.Change = Classify(sc.Mean)
			}
			gt.Summary = append(gt.Summary, sc)
		}
	}
	return gt, nil
}
