// Package pivot reshapes a result table into sequence x variant median RMSE.
package pivot

import (
	"log"
	"math"
	"sort"

	"github.com/signalnine/rmsedash/internal/result"
	"github.com/signalnine/rmsedash/internal/variant"
)

// Duplicate records an experiment whose (sequence, variant) key was already
// taken by an earlier row. The later row's value is kept.
type Duplicate struct {
	Key      variant.Key
	Previous string
	Name     string
}

type Table struct {
	sequences []string
	variants  map[string]bool
	values    map[variant.Key]float64
	owners    map[variant.Key]string

	Unassigned []string
	Duplicates []Duplicate
}

// Build groups rows by their variant key. Rows whose name matches no marker
// are listed in Unassigned; rows without a median are ignored.
func Build(t *result.Table, m *variant.Matcher) *Table {
	p := &Table{
		variants: make(map[string]bool),
		values:   make(map[variant.Key]float64),
		owners:   make(map[variant.Key]string),
	}
	seen := make(map[string]bool)
	for _, row := range t.Rows {
		key, ok := m.Parse(row.Name)
		if !ok {
			p.Unassigned = append(p.Unassigned, row.Name)
			continue
		}
		if math.IsNaN(row.Median) {
			continue
		}
		if prev, dup := p.owners[key]; dup {
			log.Printf("warning: %s and %s both map to %s/%s; using %s", prev, row.Name, key.Sequence, key.Variant, row.Name)
			p.Duplicates = append(p.Duplicates, Duplicate{Key: key, Previous: prev, Name: row.Name})
		}
		p.values[key] = row.Median
		p.owners[key] = row.Name
		p.variants[key.Variant] = true
		if !seen[key.Sequence] {
			seen[key.Sequence] = true
			p.sequences = append(p.sequences, key.Sequence)
		}
	}
	sort.Strings(p.sequences)
	return p
}

// Sequences returns the row keys in sorted order.
func (p *Table) Sequences() []string {
	return append([]string(nil), p.sequences...)
}

// Variants returns the column keys in sorted order.
func (p *Table) Variants() []string {
	vs := make([]string, 0, len(p.variants))
	for v := range p.variants {
		vs = append(vs, v)
	}
	sort.Strings(vs)
	return vs
}

func (p *Table) HasVariant(v string) bool {
	return p.variants[v]
}

// Value returns the median RMSE for a cell, or false if that pair was never
// observed.
func (p *Table) Value(sequence, v string) (float64, bool) {
	val, ok := p.values[variant.Key{Sequence: sequence, Variant: v}]
	return val, ok
}
