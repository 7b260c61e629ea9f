package variant

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	lev "github.com/agnivade/levenshtein"
)

// maxSuggestDistance bounds how far a name's tail may be from a marker for
// Suggest to offer it.
const maxSuggestDistance = 2

// Key splits an experiment name into the sequence it ran on and the variant
// it tested.
type Key struct {
	Sequence string
	Variant  string
}

// Matcher resolves experiment names against a list of variant suffix
// markers such as "_daac_rgd_inv".
type Matcher struct {
	prefix  string
	markers []string
}

// NewMatcher orders markers longest first so a marker is never shadowed by
// one of its own suffixes. Markers of equal length keep their given order.
// prefix, the experiment directory prefix, is stripped from sequences.
func NewMatcher(prefix string, markers []string) *Matcher {
	m := &Matcher{prefix: prefix, markers: append([]string(nil), markers...)}
	sort.SliceStable(m.markers, func(i, j int) bool {
		return len(m.markers[i]) > len(m.markers[j])
	})
	return m
}

// Markers returns the markers in the order they are tried.
func (m *Matcher) Markers() []string {
	return append([]string(nil), m.markers...)
}

// Parse returns the key for name. ok is false when no marker matches or the
// marker leaves an empty sequence.
func (m *Matcher) Parse(name string) (Key, bool) {
	for _, marker := range m.markers {
		seq, found := strings.CutSuffix(name, marker)
		if !found {
			continue
		}
		seq = strings.TrimPrefix(seq, m.prefix)
		if seq == "" {
			return Key{}, false
		}
		return Key{Sequence: seq, Variant: strings.TrimPrefix(marker, "_")}, true
	}
	return Key{}, false
}

// Suggest returns the marker closest to the end of an unassigned name, for
// catching typos such as "_daac_rgd_invv". Ties go to the marker tried first.
func (m *Matcher) Suggest(name string) (string, bool) {
	best, bestDist := "", maxSuggestDistance+1
	for _, marker := range m.markers {
		tail := name
		if len(name) > len(marker) {
			tail = name[len(name)-len(marker):]
		}
		if d := lev.ComputeDistance(tail, marker); d < bestDist {
			best, bestDist = marker, d
		}
	}
	return best, best != ""
}

// Label turns a variant into a column heading: "daac_depth_opt_w100"
// becomes "Depth Opt W100".
func Label(variant string) string {
	s := strings.ReplaceAll(variant, "_", " ")
	s = strings.ReplaceAll(s, "daac ", "")
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}
