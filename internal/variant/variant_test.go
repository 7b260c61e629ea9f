package variant_test

import (
	"testing"

	"github.com/signalnine/rmsedash/internal/config"
	"github.com/signalnine/rmsedash/internal/variant"
)

func TestParse(t *testing.T) {
	m := variant.NewMatcher("spot_", config.Default().VariantMarkers)
	tests := []struct {
		name    string
		input   string
		wantSeq string
		wantVar string
		wantOK  bool
	}{
		{"base", "spot_seq1_base", "seq1", "base", true},
		{"rgd", "spot_car_urban_day_daac_rgd_inv", "car_urban_day", "daac_rgd_inv", true},
		{"log weight", "spot_seq_daac_depth_opt_log_w100", "seq", "daac_depth_opt_log_w100", true},
		{"w1000 not w100", "spot_seq_daac_depth_opt_w1000", "seq", "daac_depth_opt_w1000", true},
		{"mahalanobis", "spot_seq_daac_depth_opt_mahalanobis_w100", "seq", "daac_depth_opt_mahalanobis_w100", true},
		{"no prefix", "seq9_base", "seq9", "base", true},
		{"unknown suffix", "spot_seq_experimental", "", "", false},
		{"marker only", "_base", "", "", false},
		{"prefix and marker only", "spot__base", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := m.Parse(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if key.Sequence != tt.wantSeq || key.Variant != tt.wantVar {
				t.Errorf("Parse(%q) = %+v, want {%s %s}", tt.input, key, tt.wantSeq, tt.wantVar)
			}
		})
	}
}

func TestParsePrefersLongestMarker(t *testing.T) {
	orders := [][]string{
		{"_daac_depth_opt", "_daac_depth_opt_w100"},
		{"_daac_depth_opt_w100", "_daac_depth_opt"},
	}
	for _, markers := range orders {
		m := variant.NewMatcher("", markers)
		key, ok := m.Parse("seq_daac_depth_opt_w100")
		if !ok || key.Variant != "daac_depth_opt_w100" || key.Sequence != "seq" {
			t.Errorf("markers %v: got %+v ok=%v", markers, key, ok)
		}
		key, ok = m.Parse("seq_daac_depth_opt")
		if !ok || key.Variant != "daac_depth_opt" {
			t.Errorf("markers %v: short name got %+v ok=%v", markers, key, ok)
		}
	}
}

func TestMarkersOrder(t *testing.T) {
	m := variant.NewMatcher("", []string{"_b", "_base", "_a"})
	got := m.Markers()
	want := []string{"_base", "_b", "_a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestLabel(t *testing.T) {
	tests := map[string]string{
		"base":                               "Base",
		"daac_depth_opt_w100":                "Depth Opt W100",
		"daac_rgd_inv":                       "Rgd Inv",
		"daac_depth_opt_log_mahalanobis_w30": "Depth Opt Log Mahalanobis W30",
		"daac_élan_w100":                     "Élan W100",
		"über_ÄBC":                           "Über Äbc",
	}
	for in, want := range tests {
		if got := variant.Label(in); got != want {
			t.Errorf("Label(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSuggest(t *testing.T) {
	m := variant.NewMatcher("spot_", config.Default().VariantMarkers)
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"spot_seq1_daac_rgd_invv", "_daac_rgd_inv", true},
		{"spot_seq1_bsae", "_base", true},
		{"spot_seq1_daac_depth_opt_w10", "_daac_depth_opt_w100", true},
		{"spot_seq1_experimental", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := m.Suggest(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Suggest(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
