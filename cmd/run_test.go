package cmd

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/signalnine/rmsedash/internal/config"
	"github.com/signalnine/rmsedash/internal/result"
)

func TestApplyOverrides(t *testing.T) {
	tests := []struct {
		name                    string
		baseDir, csv, outputDir string
		want                    config.Results
		wantBase                string
	}{
		{"no overrides", "", "", "", config.Results{CSV: "m3ed_rmse.csv", OutputDir: "rmse_tables"}, "m3ed_results"},
		{"all overrides", "/data", "/tmp/x.csv", "/tmp/html", config.Results{CSV: "/tmp/x.csv", OutputDir: "/tmp/html"}, "/data"},
		{"csv only", "", "x.csv", "", config.Results{CSV: "x.csv", OutputDir: "rmse_tables"}, "m3ed_results"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			applyOverrides(cfg, tt.baseDir, tt.csv, tt.outputDir)
			if cfg.Results != tt.want || cfg.Extract.BaseDir != tt.wantBase {
				t.Errorf("got %+v base=%q, want %+v base=%q", cfg.Results, cfg.Extract.BaseDir, tt.want, tt.wantBase)
			}
		})
	}
}

func TestCheckFormat(t *testing.T) {
	for _, f := range []string{"none", "table", "markdown"} {
		if err := checkFormat(f); err != nil {
			t.Errorf("checkFormat(%q): %v", f, err)
		}
	}
	if err := checkFormat("json"); err == nil {
		t.Error("expected error for json")
	}
}

func TestRowProblems(t *testing.T) {
	tests := []struct {
		name string
		row  result.SummaryRow
		want int
	}{
		{"consistent", result.Summarize("a", []float64{1, 2, 3}), 0},
		{"wrong count", result.SummaryRow{Name: "b", NumRuns: 3, Runs: []float64{1}, Median: 1, Last: 1}, 1},
		{"wrong last and median", result.SummaryRow{Name: "c", NumRuns: 2, Runs: []float64{1, 3}, Median: 1, Last: 1}, 2},
		{"no runs", result.SummaryRow{Name: "d", Median: math.NaN()}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rowProblems(tt.row); len(got) != tt.want {
				t.Errorf("rowProblems = %v, want %d problems", got, tt.want)
			}
		})
	}
}

func writeResults(t *testing.T, base, name, content string) {
	t.Helper()
	dir := filepath.Join(base, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "results.txt"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRunPipeline(t *testing.T) {
	base := t.TempDir()
	writeResults(t, base, "spot_seq1_base", "rmse 0.5200\nrmse 0.4800\n")
	writeResults(t, base, "spot_seq1_daac_rgd_inv", "rmse 0.4000\n")
	work := t.TempDir()
	csvPath := filepath.Join(work, "rmse.csv")
	outDir := filepath.Join(work, "tables")

	out, err := execute(t, "run", "--base-dir", base, "--csv", csvPath, "--output-dir", outDir, "--format", "table")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	for _, want := range []string{"Saved 2 experiments", "baseline_vs_rgd.html", "0.4000 (-20.0%) *", "file://"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if _, err := os.Stat(filepath.Join(outDir, "index.html")); err != nil {
		t.Errorf("index not written: %v", err)
	}

	out, err = execute(t, "validate", csvPath)
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "2 experiments, 1 sequences, 2 variants") {
		t.Errorf("unexpected validate output:\n%s", out)
	}
}

func TestRunEmptyResultsDir(t *testing.T) {
	work := t.TempDir()
	out, err := execute(t, "run",
		"--base-dir", filepath.Join(work, "missing"),
		"--csv", filepath.Join(work, "rmse.csv"),
		"--output-dir", filepath.Join(work, "tables"))
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Saved 0 experiments") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestExplicitMissingConfig(t *testing.T) {
	if _, err := execute(t, "list", "--config", filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for an explicit config that does not exist")
	}
}

func TestList(t *testing.T) {
	out, err := execute(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	first := strings.Index(out, "_daac_depth_opt_log_mahalanobis_w50")
	last := strings.Index(out, "_base")
	if first < 0 || last < 0 || first > last {
		t.Errorf("markers should be listed longest first:\n%s", out)
	}
	if !strings.Contains(out, "Baseline vs All Variants -> baseline_vs_all.html") {
		t.Errorf("missing group:\n%s", out)
	}
}
