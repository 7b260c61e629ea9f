// Package extract scans experiment directories for RMSE values reported in
// free-text result files.
package extract

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/signalnine/rmsedash/internal/result"
)

var (
	// ErrMissingInput means the experiment directory has no results file.
	ErrMissingInput = errors.New("results file not found")
	// ErrNoObservations means the results file contains no RMSE values.
	ErrNoObservations = errors.New("no RMSE values found")
)

// rmsePattern matches any "rmse <number>" occurrence regardless of context,
// so result files must not contain other rmse-like text.
var rmsePattern = regexp.MustCompile(`(?i)rmse\s+([\d.]+)`)

var (
	found   = color.New(color.FgGreen).SprintFunc()
	missing = color.New(color.FgRed).SprintFunc()
)

type Options struct {
	BaseDir     string
	DirPrefix   string
	ResultsFile string
}

// ParseFile returns every RMSE value in the file, in document order.
func ParseFile(path string) ([]float64, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrMissingInput
	}
	if err != nil {
		return nil, fmt.Errorf("reading results: %w", err)
	}
	values := ParseText(string(data))
	if len(values) == 0 {
		return nil, ErrNoObservations
	}
	return values, nil
}

// ParseText extracts RMSE values from text. A sentence-ending period after
// the number is ignored; captures that are still not numbers, such as
// "1.2.3", are skipped. Values too large for a float64 are kept as +Inf.
func ParseText(text string) []float64 {
	var values []float64
	for _, m := range rmsePattern.FindAllStringSubmatch(text, -1) {
		v, err := strconv.ParseFloat(strings.TrimRight(m[1], "."), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			continue
		}
		values = append(values, v)
	}
	return values
}

// ExperimentDirs lists the immediate subdirectories of baseDir whose names
// start with prefix, sorted by name. A missing baseDir yields no directories.
func ExperimentDirs(baseDir, prefix string) ([]string, error) {
	entries, err := os.ReadDir(baseDir)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning: results directory %s does not exist", baseDir)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading results dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		// Stat follows symlinked experiment directories.
		info, err := os.Stat(filepath.Join(baseDir, e.Name()))
		if err != nil {
			log.Printf("warning: skipping %s: %v", e.Name(), err)
			continue
		}
		if !info.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Scan builds a result table from every experiment directory under
// opts.BaseDir, writing one progress line per experiment to w. Experiments
// without a results file or without RMSE values are skipped.
func Scan(opts Options, w io.Writer) (*result.Table, error) {
	dirs, err := ExperimentDirs(opts.BaseDir, opts.DirPrefix)
	if err != nil {
		return nil, err
	}
	table := &result.Table{}
	for _, name := range dirs {
		values, err := ParseFile(filepath.Join(opts.BaseDir, name, opts.ResultsFile))
		switch {
		case errors.Is(err, ErrMissingInput), errors.Is(err, ErrNoObservations):
			fmt.Fprintf(w, "%s %s: No RMSE data found\n", missing("✗"), name)
			continue
		case err != nil:
			return nil, fmt.Errorf("experiment %s: %w", name, err)
		}
		row := result.Summarize(name, values)
		table.Rows = append(table.Rows, row)
		fmt.Fprintf(w, "%s %s: %d runs, median=%.4f\n", found("✓"), name, row.NumRuns, row.Median)
	}
	return table, nil
}

// Run scans opts.BaseDir and writes the resulting table to csvPath, replacing
// any previous file.
func Run(opts Options, csvPath string, w io.Writer) (*result.Table, error) {
	fmt.Fprintf(w, "Scanning %s directory...\n\n", opts.BaseDir)
	table, err := Scan(opts, w)
	if err != nil {
		return nil, err
	}
	if err := result.WriteCSV(csvPath, table); err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "\nSaved %d experiments to %s\n", len(table.Rows), csvPath)
	if len(table.Rows) > 0 {
		fmt.Fprintln(w, "\nExperiments found:")
		for _, name := range table.Names() {
			fmt.Fprintf(w, "  - %s\n", name)
		}
	}
	return table, nil
}
