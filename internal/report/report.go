package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/signalnine/rmsedash/internal/config"
	"github.com/signalnine/rmsedash/internal/pivot"
	"github.com/signalnine/rmsedash/internal/result"
	"github.com/signalnine/rmsedash/internal/variant"
)

// Generate reads the results CSV and writes one HTML page per comparison
// group plus an index into cfg.Results.OutputDir. With format "table" or
// "markdown" each group is also printed to w.
func Generate(cfg *config.Config, format string, w io.Writer) ([]IndexEntry, error) {
	table, err := result.ReadCSV(cfg.Results.CSV)
	if err != nil {
		return nil, err
	}
	p := pivot.Build(table, variant.NewMatcher(cfg.Extract.DirPrefix, cfg.VariantMarkers))

	outDir := cfg.Results.OutputDir
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	var entries []IndexEntry
	for _, g := range cfg.Groups {
		gt, err := Compare(p, g, cfg.OutlierThreshold)
		if errors.Is(err, ErrEmptyGroup) {
			log.Printf("warning: no columns available for %s", g.Title)
			continue
		}
		if err != nil {
			return nil, err
		}

		var buf bytes.Buffer
		if err := WriteGroupHTML(&buf, gt); err != nil {
			return nil, fmt.Errorf("rendering %s: %w", g.Filename, err)
		}
		if err := writeFile(filepath.Join(outDir, g.Filename), buf.Bytes(), w); err != nil {
			return nil, err
		}
		entries = append(entries, IndexEntry{Title: g.Title, Filename: g.Filename, Description: g.Description})

		switch format {
		case "table":
			err = writeTable(gt, w)
		case "markdown":
			err = writeMarkdown(gt, w)
		}
		if err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := WriteIndexHTML(&buf, entries); err != nil {
		return nil, fmt.Errorf("rendering index: %w", err)
	}
	if err := writeFile(filepath.Join(outDir, config.IndexFilename), buf.Bytes(), w); err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "\nAll tables generated in %s\n", outDir)
	return entries, nil
}

func writeFile(path string, data []byte, w io.Writer) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(w, "Generated: %s (%s)\n", path, humanize.Bytes(uint64(len(data))))
	return nil
}

// cellText is the plain-text form of a cell: "-" when absent, ">limit" for
// outliers, a trailing "*" on the best value of the row.
func cellText(c Cell, threshold float64) string {
	switch {
	case !c.Present:
		return "-"
	case c.Outlier:
		return fmt.Sprintf(">%.1f", threshold)
	}
	s := fmt.Sprintf("%.4f", c.Value)
	if c.HasPct {
		s += fmt.Sprintf(" (%+.1f%%)", c.Pct)
	}
	if c.Best {
		s += " *"
	}
	return s
}

func summaryText(gt *GroupTable) []string {
	cols := make([]string, len(gt.Summary))
	for i, sc := range gt.Summary {
		if sc.Base || sc.Count == 0 {
			cols[i] = "-"
			continue
		}
		cols[i] = fmt.Sprintf("%+.2f%%", sc.Mean)
	}
	return cols
}

func headers(gt *GroupTable) []string {
	h := []string{"SEQUENCE"}
	for _, c := range gt.Columns {
		h = append(h, strings.ToUpper(variant.Label(c)))
	}
	return h
}

func writeTable(gt *GroupTable, w io.Writer) error {
	fmt.Fprintf(w, "\n%s\n", gt.Group.Title)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers(gt), "\t"))
	fmt.Fprintln(tw, strings.Repeat("-", 80))
	for _, r := range gt.Rows {
		cols := []string{r.Sequence}
		for _, c := range r.Cells {
			cols = append(cols, cellText(c, gt.Threshold))
		}
		fmt.Fprintln(tw, strings.Join(cols, "\t"))
	}
	if len(gt.Summary) > 0 {
		fmt.Fprintln(tw, "AVG % CHANGE\t"+strings.Join(summaryText(gt), "\t"))
	}
	return tw.Flush()
}

func writeMarkdown(gt *GroupTable, w io.Writer) error {
	fmt.Fprintf(w, "\n## %s\n\n", gt.Group.Title)
	h := []string{"Sequence"}
	for _, c := range gt.Columns {
		h = append(h, variant.Label(c))
	}
	fmt.Fprintf(w, "| %s |\n", strings.Join(h, " | "))
	fmt.Fprintf(w, "|%s\n", strings.Repeat("---|", len(h)))
	for _, r := range gt.Rows {
		cols := []string{r.Sequence}
		for _, c := range r.Cells {
			cols = append(cols, cellText(c, gt.Threshold))
		}
		fmt.Fprintf(w, "| %s |\n", strings.Join(cols, " | "))
	}
	if len(gt.Summary) > 0 {
		fmt.Fprintf(w, "| **Avg %% Change vs Base** | %s |\n", strings.Join(summaryText(gt), " | "))
	}
	return nil
}
