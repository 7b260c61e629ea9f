package cmd

import (
	"fmt"
	"log"
	"math"

	"github.com/signalnine/rmsedash/internal/pivot"
	"github.com/signalnine/rmsedash/internal/result"
	"github.com/signalnine/rmsedash/internal/variant"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [csv]",
		Short: "Check an RMSE CSV against the configured variants and groups",
		Long:  "Read the results CSV and report rows whose statistics disagree with their runs, experiment names that match no variant marker, duplicate sequence/variant pairs, and group columns with no data.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				cfg.Results.CSV = args[0]
			}
			table, err := result.ReadCSV(cfg.Results.CSV)
			if err != nil {
				return err
			}

			problems := 0
			for _, row := range table.Rows {
				for _, msg := range rowProblems(row) {
					log.Printf("%s: %s", row.Name, msg)
					problems++
				}
			}

			m := variant.NewMatcher(cfg.Extract.DirPrefix, cfg.VariantMarkers)
			p := pivot.Build(table, m)
			for _, name := range p.Unassigned {
				if marker, ok := m.Suggest(name); ok {
					log.Printf("%s: matches no variant marker (did you mean %s?)", name, marker)
					continue
				}
				log.Printf("%s: matches no variant marker", name)
			}
			problems += len(p.Duplicates)

			for _, g := range cfg.Groups {
				var missing []string
				for _, col := range g.Columns {
					if !p.HasVariant(col) {
						missing = append(missing, col)
					}
				}
				if len(missing) == len(g.Columns) {
					log.Printf("group %q: no data, it will be skipped", g.Title)
				} else if len(missing) > 0 {
					log.Printf("group %q: no data for %v", g.Title, missing)
				}
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%d experiments, %d sequences, %d variants\n", len(table.Rows), len(p.Sequences()), len(p.Variants()))
			if problems > 0 {
				return fmt.Errorf("%d problems found in %s", problems, cfg.Results.CSV)
			}
			fmt.Fprintln(w, "OK")
			return nil
		},
	}
}

// rowProblems checks a row's summary columns against its run columns.
func rowProblems(row result.SummaryRow) []string {
	var msgs []string
	if row.NumRuns != len(row.Runs) {
		msgs = append(msgs, fmt.Sprintf("num_runs is %d but %d run values present", row.NumRuns, len(row.Runs)))
	}
	if len(row.Runs) == 0 {
		return msgs
	}
	if last := row.Runs[len(row.Runs)-1]; !math.IsNaN(row.Last) && math.Abs(row.Last-last) > 1e-9 {
		msgs = append(msgs, fmt.Sprintf("rmse_last is %g but last run is %g", row.Last, last))
	}
	if med := result.Median(row.Runs); math.Abs(row.Median-med) > 1e-9 {
		msgs = append(msgs, fmt.Sprintf("rmse_median is %g but median of runs is %g", row.Median, med))
	}
	return msgs
}
