package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/signalnine/rmsedash/internal/config"
	"github.com/signalnine/rmsedash/internal/report"
	"github.com/spf13/cobra"
)

var flagFormat string

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [csv]",
		Short: "Generate HTML comparison tables from the RMSE CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(flagFormat); err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				cfg.Results.CSV = args[0]
			}
			return generate(cfg, cmd)
		},
	}
	cmd.Flags().StringVar(&flagFormat, "format", "none", "also print each table to stdout (none, table, markdown)")
	return cmd
}

func generate(cfg *config.Config, cmd *cobra.Command) error {
	if _, err := report.Generate(cfg, flagFormat, cmd.OutOrStdout()); err != nil {
		return err
	}
	index, err := filepath.Abs(filepath.Join(cfg.Results.OutputDir, config.IndexFilename))
	if err != nil {
		return fmt.Errorf("resolving index path: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "To view, open: file://%s\n", index)
	return nil
}
