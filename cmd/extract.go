package cmd

import (
	"github.com/signalnine/rmsedash/internal/config"
	"github.com/signalnine/rmsedash/internal/extract"
	"github.com/spf13/cobra"
)

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract",
		Short: "Scan experiment directories and write the RMSE CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			_, err = extract.Run(extractOptions(cfg), cfg.Results.CSV, cmd.OutOrStdout())
			return err
		},
	}
}

func extractOptions(cfg *config.Config) extract.Options {
	return extract.Options{
		BaseDir:     cfg.Extract.BaseDir,
		DirPrefix:   cfg.Extract.DirPrefix,
		ResultsFile: cfg.Extract.ResultsFile,
	}
}
