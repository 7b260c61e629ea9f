package cmd

import (
	"fmt"

	"github.com/signalnine/rmsedash/internal/extract"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Extract RMSE values, then generate the comparison tables",
		Args:  cobra.NoArgs,
		RunE:  runPipeline,
	}
	cmd.Flags().StringVar(&flagFormat, "format", "none", "also print each table to stdout (none, table, markdown)")
	return cmd
}

func runPipeline(cmd *cobra.Command, args []string) error {
	if err := checkFormat(flagFormat); err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if _, err := extract.Run(extractOptions(cfg), cfg.Results.CSV, cmd.OutOrStdout()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "\n--- Tables ---")
	return generate(cfg, cmd)
}
