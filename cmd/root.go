package cmd

import (
	"fmt"

	"github.com/signalnine/rmsedash/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile       string
	flagBaseDir   string
	flagCSV       string
	flagOutputDir string
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "rmsedash",
		Short:        "RMSE comparison tables for experiment result directories",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "rmsedash.yaml", "config file path (built-in defaults if the default file is absent)")
	root.PersistentFlags().StringVar(&flagBaseDir, "base-dir", "", "override the experiment results directory")
	root.PersistentFlags().StringVar(&flagCSV, "csv", "", "override the results CSV path")
	root.PersistentFlags().StringVar(&flagOutputDir, "output-dir", "", "override the HTML output directory")
	root.AddCommand(newExtractCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newValidateCmd())
	return root
}

// loadConfig reads the config file, falling back to built-in defaults only
// when --config was left at its default, then applies path overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadOrDefault(cfgFile)
	}
	if err != nil {
		return nil, err
	}
	applyOverrides(cfg, flagBaseDir, flagCSV, flagOutputDir)
	return cfg, nil
}

func applyOverrides(cfg *config.Config, baseDir, csv, outputDir string) {
	if baseDir != "" {
		cfg.Extract.BaseDir = baseDir
	}
	if csv != "" {
		cfg.Results.CSV = csv
	}
	if outputDir != "" {
		cfg.Results.OutputDir = outputDir
	}
}

func checkFormat(format string) error {
	switch format {
	case "none", "table", "markdown":
		return nil
	}
	return fmt.Errorf("unknown format %q (want none, table or markdown)", format)
}
