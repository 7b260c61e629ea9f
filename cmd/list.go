package cmd

import (
	"fmt"
	"strings"

	"github.com/signalnine/rmsedash/internal/variant"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List variant markers and comparison groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Variant markers (match order):")
			for _, m := range variant.NewMatcher(cfg.Extract.DirPrefix, cfg.VariantMarkers).Markers() {
				fmt.Fprintf(w, "  - %s\n", m)
			}
			fmt.Fprintf(w, "\nComparison groups (outlier threshold %.1f):\n", cfg.OutlierThreshold)
			for _, g := range cfg.Groups {
				fmt.Fprintf(w, "  - %s -> %s [%s]\n", g.Title, g.Filename, strings.Join(g.Columns, ", "))
			}
			return nil
		},
	}
}
