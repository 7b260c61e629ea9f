package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultOutlierThreshold = 10.0

type Config struct {
	Extract          Extract  `yaml:"extract"`
	Results          Results  `yaml:"results"`
	VariantMarkers   []string `yaml:"variant_markers"`
	OutlierThreshold float64  `yaml:"outlier_threshold"`
	Groups           []Group  `yaml:"groups"`
}

type Extract struct {
	BaseDir     string `yaml:"base_dir"`
	DirPrefix   string `yaml:"dir_prefix"`
	ResultsFile string `yaml:"results_file"`
}

type Results struct {
	CSV       string `yaml:"csv"`
	OutputDir string `yaml:"output_dir"`
}

// Group is one comparison table. Columns are variant labels; "base" marks the
// baseline every other column is compared against.
type Group struct {
	Title       string   `yaml:"title"`
	Columns     []string `yaml:"columns"`
	Filename    string   `yaml:"filename"`
	Description string   `yaml:"description"`
}

// Default returns the built-in configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Extract: Extract{
			BaseDir:     "m3ed_results",
			DirPrefix:   "spot_",
			ResultsFile: "results.txt",
		},
		Results: Results{
			CSV:       "m3ed_rmse.csv",
			OutputDir: "rmse_tables",
		},
		VariantMarkers: []string{
			"_daac_depth_opt_log_mahalanobis_w50",
			"_daac_depth_opt_log_mahalanobis_w30",
			"_daac_depth_opt_mahalanobis_w1000",
			"_daac_depth_opt_mahalanobis_w500",
			"_daac_depth_opt_mahalanobis_w100",
			"_daac_depth_opt_log_w100",
			"_daac_depth_opt_w1000",
			"_daac_depth_opt_w500",
			"_daac_depth_opt_w100",
			"_daac_rgd_inv",
			"_daac_rgd_metric",
			"_base",
		},
		OutlierThreshold: DefaultOutlierThreshold,
		Groups: []Group{
			{
				Title:       "Baseline vs Depth Optimization (and Log Opt)",
				Columns:     []string{"base", "daac_depth_opt_w100", "daac_depth_opt_w500", "daac_depth_opt_w1000", "daac_depth_opt_log_w100"},
				Filename:    "baseline_vs_depth_opt.html",
				Description: "Comparison of baseline with depth optimization variants (w100, w500, w1000) and log optimization.",
			},
			{
				Title:       "Baseline vs RGD (Inverse + Metric)",
				Columns:     []string{"base", "daac_rgd_inv", "daac_rgd_metric"},
				Filename:    "baseline_vs_rgd.html",
				Description: "Comparison of baseline with inverse depth RGD and metric RGD variants.",
			},
			{
				Title: "Baseline vs Mahalanobis Optimization",
				Columns: []string{"base", "daac_depth_opt_mahalanobis_w100", "daac_depth_opt_mahalanobis_w500",
					"daac_depth_opt_mahalanobis_w1000", "daac_depth_opt_log_mahalanobis_w30"},
				Filename:    "baseline_vs_mahal.html",
				Description: "Comparison of baseline with Mahalanobis depth optimization variants.",
			},
			{
				Title: "Depth Opt vs Mahalanobis Opt",
				Columns: []string{"base", "daac_depth_opt_w100", "daac_depth_opt_mahalanobis_w100",
					"daac_depth_opt_w500", "daac_depth_opt_mahalanobis_w500",
					"daac_depth_opt_w1000", "daac_depth_opt_mahalanobis_w1000"},
				Filename:    "depth_opt_vs_mahal.html",
				Description: "Side-by-side comparison of regular depth optimization vs Mahalanobis optimization.",
			},
			{
				Title: "Baseline vs All Variants",
				Columns: []string{"base", "daac_depth_opt_w100", "daac_depth_opt_w500", "daac_depth_opt_w1000",
					"daac_depth_opt_log_w100", "daac_depth_opt_mahalanobis_w100",
					"daac_depth_opt_mahalanobis_w500", "daac_depth_opt_mahalanobis_w1000",
					"daac_depth_opt_log_mahalanobis_w30", "daac_rgd_inv", "daac_rgd_metric"},
				Filename:    "baseline_vs_all.html",
				Description: "Comparison of baseline with all available variants.",
			},
		},
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values; a list present in the file replaces the default list.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to Default when path does
// not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
		return cfg, validate(cfg)
	}
	return cfg, err
}

func validate(cfg *Config) error {
	if cfg.Extract.BaseDir == "" {
		return fmt.Errorf("extract.base_dir is required")
	}
	if cfg.Extract.ResultsFile == "" {
		cfg.Extract.ResultsFile = "results.txt"
	}
	if cfg.Results.CSV == "" {
		return fmt.Errorf("results.csv is required")
	}
	if cfg.Results.OutputDir == "" {
		return fmt.Errorf("results.output_dir is required")
	}
	if cfg.OutlierThreshold <= 0 {
		return fmt.Errorf("outlier_threshold must be positive")
	}
	if len(cfg.VariantMarkers) == 0 {
		return fmt.Errorf("no variant markers defined")
	}
	for i, m := range cfg.VariantMarkers {
		if !strings.HasPrefix(m, "_") || len(m) < 2 {
			return fmt.Errorf("variant marker %d (%q): must start with '_' and name a variant", i, m)
		}
	}
	seen := make(map[string]bool)
	for i, g := range cfg.Groups {
		if g.Title == "" {
			return fmt.Errorf("group %d: title is required", i)
		}
		if len(g.Columns) == 0 {
			return fmt.Errorf("group %q: columns are required", g.Title)
		}
		if g.Filename == "" {
			return fmt.Errorf("group %q: filename is required", g.Title)
		}
		if g.Filename == IndexFilename {
			return fmt.Errorf("group %q: filename %s is reserved for the index", g.Title, IndexFilename)
		}
		if seen[g.Filename] {
			return fmt.Errorf("group %q: duplicate filename %s", g.Title, g.Filename)
		}
		seen[g.Filename] = true
	}
	return nil
}

const IndexFilename = "index.html"
