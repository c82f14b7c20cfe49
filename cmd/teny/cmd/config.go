package cmd

import (
	"fmt"
	"sort"

	"github.com/bastiangx/teny/internal/utils"
	"github.com/bastiangx/teny/pkg/config"
	"github.com/spf13/cobra"
)

var (
	flagRebuild  bool
	flagRuntime  bool
	flagMaxLimit int
	flagMinPre   int
	flagMaxText  int
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the active config and data locations, or rewrite the config with defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if flagRebuild {
			if err := config.RebuildConfigFile(); err != nil {
				return err
			}
			path, _ := config.GetDefaultConfigPath()
			fmt.Fprintf(out, "default config written to %s\n", path)
			return nil
		}
		if updated, err := updateLimits(cmd); updated || err != nil {
			return err
		}

		fmt.Fprintf(out, "Config:      %s\n", config.GetActiveConfigPath(configPath))
		fmt.Fprintf(out, "Words:       %s\n", orNone(cfg.Lexicon.WordListPath))
		fmt.Fprintf(out, "Definitions: %s\n", orNone(cfg.Lexicon.DefinitionsPath))
		fmt.Fprintf(out, "Lexicon DB:  %s\n", orNone(cfg.Lexicon.SnapshotPath))
		fmt.Fprintf(out, "Model:       %s\n", orNone(cfg.Model.SnapshotPath))
		fmt.Fprintf(out, "Model DB:    %s\n", orNone(cfg.Model.DBPath))
		fmt.Fprintf(out, "Redis:       %s\n", orNone(cfg.Lexicon.RedisAddr))
		fmt.Fprintf(out, "HTTP:        %s\n", cfg.Server.HTTPAddr)

		pr, err := utils.NewPathResolver()
		if err != nil {
			return err
		}
		dataDir := pr.GetDataDir("data")
		fmt.Fprintf(out, "Data dir:    %s (%d files)\n", dataDir, len(utils.DataFiles(dataDir)))

		if flagRuntime {
			info := pr.GetRuntimeInfo()
			keys := make([]string, 0, len(info))
			for k := range info {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintln(out)
			for _, k := range keys {
				fmt.Fprintf(out, "%s: %s\n", k, info[k])
			}
		}
		return nil
	},
}

// updateLimits saves the server limits given as flags into the active config file.
func updateLimits(cmd *cobra.Command) (bool, error) {
	pick := func(name string, v *int) *int {
		if cmd.Flags().Changed(name) {
			return v
		}
		return nil
	}
	maxLimit := pick("max-limit", &flagMaxLimit)
	minPrefix := pick("min-prefix", &flagMinPre)
	maxText := pick("max-text", &flagMaxText)
	if maxLimit == nil && minPrefix == nil && maxText == nil {
		return false, nil
	}
	path := configPath
	if path == "" {
		var err error
		if path, err = config.GetDefaultConfigPath(); err != nil {
			return true, err
		}
	}
	if err := cfg.Update(path, maxLimit, minPrefix, maxText); err != nil {
		return true, fmt.Errorf("update config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "server limits saved to %s: max_limit=%d min_prefix=%d max_text_length=%d\n",
		path, cfg.Server.MaxLimit, cfg.Server.MinPrefix, cfg.Server.MaxTextLength)
	return true, nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func init() {
	configCmd.Flags().BoolVar(&flagRebuild, "rebuild", false, "overwrite the default config file with defaults")
	configCmd.Flags().BoolVar(&flagRuntime, "runtime", false, "also print executable, home and config dirs")
	configCmd.Flags().IntVar(&flagMaxLimit, "max-limit", 0, "save a new [server] max_limit")
	configCmd.Flags().IntVar(&flagMinPre, "min-prefix", 0, "save a new [server] min_prefix")
	configCmd.Flags().IntVar(&flagMaxText, "max-text", 0, "save a new [server] max_text_length")
}
