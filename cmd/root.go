package cmd

import (
	"github.com/abhisek/llmfaker/internal/config"
	"github.com/abhisek/llmfaker/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "llmfaker",
	Short: "Fake data values generated by language models",
	Long: "llmfaker resolves field keys such as name.firstName into realistic fake values\n" +
		"generated by a language model, caching each batch and serving every value once.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite event database (overrides LLMFAKER_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (default: llmfaker.yaml in the user config dir)")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads configuration from the --config file, env and defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}

// openStore opens the event database chosen by flags and configuration.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	var configured string
	if cfg, err := loadConfig(cmd); err == nil {
		configured = cfg.DB
	}
	dbPath, err := resolveDBPath(cmd, configured)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}
