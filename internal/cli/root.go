// Package cli defines the cobra command tree for the sgprov CLI.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sightglass/provenance/internal/config"
	"github.com/sightglass/provenance/internal/store"
	"github.com/spf13/cobra"
)

var (
	dbPath     string
	jsonOutput bool
)

// configPath is the path to the config file, settable for testing.
var configPath = config.Path()

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "history.db"
	}
	return filepath.Join(home, ".sightglass", "history.db")
}

// rootCmd is the top-level sgprov command.
var rootCmd = &cobra.Command{
	Use:   "sgprov",
	Short: "Sightglass provenance - inspect and manage artifact lineage",
	Long: `sgprov inspects the provenance records Sightglass attaches to every
artifact it produces. A record describes how an artifact was made - read
from disk, staged from a remote host, computed by a command, or edited by
hand - and can be rendered as a lineage tree or replayed by the application
to regenerate the artifact.

The closed-window history lives in a SQLite database at
~/.sightglass/history.db (configurable via --db or sgprov config db_path).
All output commands support --json for machine-readable output.`,
	Example: `  # Render a provenance record as a lineage tree
  sgprov lineage artifact.prov.json

  # Summarize a record
  sgprov show artifact.prov.json

  # Inspect recently closed windows
  sgprov history --since 7d
  sgprov history clear`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadFrom(configPath)
		if err != nil {
			return
		}
		if cfg.DBPath != "" && !cmd.Flags().Changed("db") {
			dbPath = cfg.DBPath
		}
		if cfg.DefaultFormat == "json" && !cmd.Flags().Changed("json") {
			jsonOutput = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDBPath(), "path to the history database")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
}

// openStore opens the history database at the configured path.
func openStore() (store.Store, error) {
	s, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
