package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/dutyroster/internal/config"
	"github.com/mmynk/dutyroster/internal/roster"
	"github.com/mmynk/dutyroster/internal/storage"
	"github.com/mmynk/dutyroster/internal/storage/memory"
	"github.com/mmynk/dutyroster/internal/storage/sqlite"
	"github.com/mmynk/dutyroster/pkg/logging"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	dbPath     string
	ephemeral  bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Manage the duty roster",
		Long: `Manage people and teams in the duty roster database and print shift reports.

Available subcommands:
  people - List, add, edit and delete people
  teams  - List, add, edit and delete teams
  export - Write the import/export document
  import - Apply an import/export document
  report - Print the shift report for a set of assignments`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", os.Getenv("CONFIG_PATH"), "path to a YAML config file")
	flags.StringVar(&opts.dbPath, "db", "", "SQLite database file (overrides config)")
	flags.BoolVar(&opts.ephemeral, "ephemeral", false, "keep everything in memory, nothing is written to disk")

	cmd.AddCommand(
		newPeopleCmd(opts),
		newTeamsCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
		newReportCmd(opts),
	)
	return cmd
}

// withRoster opens the configured store, runs fn against a roster loaded from
// it and closes the store.
func (o *rootOptions) withRoster(ctx context.Context, fn func(*roster.Roster) error) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	logging.Setup(cfg.LogLevel)

	var kv storage.KV
	if o.ephemeral {
		kv = memory.New()
	} else {
		dbPath := cfg.DBPath
		if o.dbPath != "" {
			dbPath = o.dbPath
		}
		store, err := sqlite.New(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open roster database: %w", err)
		}
		kv = store
	}
	defer kv.Close()

	return fn(roster.Open(ctx, storage.NewCollections(kv)))
}
