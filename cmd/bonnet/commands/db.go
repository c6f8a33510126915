package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/bonnetkb/bonnet/config"
	"github.com/bonnetkb/bonnet/errors"
	"github.com/bonnetkb/bonnet/kb"
	"github.com/bonnetkb/bonnet/logger"
)

// DbCmd represents the db (database) command
var DbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the bonnet database",
	Long: `Manage database operations.

Examples:
  bonnet db migrate                # Apply pending schema migrations
  bonnet db stats                  # Show record counts`,
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE:  runDbMigrate,
}

var dbStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	Long:  "Display topic, attribute, and relationship counts for the configured database.",
	RunE:  runDbStats,
}

func init() {
	DbCmd.AddCommand(dbMigrateCmd)
	DbCmd.AddCommand(dbStatsCmd)
}

func runDbMigrate(cmd *cobra.Command, args []string) error {
	// openDatabase migrates as part of opening.
	database, err := openDatabase("")
	if err != nil {
		return err
	}
	defer database.Close()

	pterm.Success.Println("Database schema is up to date")
	return nil
}

func runDbStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	database, err := openDatabase("")
	if err != nil {
		return err
	}
	defer database.Close()

	store := kb.NewSQLStore(database, logger.Logger)
	stats, err := store.GetStats()
	if err != nil {
		return errors.Wrap(err, "failed to query database stats")
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Database Statistics")
	fmt.Fprintln(cmd.OutOrStdout(), "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintf(cmd.OutOrStdout(), "Database Path: %s\n", cfg.Database.Path)
	fmt.Fprintf(cmd.OutOrStdout(), "Topics:        %d\n", stats.Entities)
	fmt.Fprintf(cmd.OutOrStdout(), "Attributes:    %d\n", stats.Attributes)
	fmt.Fprintf(cmd.OutOrStdout(), "Relationships: %d\n", stats.Edges)
	return nil
}
