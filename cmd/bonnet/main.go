package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bonnetkb/bonnet/cmd/bonnet/commands"
	"github.com/bonnetkb/bonnet/config"
	"github.com/bonnetkb/bonnet/logger"
)

var rootCmd = &cobra.Command{
	Use:   "bonnet",
	Short: "bonnet - local knowledge base",
	Long: `bonnet - Local knowledge base management.

Store topics (entities), attach typed attributes (facts, references, tasks,
rules), link topics via relationships, and reconstruct complete context
trees for downstream consumption.

Available commands:
  topic    - Store a topic (entity)
  fact     - Attach a FACT attribute to a topic
  task     - Attach a TASK attribute with a due date
  rule     - Attach a RULE attribute
  ref      - Attach a REF attribute
  link     - Create a relationship between two topics
  search   - Search topics by identifier or text
  context  - Build and render a context tree
  db       - Manage database operations
  config   - Show configuration

Examples:
  bonnet topic --id S1 "Sharks"
  bonnet fact --about S1 "diet=fish and plankton"
  bonnet link S1 T1 --relation has_subcategory
  bonnet context S1`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		if err := logger.Initialize(cfg.Log.JSON, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if logger.ShouldLogTrace(verbosity) {
			logger.Logger.Debugw("Effective configuration",
				"database", cfg.Database.Path,
				"search_limit", cfg.Search.Limit,
				"search_policy", cfg.Search.Policy,
			)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")

	rootCmd.AddCommand(commands.TopicCmd)
	rootCmd.AddCommand(commands.FactCmd)
	rootCmd.AddCommand(commands.TaskCmd)
	rootCmd.AddCommand(commands.RuleCmd)
	rootCmd.AddCommand(commands.RefCmd)
	rootCmd.AddCommand(commands.LinkCmd)
	rootCmd.AddCommand(commands.SearchCmd)
	rootCmd.AddCommand(commands.ContextCmd)
	rootCmd.AddCommand(commands.DbCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
