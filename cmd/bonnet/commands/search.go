package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bonnetkb/bonnet/config"
	"github.com/bonnetkb/bonnet/errors"
	"github.com/bonnetkb/bonnet/kb"
	"github.com/bonnetkb/bonnet/logger"
)

// SearchCmd represents the search command
var SearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search topics by identifier or text",
	Long: `Search topics and list the matching candidates.

An exact identifier match (topic or attribute) lists the owning topic
alone; otherwise the query runs against the full-text index over topic
names and attribute text. Candidates are ordered oldest first.

Examples:
  bonnet search S1
  bonnet search "reef shark"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	database, store, err := openStore()
	if err != nil {
		return err
	}
	defer database.Close()

	resolver := kb.NewResolver(store, cfg.Search.Limit, logger.Logger)
	candidates, err := resolver.Search(query)
	if err != nil {
		return errors.Wrapf(err, "search failed for %q", query)
	}

	if len(candidates) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No topics found for query: %s\n", query)
		return nil
	}

	for _, c := range candidates {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", c.ID, c.Name)
	}
	return nil
}
