package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/bonnetkb/bonnet/errors"
)

// LinkCmd represents the link command
var LinkCmd = &cobra.Command{
	Use:   "link [from] [to]",
	Short: "Create a relationship between two topics",
	Long: `Create a directed, typed relationship edge between two topics.

Both endpoints are resolved by identifier or text search. The same pair
may be linked under several relations, but only once per relation.

Examples:
  bonnet link S1 T1 --relation has_subcategory
  bonnet link sharks "reef fish" --relation preys_on`,
	Args: cobra.ExactArgs(2),
	RunE: runLink,
}

var linkRelationFlag string

func init() {
	LinkCmd.Flags().StringVar(&linkRelationFlag, "relation", "related_to", "Relation type for the edge")
	addResolutionFlags(LinkCmd)
}

func runLink(cmd *cobra.Command, args []string) error {
	database, store, err := openStore()
	if err != nil {
		return err
	}
	defer database.Close()

	from, err := resolveEntity(cmd, store, args[0])
	if err != nil {
		return errors.Wrapf(err, "failed to resolve topic %q", args[0])
	}
	to, err := resolveEntity(cmd, store, args[1])
	if err != nil {
		return errors.Wrapf(err, "failed to resolve topic %q", args[1])
	}

	edge, err := store.CreateEdge(from.ID, to.ID, linkRelationFlag)
	if err != nil {
		return errors.Wrapf(err, "failed to link %s to %s", from.ID, to.ID)
	}

	pterm.Success.Printfln("Linked %s -[%s]-> %s", edge.From, edge.Relation, edge.To)
	return nil
}
