package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bonnetkb/bonnet/errors"
	"github.com/bonnetkb/bonnet/graph"
	"github.com/bonnetkb/bonnet/logger"
)

// ContextCmd represents the context command
var ContextCmd = &cobra.Command{
	Use:   "context [token]",
	Short: "Build and render a context tree for a topic",
	Long: `Build the complete context tree for a topic and render it.

The token is resolved by identifier or text search; the tree then
contains the topic, its attributes, and every topic reachable through
relationship edges. Already-expanded topics appear as back-references,
so cyclic links terminate. --depth bounds the traversal (0 = unbounded).

Examples:
  bonnet context S1
  bonnet context sharks --depth 2
  bonnet context S1 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runContext,
}

var (
	contextDepthFlag  int
	contextFormatFlag string
)

func init() {
	ContextCmd.Flags().IntVar(&contextDepthFlag, "depth", 0, "Maximum traversal depth (0 = unbounded)")
	ContextCmd.Flags().StringVar(&contextFormatFlag, "format", "text", "Output format: text, json, or yaml")
	addResolutionFlags(ContextCmd)
}

func runContext(cmd *cobra.Command, args []string) error {
	if contextFormatFlag != "text" && contextFormatFlag != "json" && contextFormatFlag != "yaml" {
		return errors.Newf("unknown format %q (accepted: text, json, yaml)", contextFormatFlag)
	}
	if contextDepthFlag < 0 {
		return errors.Newf("depth must be >= 0, got %d", contextDepthFlag)
	}

	database, store, err := openStore()
	if err != nil {
		return err
	}
	defer database.Close()

	entity, err := resolveEntity(cmd, store, args[0])
	if err != nil {
		return errors.Wrapf(err, "failed to resolve topic %q", args[0])
	}

	builder := graph.NewBuilder(store, logger.Logger)
	tree, err := builder.Build(entity.ID, contextDepthFlag)
	if err != nil {
		return errors.Wrapf(err, "failed to build context for %s", entity.ID)
	}

	var output string
	switch contextFormatFlag {
	case "json":
		output, err = graph.RenderJSON(tree)
	case "yaml":
		output, err = graph.RenderYAML(tree)
	default:
		output = graph.RenderText(tree)
	}
	if err != nil {
		return errors.Wrap(err, "failed to render context tree")
	}

	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
