package commands

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/bonnetkb/bonnet/errors"
	"github.com/bonnetkb/bonnet/kb"
)

// TopicCmd represents the topic command
var TopicCmd = &cobra.Command{
	Use:   "topic [name]",
	Short: "Store a topic",
	Long: `Store a topic (entity) in the knowledge base.

An explicit identifier can be supplied with --id; otherwise one is
generated. Identifiers are unique across topics and attributes.

Examples:
  bonnet topic "Sharks"
  bonnet topic --id S1 "Sharks"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTopic,
}

var topicIDFlag string

func init() {
	TopicCmd.Flags().StringVar(&topicIDFlag, "id", "", "Explicit topic identifier (generated when omitted)")
}

func runTopic(cmd *cobra.Command, args []string) error {
	name := strings.Join(args, " ")

	database, store, err := openStore()
	if err != nil {
		return err
	}
	defer database.Close()

	entity, err := store.CreateEntity(kb.NewEntity{ID: topicIDFlag, Name: name})
	if err != nil {
		return errors.Wrapf(err, "failed to store topic %q", name)
	}

	pterm.Success.Printfln("Stored topic %q with ID %s", entity.Name, entity.ID)
	return nil
}
