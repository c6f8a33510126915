package commands

import (
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/bonnetkb/bonnet/errors"
	"github.com/bonnetkb/bonnet/kb"
)

// FactCmd represents the fact command
var FactCmd = &cobra.Command{
	Use:   "fact [text]",
	Short: "Attach a FACT attribute to a topic",
	Long: `Attach a FACT attribute to a topic.

Text in "subject=value" form is split on the first '='; plain text gets
the fallback subject "fact". The topic is resolved from the --about token
by identifier or text search.

Examples:
  bonnet fact --about S1 "diet=fish and plankton"
  bonnet fact --about sharks "apex predator"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFact,
}

// TaskCmd represents the task command
var TaskCmd = &cobra.Command{
	Use:   "task [text]",
	Short: "Attach a TASK attribute to a topic",
	Long: `Attach a TASK attribute to a topic, optionally with a due date.

Text in "subject=value" form is split on the first '='; plain text gets
the fallback subject "task". The due date uses YYYY-MM-DD.

Examples:
  bonnet task --about S1 "feeding=restock tank" --date 2026-09-01
  bonnet task --about S1 "clean filter"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTask,
}

// RuleCmd represents the rule command
var RuleCmd = &cobra.Command{
	Use:   "rule [text]",
	Short: "Attach a RULE attribute to a topic",
	Long: `Attach a RULE attribute to a topic.

Text in "subject=value" form is split on the first '='; plain text gets
the fallback subject "rule".

Examples:
  bonnet rule --about S1 "handling=never hand-feed"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRule,
}

// RefCmd represents the ref command
var RefCmd = &cobra.Command{
	Use:   "ref [text]",
	Short: "Attach a REF attribute to a topic",
	Long: `Attach a REF attribute to a topic.

The text becomes the reference subject and --id the referenced
identifier, stored as the attribute value.

Examples:
  bonnet ref --about S1 "field guide" --id ISBN-978-0
  bonnet ref --about S1 "related species" --id T42`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRef,
}

var (
	aboutFlag    string
	attrIDFlag   string
	taskDateFlag string
	refIDFlag    string
)

func init() {
	for _, cmd := range []*cobra.Command{FactCmd, TaskCmd, RuleCmd, RefCmd} {
		cmd.Flags().StringVar(&aboutFlag, "about", "", "Topic the attribute describes (identifier or search text)")
		cmd.MarkFlagRequired("about")
		addResolutionFlags(cmd)
	}
	FactCmd.Flags().StringVar(&attrIDFlag, "id", "", "Explicit attribute identifier (generated when omitted)")
	TaskCmd.Flags().StringVar(&taskDateFlag, "date", "", "Due date in YYYY-MM-DD form")
	RefCmd.Flags().StringVar(&refIDFlag, "id", "", "Identifier of the referenced resource")
}

func runFact(cmd *cobra.Command, args []string) error {
	subject, value := parseSubjectValue(strings.Join(args, " "), "fact")
	attr, err := storeAttribute(cmd, kb.NewAttribute{
		ID:      attrIDFlag,
		Type:    string(kb.AttributeFact),
		Subject: subject,
		Value:   value,
	})
	if err != nil {
		return err
	}
	pterm.Success.Printfln("Stored fact %q for topic %s [%s]", subject+"="+value, attr.EntityID, attr.ID)
	return nil
}

func runTask(cmd *cobra.Command, args []string) error {
	subject, value := parseSubjectValue(strings.Join(args, " "), "task")

	var dueDate *time.Time
	if taskDateFlag != "" {
		parsed, err := time.Parse("2006-01-02", taskDateFlag)
		if err != nil {
			return errors.Newf("invalid due date %q, expected YYYY-MM-DD", taskDateFlag)
		}
		dueDate = &parsed
	}

	attr, err := storeAttribute(cmd, kb.NewAttribute{
		Type:    string(kb.AttributeTask),
		Subject: subject,
		Value:   value,
		DueDate: dueDate,
	})
	if err != nil {
		return err
	}
	if dueDate != nil {
		pterm.Success.Printfln("Stored task %q for topic %s, due %s [%s]", subject+"="+value, attr.EntityID, taskDateFlag, attr.ID)
	} else {
		pterm.Success.Printfln("Stored task %q for topic %s [%s]", subject+"="+value, attr.EntityID, attr.ID)
	}
	return nil
}

func runRule(cmd *cobra.Command, args []string) error {
	subject, value := parseSubjectValue(strings.Join(args, " "), "rule")
	attr, err := storeAttribute(cmd, kb.NewAttribute{
		Type:    string(kb.AttributeRule),
		Subject: subject,
		Value:   value,
	})
	if err != nil {
		return err
	}
	pterm.Success.Printfln("Stored rule %q for topic %s [%s]", subject+"="+value, attr.EntityID, attr.ID)
	return nil
}

func runRef(cmd *cobra.Command, args []string) error {
	if refIDFlag == "" {
		return errors.New("ref requires --id naming the referenced resource")
	}
	subject := strings.Join(args, " ")
	attr, err := storeAttribute(cmd, kb.NewAttribute{
		Type:    string(kb.AttributeRef),
		Subject: subject,
		Value:   refIDFlag,
	})
	if err != nil {
		return err
	}
	pterm.Success.Printfln("Stored reference %q with ID %s for topic %s [%s]", subject, refIDFlag, attr.EntityID, attr.ID)
	return nil
}

// storeAttribute resolves --about to an entity and creates the attribute
// against it.
func storeAttribute(cmd *cobra.Command, attr kb.NewAttribute) (*kb.Attribute, error) {
	database, store, err := openStore()
	if err != nil {
		return nil, err
	}
	defer database.Close()

	entity, err := resolveEntity(cmd, store, aboutFlag)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve topic %q", aboutFlag)
	}

	attr.EntityID = entity.ID
	created, err := store.CreateAttribute(attr)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store %s attribute", strings.ToLower(attr.Type))
	}
	return created, nil
}

// parseSubjectValue splits "subject=value" text on the first '='. Text
// without '=' keeps the fallback subject and becomes the value whole.
func parseSubjectValue(text, fallback string) (string, string) {
	if subject, value, found := strings.Cut(text, "="); found {
		return strings.TrimSpace(subject), strings.TrimSpace(value)
	}
	return fallback, strings.TrimSpace(text)
}
