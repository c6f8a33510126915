package graph

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bonnetkb/bonnet/errors"
	"github.com/bonnetkb/bonnet/kb"
)

// dueDateFormat renders task due dates in the serialized context.
const dueDateFormat = "2006-01-02"

// RenderText serializes a context tree as compact structured text: an entity
// header (id, name), its attributes, then its nested children, preserving
// traversal order. Rendering is pure; it never re-queries the store.
func RenderText(tree *Tree) string {
	var b strings.Builder
	b.WriteString("<context>\n")
	writeNode(&b, tree.Root, 0)
	b.WriteString("</context>")
	return b.String()
}

func writeNode(b *strings.Builder, node *Node, depth int) {
	indent := strings.Repeat("  ", depth)

	fmt.Fprintf(b, "%s%s:%q\n", indent, node.Entity.ID, node.Entity.Name)

	for _, attr := range node.Attributes {
		b.WriteString(indent)
		b.WriteString("  ")
		writeAttribute(b, &attr)
		b.WriteByte('\n')
	}

	for _, child := range node.Children {
		if child.Node.BackRef {
			fmt.Fprintf(b, "%s  %s -> %s:%q (see above)\n",
				indent, child.Relation, child.Node.Entity.ID, child.Node.Entity.Name)
			continue
		}
		fmt.Fprintf(b, "%s  %s ->\n", indent, child.Relation)
		writeNode(b, child.Node, depth+2)
	}
}

func writeAttribute(b *strings.Builder, attr *kb.Attribute) {
	switch attr.Type {
	case kb.AttributeTask:
		due := ""
		if attr.DueDate != nil {
			due = fmt.Sprintf(" (due: %s)", attr.DueDate.Format(dueDateFormat))
		}
		fmt.Fprintf(b, "Task:%s:%s=%s%s [%s]", attr.EntityID, attr.Subject, attr.Value, due, attr.ID)
	case kb.AttributeRef:
		fmt.Fprintf(b, "Ref:%s:%s (ID: %s) [%s]", attr.EntityID, attr.Subject, attr.Value, attr.ID)
	case kb.AttributeRule:
		fmt.Fprintf(b, "Rule:%s:%s=%s [%s]", attr.EntityID, attr.Subject, attr.Value, attr.ID)
	default:
		fmt.Fprintf(b, "Fact:%s:%s=%s [%s]", attr.EntityID, attr.Subject, attr.Value, attr.ID)
	}
}

// RenderJSON serializes a context tree as indented JSON.
func RenderJSON(tree *Tree) (string, error) {
	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "marshal tree to JSON")
	}
	return string(data), nil
}

// RenderYAML serializes a context tree as YAML.
func RenderYAML(tree *Tree) (string, error) {
	data, err := yaml.Marshal(tree)
	if err != nil {
		return "", errors.Wrap(err, "marshal tree to YAML")
	}
	return string(data), nil
}
