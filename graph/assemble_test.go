package graph

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bonnetkb/bonnet/kb"
)

func sampleTree() *Tree {
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	return &Tree{
		Root: &Node{
			Entity: kb.Entity{ID: "S1", Name: "Sharks"},
			Attributes: []kb.Attribute{
				{ID: "A1", EntityID: "S1", Type: kb.AttributeFact, Subject: "diet", Value: "fish"},
				{ID: "A2", EntityID: "S1", Type: kb.AttributeTask, Subject: "clean", Value: "tank", DueDate: &due},
				{ID: "A3", EntityID: "S1", Type: kb.AttributeRef, Subject: "paper", Value: "R-77"},
				{ID: "A4", EntityID: "S1", Type: kb.AttributeRule, Subject: "feeding", Value: "twice daily"},
			},
			Children: []Child{
				{
					Relation: "has_subcategory",
					Node: &Node{
						Entity: kb.Entity{ID: "T1", Name: "Hammerheads"},
						Attributes: []kb.Attribute{
							{ID: "A5", EntityID: "T1", Type: kb.AttributeFact, Subject: "head", Value: "hammer-shaped"},
						},
					},
				},
				{
					Relation: "related_to",
					Node:     &Node{Entity: kb.Entity{ID: "S1", Name: "Sharks"}, BackRef: true},
				},
			},
		},
	}
}

func TestRenderText(t *testing.T) {
	got := RenderText(sampleTree())

	want := strings.Join([]string{
		"<context>",
		`S1:"Sharks"`,
		"  Fact:S1:diet=fish [A1]",
		"  Task:S1:clean=tank (due: 2026-09-01) [A2]",
		"  Ref:S1:paper (ID: R-77) [A3]",
		"  Rule:S1:feeding=twice daily [A4]",
		"  has_subcategory ->",
		`    T1:"Hammerheads"`,
		"      Fact:T1:head=hammer-shaped [A5]",
		`  related_to -> S1:"Sharks" (see above)`,
		"</context>",
	}, "\n")

	require.Equal(t, want, got)
}

func TestRenderTextIsPure(t *testing.T) {
	tree := sampleTree()
	first := RenderText(tree)
	second := RenderText(tree)
	require.Equal(t, first, second)
}

func TestRenderJSONRoundTrips(t *testing.T) {
	out, err := RenderJSON(sampleTree())
	require.NoError(t, err)

	var decoded Tree
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Equal(t, "S1", decoded.Root.Entity.ID)
	require.Len(t, decoded.Root.Children, 2)
	require.True(t, decoded.Root.Children[1].Node.BackRef)
}

func TestRenderYAMLRoundTrips(t *testing.T) {
	out, err := RenderYAML(sampleTree())
	require.NoError(t, err)

	var decoded Tree
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	require.Equal(t, "Sharks", decoded.Root.Entity.Name)
	require.Len(t, decoded.Root.Attributes, 4)
}
