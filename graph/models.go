// Package graph builds and renders context trees: bounded, deduplicated
// traversals of an entity and everything reachable from it via relationship
// edges, with every entity's attributes attached at every level.
package graph

import (
	"time"

	"github.com/bonnetkb/bonnet/kb"
)

// Tree is the complete context tree for one root entity.
type Tree struct {
	Root *Node `json:"root" yaml:"root"`
	Meta Meta  `json:"meta" yaml:"meta"`
}

// Node is one entity in the tree with its attributes and child entities.
// A node with BackRef set marks an entity already expanded elsewhere in the
// tree; it carries the entity identity but no attributes or children.
type Node struct {
	Entity     kb.Entity      `json:"entity" yaml:"entity"`
	Attributes []kb.Attribute `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Children   []Child        `json:"children,omitempty" yaml:"children,omitempty"`
	BackRef    bool           `json:"back_ref,omitempty" yaml:"back_ref,omitempty"`
}

// Child links a node to a nested entity through a typed relation.
type Child struct {
	Relation string `json:"relation" yaml:"relation"`
	Node     *Node  `json:"node" yaml:"node"`
}

// Meta contains metadata about the tree.
type Meta struct {
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	MaxDepth    int       `json:"max_depth,omitempty" yaml:"max_depth,omitempty"`
	Stats       Stats     `json:"stats" yaml:"stats"`
}

// Stats provides tree statistics.
type Stats struct {
	Entities   int `json:"entities"`
	Attributes int `json:"attributes"`
	Edges      int `json:"edges"`
}
