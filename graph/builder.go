package graph

import (
	"time"

	"go.uber.org/zap"

	"github.com/bonnetkb/bonnet/kb"
)

// Builder expands a resolved entity into a context tree.
type Builder struct {
	store  *kb.SQLStore
	logger *zap.SugaredLogger
}

// NewBuilder creates a context tree builder over the given store.
// logger may be nil for silent operation.
func NewBuilder(store *kb.SQLStore, logger *zap.SugaredLogger) *Builder {
	return &Builder{store: store, logger: logger}
}

// Build expands rootID into a complete context tree. Fails with ErrNotFound
// when rootID is not an existing entity.
//
// Every visited entity gets all of its attributes in creation order, then its
// outgoing edges expanded as nested children. A visited set guarantees each
// entity is expanded exactly once: later occurrences (cycles, diamonds)
// become back-reference nodes instead of duplicated subtrees, so traversal
// terminates on any graph. maxDepth > 0 bounds recursion; 0 means unbounded.
func (b *Builder) Build(rootID string, maxDepth int) (*Tree, error) {
	root, err := b.store.GetEntity(rootID)
	if err != nil {
		return nil, err
	}

	tree := &Tree{
		Meta: Meta{
			GeneratedAt: time.Now(),
			MaxDepth:    maxDepth,
		},
	}

	visited := make(map[string]bool)
	tree.Root, err = b.expand(root, 1, maxDepth, visited, &tree.Meta.Stats)
	if err != nil {
		return nil, err
	}

	if b.logger != nil {
		b.logger.Infow("Context tree built",
			"root", rootID,
			"entities", tree.Meta.Stats.Entities,
			"attributes", tree.Meta.Stats.Attributes,
			"edges", tree.Meta.Stats.Edges,
		)
	}

	return tree, nil
}

// expand visits one entity: attributes first, then children via outgoing
// edges. The entity is marked visited before its edges are followed so a
// cycle back to it produces a back-reference, not infinite recursion.
func (b *Builder) expand(entity *kb.Entity, depth, maxDepth int, visited map[string]bool, stats *Stats) (*Node, error) {
	visited[entity.ID] = true
	stats.Entities++

	attrs, err := b.store.ListAttributesAbout(entity.ID)
	if err != nil {
		return nil, err
	}
	stats.Attributes += len(attrs)

	node := &Node{
		Entity:     *entity,
		Attributes: attrs,
	}

	if maxDepth > 0 && depth >= maxDepth {
		return node, nil
	}

	edges, err := b.store.ListOutgoingEdges(entity.ID)
	if err != nil {
		return nil, err
	}

	for _, edge := range edges {
		stats.Edges++

		target, err := b.store.GetEntity(edge.To)
		if err != nil {
			return nil, err
		}

		if visited[target.ID] {
			// Already expanded on some path: link it, don't re-expand
			node.Children = append(node.Children, Child{
				Relation: edge.Relation,
				Node:     &Node{Entity: *target, BackRef: true},
			})
			continue
		}

		child, err := b.expand(target, depth+1, maxDepth, visited, stats)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, Child{Relation: edge.Relation, Node: child})
	}

	return node, nil
}
