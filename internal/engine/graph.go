// Package engine derives readiness state over a single source's dependency
// graph and ranks ready items across sources. All computation here is pure
// and synchronous; callers own any parallelism.
package engine

import "github.com/groblegark/beadscan/internal/model"

// Graph is the id index and edge partition for one source's items.
// Items preserves stored order so traversal output stays deterministic.
type Graph struct {
	Items    []*model.Item
	Index    map[string]*model.Item
	Blocking map[string][]string // item id -> blocking edge targets, stored order
	Parents  map[string][]string // item id -> parent-child edge targets, stored order
	Orphans  []model.OrphanEdge
}

// BuildGraph indexes the items of one source and partitions their edges
// into blocking and parent-child. Every blocking edge whose target is not
// in the index becomes an OrphanEdge finding; the edge itself is kept in
// the adjacency so the traversals can skip it explicitly.
func BuildGraph(items []*model.Item) *Graph {
	g := &Graph{
		Items:    items,
		Index:    make(map[string]*model.Item, len(items)),
		Blocking: make(map[string][]string),
		Parents:  make(map[string][]string),
	}

	for _, item := range items {
		g.Index[item.ID] = item
	}

	for _, item := range items {
		for _, dep := range item.Dependencies {
			switch dep.Type {
			case model.DepBlocking:
				g.Blocking[item.ID] = append(g.Blocking[item.ID], dep.DependsOnID)
				if _, ok := g.Index[dep.DependsOnID]; !ok {
					g.Orphans = append(g.Orphans, model.OrphanEdge{
						ItemID:          item.ID,
						MissingTargetID: dep.DependsOnID,
					})
				}
			case model.DepParentChild:
				g.Parents[item.ID] = append(g.Parents[item.ID], dep.DependsOnID)
			}
		}
	}

	return g
}
