package engine

import "github.com/groblegark/beadscan/internal/model"

// DFS coloring: white = unvisited, gray = on the current path,
// black = fully explored.
const (
	white = iota
	gray
	black
)

// frame is one explicit-stack entry: the node and the index of the next
// outgoing edge to examine.
type frame struct {
	id   string
	next int
}

// DetectCycles finds circular blocking chains. It reports at least one
// representative cycle per cyclic component and none on a DAG. A reported
// path walks existing edges node by node and ends on a repeat of its first
// element.
//
// The traversal is iterative with per-call coloring state, so it neither
// recurses (no depth limit on large graphs) nor shares anything between
// invocations. Items are visited in stored order, which keeps repeated runs
// on identical input byte-identical. Edges to missing nodes are already
// reported as orphans and are simply not followed.
func (g *Graph) DetectCycles() []model.Cycle {
	color := make(map[string]int, len(g.Items))
	var cycles []model.Cycle

	for _, root := range g.Items {
		if color[root.ID] != white {
			continue
		}

		stack := []frame{{id: root.ID}}
		path := []string{root.ID}
		color[root.ID] = gray

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			targets := g.Blocking[f.id]

			descended := false
			for f.next < len(targets) {
				target := targets[f.next]
				f.next++

				if _, ok := g.Index[target]; !ok {
					continue // orphan edge
				}
				switch color[target] {
				case gray:
					// Back edge: the cycle is the gray path from the
					// target's first occurrence down to here, plus the
					// repeated node.
					start := 0
					for i, id := range path {
						if id == target {
							start = i
							break
						}
					}
					cycle := make([]string, 0, len(path)-start+1)
					cycle = append(cycle, path[start:]...)
					cycle = append(cycle, target)
					cycles = append(cycles, model.Cycle{Path: cycle})
				case white:
					color[target] = gray
					path = append(path, target)
					stack = append(stack, frame{id: target})
					descended = true
				}
				if descended {
					break
				}
			}

			if !descended && f.next >= len(targets) {
				color[f.id] = black
				path = path[:len(path)-1]
				stack = stack[:len(stack)-1]
			}
		}
	}

	return cycles
}
