// Package interference derives the conflict graph of live ranges.
//
// The graph is a diagnostic view; the linear-scan allocator works from the
// ranges directly.
package interference

import (
	"maps"
	"slices"

	"regscan/internal/liveness"
	"regscan/internal/ssa"
)

// Node is one variable and the variables it conflicts with.
type Node struct {
	Var       ssa.Var
	neighbors map[ssa.Var]*Node
}

// Degree is the number of neighbors.
func (n *Node) Degree() int {
	return len(n.neighbors)
}

// Neighbors returns adjacent variables in Var order.
func (n *Node) Neighbors() []ssa.Var {
	return slices.SortedFunc(maps.Keys(n.neighbors), ssa.Var.Compare)
}

// Graph is undirected, without self-edges or multi-edges.
type Graph struct {
	nodes map[ssa.Var]*Node
	edges int
}

// Build connects every pair of variables whose ranges overlap.
func Build(ranges map[ssa.Var]liveness.Range) *Graph {
	g := &Graph{nodes: make(map[ssa.Var]*Node, len(ranges))}

	ivs := make([]liveness.Interval, 0, len(ranges))
	for v, r := range ranges {
		g.nodes[v] = &Node{Var: v, neighbors: make(map[ssa.Var]*Node)}
		ivs = append(ivs, liveness.Interval{Var: v, Range: r})
	}
	slices.SortFunc(ivs, func(a, b liveness.Interval) int {
		if a.Range.Start != b.Range.Start {
			return a.Range.Start - b.Range.Start
		}
		return a.Var.Compare(b.Var)
	})

	// sweep: once a later interval starts at or after cur.End, none after it can overlap cur
	for i, cur := range ivs {
		for _, other := range ivs[i+1:] {
			if other.Range.Start >= cur.Range.End {
				break
			}
			if cur.Range.Overlaps(other.Range) {
				g.connect(cur.Var, other.Var)
			}
		}
	}
	return g
}

func (g *Graph) connect(u, v ssa.Var) {
	if u == v {
		return
	}
	a, b := g.nodes[u], g.nodes[v]
	if _, dup := a.neighbors[v]; dup {
		return
	}
	a.neighbors[v] = b
	b.neighbors[u] = a
	g.edges++
}

// Node returns the node of v.
func (g *Graph) Node(v ssa.Var) (*Node, bool) {
	n, ok := g.nodes[v]
	return n, ok
}

// Adjacent reports whether u and v interfere.
func (g *Graph) Adjacent(u, v ssa.Var) bool {
	n, ok := g.nodes[u]
	if !ok {
		return false
	}
	_, ok = n.neighbors[v]
	return ok
}

// Len is the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// EdgeCount is the number of undirected edges.
func (g *Graph) EdgeCount() int {
	return g.edges
}

// Vars returns all nodes' variables in Var order.
func (g *Graph) Vars() []ssa.Var {
	return slices.SortedFunc(maps.Keys(g.nodes), ssa.Var.Compare)
}
