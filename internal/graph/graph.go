// Package graph provides the directed term-relation graph built from the
// word relations corpus.
package graph

import "sort"

// node holds the outgoing relations of a single term.
// order keeps first-insertion order so neighbor listings are deterministic.
type node struct {
	order []string
	set   map[string]struct{}
}

// Graph maps a term to the terms it is related to.
//
// Edges are directed and carry no payload. Adding an edge creates both
// endpoint nodes when they are missing. A Graph is not safe for concurrent
// mutation; it is built once and read afterwards.
type Graph struct {
	nodes map[string]*node
	edges int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*node)}
}

// AddNode registers a term. Adding an existing term is a no-op.
func (g *Graph) AddNode(term string) {
	g.ensure(term)
}

// AddEdge records the directed relation source -> target.
// The reverse edge is not created. Repeated edges are ignored.
func (g *Graph) AddEdge(source, target string) {
	src := g.ensure(source)
	g.ensure(target)

	if _, ok := src.set[target]; ok {
		return
	}
	src.set[target] = struct{}{}
	src.order = append(src.order, target)
	g.edges++
}

// Neighbors returns the terms directly related to term, in the order the
// relations were added. The result is a copy; it is nil when the term is
// absent or has no outgoing edges.
func (g *Graph) Neighbors(term string) []string {
	n, ok := g.nodes[term]
	if !ok || len(n.order) == 0 {
		return nil
	}
	out := make([]string, len(n.order))
	copy(out, n.order)
	return out
}

// HasNode reports whether term is present in the graph.
func (g *Graph) HasNode(term string) bool {
	_, ok := g.nodes[term]
	return ok
}

// HasEdge reports whether the directed relation source -> target exists.
func (g *Graph) HasEdge(source, target string) bool {
	n, ok := g.nodes[source]
	if !ok {
		return false
	}
	_, ok = n.set[target]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// EdgeCount returns the number of distinct directed edges.
func (g *Graph) EdgeCount() int {
	return g.edges
}

// Nodes returns all terms sorted lexicographically.
func (g *Graph) Nodes() []string {
	out := make([]string, 0, len(g.nodes))
	for term := range g.nodes {
		out = append(out, term)
	}
	sort.Strings(out)
	return out
}

// Clear removes all nodes and edges.
func (g *Graph) Clear() {
	g.nodes = make(map[string]*node)
	g.edges = 0
}

func (g *Graph) ensure(term string) *node {
	n, ok := g.nodes[term]
	if !ok {
		n = &node{set: make(map[string]struct{})}
		g.nodes[term] = n
	}
	return n
}
