// Package models defines the data structures shared by the wordrel components.
package models

// TermGroups maps a base term to its related terms while remembering the
// order in which base terms were first seen.
type TermGroups struct {
	order   []string
	related map[string][]string
}

// NewTermGroups creates an empty mapping.
func NewTermGroups() *TermGroups {
	return &TermGroups{related: make(map[string][]string)}
}

// Set stores the related terms for base. Redefining a base term replaces
// its related terms but keeps its original position.
func (g *TermGroups) Set(base string, related []string) {
	if _, ok := g.related[base]; !ok {
		g.order = append(g.order, base)
	}
	g.related[base] = related
}

// Get returns the related terms for base.
func (g *TermGroups) Get(base string) ([]string, bool) {
	r, ok := g.related[base]
	return r, ok
}

// Terms returns the base terms in first-seen order.
func (g *TermGroups) Terms() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Len returns the number of base terms.
func (g *TermGroups) Len() int {
	if g == nil {
		return 0
	}
	return len(g.order)
}

// Wordpack is one titled section of a wordpacks file.
type Wordpack struct {
	Title  string
	Groups *TermGroups
}
