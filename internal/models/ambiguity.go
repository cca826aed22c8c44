package models

// Collisions records, for one base term, which of its related terms also
// relate to another base term of the same wordpack.
// Overlap[i] is the other base term that RelatedTerms[i] collided with.
type Collisions struct {
	Overlap      []string
	RelatedTerms []string
}

// Add appends a collision of related with the base term other.
func (c *Collisions) Add(other, related string) {
	c.Overlap = append(c.Overlap, other)
	c.RelatedTerms = append(c.RelatedTerms, related)
}

// Len returns the number of recorded collisions.
func (c *Collisions) Len() int {
	return len(c.Overlap)
}

// DistinctOverlap returns the colliding base terms without repeats, in the
// order they were first recorded.
func (c *Collisions) DistinctOverlap() []string {
	seen := make(map[string]bool, len(c.Overlap))
	out := make([]string, 0, len(c.Overlap))
	for _, o := range c.Overlap {
		if !seen[o] {
			seen[o] = true
			out = append(out, o)
		}
	}
	return out
}

// MatchFor returns the base term of the first collision recorded for related.
func (c *Collisions) MatchFor(related string) (string, bool) {
	for i, r := range c.RelatedTerms {
		if r == related {
			return c.Overlap[i], true
		}
	}
	return "", false
}

// Ambiguity holds the collisions of every base term of a wordpack.
type Ambiguity struct {
	order  []string
	byTerm map[string]*Collisions
}

// NewAmbiguity creates an empty result.
func NewAmbiguity() *Ambiguity {
	return &Ambiguity{byTerm: make(map[string]*Collisions)}
}

// Entry returns the collisions of base, creating an empty entry if needed.
func (a *Ambiguity) Entry(base string) *Collisions {
	c, ok := a.byTerm[base]
	if !ok {
		c = &Collisions{}
		a.byTerm[base] = c
		a.order = append(a.order, base)
	}
	return c
}

// For returns the collisions of base. A term with no entry yields an empty value.
func (a *Ambiguity) For(base string) *Collisions {
	if c, ok := a.byTerm[base]; ok {
		return c
	}
	return &Collisions{}
}

// Terms returns the base terms in the order their entries were created.
func (a *Ambiguity) Terms() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// FlaggedTerms counts base terms that have at least one collision.
func (a *Ambiguity) FlaggedTerms() int {
	n := 0
	for _, c := range a.byTerm {
		if c.Len() > 0 {
			n++
		}
	}
	return n
}

// TotalCollisions counts all recorded collisions.
func (a *Ambiguity) TotalCollisions() int {
	n := 0
	for _, c := range a.byTerm {
		n += c.Len()
	}
	return n
}
