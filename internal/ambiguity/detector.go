// Package ambiguity finds related terms of a wordpack that also relate to
// another base term of the same wordpack.
package ambiguity

import (
	"log/slog"

	"github.com/raphaelgruber/wordrel/internal/models"
)

// Relations is the read side of a relation graph.
type Relations interface {
	HasNode(term string) bool
	Neighbors(term string) []string
}

// Detector compares wordpack term groups against relation graphs.
type Detector struct {
	primary   Relations
	auxiliary Relations
	logger    *slog.Logger
}

// NewDetector creates a detector for the primary relation graph.
// auxiliary may be nil; when set, the neighbors of every primary relation
// that auxiliary knows are also treated as colliding (one hop only).
func NewDetector(primary, auxiliary Relations, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Detector{primary: primary, auxiliary: auxiliary, logger: logger}
}

// Detect is a convenience wrapper for a one-off detection without logging.
func Detect(primary, auxiliary Relations, groups *models.TermGroups) *models.Ambiguity {
	return NewDetector(primary, auxiliary, nil).Detect(groups)
}

// Detect computes the collisions of every base term in groups.
// For base terms A and B, a related term r of A collides with B when r is a
// primary neighbor of B, or an auxiliary neighbor of one of B's primary
// neighbors. Every base term gets an entry, even without collisions.
func (d *Detector) Detect(groups *models.TermGroups) *models.Ambiguity {
	result := models.NewAmbiguity()
	terms := groups.Terms()

	// Comparison sets depend only on the other base term; build each once.
	sets := make(map[string]map[string]struct{}, len(terms))
	for _, base := range terms {
		if d.primary.HasNode(base) {
			sets[base] = d.comparisonSet(base)
		}
	}

	for _, base := range terms {
		entry := result.Entry(base)
		related, _ := groups.Get(base)

		for _, other := range terms {
			if other == base {
				continue
			}
			set, ok := sets[other]
			if !ok {
				continue
			}

			for _, r := range related {
				if _, hit := set[r]; !hit {
					continue
				}
				entry.Add(other, r)
				d.logger.Debug("ambiguous related term",
					"base_term", base,
					"related_term", r,
					"other_base_term", other,
				)
			}
		}
	}

	return result
}

func (d *Detector) comparisonSet(term string) map[string]struct{} {
	direct := d.primary.Neighbors(term)
	set := make(map[string]struct{}, len(direct))
	for _, n := range direct {
		set[n] = struct{}{}
	}

	if d.auxiliary == nil {
		return set
	}
	for _, n := range direct {
		if !d.auxiliary.HasNode(n) {
			continue
		}
		for _, m := range d.auxiliary.Neighbors(n) {
			set[m] = struct{}{}
		}
	}
	return set
}
