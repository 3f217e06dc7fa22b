// internal/matching/finder.go
package matching

import (
	"sort"

	"gigmatch-workers/internal/models"
)

// DefaultLimit caps ranked results when the caller does not ask for a size.
const DefaultLimit = 10

// Finder ranks one fixed entity against a candidate pool. Output is
// deterministic: equal scores keep the candidates' input order.
type Finder struct {
	policy  SchedulePolicy
	weights Weights
}

// NewFinder builds a Finder. A nil policy falls back to the canonical
// overlap comparator; zero weights fall back to the baseline vector.
func NewFinder(policy SchedulePolicy, weights Weights) *Finder {
	if policy == nil {
		policy = DefaultPolicy()
	}
	if weights.IsZero() {
		weights = DefaultWeights()
	}
	return &Finder{policy: policy, weights: weights}
}

// MatchesForGig scores every candidate rep against the gig and returns the
// top results, highest score first.
func (f *Finder) MatchesForGig(gig *models.GigPosting, reps []models.RepProfile, limit int) []MatchResult {
	results := make([]MatchResult, 0, len(reps))
	for i := range reps {
		results = append(results, Score(&reps[i], gig, f.weights, f.policy))
	}
	return rankAndTruncate(results, limit)
}

// GigsForRep is the symmetric operation: one rep against many gigs.
func (f *Finder) GigsForRep(rep *models.RepProfile, gigs []models.GigPosting, limit int) []MatchResult {
	results := make([]MatchResult, 0, len(gigs))
	for i := range gigs {
		results = append(results, Score(rep, &gigs[i], f.weights, f.policy))
	}
	return rankAndTruncate(results, limit)
}

func rankAndTruncate(results []MatchResult, limit int) []MatchResult {
	// stable sort keeps input order among tied scores
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}
