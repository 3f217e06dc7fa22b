// internal/matching/assignment.go
package matching

import (
	"sort"
	"sync"

	"gigmatch-workers/internal/models"
)

// DefaultPoolSize bounds the fan-out when scoring the full cross product.
const DefaultPoolSize = 8

// AssignmentStrategy produces a conflict-free pairing between two
// populations. The default is the greedy approximation below; the
// interface exists so a true weighted-matching solver can be swapped in
// later without touching callers.
type AssignmentStrategy interface {
	Assign(reps []models.RepProfile, gigs []models.GigPosting) []MatchResult
}

// GreedyAssigner scores every rep/gig pair, sorts globally by score, and
// accepts pairs first-come as long as neither side is taken. It is a
// locally-optimal approximation, not a maximum-weight matching; do not
// replace it with an optimal solver without an explicit design decision.
type GreedyAssigner struct {
	Policy   SchedulePolicy
	Weights  Weights
	PoolSize int
}

// NewGreedyAssigner fills in the defaults used across the service.
func NewGreedyAssigner(policy SchedulePolicy, weights Weights, poolSize int) *GreedyAssigner {
	if policy == nil {
		policy = DefaultPolicy()
	}
	if weights.IsZero() {
		weights = DefaultWeights()
	}
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}
	return &GreedyAssigner{Policy: policy, Weights: weights, PoolSize: poolSize}
}

// AllPairs scores the full W×G cross product with a bounded worker pool.
// Each pair is written to its precomputed slot (rep-major, gig-minor), so
// the output order never depends on goroutine completion order.
func (g *GreedyAssigner) AllPairs(reps []models.RepProfile, gigs []models.GigPosting) []MatchResult {
	if len(reps) == 0 || len(gigs) == 0 {
		return []MatchResult{}
	}

	pairs := make([]MatchResult, len(reps)*len(gigs))

	workers := g.PoolSize
	if workers <= 0 {
		workers = DefaultPoolSize
	}
	if workers > len(pairs) {
		workers = len(pairs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := range jobs {
				i, j := k/len(gigs), k%len(gigs)
				pairs[k] = Score(&reps[i], &gigs[j], g.Weights, g.Policy)
			}
		}()
	}
	for k := range pairs {
		jobs <- k
	}
	close(jobs)
	wg.Wait()

	return pairs
}

// Assign runs the full greedy pipeline. Empty input on either side yields
// an empty assignment set.
func (g *GreedyAssigner) Assign(reps []models.RepProfile, gigs []models.GigPosting) []MatchResult {
	pairs := g.AllPairs(reps, gigs)
	if len(pairs) == 0 {
		return []MatchResult{}
	}

	// stable sort: ties keep the cross-product enumeration order
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Score > pairs[j].Score
	})

	maxPairs := len(reps)
	if len(gigs) < maxPairs {
		maxPairs = len(gigs)
	}

	usedReps := make(map[string]bool, len(reps))
	usedGigs := make(map[string]bool, len(gigs))
	accepted := make([]MatchResult, 0, maxPairs)

	for _, p := range pairs {
		if usedReps[p.RepID] || usedGigs[p.GigID] {
			continue
		}
		usedReps[p.RepID] = true
		usedGigs[p.GigID] = true
		accepted = append(accepted, p)
		if len(accepted) == maxPairs {
			break
		}
	}

	return accepted
}
