// internal/matching/aggregate.go
package matching

import "gigmatch-workers/internal/models"

// MatchResult is the scored outcome of comparing one rep against one gig.
type MatchResult struct {
	RepID     string    `json:"repId"`
	GigID     string    `json:"gigId"`
	Score     float64   `json:"score"`
	Breakdown Breakdown `json:"breakdown"`
}

// Aggregate folds a dimension breakdown into a single weighted total.
// The total is only guaranteed to land in [0,1] when the weights sum to 1;
// the engine does not police that.
func Aggregate(repID, gigID string, b Breakdown, w Weights) MatchResult {
	score := b.Experience*w.Experience +
		b.Skills*w.Skills +
		b.Industry*w.Industry +
		b.Language*w.Language +
		b.Availability*w.Availability +
		b.Timezone*w.Timezone +
		b.Performance*w.Performance +
		b.Region*w.Region

	return MatchResult{
		RepID:     repID,
		GigID:     gigID,
		Score:     score,
		Breakdown: b,
	}
}

// Score is the one-shot path: dimension scoring plus aggregation for a
// single pair.
func Score(rep *models.RepProfile, gig *models.GigPosting, w Weights, policy SchedulePolicy) MatchResult {
	return Aggregate(rep.ID, gig.ID, ScoreAll(rep, gig, policy), w)
}
