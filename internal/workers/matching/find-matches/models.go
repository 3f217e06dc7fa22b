// internal/workers/matching/find-matches/models.go
package findmatches

import (
	"gigmatch-workers/internal/matching"
	"gigmatch-workers/internal/models"
)

const (
	ModeRepsForGig = "reps-for-gig"
	ModeGigsForRep = "gigs-for-rep"
)

type Input struct {
	Mode    string              `json:"mode"`
	Gig     *models.GigPosting  `json:"gig,omitempty"`
	Rep     *models.RepProfile  `json:"rep,omitempty"`
	Reps    []models.RepProfile `json:"reps,omitempty"`
	Gigs    []models.GigPosting `json:"gigs,omitempty"`
	Weights *matching.Weights   `json:"weights,omitempty"`
	Limit   int                 `json:"limit,omitempty"`
}

type Output struct {
	Matches    []matching.MatchResult `json:"matches"`
	Count      int                    `json:"count"`
	DurationMs int64                  `json:"durationMs"`
}
