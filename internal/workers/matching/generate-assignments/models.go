// internal/workers/matching/generate-assignments/models.go
package generateassignments

import (
	"gigmatch-workers/internal/matching"
	"gigmatch-workers/internal/models"
)

type Input struct {
	Reps     []models.RepProfile `json:"reps"`
	Gigs     []models.GigPosting `json:"gigs"`
	Weights  *matching.Weights   `json:"weights,omitempty"`
	PoolSize int                 `json:"poolSize,omitempty"`
}

type Output struct {
	Assignments []matching.MatchResult `json:"assignments"`
	Stats       Stats                  `json:"stats"`
}

type Stats struct {
	PairsScored    int   `json:"pairsScored"`
	AssignedPairs  int   `json:"assignedPairs"`
	UnassignedReps int   `json:"unassignedReps"`
	UnassignedGigs int   `json:"unassignedGigs"`
	DurationMs     int64 `json:"durationMs"`
}
