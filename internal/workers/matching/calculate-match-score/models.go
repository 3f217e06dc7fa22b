// internal/workers/matching/calculate-match-score/models.go
package calculatematchscore

import (
	"gigmatch-workers/internal/matching"
	"gigmatch-workers/internal/models"
)

type Input struct {
	RepID      string             `json:"repId"`
	Gig        models.GigPosting  `json:"gig"`
	RepProfile *models.RepProfile `json:"repProfile,omitempty"`
	Weights    *matching.Weights  `json:"weights,omitempty"`
}

type Output struct {
	RepID     string             `json:"repId"`
	GigID     string             `json:"gigId"`
	Score     float64            `json:"score"`
	Breakdown matching.Breakdown `json:"breakdown"`
}
