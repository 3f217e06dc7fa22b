// internal/workers/matching/compare-schedules/models.go
package compareschedules

import (
	"gigmatch-workers/internal/matching"
	"gigmatch-workers/internal/models"
)

type Input struct {
	Required models.WeeklySchedule `json:"required"`
	Offered  models.WeeklySchedule `json:"offered"`
	Policy   string                `json:"policy,omitempty"`
}

type Output struct {
	Score             float64              `json:"score"`
	MatchingDays      []string             `json:"matchingDays"`
	MissingDays       []string             `json:"missingDays"`
	InsufficientHours []string             `json:"insufficientHours"`
	Status            matching.MatchStatus `json:"matchStatus"`
	Policy            string               `json:"policy"`
}

func fromResult(r matching.ScheduleMatchResult, policy string) *Output {
	return &Output{
		Score:             r.Score,
		MatchingDays:      r.MatchingDays,
		MissingDays:       r.MissingDays,
		InsufficientHours: r.InsufficientHours,
		Status:            r.Status,
		Policy:            policy,
	}
}
