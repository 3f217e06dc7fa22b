// internal/workers/matching/calculate-match-score/config.go
package calculatematchscore

import (
	"context"
	"time"

	"gigmatch-workers/internal/matching"
)

// ScoreObserver receives every aggregated score this worker produces.
// A nil observer disables reporting.
type ScoreObserver interface {
	RecordMatchScore(ctx context.Context, score float64, taskType string)
}

type Config struct {
	CacheTTL time.Duration
	Timeout  time.Duration
	Weights  matching.Weights
	Policy   matching.SchedulePolicy
	Observer ScoreObserver
}

func LoadConfig() *Config {
	return &Config{
		CacheTTL: 5 * time.Minute,
		Timeout:  10 * time.Second,
		Weights:  matching.DefaultWeights(),
		Policy:   matching.DefaultPolicy(),
	}
}
