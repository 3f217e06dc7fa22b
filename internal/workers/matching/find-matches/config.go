// internal/workers/matching/find-matches/config.go
package findmatches

import (
	"time"

	"gigmatch-workers/internal/matching"
)

type Config struct {
	Timeout       time.Duration
	SlowThreshold time.Duration
	Weights       matching.Weights
	Policy        matching.SchedulePolicy
}

func LoadConfig() *Config {
	return &Config{
		Timeout:       30 * time.Second,
		SlowThreshold: 500 * time.Millisecond,
		Weights:       matching.DefaultWeights(),
		Policy:        matching.DefaultPolicy(),
	}
}
