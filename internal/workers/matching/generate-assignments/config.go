// internal/workers/matching/generate-assignments/config.go
package generateassignments

import (
	"time"

	"gigmatch-workers/internal/matching"
)

type Config struct {
	Timeout  time.Duration
	PoolSize int
	Weights  matching.Weights
	Policy   matching.SchedulePolicy
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  60 * time.Second,
		PoolSize: matching.DefaultPoolSize,
		Weights:  matching.DefaultWeights(),
		Policy:   matching.DefaultPolicy(),
	}
}
