// internal/workers/data-access/query-profiles/config.go
package queryprofiles

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
