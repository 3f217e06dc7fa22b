// internal/common/config/loader_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gigmatch-workers/internal/matching"
)

// ============================================================================
// FIXTURES
// ============================================================================

func validTestConfig() *Config {
	return &Config{
		Camunda: CamundaConfig{BrokerAddress: "localhost:26500"},
		Database: DatabaseConfig{
			Postgres: PostgresConfig{
				Host:     "localhost",
				Database: "gigmatch",
				User:     "gigmatch",
			},
			Elasticsearch: ElasticsearchConfig{URL: "http://localhost:9200"},
			Redis:         RedisConfig{Address: "localhost:6379"},
		},
		Matching: MatchingConfig{
			Weights:        matching.DefaultWeights(),
			SchedulePolicy: matching.PolicyOverlap,
		},
	}
}

// ============================================================================
// VALIDATION
// ============================================================================

func TestValidateConfig_Valid(t *testing.T) {
	assert.NoError(t, validateConfig(validTestConfig()))
}

func TestValidateConfig_DriftingWeightSumStillLoads(t *testing.T) {
	cfg := validTestConfig()
	cfg.Matching.Weights.Skills = 0.30 // sum becomes 1.1

	require.Error(t, cfg.Matching.Weights.Validate())
	assert.NoError(t, validateConfig(cfg),
		"non-unit weight sums are warned about at startup, never rejected")
}

func TestValidateConfig_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing broker address", func(c *Config) { c.Camunda.BrokerAddress = "" }},
		{"missing postgres host", func(c *Config) { c.Database.Postgres.Host = "" }},
		{"missing postgres database", func(c *Config) { c.Database.Postgres.Database = "" }},
		{"missing postgres user", func(c *Config) { c.Database.Postgres.User = "" }},
		{"missing redis address", func(c *Config) { c.Database.Redis.Address = "" }},
		{"unknown schedule policy", func(c *Config) { c.Matching.SchedulePolicy = "hungarian" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)
			assert.Error(t, validateConfig(cfg))
		})
	}
}

func TestValidateConfig_ElasticsearchURLOrAddresses(t *testing.T) {
	cfg := validTestConfig()
	cfg.Database.Elasticsearch.URL = ""
	assert.Error(t, validateConfig(cfg))

	cfg.Database.Elasticsearch.Addresses = []string{"http://es1:9200"}
	assert.NoError(t, validateConfig(cfg))
}

// ============================================================================
// HELPERS
// ============================================================================

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 30*time.Second, GetDuration(30000))
	assert.Equal(t, time.Duration(0), GetDuration(0))
}

func TestGetWorkerConfig_FallsBackToDefaults(t *testing.T) {
	cfg := validTestConfig()
	cfg.Workers = map[string]WorkerConfig{
		"matching.find-matches": {Enabled: true, MaxJobsActive: 2, Timeout: 5000, MaxRetries: 1},
	}

	known := GetWorkerConfig(cfg, "matching.find-matches")
	assert.Equal(t, 2, known.MaxJobsActive)

	unknown := GetWorkerConfig(cfg, "matching.compare-schedules")
	assert.Equal(t, 5, unknown.MaxJobsActive)
	assert.Equal(t, 30000, unknown.Timeout)
	assert.True(t, unknown.Enabled)
}

func TestIsWorkerEnabled(t *testing.T) {
	cfg := validTestConfig()
	cfg.Workers = map[string]WorkerConfig{
		"matching.find-matches": {Enabled: false},
	}

	assert.False(t, IsWorkerEnabled(cfg, "matching.find-matches"))
	assert.True(t, IsWorkerEnabled(cfg, "matching.record-assignments"))
}
