// internal/matching/scores_test.go
package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gigmatch-workers/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func testRep() *models.RepProfile {
	return &models.RepProfile{
		ID:              "rep-1",
		YearsExperience: 6,
		Skills:          []string{"sales", "crm", "cold-calling"},
		Industries:      []string{"saas", "fintech"},
		Languages:       []string{"english", "spanish"},
		Availability: models.WeeklySchedule{
			{Day: "monday", Hours: models.TimeRange{Start: "09:00", End: "17:00"}},
			{Day: "tuesday", Hours: models.TimeRange{Start: "09:00", End: "17:00"}},
			{Day: "wednesday", Hours: models.TimeRange{Start: "09:00", End: "17:00"}},
		},
		Timezone: "America/New_York",
		Metrics: models.PerformanceMetrics{
			ConversionRate: 0.25,
			Reliability:    8,
			Rating:         4.5,
			CompletedGigs:  42,
		},
		Region: "us-east",
	}
}

func testGig() *models.GigPosting {
	return &models.GigPosting{
		ID:                     "gig-1",
		Title:                  "Outbound SDR",
		RequiredSkills:         []string{"sales", "crm"},
		PreferredLanguages:     []string{"english"},
		RequiredExperience:     4,
		ExpectedConversionRate: 0.2,
		Category:               "saas",
		Timezone:               "America/New_York",
		TargetRegion:           "us-east",
		RequiredAvailability: models.WeeklySchedule{
			{Day: "monday", Hours: models.TimeRange{Start: "09:00", End: "17:00"}},
			{Day: "tuesday", Hours: models.TimeRange{Start: "10:00", End: "16:00"}},
		},
	}
}

// ==========================
// Dimension Score Tests
// ==========================

func TestExperienceScore(t *testing.T) {
	tests := []struct {
		name     string
		rep      float64
		required float64
		expected float64
	}{
		{"above requirement gets diminishing bonus", 10, 7, 0.92},
		{"below requirement is proportional", 3, 7, 3.0 / 7.0 * 0.8},
		{"exact requirement is 0.8", 7, 7, 0.8},
		{"large surplus is capped at 1", 30, 5, 1.0},
		{"zero required is automatically satisfied", 0, 0, 1.0},
		{"zero required with experience", 12, 0, 1.0},
		{"zero experience against requirement", 0, 5, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ExperienceScore(tt.rep, tt.required), 1e-9)
		})
	}
}

func TestSkillsScore(t *testing.T) {
	tests := []struct {
		name     string
		rep      []string
		required []string
		expected float64
	}{
		{"empty requirement is satisfied", []string{"sales"}, nil, 1.0},
		{"full coverage", []string{"sales", "crm"}, []string{"sales", "crm"}, 1.0},
		{"partial coverage", []string{"sales"}, []string{"sales", "crm"}, 0.5},
		{"no coverage", []string{"design"}, []string{"sales", "crm"}, 0.0},
		{"extra rep skills do not dilute", []string{"sales", "crm", "design", "ops"}, []string{"sales"}, 1.0},
		{"empty rep skills", nil, []string{"sales", "crm", "ops"}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, SkillsScore(tt.rep, tt.required), 1e-9)
		})
	}
}

func TestLanguageScore(t *testing.T) {
	assert.Equal(t, 1.0, LanguageScore(nil, nil))
	assert.InDelta(t, 2.0/3.0, LanguageScore([]string{"english", "french"}, []string{"english", "french", "german"}), 1e-9)
}

func TestCategoryScore(t *testing.T) {
	tests := []struct {
		name       string
		industries []string
		category   string
		expected   float64
	}{
		{"category present", []string{"saas", "fintech"}, "saas", 1.0},
		{"category absent", []string{"saas"}, "retail", 0.0},
		{"missing category", []string{"saas"}, "", 0.0},
		{"missing industries", nil, "saas", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CategoryScore(tt.industries, tt.category))
		})
	}
}

func TestTimezoneScore(t *testing.T) {
	assert.Equal(t, 1.0, TimezoneScore("America/New_York", "America/New_York"))
	assert.Equal(t, 0.5, TimezoneScore("America/New_York", "Europe/London"))
}

func TestRegionScore(t *testing.T) {
	assert.Equal(t, 1.0, RegionScore("us-east", "us-east"))
	assert.Equal(t, 0.0, RegionScore("us-east", "eu-west"))
}

func TestPerformanceScore(t *testing.T) {
	tests := []struct {
		name     string
		metrics  models.PerformanceMetrics
		expected float64
		conv     float64
	}{
		{
			name:     "conversion above expectation gets full component",
			metrics:  models.PerformanceMetrics{ConversionRate: 0.3, Reliability: 8, Rating: 4.5},
			conv:     0.2,
			expected: 0.4 + 0.8*0.3 + 0.9*0.3,
		},
		{
			name:     "conversion below expectation is scaled",
			metrics:  models.PerformanceMetrics{ConversionRate: 0.1, Reliability: 10, Rating: 5},
			conv:     0.2,
			expected: 0.4*0.5 + 0.3 + 0.3,
		},
		{
			name:     "zero expectation is treated as satisfied",
			metrics:  models.PerformanceMetrics{ConversionRate: 0, Reliability: 5, Rating: 2.5},
			conv:     0,
			expected: 0.4 + 0.5*0.3 + 0.5*0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, PerformanceScore(tt.metrics, tt.conv), 1e-9)
		})
	}
}

func TestScoreAll_AllDimensionsInRange(t *testing.T) {
	b := ScoreAll(testRep(), testGig(), DefaultPolicy())

	dims := b.Dimensions()
	assert.Len(t, dims, 8)
	for name, v := range dims {
		assert.GreaterOrEqual(t, v, 0.0, name)
		assert.LessOrEqual(t, v, 1.0, name)
	}
	assert.Equal(t, b.Experience, dims["experience"])
	assert.Equal(t, b.Availability, dims["availability"])

	// this pair is a strong fit across the board
	assert.Equal(t, 1.0, b.Skills)
	assert.Equal(t, 1.0, b.Industry)
	assert.Equal(t, 1.0, b.Timezone)
	assert.Equal(t, 1.0, b.Region)
	assert.InDelta(t, 0.88, b.Experience, 1e-9)
}
