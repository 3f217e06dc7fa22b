// internal/matching/schedule_test.go
package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gigmatch-workers/internal/models"
)

func schedule(entries ...models.DayEntry) models.WeeklySchedule {
	return models.WeeklySchedule(entries)
}

func day(name, start, end string) models.DayEntry {
	return models.DayEntry{Day: name, Hours: models.TimeRange{Start: start, End: end}}
}

// ==========================
// Validation / Fail-Closed Tests
// ==========================

func TestOverlapPolicy_FailsClosedOnBadInput(t *testing.T) {
	good := schedule(day("monday", "09:00", "17:00"))

	tests := []struct {
		name     string
		required models.WeeklySchedule
		offered  models.WeeklySchedule
	}{
		{"unknown day name", schedule(day("funday", "09:00", "17:00")), good},
		{"capitalized day name", schedule(day("Monday", "09:00", "17:00")), good},
		{"missing zero padding", schedule(day("monday", "9:00", "17:00")), good},
		{"hours out of range", schedule(day("monday", "09:00", "24:00")), good},
		{"start equals end", schedule(day("monday", "09:00", "09:00")), good},
		{"start after end", schedule(day("monday", "17:00", "09:00")), good},
		{"bad entry on offered side", good, schedule(day("monday", "09:61", "17:00"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := OverlapPolicy{}.Compare(tt.required, tt.offered)
			assert.Equal(t, 0.0, result.Score)
			assert.Equal(t, StatusNoMatch, result.Status)
		})
	}
}

func TestOverlapPolicy_EmptyRequiredSchedule(t *testing.T) {
	result := OverlapPolicy{}.Compare(nil, schedule(day("monday", "09:00", "17:00")))
	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, StatusNoMatch, result.Status)
}

// ==========================
// Overlap Comparator Tests
// ==========================

func TestOverlapPolicy_ExactDuplicateIsPerfect(t *testing.T) {
	s := schedule(
		day("monday", "09:00", "17:00"),
		day("wednesday", "10:00", "14:00"),
		day("friday", "08:30", "12:45"),
	)

	result := OverlapPolicy{}.Compare(s, s)

	assert.Equal(t, 1.0, result.Score)
	assert.Equal(t, StatusPerfectMatch, result.Status)
	assert.ElementsMatch(t, []string{"monday", "wednesday", "friday"}, result.MatchingDays)
	assert.Empty(t, result.MissingDays)
	assert.Empty(t, result.InsufficientHours)
}

func TestOverlapPolicy_HalfCoverageBoundary(t *testing.T) {
	// 8h required, 4h offered: exactly 50% of the required duration
	required := schedule(day("monday", "09:00", "17:00"))
	offered := schedule(day("monday", "09:00", "13:00"))

	result := OverlapPolicy{}.Compare(required, offered)

	// 50% lands in the matching bucket under the canonical comparator
	assert.Equal(t, []string{"monday"}, result.MatchingDays)
	assert.Empty(t, result.InsufficientHours)
	assert.Equal(t, 1.0, result.Score)
	assert.Equal(t, StatusPerfectMatch, result.Status)
}

func TestOverlapPolicy_BelowHalfIsInsufficient(t *testing.T) {
	required := schedule(day("monday", "09:00", "17:00"))
	offered := schedule(day("monday", "09:00", "12:00")) // 37.5%

	result := OverlapPolicy{}.Compare(required, offered)

	assert.Empty(t, result.MatchingDays)
	assert.Equal(t, []string{"monday"}, result.InsufficientHours)
	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, StatusNoMatch, result.Status)
}

func TestOverlapPolicy_MixedWeek(t *testing.T) {
	required := schedule(
		day("monday", "09:00", "17:00"),
		day("tuesday", "09:00", "17:00"),
		day("wednesday", "09:00", "17:00"),
		day("thursday", "09:00", "17:00"),
	)
	offered := schedule(
		day("monday", "09:00", "17:00"), // full
		day("tuesday", "12:00", "17:00"), // 62.5%, matching
		day("wednesday", "15:00", "17:00"), // 25%, insufficient
		// thursday missing entirely
	)

	result := OverlapPolicy{}.Compare(required, offered)

	assert.Equal(t, []string{"monday", "tuesday"}, result.MatchingDays)
	assert.Equal(t, []string{"wednesday"}, result.InsufficientHours)
	assert.Equal(t, []string{"thursday"}, result.MissingDays)
	assert.InDelta(t, 0.5, result.Score, 1e-9)
	assert.Equal(t, StatusPartialMatch, result.Status)
}

func TestOverlapPolicy_NonOverlappingHours(t *testing.T) {
	required := schedule(day("monday", "09:00", "12:00"))
	offered := schedule(day("monday", "13:00", "18:00"))

	result := OverlapPolicy{}.Compare(required, offered)

	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, []string{"monday"}, result.InsufficientHours)
	assert.Equal(t, StatusNoMatch, result.Status)
}

// ==========================
// Any-Overlap Comparator Tests
// ==========================

func TestAnyOverlapPolicy_HalfCoverageBoundary(t *testing.T) {
	required := schedule(day("monday", "09:00", "17:00"))
	offered := schedule(day("monday", "09:00", "13:00"))

	result := AnyOverlapPolicy{}.Compare(required, offered)

	// the day matches, but short coverage is flagged and blocks perfect status
	assert.Equal(t, []string{"monday"}, result.MatchingDays)
	assert.Equal(t, []string{"monday"}, result.InsufficientHours)
	assert.Equal(t, 1.0, result.Score)
	assert.Equal(t, StatusPartialMatch, result.Status)
}

func TestAnyOverlapPolicy_FullCoverageIsPerfect(t *testing.T) {
	required := schedule(day("monday", "10:00", "14:00"))
	offered := schedule(day("monday", "09:00", "17:00"))

	result := AnyOverlapPolicy{}.Compare(required, offered)

	assert.Equal(t, 1.0, result.Score)
	assert.Empty(t, result.InsufficientHours)
	assert.Equal(t, StatusPerfectMatch, result.Status)
}

func TestAnyOverlapPolicy_MinimalOverlapStillMatches(t *testing.T) {
	required := schedule(day("monday", "09:00", "17:00"))
	offered := schedule(day("monday", "16:30", "18:00")) // 30 minutes

	result := AnyOverlapPolicy{}.Compare(required, offered)

	assert.Equal(t, []string{"monday"}, result.MatchingDays)
	assert.Equal(t, []string{"monday"}, result.InsufficientHours)
	assert.Equal(t, 1.0, result.Score)
	assert.Equal(t, StatusPartialMatch, result.Status)
}

// ==========================
// Coarse Comparator Tests
// ==========================

func TestCoarsePolicy_CountsWeekdayPresenceOnly(t *testing.T) {
	required := schedule(day("monday", "09:00", "17:00"))
	offered := schedule(
		day("monday", "23:00", "23:30"), // hours irrelevant
		day("tuesday", "09:00", "10:00"),
		day("saturday", "09:00", "17:00"), // weekend ignored
	)

	result := CoarsePolicy{}.Compare(required, offered)

	assert.Equal(t, []string{"monday", "tuesday"}, result.MatchingDays)
	assert.Equal(t, []string{"wednesday", "thursday", "friday"}, result.MissingDays)
	assert.InDelta(t, 0.4, result.Score, 1e-9)
	assert.Equal(t, StatusPartialMatch, result.Status)
}

func TestCoarsePolicy_AllBusinessDaysIsPerfect(t *testing.T) {
	offered := schedule(
		day("monday", "09:00", "10:00"),
		day("tuesday", "09:00", "10:00"),
		day("wednesday", "09:00", "10:00"),
		day("thursday", "09:00", "10:00"),
		day("friday", "09:00", "10:00"),
	)

	result := CoarsePolicy{}.Compare(nil, offered)

	assert.Equal(t, 1.0, result.Score)
	assert.Equal(t, StatusPerfectMatch, result.Status)
}

// ==========================
// Policy Selection Tests
// ==========================

func TestPolicyByName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		wantErr  bool
	}{
		{"", PolicyOverlap, false},
		{PolicyOverlap, PolicyOverlap, false},
		{PolicyCoarse, PolicyCoarse, false},
		{PolicyAnyOverlap, PolicyAnyOverlap, false},
		{"hungarian", "", true},
	}

	for _, tt := range tests {
		policy, err := PolicyByName(tt.name)
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, tt.expected, policy.Name())
	}
}
