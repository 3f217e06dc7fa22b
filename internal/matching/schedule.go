// internal/matching/schedule.go
package matching

import (
	"fmt"
	"regexp"

	"gigmatch-workers/internal/models"
)

// MatchStatus is the tri-state outcome of a schedule comparison.
type MatchStatus string

const (
	StatusPerfectMatch MatchStatus = "perfect_match"
	StatusPartialMatch MatchStatus = "partial_match"
	StatusNoMatch      MatchStatus = "no_match"
)

// ScheduleMatchResult is the per-day detail of comparing a required weekly
// schedule against an offered one.
type ScheduleMatchResult struct {
	Score             float64     `json:"score"`
	MatchingDays      []string    `json:"matchingDays"`
	MissingDays       []string    `json:"missingDays"`
	InsufficientHours []string    `json:"insufficientHours"`
	Status            MatchStatus `json:"matchStatus"`
}

// SchedulePolicy selects one of the legacy availability comparators. The
// variants disagree on threshold semantics and are kept separate until the
// product decision lands; see DESIGN.md.
type SchedulePolicy interface {
	Name() string
	Compare(required, offered models.WeeklySchedule) ScheduleMatchResult
}

const (
	PolicyCoarse     = "coarse"
	PolicyOverlap    = "overlap"
	PolicyAnyOverlap = "any-overlap"
)

// DefaultPolicy is the canonical interval-overlap comparator.
func DefaultPolicy() SchedulePolicy {
	return OverlapPolicy{}
}

// PolicyByName resolves a configured policy name.
func PolicyByName(name string) (SchedulePolicy, error) {
	switch name {
	case "", PolicyOverlap:
		return OverlapPolicy{}, nil
	case PolicyCoarse:
		return CoarsePolicy{}, nil
	case PolicyAnyOverlap:
		return AnyOverlapPolicy{}, nil
	}
	return nil, fmt.Errorf("unknown schedule policy %q", name)
}

var timeOfDayRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

var weekdayNames = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

var coarseWeekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}

// validSchedule checks every entry: canonical weekday name, 24-hour HH:MM
// bounds, start strictly before end. Comparators fail closed on the first
// violation instead of surfacing an error.
func validSchedule(s models.WeeklySchedule) bool {
	for _, e := range s {
		if !weekdayNames[e.Day] {
			return false
		}
		if !timeOfDayRe.MatchString(e.Hours.Start) || !timeOfDayRe.MatchString(e.Hours.End) {
			return false
		}
		// HH:MM strings order lexicographically once validated
		if e.Hours.Start >= e.Hours.End {
			return false
		}
	}
	return true
}

// minuteOfDay assumes a validated HH:MM string.
func minuteOfDay(t string) int {
	hh := int(t[0]-'0')*10 + int(t[1]-'0')
	mm := int(t[3]-'0')*10 + int(t[4]-'0')
	return hh*60 + mm
}

func overlapMinutes(a, b models.TimeRange) int {
	start := minuteOfDay(a.Start)
	if s := minuteOfDay(b.Start); s > start {
		start = s
	}
	end := minuteOfDay(a.End)
	if e := minuteOfDay(b.End); e < end {
		end = e
	}
	if end <= start {
		return 0
	}
	return end - start
}

func noMatch() ScheduleMatchResult {
	return ScheduleMatchResult{
		Score:             0,
		MatchingDays:      []string{},
		MissingDays:       []string{},
		InsufficientHours: []string{},
		Status:            StatusNoMatch,
	}
}

func statusForScore(score float64) MatchStatus {
	switch {
	case score >= 0.8:
		return StatusPerfectMatch
	case score > 0:
		return StatusPartialMatch
	default:
		return StatusNoMatch
	}
}

func byDay(s models.WeeklySchedule) map[string]models.TimeRange {
	m := make(map[string]models.TimeRange, len(s))
	for _, e := range s {
		m[e.Day] = e.Hours
	}
	return m
}

// OverlapPolicy is the canonical comparator. A required day counts as
// matching when the offered hours cover at least half of the required
// duration; anything below that is logged as insufficient.
type OverlapPolicy struct{}

func (OverlapPolicy) Name() string { return PolicyOverlap }

func (OverlapPolicy) Compare(required, offered models.WeeklySchedule) ScheduleMatchResult {
	if !validSchedule(required) || !validSchedule(offered) {
		return noMatch()
	}
	if len(required) == 0 {
		return noMatch()
	}

	offeredHours := byDay(offered)
	matching := []string{}
	missing := []string{}
	insufficient := []string{}

	for _, day := range required {
		hours, ok := offeredHours[day.Day]
		if !ok {
			missing = append(missing, day.Day)
			continue
		}
		requiredMin := minuteOfDay(day.Hours.End) - minuteOfDay(day.Hours.Start)
		pct := float64(overlapMinutes(day.Hours, hours)) / float64(requiredMin)
		if pct >= 0.5 {
			matching = append(matching, day.Day)
		} else {
			insufficient = append(insufficient, day.Day)
		}
	}

	score := float64(len(matching)) / float64(len(required))
	return ScheduleMatchResult{
		Score:             score,
		MatchingDays:      matching,
		MissingDays:       missing,
		InsufficientHours: insufficient,
		Status:            statusForScore(score),
	}
}

// AnyOverlapPolicy is the alternate legacy comparator: any positive overlap
// counts the day as matching, and anything short of the full required
// duration is additionally recorded under insufficient hours. A perfect
// match therefore requires full coverage of every required day.
type AnyOverlapPolicy struct{}

func (AnyOverlapPolicy) Name() string { return PolicyAnyOverlap }

func (AnyOverlapPolicy) Compare(required, offered models.WeeklySchedule) ScheduleMatchResult {
	if !validSchedule(required) || !validSchedule(offered) {
		return noMatch()
	}
	if len(required) == 0 {
		return noMatch()
	}

	offeredHours := byDay(offered)
	matching := []string{}
	missing := []string{}
	insufficient := []string{}

	for _, day := range required {
		hours, ok := offeredHours[day.Day]
		if !ok {
			missing = append(missing, day.Day)
			continue
		}
		requiredMin := minuteOfDay(day.Hours.End) - minuteOfDay(day.Hours.Start)
		overlap := overlapMinutes(day.Hours, hours)
		if overlap > 0 {
			matching = append(matching, day.Day)
			if overlap < requiredMin {
				insufficient = append(insufficient, day.Day)
			}
		} else {
			insufficient = append(insufficient, day.Day)
		}
	}

	score := float64(len(matching)) / float64(len(required))
	status := statusForScore(score)
	if status == StatusPerfectMatch && !(score == 1.0 && len(insufficient) == 0) {
		status = StatusPartialMatch
	}
	return ScheduleMatchResult{
		Score:             score,
		MatchingDays:      matching,
		MissingDays:       missing,
		InsufficientHours: insufficient,
		Status:            status,
	}
}

// CoarsePolicy is the oldest variant: it only counts which of the five
// business weekdays appear in the offered schedule at all, out of five.
// Required hours play no part. Kept selectable rather than silently folded
// into the overlap comparators.
type CoarsePolicy struct{}

func (CoarsePolicy) Name() string { return PolicyCoarse }

func (CoarsePolicy) Compare(required, offered models.WeeklySchedule) ScheduleMatchResult {
	if !validSchedule(required) || !validSchedule(offered) {
		return noMatch()
	}

	offeredHours := byDay(offered)
	matching := []string{}
	missing := []string{}
	for _, day := range coarseWeekdays {
		if _, ok := offeredHours[day]; ok {
			matching = append(matching, day)
		} else {
			missing = append(missing, day)
		}
	}

	score := float64(len(matching)) / float64(len(coarseWeekdays))
	return ScheduleMatchResult{
		Score:             score,
		MatchingDays:      matching,
		MissingDays:       missing,
		InsufficientHours: []string{},
		Status:            statusForScore(score),
	}
}
