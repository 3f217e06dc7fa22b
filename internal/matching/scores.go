// internal/matching/scores.go
package matching

import (
	"math"

	"gigmatch-workers/internal/models"
)

// Breakdown carries the eight unweighted dimension scores, each in [0,1].
// It is returned alongside the weighted total so downstream UIs can explain
// why a pair scored the way it did.
type Breakdown struct {
	Experience   float64 `json:"experience"`
	Skills       float64 `json:"skills"`
	Industry     float64 `json:"industry"`
	Language     float64 `json:"language"`
	Availability float64 `json:"availability"`
	Timezone     float64 `json:"timezone"`
	Performance  float64 `json:"performance"`
	Region       float64 `json:"region"`
}

// Dimensions returns the breakdown keyed by dimension name, the shape it
// is persisted and reported in.
func (b Breakdown) Dimensions() map[string]float64 {
	return map[string]float64{
		"experience":   b.Experience,
		"skills":       b.Skills,
		"industry":     b.Industry,
		"language":     b.Language,
		"availability": b.Availability,
		"timezone":     b.Timezone,
		"performance":  b.Performance,
		"region":       b.Region,
	}
}

// NeutralBreakdown is used when no profile data is available: every
// dimension sits at the midpoint rather than punishing an unknown rep.
func NeutralBreakdown() Breakdown {
	return Breakdown{
		Experience:   0.5,
		Skills:       0.5,
		Industry:     0.5,
		Language:     0.5,
		Availability: 0.5,
		Timezone:     0.5,
		Performance:  0.5,
		Region:       0.5,
	}
}

// ExperienceScore rewards meeting the requirement with a diminishing bonus
// above it. A posting requiring zero years is automatically satisfied.
func ExperienceScore(repYears, requiredYears float64) float64 {
	if requiredYears <= 0 {
		return 1.0
	}
	if repYears >= requiredYears {
		return math.Min(1.0, 0.8+(repYears-requiredYears)*0.04)
	}
	return math.Max(0, repYears/requiredYears*0.8)
}

// SkillsScore is the fraction of required skills the rep covers.
// An empty requirement is automatically satisfied.
func SkillsScore(repSkills, requiredSkills []string) float64 {
	return coverage(repSkills, requiredSkills)
}

// LanguageScore mirrors SkillsScore over preferred languages.
func LanguageScore(repLanguages, preferredLanguages []string) float64 {
	return coverage(repLanguages, preferredLanguages)
}

func coverage(have, required []string) float64 {
	if len(required) == 0 {
		return 1.0
	}
	haveSet := make(map[string]struct{}, len(have))
	for _, s := range have {
		haveSet[s] = struct{}{}
	}
	matched := 0
	for _, s := range required {
		if _, ok := haveSet[s]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(required))
}

// CategoryScore is binary: the posting's category either appears in the
// rep's industries or it does not. Missing data on either side scores 0.
func CategoryScore(repIndustries []string, postingCategory string) float64 {
	if postingCategory == "" || len(repIndustries) == 0 {
		return 0
	}
	for _, ind := range repIndustries {
		if ind == postingCategory {
			return 1.0
		}
	}
	return 0
}

// TimezoneScore does a plain identifier comparison; there is no geographic
// distance model, a mismatch is simply half credit.
func TimezoneScore(repTz, gigTz string) float64 {
	if repTz == gigTz {
		return 1.0
	}
	return 0.5
}

// PerformanceScore blends conversion against expectation (40%) with
// reliability (30%) and rating (30%).
func PerformanceScore(m models.PerformanceMetrics, expectedConversionRate float64) float64 {
	conversion := 0.4
	if expectedConversionRate > 0 && m.ConversionRate < expectedConversionRate {
		conversion = 0.4 * m.ConversionRate / expectedConversionRate
	}
	reliability := m.Reliability / 10.0 * 0.3
	rating := m.Rating / 5.0 * 0.3
	return conversion + reliability + rating
}

// RegionScore is binary region equality.
func RegionScore(repRegion, targetRegion string) float64 {
	if repRegion == targetRegion {
		return 1.0
	}
	return 0
}

// AvailabilityScore delegates the weekly-schedule comparison to the given
// policy. Malformed schedules fail closed to 0 inside the policy.
func AvailabilityScore(rep models.WeeklySchedule, required models.WeeklySchedule, policy SchedulePolicy) float64 {
	return policy.Compare(required, rep).Score
}

// ScoreAll computes all eight dimension scores for one rep/gig pair.
func ScoreAll(rep *models.RepProfile, gig *models.GigPosting, policy SchedulePolicy) Breakdown {
	return Breakdown{
		Experience:   ExperienceScore(rep.YearsExperience, gig.RequiredExperience),
		Skills:       SkillsScore(rep.Skills, gig.RequiredSkills),
		Industry:     CategoryScore(rep.Industries, gig.Category),
		Language:     LanguageScore(rep.Languages, gig.PreferredLanguages),
		Availability: AvailabilityScore(rep.Availability, gig.RequiredAvailability, policy),
		Timezone:     TimezoneScore(rep.Timezone, gig.Timezone),
		Performance:  PerformanceScore(rep.Metrics, gig.ExpectedConversionRate),
		Region:       RegionScore(rep.Region, gig.TargetRegion),
	}
}
