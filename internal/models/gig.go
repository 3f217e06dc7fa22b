// internal/models/gig.go
package models

// GigPosting is an open gig to be filled by a rep.
type GigPosting struct {
	ID                     string         `json:"id"`
	Title                  string         `json:"title"`
	RequiredSkills         []string       `json:"requiredSkills"`
	PreferredLanguages     []string       `json:"preferredLanguages"`
	RequiredExperience     float64        `json:"requiredExperience"`
	ExpectedConversionRate float64        `json:"expectedConversionRate"` // 0..1
	Category               string         `json:"category"`
	StartDate              string         `json:"startDate"` // ISO 8601
	EndDate                string         `json:"endDate"`   // ISO 8601
	Timezone               string         `json:"timezone"`
	TargetRegion           string         `json:"targetRegion"`
	RequiredAvailability   WeeklySchedule `json:"requiredAvailability"`
}
