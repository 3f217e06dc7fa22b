// internal/models/rep.go
package models

// PerformanceMetrics is the historical track record of a rep on the platform.
type PerformanceMetrics struct {
	ConversionRate float64 `json:"conversionRate"` // 0..1
	Reliability    float64 `json:"reliability"`    // 1..10
	Rating         float64 `json:"rating"`         // 1..5
	CompletedGigs  int     `json:"completedGigs"`
}

// RepProfile describes a person available for gig work. Profiles are owned
// by the persistence layer; workers receive them inline or hydrate them
// from PostgreSQL.
type RepProfile struct {
	ID              string             `json:"id"`
	YearsExperience float64            `json:"yearsExperience"`
	Skills          []string           `json:"skills"`
	Industries      []string           `json:"industries"`
	Languages       []string           `json:"languages"`
	Availability    WeeklySchedule     `json:"availability"`
	Timezone        string             `json:"timezone"`
	Metrics         PerformanceMetrics `json:"performanceMetrics"`
	Region          string             `json:"region"`
}
