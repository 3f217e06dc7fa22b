// internal/models/assignment.go
package models

// Assignment is the persisted form of an accepted rep/gig pairing.
// Breakdown keeps the unweighted per-dimension scores keyed by dimension
// name so a recorded pairing can be audited after weights change.
type Assignment struct {
	ID        string             `json:"id"`
	RepID     string             `json:"repId"`
	GigID     string             `json:"gigId"`
	Score     float64            `json:"score"`
	Breakdown map[string]float64 `json:"breakdown,omitempty"`
	CreatedAt string             `json:"createdAt"`
}
