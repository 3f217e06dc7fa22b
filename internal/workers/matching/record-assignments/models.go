// internal/workers/matching/record-assignments/models.go
package recordassignments

type Input struct {
	Assignments []AssignmentInput `json:"assignments"`
}

// AssignmentInput mirrors the pairs emitted by the assignment generator;
// Breakdown arrives dimension-keyed, exactly as MatchResult serializes it.
type AssignmentInput struct {
	RepID     string             `json:"repId"`
	GigID     string             `json:"gigId"`
	Score     float64            `json:"score"`
	Breakdown map[string]float64 `json:"breakdown,omitempty"`
}

type Output struct {
	Recorded      int      `json:"recorded"`
	Duplicates    int      `json:"duplicates"`
	AssignmentIDs []string `json:"assignmentIds"`
}
