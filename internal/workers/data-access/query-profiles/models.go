// internal/workers/data-access/query-profiles/models.go
package queryprofiles

import "gigmatch-workers/internal/models"

type Input struct {
	QueryType string                 `json:"queryType"`
	RepID     string                 `json:"repId,omitempty"`
	RepIDs    []string               `json:"repIds,omitempty"`
	GigID     string                 `json:"gigId,omitempty"`
	GigIDs    []string               `json:"gigIds,omitempty"`
	Filters   map[string]interface{} `json:"filters,omitempty"`
}

type Output struct {
	Data               interface{} `json:"data"`
	RowCount           int         `json:"rowCount"`
	QueryExecutionTime int64       `json:"queryExecutionTime"` // milliseconds
}

type QueryType = models.QueryType

// Export constants for external use
var (
	QueryTypeRepProfile  = models.QueryTypeRepProfile
	QueryTypeRepProfiles = models.QueryTypeRepProfiles
	QueryTypeGigPosting  = models.QueryTypeGigPosting
	QueryTypeGigPostings = models.QueryTypeGigPostings
)
