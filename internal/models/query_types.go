// internal/models/query_types.go
package models

type QueryType string

const (
	QueryTypeRepProfile  QueryType = "rep_profile"
	QueryTypeRepProfiles QueryType = "rep_profiles"
	QueryTypeGigPosting  QueryType = "gig_posting"
	QueryTypeGigPostings QueryType = "gig_postings"
)
