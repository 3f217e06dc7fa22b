package queries

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func decodeBody(t *testing.T, body io.Reader) map[string]interface{} {
	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(body).Decode(&decoded))
	return decoded
}

func boolClause(t *testing.T, body map[string]interface{}) map[string]interface{} {
	query, ok := body["query"].(map[string]interface{})
	require.True(t, ok)
	boolQuery, ok := query["bool"].(map[string]interface{})
	require.True(t, ok)
	return boolQuery
}

// ==========================
// Query Builder Tests
// ==========================

func TestBuildQuery_MissingIndex(t *testing.T) {
	_, err := BuildQuery(nil, CandidateQuery{QueryType: "rep_candidates"})
	assert.ErrorIs(t, err, ErrMissingIndex)
}

func TestBuildQuery_UnknownQueryType(t *testing.T) {
	_, err := BuildQuery(nil, CandidateQuery{Index: "reps", QueryType: "all_documents"})
	assert.ErrorIs(t, err, ErrUnknownQueryType)
}

func TestBuildQuery_RepCandidates_Filters(t *testing.T) {
	cq := CandidateQuery{
		Index:     "reps",
		QueryType: "rep_candidates",
		Filters: map[string]interface{}{
			"skills":        []interface{}{"sales", "crm"},
			"region":        "us-east",
			"minExperience": 5.0,
		},
	}
	cq.Pagination.Size = 20

	req, err := BuildQuery(nil, cq)
	require.NoError(t, err)
	assert.Equal(t, []string{"reps"}, req.Index)

	body := decodeBody(t, req.Body)
	boolQuery := boolClause(t, body)

	filters, ok := boolQuery["filter"].([]interface{})
	require.True(t, ok)
	assert.Len(t, filters, 3)

	encoded, _ := json.Marshal(filters)
	assert.Contains(t, string(encoded), `"skills":["sales","crm"]`)
	assert.Contains(t, string(encoded), `"region":"us-east"`)
	assert.Contains(t, string(encoded), `"years_experience":{"gte":5}`)

	// No keywords: must defaults to match_all
	must, ok := boolQuery["must"].([]interface{})
	require.True(t, ok)
	require.Len(t, must, 1)
	_, hasMatchAll := must[0].(map[string]interface{})["match_all"]
	assert.True(t, hasMatchAll)
}

func TestBuildQuery_RepCandidates_Keywords(t *testing.T) {
	cq := CandidateQuery{
		Index:     "reps",
		QueryType: "rep_candidates",
		Filters: map[string]interface{}{
			"keywords": "cold calling",
		},
	}

	req, err := BuildQuery(nil, cq)
	require.NoError(t, err)

	body := decodeBody(t, req.Body)
	boolQuery := boolClause(t, body)

	must, ok := boolQuery["must"].([]interface{})
	require.True(t, ok)
	require.Len(t, must, 1)

	multiMatch, ok := must[0].(map[string]interface{})["multi_match"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "cold calling", multiMatch["query"])

	_, hasFilter := boolQuery["filter"]
	assert.False(t, hasFilter)
}

func TestBuildQuery_RepCandidates_Sort(t *testing.T) {
	cq := CandidateQuery{
		Index:     "reps",
		QueryType: "rep_candidates",
		Filters: map[string]interface{}{
			"sortBy": "rating",
		},
	}

	req, err := BuildQuery(nil, cq)
	require.NoError(t, err)

	body := decodeBody(t, req.Body)
	sorts, ok := body["sort"].([]interface{})
	require.True(t, ok)
	assert.Equal(t, "desc", sorts[0].(map[string]interface{})["rating"])
}

func TestBuildQuery_GigCandidates_Filters(t *testing.T) {
	cq := CandidateQuery{
		Index:     "gigs",
		QueryType: "gig_candidates",
		Category:  "saas",
		Filters: map[string]interface{}{
			"region":                "us-east",
			"maxRequiredExperience": 8.0,
		},
	}

	req, err := BuildQuery(nil, cq)
	require.NoError(t, err)

	body := decodeBody(t, req.Body)
	boolQuery := boolClause(t, body)

	filters, ok := boolQuery["filter"].([]interface{})
	require.True(t, ok)
	assert.Len(t, filters, 3)

	encoded, _ := json.Marshal(filters)
	assert.Contains(t, string(encoded), `"category":"saas"`)
	assert.Contains(t, string(encoded), `"target_region":"us-east"`)
	assert.Contains(t, string(encoded), `"required_experience":{"lte":8}`)
}

func TestBuildQuery_GigCandidates_ExplicitCategoryWins(t *testing.T) {
	cq := CandidateQuery{
		Index:     "gigs",
		QueryType: "gig_candidates",
		Category:  "fintech",
		Filters: map[string]interface{}{
			"category": "saas",
		},
	}

	req, err := BuildQuery(nil, cq)
	require.NoError(t, err)

	body := decodeBody(t, req.Body)
	encoded, _ := json.Marshal(boolClause(t, body)["filter"])
	assert.Contains(t, string(encoded), `"category":"saas"`)
	assert.NotContains(t, string(encoded), `"fintech"`)
}

func TestBuildQuery_SimilarGigs(t *testing.T) {
	cq := CandidateQuery{
		Index:     "gigs",
		QueryType: "similar_gigs",
		GigID:     "gig-42",
	}

	req, err := BuildQuery(nil, cq)
	require.NoError(t, err)

	body := decodeBody(t, req.Body)
	query := body["query"].(map[string]interface{})
	mlt, ok := query["more_like_this"].(map[string]interface{})
	require.True(t, ok)

	likes := mlt["like"].([]interface{})
	assert.Equal(t, "gig-42", likes[0].(map[string]interface{})["_id"])
}

func TestBuildQuery_SimilarGigs_NoID(t *testing.T) {
	cq := CandidateQuery{
		Index:     "gigs",
		QueryType: "similar_gigs",
	}

	req, err := BuildQuery(nil, cq)
	require.NoError(t, err)

	body := decodeBody(t, req.Body)
	query := body["query"].(map[string]interface{})
	_, hasMatchNone := query["match_none"]
	assert.True(t, hasMatchNone)
}

func TestStringList(t *testing.T) {
	terms, ok := stringList([]interface{}{"a", 3, "b"})
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, terms)

	_, ok = stringList([]interface{}{})
	assert.False(t, ok)

	_, ok = stringList("not-a-list")
	assert.False(t, ok)
}
