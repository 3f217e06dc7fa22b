// internal/workers/data-access/search-candidates/queries/builders.go
package queries

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrUnknownQueryType = errors.New("unknown query type")
	ErrMissingIndex     = errors.New("index name is required")
)

// CandidateQuery defines the structure of a search request
type CandidateQuery struct {
	Index      string
	QueryType  string
	Filters    map[string]interface{}
	GigID      string
	Category   string
	Pagination struct {
		From int
		Size int
	}
}

// BuildQuery builds an Elasticsearch search request based on query type and filters
func BuildQuery(esClient *elasticsearch.Client, cq CandidateQuery) (*esapi.SearchRequest, error) {
	if cq.Index == "" {
		return nil, ErrMissingIndex
	}

	var queryBody map[string]interface{}

	switch cq.QueryType {
	case "rep_candidates":
		queryBody = buildRepCandidatesQuery(cq)
	case "gig_candidates":
		queryBody = buildGigCandidatesQuery(cq)
	case "similar_gigs":
		queryBody = buildSimilarGigsQuery(cq)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownQueryType, cq.QueryType)
	}

	body, _ := json.Marshal(queryBody)

	req := esapi.SearchRequest{
		Index:  []string{cq.Index},
		Body:   strings.NewReader(string(body)),
		From:   &cq.Pagination.From,
		Size:   &cq.Pagination.Size,
		Pretty: true,
	}

	return &req, nil
}

// buildRepCandidatesQuery narrows the rep population before exact scoring runs
func buildRepCandidatesQuery(cq CandidateQuery) map[string]interface{} {
	boolQuery := make(map[string]interface{})
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	// Keyword search across skills and industries
	if keywords, ok := cq.Filters["keywords"].(string); ok && keywords != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  keywords,
				"fields": []string{"skills^3", "industries^2", "languages"},
				"type":   "best_fields",
			},
		})
	}

	// Skills filter: candidate must hold at least one of the required skills
	if skills, ok := stringList(cq.Filters["skills"]); ok {
		filterClauses = append(filterClauses, map[string]interface{}{
			"terms": map[string]interface{}{"skills": skills},
		})
	}

	// Language filter
	if languages, ok := stringList(cq.Filters["languages"]); ok {
		filterClauses = append(filterClauses, map[string]interface{}{
			"terms": map[string]interface{}{"languages": languages},
		})
	}

	// Region filter
	if region, ok := cq.Filters["region"].(string); ok && region != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"region": region},
		})
	}

	// Minimum years of experience
	if minExp, ok := numeric(cq.Filters["minExperience"]); ok && minExp > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"years_experience": map[string]interface{}{"gte": minExp},
			},
		})
	}

	// Minimum rating
	if minRating, ok := numeric(cq.Filters["minRating"]); ok && minRating > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"rating": map[string]interface{}{"gte": minRating},
			},
		})
	}

	if len(mustClauses) == 0 {
		mustClauses = append(mustClauses, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	boolQuery["must"] = mustClauses
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
	}

	if sortBy, ok := cq.Filters["sortBy"].(string); ok {
		switch sortBy {
		case "years_experience":
			query["sort"] = []map[string]interface{}{{"years_experience": "desc"}}
		case "rating":
			query["sort"] = []map[string]interface{}{{"rating": "desc"}}
		}
	}

	return query
}

// buildGigCandidatesQuery searches open gigs matching a rep's strengths
func buildGigCandidatesQuery(cq CandidateQuery) map[string]interface{} {
	boolQuery := make(map[string]interface{})
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if keywords, ok := cq.Filters["keywords"].(string); ok && keywords != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  keywords,
				"fields": []string{"title^3", "required_skills^2", "category"},
				"type":   "best_fields",
			},
		})
	}

	if skills, ok := stringList(cq.Filters["skills"]); ok {
		filterClauses = append(filterClauses, map[string]interface{}{
			"terms": map[string]interface{}{"required_skills": skills},
		})
	}

	if category, ok := cq.Filters["category"].(string); ok && category != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"category": category},
		})
	} else if cq.Category != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"category": cq.Category},
		})
	}

	if region, ok := cq.Filters["region"].(string); ok && region != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"target_region": region},
		})
	}

	// Experience ceiling: gigs the rep actually qualifies for
	if maxReq, ok := numeric(cq.Filters["maxRequiredExperience"]); ok && maxReq > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"required_experience": map[string]interface{}{"lte": maxReq},
			},
		})
	}

	if len(mustClauses) == 0 {
		mustClauses = append(mustClauses, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	boolQuery["must"] = mustClauses
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
	}
}

// buildSimilarGigsQuery builds a "gigs like this one" query
func buildSimilarGigsQuery(cq CandidateQuery) map[string]interface{} {
	if cq.GigID == "" {
		return map[string]interface{}{
			"query": map[string]interface{}{
				"match_none": map[string]interface{}{},
			},
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"more_like_this": map[string]interface{}{
				"fields": []string{"title", "required_skills", "category"},
				"like": []map[string]interface{}{
					{"_index": cq.Index, "_id": cq.GigID},
				},
				"min_term_freq":   1,
				"max_query_terms": 12,
				"min_doc_freq":    1,
				"min_word_length": 3,
			},
		},
	}
}

func stringList(v interface{}) ([]string, bool) {
	items, ok := v.([]interface{})
	if !ok || len(items) == 0 {
		return nil, false
	}
	terms := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			terms = append(terms, s)
		}
	}
	return terms, len(terms) > 0
}

func numeric(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
