// internal/workers/data-access/search-candidates/queries/registry.go
package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

type QueryResult struct {
	Data      []map[string]interface{}
	TotalHits int64
	MaxScore  float64
	Took      int64
}

func Execute(ctx context.Context, esClient *elasticsearch.Client, input map[string]interface{}) (*QueryResult, error) {
	cq := CandidateQuery{
		Pagination: struct{ From, Size int }{0, 20},
	}
	if index, ok := input["indexName"].(string); ok {
		cq.Index = index
	}
	if queryType, ok := input["queryType"].(string); ok {
		cq.QueryType = queryType
	}
	if filters, ok := input["filters"].(map[string]interface{}); ok {
		cq.Filters = filters
	} else {
		cq.Filters = map[string]interface{}{}
	}
	if gigID, ok := input["gigId"].(string); ok {
		cq.GigID = gigID
	}
	if category, ok := input["category"].(string); ok {
		cq.Category = category
	}
	if pagination, ok := input["pagination"].(map[string]interface{}); ok {
		if from, exists := pagination["from"].(float64); exists && from > 0 {
			cq.Pagination.From = int(from)
		}
		if size, exists := pagination["size"].(float64); exists && size > 0 {
			cq.Pagination.Size = int(size)
			if cq.Pagination.Size > 100 {
				cq.Pagination.Size = 100
			}
		}
	}

	req, err := BuildQuery(esClient, cq)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := req.Do(ctx, esClient)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search query failed: %s", res.String())
	}

	var r map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	hits, ok := r["hits"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("malformed search response: missing hits")
	}

	var total float64
	if t, ok := hits["total"].(map[string]interface{}); ok {
		total, _ = t["value"].(float64)
	}
	maxScore := 0.0
	if ms, ok := hits["max_score"].(float64); ok {
		maxScore = ms
	}

	var data []map[string]interface{}
	if hitList, ok := hits["hits"].([]interface{}); ok {
		for _, hit := range hitList {
			doc, ok := hit.(map[string]interface{})
			if !ok {
				continue
			}
			if source, ok := doc["_source"].(map[string]interface{}); ok {
				data = append(data, source)
			}
		}
	}

	return &QueryResult{
		Data:      data,
		TotalHits: int64(total),
		MaxScore:  maxScore,
		Took:      time.Since(start).Milliseconds(),
	}, nil
}
