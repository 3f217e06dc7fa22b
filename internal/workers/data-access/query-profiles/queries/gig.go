// internal/workers/data-access/query-profiles/queries/gig.go
package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gigmatch-workers/internal/models"
)

const gigPostingColumns = `id, title, required_skills, preferred_languages, required_experience,
	       expected_conversion_rate, category, start_date, end_date, timezone,
	       target_region, required_availability`

func scanGigPosting(scan func(dest ...interface{}) error) (*models.GigPosting, error) {
	var gig models.GigPosting
	var requiredSkills, preferredLanguages, requiredAvailability []byte

	err := scan(
		&gig.ID, &gig.Title,
		&requiredSkills, &preferredLanguages,
		&gig.RequiredExperience, &gig.ExpectedConversionRate,
		&gig.Category, &gig.StartDate, &gig.EndDate,
		&gig.Timezone, &gig.TargetRegion,
		&requiredAvailability,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(requiredSkills, &gig.RequiredSkills); err != nil {
		gig.RequiredSkills = nil
	}
	if err := json.Unmarshal(preferredLanguages, &gig.PreferredLanguages); err != nil {
		gig.PreferredLanguages = nil
	}
	if err := json.Unmarshal(requiredAvailability, &gig.RequiredAvailability); err != nil {
		gig.RequiredAvailability = nil
	}

	return &gig, nil
}

func GigPosting(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	gigID, ok := params["gigId"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	row := db.QueryRowContext(ctx, `
		SELECT `+gigPostingColumns+`
		FROM gig_postings
		WHERE id = $1`, gigID)

	gig, err := scanGigPosting(row.Scan)
	if err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return gig, 1, execTime, nil
}

func GigPostings(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	start := time.Now()

	var rows *sql.Rows
	var err error

	if gigIDs, ok := params["gigIds"].([]string); ok && len(gigIDs) > 0 {
		placeholders := make([]string, len(gigIDs))
		args := make([]interface{}, len(gigIDs))
		for i, id := range gigIDs {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
			args[i] = id
		}
		query := `SELECT ` + gigPostingColumns + `
		          FROM gig_postings WHERE id IN (` + strings.Join(placeholders, ",") + `)`
		rows, err = db.QueryContext(ctx, query, args...)
	} else if category, ok := categoryFilter(params); ok {
		rows, err = db.QueryContext(ctx, `
			SELECT `+gigPostingColumns+`
			FROM gig_postings
			WHERE category = $1`, category)
	} else {
		rows, err = db.QueryContext(ctx, `
			SELECT `+gigPostingColumns+`
			FROM gig_postings`)
	}
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	results := []*models.GigPosting{}
	for rows.Next() {
		gig, err := scanGigPosting(rows.Scan)
		if err != nil {
			return nil, 0, 0, err
		}
		results = append(results, gig)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}

func categoryFilter(params map[string]interface{}) (string, bool) {
	filters, ok := params["filters"].(map[string]interface{})
	if !ok {
		return "", false
	}
	category, ok := filters["category"].(string)
	return category, ok && category != ""
}
