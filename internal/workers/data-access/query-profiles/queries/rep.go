// internal/workers/data-access/query-profiles/queries/rep.go
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

const repProfileColumns = `id, years_experience, skills, industries, languages, availability,
	       timezone, conversion_rate, reliability, rating, completed_gigs, region`

func scanRepProfile(scan func(dest ...interface{}) error) (*models.RepProfile, error) {
	var profile models.RepProfile
	var skills, industries, languages, availability []byte

	err := scan(
		&profile.ID, &profile.YearsExperience,
		&skills, &industries, &languages, &availability,
		&profile.Timezone,
		&profile.Metrics.ConversionRate, &profile.Metrics.Reliability,
		&profile.Metrics.Rating, &profile.Metrics.CompletedGigs,
		&profile.Region,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(skills, &profile.Skills); err != nil {
		profile.Skills = nil
	}
	if err := json.Unmarshal(industries, &profile.Industries); err != nil {
		profile.Industries = nil
	}
	if err := json.Unmarshal(languages, &profile.Languages); err != nil {
		profile.Languages = nil
	}
	if err := json.Unmarshal(availability, &profile.Availability); err != nil {
		profile.Availability = nil
	}

	return &profile, nil
}

func RepProfile(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	repID, ok := params["repId"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	row := db.QueryRowContext(ctx, `
		SELECT `+repProfileColumns+`
		FROM rep_profiles
		WHERE id = $1`, repID)

	profile, err := scanRepProfile(row.Scan)
	if err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return profile, 1, execTime, nil
}

func RepProfiles(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	start := time.Now()

	var rows *sql.Rows
	var err error

	if repIDs, ok := params["repIds"].([]string); ok && len(repIDs) > 0 {
		placeholders := make([]string, len(repIDs))
		args := make([]interface{}, len(repIDs))
		for i, id := range repIDs {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
			args[i] = id
		}
		query := `SELECT ` + repProfileColumns + `
		          FROM rep_profiles WHERE id IN (` + strings.Join(placeholders, ",") + `)`
		rows, err = db.QueryContext(ctx, query, args...)
	} else if region, ok := regionFilter(params); ok {
		rows, err = db.QueryContext(ctx, `
			SELECT `+repProfileColumns+`
			FROM rep_profiles
			WHERE region = $1`, region)
	} else {
		rows, err = db.QueryContext(ctx, `
			SELECT `+repProfileColumns+`
			FROM rep_profiles`)
	}
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	results := []*models.RepProfile{}
	for rows.Next() {
		profile, err := scanRepProfile(rows.Scan)
		if err != nil {
			return nil, 0, 0, err
		}
		results = append(results, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}

func regionFilter(params map[string]interface{}) (string, bool) {
	filters, ok := params["filters"].(map[string]interface{})
	if !ok {
		return "", false
	}
	region, ok := filters["region"].(string)
	return region, ok && region != ""
}
