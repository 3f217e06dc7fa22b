package queryprofiles

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"gigmatch-workers/internal/common/logger"
	"gigmatch-workers/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	h := NewHandler(createTestConfig(), db, logger.NewTestLogger(t))
	return h, mock, func() { db.Close() }
}

var repColumns = []string{
	"id", "years_experience", "skills", "industries", "languages", "availability",
	"timezone", "conversion_rate", "reliability", "rating", "completed_gigs", "region",
}

var gigColumns = []string{
	"id", "title", "required_skills", "preferred_languages", "required_experience",
	"expected_conversion_rate", "category", "start_date", "end_date", "timezone",
	"target_region", "required_availability",
}

func repRow(id string) []driverValue {
	return []driverValue{
		id, 6.0,
		[]byte(`["sales","crm"]`), []byte(`["saas"]`), []byte(`["english"]`),
		[]byte(`[{"day":"monday","hours":{"start":"09:00","end":"17:00"}}]`),
		"America/New_York", 0.25, 8.0, 4.5, 42, "us-east",
	}
}

func gigRow(id string) []driverValue {
	return []driverValue{
		id, "Outbound SDR",
		[]byte(`["sales"]`), []byte(`["english"]`),
		5.0, 0.2, "saas", "2026-09-01", "2026-12-01",
		"America/New_York", "us-east",
		[]byte(`[{"day":"monday","hours":{"start":"09:00","end":"17:00"}}]`),
	}
}

type driverValue = driver.Value

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_RepProfile(t *testing.T) {
	h, mock, cleanup := newTestHandler(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM rep_profiles").
		WithArgs("rep-1").
		WillReturnRows(sqlmock.NewRows(repColumns).AddRow(repRow("rep-1")...))

	output, err := h.Execute(context.Background(), &Input{
		QueryType: string(models.QueryTypeRepProfile),
		RepID:     "rep-1",
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, output.RowCount)

	profile, ok := output.Data.(*models.RepProfile)
	assert.True(t, ok)
	assert.Equal(t, "rep-1", profile.ID)
	assert.Equal(t, []string{"sales", "crm"}, profile.Skills)
	assert.Equal(t, 42, profile.Metrics.CompletedGigs)
	assert.Len(t, profile.Availability, 1)
	assert.Equal(t, "monday", profile.Availability[0].Day)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_RepProfiles_ByIDs(t *testing.T) {
	h, mock, cleanup := newTestHandler(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM rep_profiles WHERE id IN").
		WithArgs("rep-1", "rep-2").
		WillReturnRows(sqlmock.NewRows(repColumns).
			AddRow(repRow("rep-1")...).
			AddRow(repRow("rep-2")...))

	output, err := h.Execute(context.Background(), &Input{
		QueryType: string(models.QueryTypeRepProfiles),
		RepIDs:    []string{"rep-1", "rep-2"},
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, output.RowCount)

	profiles, ok := output.Data.([]*models.RepProfile)
	assert.True(t, ok)
	assert.Equal(t, "rep-2", profiles[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_RepProfiles_RegionFilter(t *testing.T) {
	h, mock, cleanup := newTestHandler(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM rep_profiles WHERE region").
		WithArgs("us-east").
		WillReturnRows(sqlmock.NewRows(repColumns).AddRow(repRow("rep-1")...))

	output, err := h.Execute(context.Background(), &Input{
		QueryType: string(models.QueryTypeRepProfiles),
		Filters:   map[string]interface{}{"region": "us-east"},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, output.RowCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_GigPosting(t *testing.T) {
	h, mock, cleanup := newTestHandler(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM gig_postings").
		WithArgs("gig-1").
		WillReturnRows(sqlmock.NewRows(gigColumns).AddRow(gigRow("gig-1")...))

	output, err := h.Execute(context.Background(), &Input{
		QueryType: string(models.QueryTypeGigPosting),
		GigID:     "gig-1",
	})

	assert.NoError(t, err)

	gig, ok := output.Data.(*models.GigPosting)
	assert.True(t, ok)
	assert.Equal(t, "gig-1", gig.ID)
	assert.Equal(t, "Outbound SDR", gig.Title)
	assert.Equal(t, []string{"sales"}, gig.RequiredSkills)
	assert.Len(t, gig.RequiredAvailability, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_GigPostings_CategoryFilter(t *testing.T) {
	h, mock, cleanup := newTestHandler(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM gig_postings WHERE category").
		WithArgs("saas").
		WillReturnRows(sqlmock.NewRows(gigColumns).
			AddRow(gigRow("gig-1")...).
			AddRow(gigRow("gig-2")...))

	output, err := h.Execute(context.Background(), &Input{
		QueryType: string(models.QueryTypeGigPostings),
		Filters:   map[string]interface{}{"category": "saas"},
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, output.RowCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_GigPostings_All(t *testing.T) {
	h, mock, cleanup := newTestHandler(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM gig_postings").
		WillReturnRows(sqlmock.NewRows(gigColumns))

	output, err := h.Execute(context.Background(), &Input{
		QueryType: string(models.QueryTypeGigPostings),
	})

	assert.NoError(t, err)
	assert.Equal(t, 0, output.RowCount)
	assert.NotNil(t, output.Data)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_InvalidQueryType(t *testing.T) {
	h, _, cleanup := newTestHandler(t)
	defer cleanup()

	_, err := h.Execute(context.Background(), &Input{QueryType: "user_sessions"})

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidQueryType)
}

func TestHandler_Execute_NilInput(t *testing.T) {
	h, _, cleanup := newTestHandler(t)
	defer cleanup()

	_, err := h.Execute(context.Background(), nil)
	assert.Error(t, err)
}

func TestHandler_Execute_MissingParam(t *testing.T) {
	h, _, cleanup := newTestHandler(t)
	defer cleanup()

	_, err := h.Execute(context.Background(), &Input{
		QueryType: string(models.QueryTypeRepProfile),
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrQueryExecutionFailed)
}

func TestHandler_Execute_QueryError(t *testing.T) {
	h, mock, cleanup := newTestHandler(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM rep_profiles").
		WithArgs("rep-1").
		WillReturnError(sql.ErrConnDone)

	_, err := h.Execute(context.Background(), &Input{
		QueryType: string(models.QueryTypeRepProfile),
		RepID:     "rep-1",
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrQueryExecutionFailed)
}

func TestHandler_Execute_MalformedJSONColumns(t *testing.T) {
	h, mock, cleanup := newTestHandler(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM rep_profiles").
		WithArgs("rep-1").
		WillReturnRows(sqlmock.NewRows(repColumns).AddRow(
			"rep-1", 6.0,
			[]byte(`not-json`), []byte(`not-json`), []byte(`not-json`), []byte(`not-json`),
			"America/New_York", 0.25, 8.0, 4.5, 42, "us-east",
		))

	output, err := h.Execute(context.Background(), &Input{
		QueryType: string(models.QueryTypeRepProfile),
		RepID:     "rep-1",
	})

	assert.NoError(t, err)
	profile := output.Data.(*models.RepProfile)
	assert.Empty(t, profile.Skills)
	assert.Empty(t, profile.Availability)
}
