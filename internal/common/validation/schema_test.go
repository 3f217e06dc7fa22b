package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

func matchRequestSchema() JSONSchema {
	return JSONSchema{
		Type: "object",
		Properties: map[string]Property{
			"repId": {Type: "string", Pattern: strPtr(`^rep-`)},
			"gig": {
				Type: "object",
				Properties: map[string]Property{
					"id":                 {Type: "string"},
					"requiredExperience": {Type: "number", Minimum: floatPtr(0), Maximum: floatPtr(50)},
				},
				Required: []string{"id"},
			},
			"limit": {Type: "number", Minimum: floatPtr(1)},
			"requiredSkills": {
				Type:  "array",
				Items: &Property{Type: "string"},
			},
			"mode": {Type: "string", Enum: []string{"reps-for-gig", "gigs-for-rep"}},
		},
		Required: []string{"repId", "gig"},
	}
}

// ==========================
// ValidateInput Tests
// ==========================

func TestValidateInput_ValidMatchRequest(t *testing.T) {
	result := ValidateInput(map[string]interface{}{
		"repId": "rep-001",
		"gig": map[string]interface{}{
			"id":                 "gig-042",
			"requiredExperience": 5.0,
		},
		"limit":          10.0,
		"requiredSkills": []interface{}{"sales", "crm"},
		"mode":           "reps-for-gig",
	}, matchRequestSchema())

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateInput_MissingRequiredFields(t *testing.T) {
	result := ValidateInput(map[string]interface{}{
		"limit": 5.0,
	}, matchRequestSchema())

	assert.False(t, result.Valid)
	assert.True(t, result.HasErrors("repId"))
	assert.True(t, result.HasErrors("gig"))
	assert.False(t, result.HasErrors("limit"))
}

func TestValidateInput_CollectsAllViolations(t *testing.T) {
	// every field carries a different violation
	result := ValidateInput(map[string]interface{}{
		"repId":          "user-001",
		"gig":            map[string]interface{}{"id": 42.0},
		"mode":           "both-directions",
		"requiredSkills": []interface{}{"sales", 99.0},
	}, matchRequestSchema())

	require.False(t, result.Valid)

	codes := map[string]bool{}
	for _, e := range result.Errors {
		codes[e.Code] = true
	}
	assert.True(t, codes["PATTERN_MISMATCH"])
	assert.True(t, codes["INVALID_ENUM_VALUE"])
	assert.True(t, codes["INVALID_TYPE"])
}

func TestValidateInput_NestedObjectErrorsArePrefixed(t *testing.T) {
	result := ValidateInput(map[string]interface{}{
		"repId": "rep-001",
		"gig":   map[string]interface{}{"requiredExperience": 120.0},
	}, matchRequestSchema())

	require.False(t, result.Valid)
	assert.True(t, result.HasErrors("gig.id"))
	assert.True(t, result.HasErrors("gig.requiredExperience"))

	gigErrors := result.GetErrorsForField("gig")
	assert.Len(t, gigErrors, 2)
}

func TestValidateInput_RejectsExtraFieldsWhenClosed(t *testing.T) {
	schema := matchRequestSchema()
	schema.AdditionalProperties = false

	result := ValidateInput(map[string]interface{}{
		"repId":     "rep-001",
		"gig":       map[string]interface{}{"id": "gig-001"},
		"franchise": "oops",
	}, schema)

	require.False(t, result.Valid)
	assert.True(t, result.HasErrors("franchise"))

	messages := result.GetErrorMessages()
	assert.Contains(t, messages, "franchise: field not allowed in schema")
}

// ==========================
// Activity Naming Tests
// ==========================

func TestValidateActivityNaming(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"matching.score.calculate", true},
		{"data.profiles.query", true},
		{"matching.assignments.record", true},
		{"CalculateMatchScore", false},
		{"matching.score", false},
		{"matching..calculate", false},
		{"matching.Score.calculate", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := ValidateActivityNaming(tt.id)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

// ==========================
// Schema Parsing Tests
// ==========================

func TestGetSchemaFromJSON(t *testing.T) {
	schema, err := GetSchemaFromJSON(`{
		"type": "object",
		"properties": {
			"score": {"type": "number", "minimum": 0, "maximum": 1}
		},
		"required": ["score"]
	}`)

	require.NoError(t, err)
	assert.Equal(t, "object", schema.Type)
	require.Contains(t, schema.Properties, "score")
	require.NotNil(t, schema.Properties["score"].Maximum)
	assert.Equal(t, 1.0, *schema.Properties["score"].Maximum)

	_, err = GetSchemaFromJSON(`{"type": `)
	assert.Error(t, err)
}
