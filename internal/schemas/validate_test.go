package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	schemafiles "github.com/jonathan/resume-ats/schemas"
)

func TestValidate_AnalysisResponse(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
		field   string
	}{
		{"minimal valid", `{"overallScore": 72, "suggestions": []}`, false, ""},
		{"float score", `{"overallScore": 72.5, "suggestions": ["a"], "extra": true}`, false, ""},
		{"string score", `{"overallScore": "72", "suggestions": []}`, true, "overallScore"},
		{"suggestions not list", `{"overallScore": 72, "suggestions": "do better"}`, true, "suggestions"},
		{"missing score", `{"suggestions": []}`, true, "(root)"},
		{"not an object", `[1, 2]`, true, "(root)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(schemafiles.AnalysisResponse, tt.doc)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			require.NotEmpty(t, ve.Errors)
			assert.Equal(t, tt.field, ve.Errors[0].Field)
		})
	}
}

func TestValidate_NotJSON(t *testing.T) {
	err := Validate(schemafiles.AnalysisResponse, "this is not json")
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("missing.schema.json", `{}`)
	var le *SchemaLoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "missing.schema.json", le.Name)
}

func TestValidate_AnalysisResult(t *testing.T) {
	valid := `{
		"overallScore": 71, "skillsScore": 60, "experienceScore": 85, "formatScore": 80, "keywordsScore": 60,
		"suggestions": ["a"], "strongPoints": [], "missingKeywords": ["skills"], "matchedKeywords": ["sql"],
		"recommendations": []
	}`
	assert.NoError(t, Validate(schemafiles.AnalysisResult, valid))

	outOfRange := `{
		"overallScore": 171, "skillsScore": 60, "experienceScore": 85, "formatScore": 80, "keywordsScore": 60,
		"suggestions": [], "strongPoints": [], "missingKeywords": [], "matchedKeywords": [], "recommendations": []
	}`
	assert.Error(t, Validate(schemafiles.AnalysisResult, outOfRange))
}
