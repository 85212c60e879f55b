package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse_Valid(t *testing.T) {
	res, err := ParseResponse(validResponse)
	require.NoError(t, err)

	assert.Equal(t, 82, res.OverallScore)
	assert.Equal(t, 78, res.SkillsScore)
	assert.Equal(t, 88, res.ExperienceScore)
	assert.Equal(t, 90, res.FormatScore)
	assert.Equal(t, 70, res.KeywordsScore)
	assert.Equal(t, []string{"Quantify the migration project", "Add a skills section"}, res.Suggestions)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, res.MatchedKeywords)
	assert.Equal(t, []string{"Kubernetes", "Terraform"}, res.MissingKeywords)
	assert.Equal(t, []string{"Mention on-call experience"}, res.Recommendations)
}

func TestParseResponse_Fenced(t *testing.T) {
	res, err := ParseResponse("```json\n{\"overallScore\": 64, \"suggestions\": []}\n```")
	require.NoError(t, err)
	assert.Equal(t, 64, res.OverallScore)
}

func TestParseResponse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace", "  \n "},
		{"not json", "I'm sorry, I can't score this resume."},
		{"truncated json", `{"overallScore": 80, "suggestions": [`},
		{"score is string", `{"overallScore": "80", "suggestions": []}`},
		{"score is null", `{"overallScore": null, "suggestions": []}`},
		{"score missing", `{"suggestions": ["x"]}`},
		{"suggestions is string", `{"overallScore": 80, "suggestions": "add metrics"}`},
		{"suggestions missing", `{"overallScore": 80}`},
		{"array root", `[{"overallScore": 80, "suggestions": []}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseResponse(tt.raw)
			var pe *ParseError
			require.True(t, errors.As(err, &pe), "got %v", err)
		})
	}
}

func TestParseResponse_NormalizesScores(t *testing.T) {
	res, err := ParseResponse(`{
		"overallScore": 140.2,
		"skillsScore": -3,
		"experienceScore": "66.5",
		"formatScore": "n/a",
		"suggestions": []
	}`)
	require.NoError(t, err)

	assert.Equal(t, 100, res.OverallScore)
	assert.Equal(t, 0, res.SkillsScore)
	assert.Equal(t, 67, res.ExperienceScore)
	assert.Equal(t, 100, res.FormatScore, "non-numeric component takes the overall score")
	assert.Equal(t, 100, res.KeywordsScore, "missing component takes the overall score")
	assert.True(t, res.InRange())
}

func TestParseResponse_HugeScoresClampHigh(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"1e20 overall", `{"overallScore": 1e20, "suggestions": []}`},
		{"1e300 overall", `{"overallScore": 1e300, "suggestions": []}`},
		{"1e300 component", `{"overallScore": 100, "skillsScore": 1e300, "keywordsScore": "1e20", "suggestions": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ParseResponse(tt.doc)
			require.NoError(t, err)
			assert.Equal(t, 100, res.OverallScore)
			assert.Equal(t, 100, res.SkillsScore)
			assert.Equal(t, 100, res.KeywordsScore)
		})
	}

	res, err := ParseResponse(`{"overallScore": -1e300, "suggestions": []}`)
	require.NoError(t, err)
	assert.Equal(t, 0, res.OverallScore)
}

func TestParseResponse_SanitizesLists(t *testing.T) {
	res, err := ParseResponse(`{
		"overallScore": 70.5,
		"suggestions": ["  keep  ", 3, null, "", {"a": 1}, "second"],
		"strongPoints": "not a list",
		"matchedKeywords": ["Go", "go", "SQL"],
		"missingKeywords": ["sql", "Docker", "docker", " "]
	}`)
	require.NoError(t, err)

	assert.Equal(t, 71, res.OverallScore)
	assert.Equal(t, []string{"keep", "second"}, res.Suggestions)
	assert.Equal(t, []string{}, res.StrongPoints)
	assert.Equal(t, []string{"Go", "SQL"}, res.MatchedKeywords)
	assert.Equal(t, []string{"Docker"}, res.MissingKeywords)
	assert.Equal(t, []string{}, res.Recommendations)
}
