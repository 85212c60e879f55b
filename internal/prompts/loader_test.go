package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("analysis.json", "ats-analysis")
	require.NoError(t, err)
	assert.Contains(t, prompt, "Applicant Tracking System")
	assert.Contains(t, prompt, "{{.JobClause}}")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("analysis.json", "nonexistent-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() { MustGet("nonexistent.json", "some-key") })
	assert.NotPanics(t, func() {
		assert.NotEmpty(t, MustGet("analysis.json", "job-clause"))
	})
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		want     string
	}{
		{"replaces", "Hello {{.Name}}, welcome to {{.Company}}!", map[string]string{"Name": "Alice", "Company": "Acme"}, "Hello Alice, welcome to Acme!"},
		{"no placeholders", "plain", map[string]string{"Key": "v"}, "plain"},
		{"empty data keeps placeholder", "Hello {{.Name}}", nil, "Hello {{.Name}}"},
		{"repeated placeholder", "{{.X}}-{{.X}}", map[string]string{"X": "y"}, "y-y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.template, tt.data))
		})
	}
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List("analysis.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"ats-analysis", "job-clause", "no-job-clause"}, keys)
}

func TestCaching(t *testing.T) {
	ClearCache()

	first, err := Get("analysis.json", "ats-analysis")
	require.NoError(t, err)
	second, err := Get("analysis.json", "ats-analysis")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
