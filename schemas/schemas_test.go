package schemas_test

import (
	"encoding/json"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-ats/schemas"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	files, err := fs.Glob(schemas.FS, "*.schema.json")
	require.NoError(t, err)
	assert.Contains(t, files, schemas.AnalysisResponse)
	assert.Contains(t, files, schemas.AnalysisResult)

	for _, name := range files {
		t.Run(name, func(t *testing.T) {
			data, err := schemas.FS.ReadFile(name)
			require.NoError(t, err)

			var doc map[string]any
			require.NoError(t, json.Unmarshal(data, &doc))
			assert.Equal(t, "object", doc["type"])
			assert.Equal(t, name, doc["$id"])
		})
	}
}
