// Package schemas holds the JSON Schema documents used to check analysis payloads.
package schemas

import "embed"

// FS contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// Schema file names.
const (
	AnalysisResponse = "analysis_response.schema.json"
	AnalysisResult   = "analysis_result.schema.json"
)
