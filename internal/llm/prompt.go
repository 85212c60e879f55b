package llm

import (
	"fmt"
	"strings"
)

// OutputSchema describes the JSON object a prompt asks the model to return.
type OutputSchema struct {
	Name   string
	Fields []OutputField
}

// OutputField is one key of an OutputSchema.
type OutputField struct {
	Name        string // JSON key
	Type        string // type hint shown to the model, e.g. "number" or "[\"string\"]"
	Description string
	Required    bool
}

// BuildJSONPrompt appends the output contract and the labelled inputs to preamble.
// Inputs with empty text are omitted.
func BuildJSONPrompt(preamble string, schema OutputSchema, inputs ...PromptInput) string {
	var sb strings.Builder

	sb.WriteString(strings.TrimSpace(preamble))
	sb.WriteString("\n\nReturn ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		hint := field.Type
		if hint == "" {
			hint = `"string"`
		}
		fmt.Fprintf(&sb, "  %q: %s", field.Name, hint)
		if field.Required {
			sb.WriteString(" (required)")
		}
		if field.Description != "" {
			fmt.Fprintf(&sb, " // %s", field.Description)
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\nReturn ONLY the JSON object: no markdown, no explanation, no code fences.\n")

	for _, in := range inputs {
		if strings.TrimSpace(in.Text) == "" {
			continue
		}
		fmt.Fprintf(&sb, "\n%s:\n\"\"\"\n%s\n\"\"\"\n", in.Label, in.Text)
	}
	return sb.String()
}

// PromptInput is a labelled block of user text embedded in a prompt.
type PromptInput struct {
	Label string
	Text  string
}
