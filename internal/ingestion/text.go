// Package ingestion turns resume and job description sources into clean plain text.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	innerSpace  = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	blankRun    = regexp.MustCompile(`\n{3,}`)
	invisibles  = strings.NewReplacer("\u200b", "", "\u200c", "", "\u200d", "", "\ufeff", "")
	lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// bulletMarkers are the list prefixes kept verbatim, including the glyphs
// word processors emit when a resume is pasted.
var bulletMarkers = []string{"- ", "* ", "• ", "· ", "▪ ", "◦ "}

// CleanText normalizes pasted resume or job text while keeping its structure:
// line endings become LF, runs of spaces collapse, headings and bullets keep
// their markers, and at most one blank line separates paragraphs.
// The result is deterministic for a given input.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = invisibles.Replace(lineEndings.Replace(content))

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t\u00a0")
	trimmed := strings.TrimLeft(line, " \t\u00a0")
	if trimmed == "" {
		return ""
	}

	// headings lose their indentation
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	indent := ""
	if n := len(line) - len(trimmed); n > 0 {
		indent = strings.Repeat(" ", n)
	}
	if isBulletLine(trimmed) {
		return indent + trimmed
	}
	return indent + innerSpace.ReplaceAllString(trimmed, " ")
}

func isBulletLine(trimmed string) bool {
	for _, marker := range bulletMarkers {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}
	return false
}
