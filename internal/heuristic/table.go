// Package heuristic implements the deterministic keyword scorer used when the generative analyzer is unavailable.
package heuristic

import (
	"fmt"
	"strings"
)

// Table holds every tunable value of the heuristic scorer. A Table cannot be
// modified after construction; accessors return copies.
type Table struct {
	vocabulary         []string
	experienceMarkers  []string
	skillsCap          int
	experienceHigh     int
	experienceLow      int
	formatScore        int
	maxMissingKeywords int
	maxMatchedKeywords int
	suggestions        []string
	strongPoints       []string
	recommendations    []string
}

// TableSpec is the mutable input used to build a Table.
type TableSpec struct {
	Vocabulary         []string
	ExperienceMarkers  []string
	SkillsCap          int
	ExperienceHigh     int
	ExperienceLow      int
	FormatScore        int
	MaxMissingKeywords int
	MaxMatchedKeywords int
	Suggestions        []string
	StrongPoints       []string
	Recommendations    []string
}

var defaultSpec = TableSpec{
	Vocabulary: []string{
		"experience", "skills", "education", "management", "development",
		"javascript", "react", "python", "aws", "sql",
	},
	ExperienceMarkers:  []string{"years", "experience"},
	SkillsCap:          95,
	ExperienceHigh:     85,
	ExperienceLow:      60,
	FormatScore:        80,
	MaxMissingKeywords: 5,
	MaxMatchedKeywords: 8,
	Suggestions: []string{
		"Add quantifiable achievements with specific metrics (e.g. increased sales by 25%)",
		"Include more industry-specific keywords from the job description",
		"Use strong action verbs at the start of each bullet point",
		"Keep formatting simple: standard section headings, no tables or images",
		"Tailor your professional summary to the target role",
	},
	StrongPoints: []string{
		"Clear professional structure",
		"Relevant technical experience",
		"Good use of industry terminology",
	},
	Recommendations: []string{
		"Mirror the exact wording of the job posting where it honestly applies",
		"List certifications and tools in a dedicated skills section",
		"Save the resume as a text-based PDF or DOCX so ATS parsers can read it",
	},
}

// DefaultTable returns the reference configuration: a ten term vocabulary and the standard canned advice.
func DefaultTable() Table {
	t, err := NewTable(defaultSpec)
	if err != nil {
		panic(fmt.Sprintf("heuristic: invalid default table: %v", err))
	}
	return t
}

// DefaultSpec returns a copy of the reference configuration, for callers that tune a few values.
func DefaultSpec() TableSpec {
	s := defaultSpec
	s.Vocabulary = copyStrings(defaultSpec.Vocabulary)
	s.ExperienceMarkers = copyStrings(defaultSpec.ExperienceMarkers)
	s.Suggestions = copyStrings(defaultSpec.Suggestions)
	s.StrongPoints = copyStrings(defaultSpec.StrongPoints)
	s.Recommendations = copyStrings(defaultSpec.Recommendations)
	return s
}

// NewTable validates spec and freezes it into a Table. Vocabulary terms and
// experience markers are lowercased, since matching runs on lowercased text.
func NewTable(spec TableSpec) (Table, error) {
	if len(spec.Vocabulary) == 0 {
		return Table{}, fmt.Errorf("vocabulary must not be empty")
	}
	vocabulary := lowerTerms(spec.Vocabulary)
	seen := make(map[string]bool, len(vocabulary))
	for _, term := range vocabulary {
		if term == "" {
			return Table{}, fmt.Errorf("vocabulary contains an empty term")
		}
		if seen[term] {
			return Table{}, fmt.Errorf("vocabulary term %q is duplicated", term)
		}
		seen[term] = true
	}
	for name, v := range map[string]int{
		"skills cap":      spec.SkillsCap,
		"experience high": spec.ExperienceHigh,
		"experience low":  spec.ExperienceLow,
		"format score":    spec.FormatScore,
	} {
		if v < 0 || v > 100 {
			return Table{}, fmt.Errorf("%s must be within [0,100], got %d", name, v)
		}
	}
	if spec.MaxMissingKeywords < 0 || spec.MaxMatchedKeywords < 0 {
		return Table{}, fmt.Errorf("keyword limits must not be negative")
	}

	return Table{
		vocabulary:         vocabulary,
		experienceMarkers:  lowerTerms(spec.ExperienceMarkers),
		skillsCap:          spec.SkillsCap,
		experienceHigh:     spec.ExperienceHigh,
		experienceLow:      spec.ExperienceLow,
		formatScore:        spec.FormatScore,
		maxMissingKeywords: spec.MaxMissingKeywords,
		maxMatchedKeywords: spec.MaxMatchedKeywords,
		suggestions:        copyStrings(spec.Suggestions),
		strongPoints:       copyStrings(spec.StrongPoints),
		recommendations:    copyStrings(spec.Recommendations),
	}, nil
}

// Vocabulary returns the scored terms in order.
func (t Table) Vocabulary() []string { return copyStrings(t.vocabulary) }

// Suggestions returns the canned suggestion list.
func (t Table) Suggestions() []string { return copyStrings(t.suggestions) }

// StrongPoints returns the canned strengths list.
func (t Table) StrongPoints() []string { return copyStrings(t.strongPoints) }

// Recommendations returns the canned recommendations list.
func (t Table) Recommendations() []string { return copyStrings(t.recommendations) }

func lowerTerms(in []string) []string {
	out := make([]string, len(in))
	for i, term := range in {
		out[i] = strings.ToLower(strings.TrimSpace(term))
	}
	return out
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
