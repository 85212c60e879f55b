// Package observability provides human-readable CLI output and tracing setup.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-ats/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 64
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	barWidth       = 20
)

// Printer writes boxed summaries of analyses and history for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

//nolint:errcheck // writing to a terminal; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line, inner))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintAnalysis outputs the scores, keywords and advice of one result.
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Overall     %3d  %s  %s\n", result.OverallScore, bar(result.OverallScore), types.TierFor(result.OverallScore))
	fmt.Fprintf(&sb, "Skills      %3d  %s\n", result.SkillsScore, bar(result.SkillsScore))
	fmt.Fprintf(&sb, "Experience  %3d  %s\n", result.ExperienceScore, bar(result.ExperienceScore))
	fmt.Fprintf(&sb, "Format      %3d  %s\n", result.FormatScore, bar(result.FormatScore))
	fmt.Fprintf(&sb, "Keywords    %3d  %s\n", result.KeywordsScore, bar(result.KeywordsScore))

	if len(result.MatchedKeywords) > 0 {
		fmt.Fprintf(&sb, "\nMatched: %s\n", strings.Join(result.MatchedKeywords, ", "))
	}
	if len(result.MissingKeywords) > 0 {
		fmt.Fprintf(&sb, "Missing: %s\n", strings.Join(result.MissingKeywords, ", "))
	}

	writeList(&sb, "Strong points", result.StrongPoints)
	writeList(&sb, "Suggestions", result.Suggestions)
	writeList(&sb, "Recommendations", result.Recommendations)

	p.printBox("ATS COMPATIBILITY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStats outputs aggregate figures, or a hint when there is no history.
func (p *Printer) PrintStats(stats *types.AnalysisStats) {
	if stats == nil {
		p.printBox("ANALYSIS STATS", "No analyses yet")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Analyses:     %d\n", stats.TotalAnalyses)
	fmt.Fprintf(&sb, "Average:      %d (%s)\n", stats.AverageScore, types.TierFor(stats.AverageScore))
	fmt.Fprintf(&sb, "Best:         %d\n", stats.HighestScore)
	fmt.Fprintf(&sb, "Improvement:  %+d", stats.Improvement)
	p.printBox("ANALYSIS STATS", sb.String())
}

// PrintHistory outputs one line per record, in the order given.
func (p *Printer) PrintHistory(records []types.AnalysisRecord) {
	if len(records) == 0 {
		p.printBox("ANALYSIS HISTORY", "No analyses yet")
		return
	}

	var sb strings.Builder
	for i, r := range records {
		label := "untitled"
		if r.JobTitle != nil {
			label = *r.JobTitle
		}
		if r.Company != nil {
			label += " @ " + *r.Company
		}
		fmt.Fprintf(&sb, "%s  %3d  %-10s %s\n", r.AnalyzedAt.Format("2006-01-02 15:04"), r.OverallScore, types.TierFor(r.OverallScore), label)
		fmt.Fprintf(&sb, "  id %s", r.ID)
		if i < len(records)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(fmt.Sprintf("ANALYSIS HISTORY (%d)", len(records)), sb.String())
}

// PrintTrend outputs the chronological score series as bars.
func (p *Printer) PrintTrend(points []types.TrendPoint) {
	if len(points) == 0 {
		return
	}

	var sb strings.Builder
	for i, pt := range points {
		fmt.Fprintf(&sb, "%s  %s %3d", pt.AnalyzedAt.Format("2006-01-02"), bar(pt.OverallScore), pt.OverallScore)
		if i < len(points)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("SCORE TREND", sb.String())
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s:\n", title)
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		fmt.Fprintf(sb, "  • %s\n", items[i])
	}
	if len(items) > maxItemsToShow {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-maxItemsToShow)
	}
}

func bar(score int) string {
	filled := types.ClampScore(score) * barWidth / types.MaxScore
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// pad truncates or right-pads s to exactly width runes.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		r := []rune(s)
		return string(r[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-n)
}
