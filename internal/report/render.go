package report

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Render formats a period summary as a Markdown document: header, period,
// the summary text with its character count, and the list of source URLs.
func Render(ticker string, start, end time.Time, summary string, sourceURLs []string) string {
	startStr := start.Format(dateLayout)
	endStr := end.Format(dateLayout)

	sources := "- No relevant sources found."
	if len(sourceURLs) > 0 {
		lines := make([]string, len(sourceURLs))
		for i, u := range sourceURLs {
			lines[i] = "- " + u
		}
		sources = strings.Join(lines, "\n")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Ticker: %s\n", ticker)
	fmt.Fprintf(&b, "**Period:** [%s → %s]\n\n", startStr, endStr)
	b.WriteString("---\n\n")
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "**%s Investor Summary — %s**\n\n", ticker, endStr)
	fmt.Fprintf(&b, "%s\n\n", summary)
	fmt.Fprintf(&b, "*(%d characters)*\n\n", len(summary))
	b.WriteString("---\n\n")
	b.WriteString("## Sources\n")
	b.WriteString(sources)
	b.WriteString("\n")
	return b.String()
}

// FileName returns the conventional output name for a rendered report.
func FileName(ticker string, start, end time.Time) string {
	return fmt.Sprintf("summary_%s_%s_%s.md", ticker, start.Format(dateLayout), end.Format(dateLayout))
}
