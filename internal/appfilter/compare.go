package appfilter

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/iconforge/iconkit/internal/common/output"
)

// CompareReport summarizes how a remote appfilter relates to the local one,
// without touching the local file.
type CompareReport struct {
	TotalLocal  int
	TotalRemote int
	// Matched holds remote-only entries that would be added, with the
	// local drawable they would reuse.
	Matched []Entry
	// Unmatched holds remote-only entries with no confident local match,
	// with their remote drawable names.
	Unmatched []Entry
	// Conflicts holds non-fatal matcher warnings.
	Conflicts []string
}

// Compare classifies every remote-only entry as matched or unmatched under
// the given policy. It is the read-only half of Merge: the same
// classification, minus insertion.
func Compare(local, remote *Document, m Matcher) *CompareReport {
	report := &CompareReport{
		TotalLocal:  len(local.Entries()),
		TotalRemote: len(remote.Entries()),
	}

	localComponents := local.Components()
	for _, e := range remote.Entries() {
		if !e.IsComponentInfo() {
			continue
		}
		if _, exists := localComponents[e.Component]; exists {
			continue
		}

		if drawable, ok := m.Match(e); ok {
			report.Matched = append(report.Matched, Entry{Component: e.Component, Drawable: drawable})
		} else {
			report.Unmatched = append(report.Unmatched, e)
		}
	}

	return report
}

// FormatReport formats a comparison report for terminal output.
func FormatReport(report *CompareReport) string {
	var sb strings.Builder

	if len(report.Matched) == 0 && len(report.Unmatched) == 0 {
		sb.WriteString(output.Sprintf(output.Success, "Local appfilter already covers every remote entry.\n"))
		return sb.String()
	}

	if len(report.Matched) > 0 {
		sb.WriteString(formatEntrySection(report.Matched, "New entries (icon already drawn)", output.Success))
	}
	if len(report.Unmatched) > 0 {
		sb.WriteString(formatEntrySection(report.Unmatched, "Unmatched remote entries (need a new icon)", output.Warning))
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Matched: %s | Unmatched: %s | Local: %d | Remote: %d\n",
		output.Sprint(output.Success, fmt.Sprintf("%d", len(report.Matched))),
		output.Sprint(output.Warning, fmt.Sprintf("%d", len(report.Unmatched))),
		report.TotalLocal, report.TotalRemote))

	return sb.String()
}

// formatEntrySection formats a section of entries with a header and table.
func formatEntrySection(entries []Entry, title string, headerColor *color.Color) string {
	var sb strings.Builder

	maxCompLen := 9 // "Component"
	maxDrawLen := 8 // "Drawable"
	for _, e := range entries {
		if len(e.Component) > maxCompLen {
			maxCompLen = len(e.Component)
		}
		if len(e.Drawable) > maxDrawLen {
			maxDrawLen = len(e.Drawable)
		}
	}

	// Cap widths for readability
	if maxCompLen > 70 {
		maxCompLen = 70
	}
	if maxDrawLen > 30 {
		maxDrawLen = 30
	}

	sb.WriteString(output.Sprintf(headerColor, "\n%s:\n", title))
	sb.WriteString(formatTableLine(maxCompLen, maxDrawLen, "top"))
	sb.WriteString(formatTableRow(maxCompLen, maxDrawLen, "Component", "Drawable", true))
	sb.WriteString(formatTableLine(maxCompLen, maxDrawLen, "mid"))

	for _, e := range entries {
		sb.WriteString(formatTableRow(maxCompLen, maxDrawLen,
			truncateString(e.Component, maxCompLen), truncateString(e.Drawable, maxDrawLen), false))
	}

	sb.WriteString(formatTableLine(maxCompLen, maxDrawLen, "bottom"))

	return sb.String()
}

// formatTableLine creates a horizontal table line
func formatTableLine(compW, drawW int, position string) string {
	var left, mid, right, horiz string

	switch position {
	case "top":
		left, mid, right, horiz = "┌", "┬", "┐", "─"
	case "mid":
		left, mid, right, horiz = "├", "┼", "┤", "─"
	case "bottom":
		left, mid, right, horiz = "└", "┴", "┘", "─"
	}

	return fmt.Sprintf("%s%s%s%s%s\n",
		left, strings.Repeat(horiz, compW+2),
		mid, strings.Repeat(horiz, drawW+2), right)
}

// formatTableRow creates a table row
func formatTableRow(compW, drawW int, comp, draw string, header bool) string {
	row := fmt.Sprintf("│ %-*s │ %-*s │\n", compW, comp, drawW, draw)
	if header {
		return output.Sprint(output.Header, row)
	}
	return row
}

// truncateString truncates a string to maxLen with ellipsis
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-1] + "…"
}
