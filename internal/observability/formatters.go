// Package observability provides structured logging and formatted CLI output.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		line = truncate(line, boxWidth-4)
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// PrintResume outputs a summary of the form state: contact fields, skills and
// each collection with its entries by index.
func (p *Printer) PrintResume(data *types.ResumeData) {
	if data == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:      %s\n", orDash(data.Name)))
	sb.WriteString(fmt.Sprintf("Email:     %s\n", orDash(data.Email)))
	sb.WriteString(fmt.Sprintf("Mobile:    %s\n", orDash(data.Mobile)))
	sb.WriteString(fmt.Sprintf("Location:  %s\n", orDash(data.Location)))
	sb.WriteString(fmt.Sprintf("LinkedIn:  %s\n", orDash(data.LinkedIn)))
	sb.WriteString(fmt.Sprintf("GitHub:    %s\n", orDash(data.GitHub)))
	sb.WriteString(fmt.Sprintf("Portfolio: %s\n", orDash(data.Portfolio)))
	if data.Summary != "" {
		sb.WriteString(fmt.Sprintf("Summary:   %s\n", data.Summary))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Technical: %s\n", orDash(strings.Join(data.Skills.Technical, ", "))))
	sb.WriteString(fmt.Sprintf("Soft:      %s", orDash(strings.Join(data.Skills.SoftSkills, ", "))))

	p.printBox("RESUME", sb.String())

	p.printEntries("EDUCATION", len(data.Education), func(i int) string {
		e := data.Education[i]
		return joinNonEmpty(" | ", e.Institution, e.DegreeName, dateRange(e.StartYear, e.EndYear))
	})
	p.printEntries("WORK EXPERIENCE", len(data.WorkExperience), func(i int) string {
		w := data.WorkExperience[i]
		return joinNonEmpty(" | ", w.CompanyName, w.JobTitle, dateRange(w.StartDate, w.EndDate))
	})
	p.printEntries("PROJECTS", len(data.Projects), func(i int) string {
		pr := data.Projects[i]
		return joinNonEmpty(" | ", pr.Title, strings.Join(pr.TechStack, ", "))
	})
	p.printEntries("CERTIFICATIONS", len(data.Certifications), func(i int) string {
		return data.Certifications[i].Name
	})
	p.printEntries("ACHIEVEMENTS", len(data.Achievements), func(i int) string {
		return data.Achievements[i].Title
	})
	p.printEntries("POSITIONS OF RESPONSIBILITY", len(data.PositionOfResponsibility), func(i int) string {
		pos := data.PositionOfResponsibility[i]
		return joinNonEmpty(" at ", pos.Position, pos.Organization)
	})
	p.printEntries("PUBLICATIONS", len(data.Publications), func(i int) string {
		return data.Publications[i].Title
	})
}

func (p *Printer) printEntries(title string, n int, line func(i int) string) {
	var sb strings.Builder
	if n == 0 {
		sb.WriteString("(no entries)")
	}
	for i := 0; i < n; i++ {
		sb.WriteString(fmt.Sprintf("[%d] %s", i, orDash(line(i))))
		if i < n-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(fmt.Sprintf("%s (%d)", title, n), sb.String())
}

func dateRange(start, end string) string {
	if start == "" && end == "" {
		return ""
	}
	if end == "" {
		end = "Present"
	}
	return start + " - " + end
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, sep)
}

// PrintAnalysis outputs an ATS result with its qualitative rating.
func (p *Printer) PrintAnalysis(result *types.AnalysisResult, rating string) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:  %.0f/100\n", result.Score))
	sb.WriteString(rating)
	sb.WriteString("\n")

	if len(result.Feedback) > 0 {
		sb.WriteString("\nFeedback:\n")
		for _, f := range result.Feedback {
			sb.WriteString(fmt.Sprintf("  • %s\n", f))
		}
	}

	if len(result.Keywords) > 0 {
		sb.WriteString("\nMatched keywords:\n")
		count := min(len(result.Keywords), maxItemsToShow*2)
		sb.WriteString("  " + strings.Join(result.Keywords[:count], ", ") + "\n")
		if len(result.Keywords) > count {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Keywords)-count))
		}
	}

	p.printBox("ATS ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}
