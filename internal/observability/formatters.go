// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-tailor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

func writeList(sb *strings.Builder, label string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s:\n", label)
	for _, item := range items[:min(len(items), limit)] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
	sb.WriteString("\n")
}

// PrintResume outputs a human-readable summary of an extracted resume.
func (p *Printer) PrintResume(r *types.StructuredResume) {
	if r == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:     %s\n", r.ContactInfo.Name)
	fmt.Fprintf(&sb, "Email:    %s\n", r.ContactInfo.Email)
	fmt.Fprintf(&sb, "Phone:    %s\n", r.ContactInfo.Phone)
	sb.WriteString("\n")

	if len(r.WorkExperience) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(r.WorkExperience), maxItemsToShow)
		for _, w := range r.WorkExperience[:count] {
			fmt.Fprintf(&sb, "  • %s, %s", w.Position, w.Company)
			if w.StartDate != "" {
				end := w.EndDate
				if end == "" {
					end = "present"
				}
				fmt.Fprintf(&sb, " (%s - %s)", w.StartDate, end)
			}
			fmt.Fprintf(&sb, " [%d bullets]\n", len(w.Bullets))
		}
		if len(r.WorkExperience) > maxItemsToShow {
			fmt.Fprintf(&sb, "  ... and %d more\n", len(r.WorkExperience)-maxItemsToShow)
		}
		sb.WriteString("\n")
	}

	if len(r.Education) > 0 {
		sb.WriteString("Education:\n")
		for _, e := range r.Education[:min(len(r.Education), 3)] {
			fmt.Fprintf(&sb, "  • %s\n", e.School)
		}
		sb.WriteString("\n")
	}

	skills := r.Skills
	fmt.Fprintf(&sb, "Skills:   %d technical, %d tools, %d soft, %d languages\n",
		len(skills.Technical), len(skills.Tools), len(skills.Soft), len(skills.Languages))
	fmt.Fprintf(&sb, "Certs:    %d\n", len(r.Certifications))
	fmt.Fprintf(&sb, "Projects: %d", len(r.Projects))

	p.printBox("EXTRACTED RESUME", sb.String())
}

// PrintJobPosting outputs a human-readable summary of a scraped job posting.
func (p *Printer) PrintJobPosting(posting *types.StructuredJobPosting) {
	if posting == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Title:    %s\n", posting.Title)
	fmt.Fprintf(&sb, "Company:  %s\n", posting.Company)
	fmt.Fprintf(&sb, "Location: %s\n", posting.Location)
	if posting.Salary != "" {
		fmt.Fprintf(&sb, "Salary:   %s\n", posting.Salary)
	}
	sb.WriteString("\n")

	writeList(&sb, "Requirements", posting.Requirements, maxItemsToShow)
	writeList(&sb, "Responsibilities", posting.Responsibilities, maxItemsToShow)
	writeList(&sb, "Qualifications", posting.Qualifications, 3)

	if len(posting.Skills) > 0 {
		fmt.Fprintf(&sb, "Skills:   %s\n", strings.Join(posting.Skills, ", "))
	}

	p.printBox("SCRAPED JOB POSTING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobKeywords outputs the keyword view of a job posting.
func (p *Printer) PrintJobKeywords(k *types.JobKeywords) {
	if k == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Role:     %s\n\n", k.JobTitle)
	writeList(&sb, "Required Skills", k.RequiredSkills, maxItemsToShow)
	writeList(&sb, "Key Responsibilities", k.KeyResponsibilities, 3)
	if len(k.Keywords) > 0 {
		fmt.Fprintf(&sb, "Keywords: %s\n", strings.Join(k.Keywords, ", "))
	}

	p.printBox("JOB KEYWORDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBatchSummary outputs the outcome of a batch run.
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) PrintBatchSummary(processed int, failed []string) {
	if len(failed) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, fmt.Sprintf("✅ %d FILES EXTRACTED", processed))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Extracted %d, failed %d:\n\n", processed, len(failed))
	for _, name := range failed {
		fmt.Fprintf(&sb, "⚠ %s\n", name)
	}

	p.printBox("BATCH RESULTS", strings.TrimSuffix(sb.String(), "\n"))
}
