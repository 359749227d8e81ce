package scraping

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/jonathan/resume-tailor/internal/types"
)

// DescriptionMarkdown renders description HTML as Markdown, keeping list
// structure for prompt building.
func DescriptionMarkdown(descriptionHTML string) (string, error) {
	if strings.TrimSpace(descriptionHTML) == "" {
		return "", nil
	}
	md, err := htmltomarkdown.ConvertString(descriptionHTML)
	if err != nil {
		return "", fmt.Errorf("failed to convert description to markdown: %w", err)
	}
	return strings.TrimSpace(md), nil
}

// FormatDescription renders a posting as the plain-text job description
// handed to the keyword and tailoring steps. Empty fields are omitted.
func FormatDescription(p types.StructuredJobPosting) string {
	var sb strings.Builder

	writeField := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&sb, "%s: %s\n", label, value)
		}
	}
	writeList := func(label string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&sb, "\n%s:\n", label)
		for _, item := range items {
			fmt.Fprintf(&sb, "- %s\n", item)
		}
	}

	writeField("Job Title", p.Title)
	writeField("Company", p.Company)
	writeField("Location", p.Location)
	writeField("Employment Type", p.EmploymentType)
	writeField("Salary", p.Salary)
	writeField("Posted", p.PostedDate)

	if p.Description != "" {
		fmt.Fprintf(&sb, "\nDescription:\n%s\n", p.Description)
	}

	writeList("Requirements", p.Requirements)
	writeList("Responsibilities", p.Responsibilities)
	writeList("Qualifications", p.Qualifications)
	if len(p.Skills) > 0 {
		fmt.Fprintf(&sb, "\nSkills: %s\n", strings.Join(p.Skills, ", "))
	}

	return strings.TrimSpace(sb.String())
}

// KeywordInput builds the text handed to the keyword model: the formatted
// posting with its description swapped for Markdown rendered from
// descriptionHTML. The plain description is kept when conversion fails or
// no markup is available.
func KeywordInput(p types.StructuredJobPosting, descriptionHTML string) string {
	if md, err := DescriptionMarkdown(descriptionHTML); err == nil && md != "" {
		p.Description = md
	}
	return FormatDescription(p)
}
