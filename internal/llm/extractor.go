// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-tailor/internal/prompts"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// It provides a reusable way to define what information to extract from text.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "StructuredResume", "JobKeywords")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "map[string]string"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	// System description
	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	// Output schema
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	// Instructions
	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent or summarize.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	// Input text
	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// --- Predefined Schemas ---

// ResumeSchema returns the extraction schema for a full structured resume.
// Field names match the StructuredResume JSON keys.
func ResumeSchema() (ExtractionSchema, error) {
	preamble, err := prompts.Resume()
	if err != nil {
		return ExtractionSchema{}, err
	}
	return ExtractionSchema{
		Name:        "StructuredResume",
		Description: preamble,
		Fields: []SchemaField{
			{
				Name:        "contactInfo",
				Type:        `{"name": "string", "email": "string", "phone": "string", "location": "string", "linkedin": "string"}`,
				Description: "Contact details from the top of the resume",
				Required:    true,
			},
			{
				Name:        "professionalSummary",
				Type:        `"string"`,
				Description: "Summary or objective paragraph",
				Required:    true,
			},
			{
				Name:        "workExperience",
				Type:        `[{"company": "string", "position": "string", "startDate": "string", "endDate": "string", "bullets": ["string"]}]`,
				Description: "Employment entries in resume order",
				Required:    true,
			},
			{
				Name:        "education",
				Type:        `[{"school": "string", "degree": "string", "field": "string", "year": "string", "gpa": "string"}]`,
				Required:    true,
			},
			{
				Name:        "skills",
				Type:        `{"technical": ["string"], "tools": ["string"], "soft": ["string"], "languages": ["string"]}`,
				Description: "Skills bucketed by kind; languages means spoken languages",
				Required:    true,
			},
			{
				Name:     "certifications",
				Type:     `[{"name": "string", "issuer": "string", "year": "string"}]`,
				Required: true,
			},
			{
				Name:     "projects",
				Type:     `[{"name": "string", "description": "string", "technologies": ["string"]}]`,
				Required: true,
			},
		},
	}, nil
}

// JobKeywordsSchema returns the extraction schema for the keyword view of a
// job posting. source names what the input is, e.g. "job description".
func JobKeywordsSchema(source string) (ExtractionSchema, error) {
	preamble, err := prompts.JobKeywords(source)
	if err != nil {
		return ExtractionSchema{}, err
	}
	return ExtractionSchema{
		Name:        "JobKeywords",
		Description: preamble,
		Fields: []SchemaField{
			{
				Name:        "job_title",
				Type:        `"string"`,
				Description: "The main job title",
				Required:    true,
			},
			{
				Name:        "required_skills",
				Type:        `["string"]`,
				Description: "Hard and soft skills required",
				Required:    true,
			},
			{
				Name:        "key_responsibilities",
				Type:        `["string"]`,
				Description: "Main responsibilities",
				Required:    true,
			},
			{
				Name:        "keywords",
				Type:        `["string"]`,
				Description: "Important keywords and technical terms",
				Required:    true,
			},
		},
	}, nil
}
