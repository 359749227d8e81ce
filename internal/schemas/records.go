package schemas

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-tailor/internal/types"
	schemafiles "github.com/jonathan/resume-tailor/schemas"
)

// Embedded schema names
const (
	ResumeSchema      = "structured_resume.schema.json"
	JobPostingSchema  = "job_posting.schema.json"
	JobKeywordsSchema = "job_keywords.schema.json"
)

// Get returns the content of an embedded schema.
func Get(name string) (string, error) {
	data, err := schemafiles.Files.ReadFile(name)
	if err != nil {
		return "", &SchemaLoadError{Path: name, Message: "schema not embedded", Cause: err}
	}
	return string(data), nil
}

// ValidateDocument validates raw JSON against an embedded schema.
func ValidateDocument(schemaName string, data []byte) error {
	schema, err := Get(schemaName)
	if err != nil {
		return err
	}
	return ValidateJSONString(schema, string(data))
}

// ValidateResume checks that a resume serializes to a structurally complete document.
func ValidateResume(r types.StructuredResume) error {
	return validateValue(ResumeSchema, r)
}

// ValidateJobPosting checks that a job posting serializes to a structurally complete document.
func ValidateJobPosting(p types.StructuredJobPosting) error {
	return validateValue(JobPostingSchema, p)
}

func validateValue(schemaName string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s document: %w", schemaName, err)
	}
	return ValidateDocument(schemaName, data)
}

// ValidateJobKeywords checks that a keyword record serializes to a structurally complete document.
func ValidateJobKeywords(k types.JobKeywords) error {
	return validateValue(JobKeywordsSchema, k)
}
