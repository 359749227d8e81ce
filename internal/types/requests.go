package types

import (
	"github.com/go-playground/validator/v10"
)

// ExtractResumeRequest is the JSON body for resume text extraction. Empty
// text is accepted and yields the empty resume.
type ExtractResumeRequest struct {
	Text   string `json:"text"`
	UseLLM bool   `json:"use_llm,omitempty"`
}

// ScrapeJobRequest asks the server to fetch and extract a job page.
type ScrapeJobRequest struct {
	URL     string `json:"url" validate:"required,url"`
	Browser bool   `json:"browser,omitempty"`
}

// ExtractJobRequest carries already-fetched job page HTML. Empty HTML is
// accepted and yields the empty posting.
type ExtractJobRequest struct {
	HTML string `json:"html"`
	URL  string `json:"url" validate:"required,url"`
}

// ValidateURLResponse reports the job URL pre-filter result.
type ValidateURLResponse struct {
	URL   string `json:"url"`
	Valid bool   `json:"valid"`
}

// Validate validates the ExtractResumeRequest using the validator.
func (r *ExtractResumeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ScrapeJobRequest using the validator.
func (r *ScrapeJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ExtractJobRequest using the validator.
func (r *ExtractJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
