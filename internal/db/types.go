package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Extraction kinds
const (
	KindResume      = "resume"
	KindJobPosting  = "job_posting"
	KindJobKeywords = "job_keywords"
)

// Extraction methods
const (
	MethodHeuristic = "heuristic"
	MethodLLM       = "llm"
)

// DefaultListLimit and MaxListLimit bound ListExtractions page sizes.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Extraction is one stored extraction result
type Extraction struct {
	ID        uuid.UUID       `json:"id"`
	Kind      string          `json:"kind"`
	Method    string          `json:"method"`
	Source    string          `json:"source"` // file name or URL
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

// ExtractionInput is the data needed to store an extraction
type ExtractionInput struct {
	Kind   string
	Method string
	Source string
	Result any
}

// ListOptions filters and pages ListExtractions
type ListOptions struct {
	Kind   string // empty lists every kind
	Limit  int
	Offset int
}

// normalize clamps the page bounds.
func (o ListOptions) normalize() ListOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultListLimit
	}
	if o.Limit > MaxListLimit {
		o.Limit = MaxListLimit
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}

// IsValidKind reports whether kind is a known extraction kind.
func IsValidKind(kind string) bool {
	switch kind {
	case KindResume, KindJobPosting, KindJobKeywords:
		return true
	}
	return false
}
