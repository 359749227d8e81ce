// Package vocab holds the closed keyword tables that drive heuristic extraction.
// Tables are loaded once from JSON, validated against an embedded schema and
// shared read-only by every extractor.
package vocab

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/jonathan/resume-tailor/internal/schemas"
)

//go:embed default.json
var defaultJSON []byte

//go:embed vocabulary.schema.json
var schemaJSON string

// Vocabulary is the full set of keyword tables. Keywords are lowercase and are
// matched by substring containment against lowercased text. A Vocabulary must
// not be modified after Load returns it.
type Vocabulary struct {
	SectionHeaders []string            `json:"section_headers"`
	SectionEntry   map[string][]string `json:"section_entry"`
	SchoolKeywords []string            `json:"school_keywords"`
	ResumeSkills   ResumeSkills        `json:"resume_skills"`
	Job            JobKeywords         `json:"job"`
}

// ResumeSkills are the skill categorization lists, checked in priority order
// technical, tools, languages. Anything else is soft.
type ResumeSkills struct {
	Technical []string `json:"technical"`
	Tools     []string `json:"tools"`
	Languages []string `json:"languages"`
}

// JobKeywords are the job description classifier tables
type JobKeywords struct {
	Skills           []string `json:"skills"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
	Qualifications   []string `json:"qualifications"`
}

// LoadError represents an error loading or validating a vocabulary document
type LoadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vocabulary %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("vocabulary %s: %s", e.Source, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Load validates data against the vocabulary schema and decodes it.
func Load(data []byte) (*Vocabulary, error) {
	return load("(bytes)", data)
}

// LoadFile reads a vocabulary override file from disk.
func LoadFile(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Message: "failed to read file", Cause: err}
	}
	return load(path, data)
}

var defaultVocabulary = sync.OnceValues(func() (*Vocabulary, error) {
	return load("(embedded)", defaultJSON)
})

// Default returns the embedded vocabulary. It panics if the embedded document
// is invalid, which can only happen through a broken build.
func Default() *Vocabulary {
	v, err := defaultVocabulary()
	if err != nil {
		panic(fmt.Sprintf("invalid embedded vocabulary: %v", err))
	}
	return v
}

func load(source string, data []byte) (*Vocabulary, error) {
	if err := schemas.ValidateJSONString(schemaJSON, string(data)); err != nil {
		return nil, &LoadError{Source: source, Message: "schema validation failed", Cause: err}
	}

	var v Vocabulary
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, &LoadError{Source: source, Message: "failed to decode", Cause: err}
	}
	return &v, nil
}

// ContainsAny reports whether lower contains any of keywords. Callers pass
// text that is already lowercased.
func ContainsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Matches returns the keywords found in lower, in keyword order.
func Matches(lower string, keywords []string) []string {
	found := []string{}
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}
	return found
}
