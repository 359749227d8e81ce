// Package prompts holds the preambles for the two model-backed extractions.
// They live in extraction.json, embedded at compile time.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"text/template"
)

// Keys in extraction.json.
const (
	ResumeKey      = "resume-preamble"
	JobKeywordsKey = "job-keywords-preamble"
)

//go:embed extraction.json
var extractionJSON []byte

var load = sync.OnceValues(func() (map[string]string, error) {
	return parse(extractionJSON)
})

// parse decodes a prompt file and checks that both extraction preambles
// are present and non-blank.
func parse(data []byte) (map[string]string, error) {
	var preambles map[string]string
	if err := json.Unmarshal(data, &preambles); err != nil {
		return nil, fmt.Errorf("failed to parse extraction prompts: %w", err)
	}
	for _, key := range []string{ResumeKey, JobKeywordsKey} {
		if strings.TrimSpace(preambles[key]) == "" {
			return nil, fmt.Errorf("extraction prompt %q is missing", key)
		}
	}
	return preambles, nil
}

// Get returns the raw preamble stored under key.
func Get(key string) (string, error) {
	preambles, err := load()
	if err != nil {
		return "", err
	}
	preamble, ok := preambles[key]
	if !ok {
		return "", fmt.Errorf("extraction prompt %q not found", key)
	}
	return preamble, nil
}

// Resume returns the resume extraction preamble.
func Resume() (string, error) {
	return Get(ResumeKey)
}

// JobKeywords returns the job keyword preamble with source naming the
// input, e.g. "job description" or "job posting".
func JobKeywords(source string) (string, error) {
	raw, err := Get(JobKeywordsKey)
	if err != nil {
		return "", err
	}
	return render(JobKeywordsKey, raw, struct{ Source string }{Source: source})
}

func render(name, raw string, data any) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(raw)
	if err != nil {
		return "", fmt.Errorf("failed to parse prompt %q: %w", name, err)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %q: %w", name, err)
	}
	return sb.String(), nil
}
