// Package llm is the optional model-backed extraction path. It produces the
// same structured records as the heuristic extractors and is only used when
// explicitly requested.
package llm

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Task names one of the two model-backed extractions.
type Task string

const (
	// TaskResume extracts a full StructuredResume.
	TaskResume Task = "resume"
	// TaskJobKeywords extracts the keyword view of a posting.
	TaskJobKeywords Task = "job_keywords"
)

// Config selects the Gemini model and sampling temperature per task.
type Config struct {
	Models       map[Task]string
	DefaultModel string  `validate:"required"`
	Temperature  float32 `validate:"gte=0,lte=2"`
}

// DefaultConfig uses the flash model for resumes and the lite model for
// keyword lists.
func DefaultConfig() *Config {
	return &Config{
		Models: map[Task]string{
			TaskResume:      "gemini-2.5-flash",
			TaskJobKeywords: "gemini-2.5-flash-lite",
		},
		DefaultModel: "gemini-2.5-flash",
		Temperature:  0.1,
	}
}

// Model returns the model configured for task, or DefaultModel.
func (c *Config) Model(task Task) string {
	if model := c.Models[task]; model != "" {
		return model
	}
	return c.DefaultModel
}

// Validate checks the config's tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid LLM config: %w", err)
	}
	return nil
}
