package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/parsing"
	"github.com/jonathan/resume-tailor/internal/pdftext"
	"github.com/jonathan/resume-tailor/internal/types"
)

// writeJSON writes v as indented JSON to path, or to stdout when path is empty.
func writeJSON(stdout io.Writer, path string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	jsonBytes = append(jsonBytes, '\n')

	if path == "" {
		_, err = stdout.Write(jsonBytes)
		return err
	}
	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// readResumeText returns the text of a plain-text or PDF resume.
func readResumeText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	if pdftext.IsPDF(data) || strings.EqualFold(filepath.Ext(path), ".pdf") {
		return pdftext.ExtractBytes(data)
	}
	return string(data), nil
}

// newLLMClient creates a model client from the configured API key.
func newLLMClient(ctx context.Context) (llm.Client, error) {
	if appConfig == nil || appConfig.APIKey == "" {
		return nil, fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or api_key in the config file)")
	}
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), appConfig.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}

// extractResume runs the heuristic extractor, or the model when client is set.
func extractResume(ctx context.Context, client llm.Client, text string) (types.StructuredResume, error) {
	if client != nil {
		return llm.ResumeFromLLM(ctx, client, text)
	}
	return parsing.NewResumeExtractor(vocabulary).Extract(text), nil
}
