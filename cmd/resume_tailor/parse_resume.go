package main

import (
	"fmt"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/schemas"
	"github.com/spf13/cobra"
)

var parseResumeCmd = &cobra.Command{
	Use:   "parse-resume",
	Short: "Extract a structured resume from a text or PDF file",
	Long:  "Extract contact info, summary, experience, education, skills, certifications and projects from a plain-text or PDF resume and print them as JSON.",
	RunE:  runParseResume,
}

var (
	resumeInputFile  string
	resumeOutputFile string
	resumeValidate   bool
	resumeUseLLM     bool
)

func init() {
	parseResumeCmd.Flags().StringVarP(&resumeInputFile, "in", "i", "", "Path to the resume (.txt or .pdf)")
	parseResumeCmd.Flags().StringVarP(&resumeOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	parseResumeCmd.Flags().BoolVar(&resumeValidate, "validate", false, "Validate the result against the resume schema")
	parseResumeCmd.Flags().BoolVar(&resumeUseLLM, "llm", false, "Extract with the LLM instead of the heuristics")
	_ = parseResumeCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(parseResumeCmd)
}

func runParseResume(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	text, err := readResumeText(resumeInputFile)
	if err != nil {
		return err
	}

	var client llm.Client
	if resumeUseLLM || appConfig.UseLLM {
		client, err = newLLMClient(ctx)
		if err != nil {
			return err
		}
		defer client.Close() //nolint:errcheck
	}

	resume, err := extractResume(ctx, client, text)
	if err != nil {
		return fmt.Errorf("failed to extract resume: %w", err)
	}

	if resumeValidate {
		if err := schemas.ValidateResume(resume); err != nil {
			return fmt.Errorf("extracted resume does not validate against schema: %w", err)
		}
	}

	if err := writeJSON(cmd.OutOrStdout(), resumeOutputFile, resume); err != nil {
		return err
	}

	if p := printer(cmd); p != nil {
		p.PrintResume(&resume)
	}
	logger.Debug().
		Str("input", resumeInputFile).
		Int("experience", len(resume.WorkExperience)).
		Int("education", len(resume.Education)).
		Bool("llm", client != nil).
		Msg("extracted resume")
	return nil
}
