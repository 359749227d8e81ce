package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-tailor/internal/schemas"
	"github.com/jonathan/resume-tailor/internal/scraping"
	"github.com/spf13/cobra"
)

var parseJobCmd = &cobra.Command{
	Use:   "parse-job",
	Short: "Extract a job posting from a saved HTML page",
	Long:  "Extract a job posting from HTML that was already downloaded. The URL selects the site strategy and feeds the title and company fallbacks.",
	RunE:  runParseJob,
}

var (
	parseHTMLFile     string
	parseSourceURL    string
	parseOutputFile   string
	parseValidate     bool
	parseKeywordsFile string
)

func init() {
	parseJobCmd.Flags().StringVar(&parseHTMLFile, "html", "", "Path to the saved job page HTML")
	parseJobCmd.Flags().StringVarP(&parseSourceURL, "url", "u", "", "URL the page was fetched from")
	parseJobCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	parseJobCmd.Flags().BoolVar(&parseValidate, "validate", false, "Validate the result against the job posting schema")
	parseJobCmd.Flags().StringVar(&parseKeywordsFile, "keywords", "", "Also derive job keywords with the LLM and write them to this file")
	_ = parseJobCmd.MarkFlagRequired("html")
	_ = parseJobCmd.MarkFlagRequired("url")

	rootCmd.AddCommand(parseJobCmd)
}

func runParseJob(cmd *cobra.Command, _ []string) error {
	html, err := os.ReadFile(parseHTMLFile)
	if err != nil {
		return fmt.Errorf("failed to read HTML file: %w", err)
	}
	if _, err := scraping.ParseURL(parseSourceURL); err != nil {
		return fmt.Errorf("%w: %s", err, parseSourceURL)
	}

	posting, descriptionHTML := scraping.NewExtractor(vocabulary).ExtractWithDescription(string(html), parseSourceURL)

	if parseValidate {
		if err := schemas.ValidateJobPosting(posting); err != nil {
			return fmt.Errorf("extracted job posting does not validate against schema: %w", err)
		}
	}

	if err := writeJSON(cmd.OutOrStdout(), parseOutputFile, posting); err != nil {
		return err
	}
	if p := printer(cmd); p != nil {
		p.PrintJobPosting(&posting)
	}

	if parseKeywordsFile != "" {
		return writeJobKeywords(cmd.Context(), cmd, posting, descriptionHTML, parseKeywordsFile)
	}
	return nil
}
