package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-tailor/internal/fetch"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/scraping"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/spf13/cobra"
)

var scrapeJobCmd = &cobra.Command{
	Use:   "scrape-job",
	Short: "Fetch a job posting URL and extract it",
	Long:  "Fetch a job posting page once and extract title, company, location, description and the requirement, responsibility, skill and qualification lists as JSON.",
	RunE:  runScrapeJob,
}

var (
	scrapeURL          string
	scrapeBrowser      bool
	scrapeOutputFile   string
	scrapeKeywordsFile string
)

func init() {
	scrapeJobCmd.Flags().StringVarP(&scrapeURL, "url", "u", "", "Job posting URL")
	scrapeJobCmd.Flags().BoolVar(&scrapeBrowser, "browser", false, "Re-render with headless Chrome when no description is found")
	scrapeJobCmd.Flags().StringVarP(&scrapeOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	scrapeJobCmd.Flags().StringVar(&scrapeKeywordsFile, "keywords", "", "Also derive job keywords with the LLM and write them to this file")
	_ = scrapeJobCmd.MarkFlagRequired("url")

	rootCmd.AddCommand(scrapeJobCmd)
}

func runScrapeJob(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	opts := []scraping.Option{
		scraping.WithVocabulary(vocabulary),
		scraping.WithTimeout(appConfig.ScrapeTimeout()),
	}
	if scrapeBrowser || appConfig.UseBrowser {
		opts = append(opts, scraping.WithRenderer(fetch.NewBrowserRenderer()))
	}

	res, err := scraping.NewScraper(opts...).ScrapePage(ctx, scrapeURL)
	if err != nil {
		return err
	}

	if err := writeJSON(cmd.OutOrStdout(), scrapeOutputFile, res.Posting); err != nil {
		return err
	}
	if p := printer(cmd); p != nil {
		p.PrintJobPosting(&res.Posting)
	}

	if scrapeKeywordsFile != "" {
		return writeJobKeywords(ctx, cmd, res.Posting, res.DescriptionHTML, scrapeKeywordsFile)
	}
	return nil
}

// writeJobKeywords asks the model for the keyword view of a posting and
// writes it to path.
func writeJobKeywords(ctx context.Context, cmd *cobra.Command, posting types.StructuredJobPosting, descriptionHTML, path string) error {
	client, err := newLLMClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close() //nolint:errcheck

	keywords, err := llm.JobKeywordsFromLLM(ctx, client, scraping.KeywordInput(posting, descriptionHTML))
	if err != nil {
		return fmt.Errorf("failed to extract job keywords: %w", err)
	}
	if err := writeJSON(cmd.OutOrStdout(), path, keywords); err != nil {
		return err
	}
	if p := printer(cmd); p != nil {
		p.PrintJobKeywords(&keywords)
	}
	return nil
}
