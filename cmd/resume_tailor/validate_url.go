package main

import (
	"fmt"

	"github.com/jonathan/resume-tailor/internal/scraping"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/spf13/cobra"
)

var validateURLCmd = &cobra.Command{
	Use:   "validate-url <url>",
	Short: "Check whether a URL looks like a job posting",
	Long:  "Run the permissive job URL pre-filter. Prints the result as JSON and exits non-zero when the URL does not look like a job board or careers page.",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidateURL,
}

func init() {
	rootCmd.AddCommand(validateURLCmd)
}

func runValidateURL(cmd *cobra.Command, args []string) error {
	resp := types.ValidateURLResponse{
		URL:   args[0],
		Valid: scraping.IsValidJobURL(args[0]),
	}
	if err := writeJSON(cmd.OutOrStdout(), "", resp); err != nil {
		return err
	}
	if !resp.Valid {
		return fmt.Errorf("not a job URL: %s", resp.URL)
	}
	return nil
}
