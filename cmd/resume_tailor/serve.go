package main

import (
	"fmt"

	"github.com/jonathan/resume-tailor/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the resume and job posting extractors. History is stored when DATABASE_URL is set and LLM extraction is available when GEMINI_API_KEY is set.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	port := appConfig.Port
	if servePort != 0 {
		port = servePort
	}

	srv, err := server.New(cmd.Context(), server.Config{
		Port:          port,
		DatabaseURL:   appConfig.DatabaseURL,
		APIKey:        appConfig.APIKey,
		RateLimit:     appConfig.RateLimit,
		RateBurst:     appConfig.RateBurst,
		ScrapeTimeout: appConfig.ScrapeTimeout(),
		UseBrowser:    appConfig.UseBrowser,
		Vocabulary:    vocabulary,
		Logger:        &logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(cmd.Context())
}
