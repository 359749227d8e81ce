// Package main provides the resume_tailor command line tool for extracting
// structured data from resumes and job postings.
package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/logging"
	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/jonathan/resume-tailor/internal/vocab"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool

	// Populated by setup before any subcommand runs.
	appConfig  *config.Config
	vocabulary *vocab.Vocabulary
	logger     zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:               "resume_tailor",
	Short:             "Extract structured data from resumes and job postings",
	Long:              "resume_tailor turns plain-text or PDF resumes and job posting pages into structured JSON records using keyword heuristics, with an optional LLM path.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print summaries to stderr and enable debug logging")
}

// setup loads configuration, initializes logging and loads the vocabulary.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Verbose = true
		cfg.LogLevel = "debug"
	}
	appConfig = cfg

	logger = logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Out:    cmd.ErrOrStderr(),
	})
	cmd.SetContext(logger.WithContext(cmd.Context()))

	vocabulary = nil
	if cfg.VocabularyPath != "" {
		vocabulary, err = vocab.LoadFile(cfg.VocabularyPath)
		if err != nil {
			return fmt.Errorf("failed to load vocabulary: %w", err)
		}
		logger.Debug().Str("path", cfg.VocabularyPath).Msg("loaded vocabulary")
	}
	return nil
}

// printer returns a summary printer on stderr, or nil outside verbose mode.
func printer(cmd *cobra.Command) *observability.Printer {
	if appConfig == nil || !appConfig.Verbose {
		return nil
	}
	return observability.NewPrinter(cmd.ErrOrStderr())
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
