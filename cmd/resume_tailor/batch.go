package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Extract every resume in a directory",
	Long:  "Extract every .txt, .md and .pdf resume in a directory concurrently, writing <name>.json next to each input or into --out-dir. A failed file does not stop the others.",
	RunE:  runBatch,
}

var (
	batchDir         string
	batchOutDir      string
	batchConcurrency int
	batchUseLLM      bool
)

var batchExtensions = []string{".txt", ".md", ".pdf"}

func init() {
	batchCmd.Flags().StringVarP(&batchDir, "dir", "d", "", "Directory containing resumes")
	batchCmd.Flags().StringVar(&batchOutDir, "out-dir", "", "Directory for JSON results (default --dir)")
	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 0, "Files processed at once (default from config, 4)")
	batchCmd.Flags().BoolVar(&batchUseLLM, "llm", false, "Extract with the LLM instead of the heuristics")
	_ = batchCmd.MarkFlagRequired("dir")

	rootCmd.AddCommand(batchCmd)
}

// batchInputs lists the resume files directly under dir, sorted by name.
func batchInputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if slices.Contains(batchExtensions, strings.ToLower(filepath.Ext(e.Name()))) {
			files = append(files, e.Name())
		}
	}
	return files, nil
}

func runBatch(cmd *cobra.Command, _ []string) error {
	files, err := batchInputs(batchDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no resumes found in %s", batchDir)
	}

	outDir := batchOutDir
	if outDir == "" {
		outDir = batchDir
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	concurrency := batchConcurrency
	if concurrency <= 0 {
		concurrency = appConfig.Concurrency
	}

	var client llm.Client
	if batchUseLLM || appConfig.UseLLM {
		client, err = newLLMClient(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close() //nolint:errcheck
	}

	var (
		mu     sync.Mutex
		failed []string
	)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(concurrency)

	for _, name := range files {
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			err := extractResumeFile(ctx, client, filepath.Join(batchDir, name), outDir)
			if err != nil {
				logger.Warn().Err(err).Str("file", name).Msg("resume extraction failed")
				mu.Lock()
				failed = append(failed, name)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	slices.Sort(failed)
	observability.NewPrinter(cmd.ErrOrStderr()).PrintBatchSummary(len(files)-len(failed), failed)

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d files failed", len(failed), len(files))
	}
	return nil
}

func extractResumeFile(ctx context.Context, client llm.Client, path, outDir string) error {
	text, err := readResumeText(path)
	if err != nil {
		return err
	}
	resume, err := extractResume(ctx, client, text)
	if err != nil {
		return err
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return writeJSON(nil, filepath.Join(outDir, base+".json"), resume)
}
