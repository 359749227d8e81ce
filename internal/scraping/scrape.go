package scraping

import (
	"context"
	"net/http"
	"time"

	"github.com/jonathan/resume-tailor/internal/fetch"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/jonathan/resume-tailor/internal/vocab"
	"github.com/rs/zerolog"
)

// Scraper fetches a job page once and extracts it. Requests are never
// retried. Safe for concurrent use.
type Scraper struct {
	extractor *Extractor
	renderer  fetch.Renderer
	timeout   time.Duration
	client    *http.Client
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithRenderer enables a headless re-render when the fetched page yields no
// description.
func WithRenderer(r fetch.Renderer) Option {
	return func(s *Scraper) { s.renderer = r }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) { s.timeout = d }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Scraper) { s.client = c }
}

// WithVocabulary sets the keyword tables used for classification.
func WithVocabulary(v *vocab.Vocabulary) Option {
	return func(s *Scraper) { s.extractor = NewExtractor(v) }
}

// NewScraper creates a scraper with the default timeout and no browser.
func NewScraper(opts ...Option) *Scraper {
	s := &Scraper{
		extractor: defaultExtractor,
		timeout:   fetch.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScrapeResult carries the extracted posting along with the fetched page.
type ScrapeResult struct {
	Posting  types.StructuredJobPosting
	Site     string
	Page     *fetch.Result
	Rendered bool // description came from a browser render

	DescriptionHTML string // raw description markup, empty when none was found
}

// Scrape fetches rawURL with the strategy chosen by its host and extracts
// the posting. Transport failures return a *ScrapeError.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (types.StructuredJobPosting, error) {
	res, err := s.ScrapePage(ctx, rawURL)
	if err != nil {
		return types.StructuredJobPosting{}, err
	}
	return res.Posting, nil
}

// ScrapePage is Scrape that also returns the fetched page.
func (s *Scraper) ScrapePage(ctx context.Context, rawURL string) (*ScrapeResult, error) {
	logger := zerolog.Ctx(ctx)

	if _, err := ParseURL(rawURL); err != nil {
		return nil, &ScrapeError{URL: rawURL, Cause: err}
	}

	site := SiteFor(rawURL)
	opts := site.Options()
	opts.Timeout = s.timeout
	opts.Client = s.client

	logger.Debug().Str("url", rawURL).Str("site", site.Name).Msg("fetching job page")

	page, err := fetch.URL(ctx, rawURL, opts)
	if err != nil {
		return nil, &ScrapeError{URL: rawURL, Cause: err}
	}

	res := &ScrapeResult{Site: site.Name, Page: page}
	res.Posting, res.DescriptionHTML = s.extractor.extract(site, page.HTML, rawURL)

	if res.Posting.Description == "" && s.renderer != nil {
		html, err := s.renderer.Render(ctx, rawURL)
		if err != nil {
			logger.Warn().Err(err).Str("url", rawURL).Msg("browser render failed, keeping fetched page")
		} else if rendered, raw := s.extractor.extract(site, html, rawURL); rendered.Description != "" {
			res.Posting, res.DescriptionHTML = rendered, raw
			res.Rendered = true
		}
	}

	logger.Debug().
		Str("url", rawURL).
		Str("site", site.Name).
		Int("status", page.StatusCode).
		Bool("rendered", res.Rendered).
		Int("requirements", len(res.Posting.Requirements)).
		Int("responsibilities", len(res.Posting.Responsibilities)).
		Int("skills", len(res.Posting.Skills)).
		Int("qualifications", len(res.Posting.Qualifications)).
		Msg("extracted job posting")

	return res, nil
}
