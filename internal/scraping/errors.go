package scraping

import "fmt"

// ScrapeError is the single error returned when a job page cannot be
// retrieved: invalid URL, DNS or connection failure, timeout or a non-200
// status.
type ScrapeError struct {
	URL   string
	Cause error
}

func (e *ScrapeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to scrape job from %s: %v", e.URL, e.Cause)
	}
	return fmt.Sprintf("failed to scrape job from %s", e.URL)
}

func (e *ScrapeError) Unwrap() error {
	return e.Cause
}
