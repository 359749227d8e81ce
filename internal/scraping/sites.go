package scraping

import (
	"github.com/jonathan/resume-tailor/internal/fetch"
)

// User agents, one per site strategy.
const (
	userAgentChromeWindows = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	userAgentChromeMac     = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	userAgentFirefox       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:89.0) Gecko/20100101 Firefox/89.0"
)

const (
	acceptWithWebP = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
	acceptHTML     = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

// Site is the scraping strategy for one family of pages: request identity
// plus the selector chains for every field.
type Site struct {
	Name      string
	UserAgent string
	Headers   map[string]string

	Title       Chain
	Company     Chain
	Location    Chain
	Description Chain

	Salary         Chain
	EmploymentType Chain
	PostedDate     Chain

	// URLFallback fills an empty title or company from the URL itself.
	URLFallback bool

	// MainText reads the board's main content block as the description when
	// every other source comes up empty.
	MainText bool
	Platform fetch.Platform
}

// Options returns the fetch options for one request with this strategy.
func (s *Site) Options() *fetch.Options {
	opts := fetch.DefaultOptions()
	opts.UserAgent = s.UserAgent
	opts.Headers = make(map[string]string, len(s.Headers))
	for k, v := range s.Headers {
		opts.Headers[k] = v
	}
	return opts
}

func browserHeaders(accept string, extra map[string]string) map[string]string {
	headers := map[string]string{
		"Accept":          accept,
		"Accept-Language": "en-US,en;q=0.5",
		"DNT":             "1",
		"Connection":      "keep-alive",
	}
	for k, v := range extra {
		headers[k] = v
	}
	return headers
}

// LinkedInSite scrapes linkedin.com job pages.
var LinkedInSite = &Site{
	Name:      "linkedin",
	UserAgent: userAgentChromeWindows,
	Headers:   browserHeaders(acceptWithWebP, map[string]string{"Upgrade-Insecure-Requests": "1"}),

	Title:    TextChain(".top-card-layout__title", "h1"),
	Company:  TextChain(".topcard__org-name-link", `[data-test-id="company-name"]`),
	Location: TextChain(".topcard__flavor-row", `[data-test-id="job-location"]`),
	Description: HTMLChain(
		".description__text",
		".show-more-less-html__markup",
		`[data-test-id="job-description"]`,
	),

	Salary:         TextChain(".salary-compensation-container__text"),
	EmploymentType: TextChain(".job-criteria__text"),
	PostedDate:     TextChain(".posted-time-ago__text"),
}

// IndeedSite scrapes indeed.com job pages.
var IndeedSite = &Site{
	Name:      "indeed",
	UserAgent: userAgentChromeMac,
	Headers:   browserHeaders(acceptHTML, nil),

	Title:    TextChain(".jobsearch-JobInfoHeader-title", "h1"),
	Company:  TextChain(".jobsearch-InlineCompanyRating", `[data-testid="inlineHeader-companyName"]`),
	Location: TextChain(".jobsearch-JobInfoHeader-companyLocation", `[data-testid="job-location"]`),
	Description: HTMLChain(
		"#jobDescriptionText",
		".jobsearch-jobDescriptionText",
		`[data-testid="jobsearch-JobComponent-description"]`,
	),

	Salary:         TextChain(".salary-snippet-container"),
	EmploymentType: TextChain(".jobsearch-JobMetadataHeader-item"),
	PostedDate:     TextChain(".jobsearch-JobMetadataFooter-item"),
}

// GenericSite scrapes company career pages and any other host.
var GenericSite = &Site{
	Name:      "generic",
	UserAgent: userAgentFirefox,
	Headers:   browserHeaders(acceptHTML, nil),

	Title: TextChain(
		"h1", ".job-title", ".position-title", `[class*="title"]`,
		".job-header h1", ".position h1", ".posting-headline h1",
	).WithMinLength(5),
	Company: TextChain(
		".company-name", ".employer", ".organization", `[class*="company"]`,
		".job-company", ".posting-company", ".company",
	).WithMinLength(2),
	Location: TextChain(
		".location", ".job-location", ".position-location", `[class*="location"]`,
		".job-location-text", ".posting-location",
	).WithMinLength(3),
	Description: HTMLChain(
		".job-description", ".description", ".posting-description", `[class*="description"]`,
		".job-details", ".position-details", ".requirements-section",
		".job-content", ".posting-body", ".job-main-content",
	),

	URLFallback: true,
}

// Hosted applicant tracking boards share the generic chains.
var (
	GreenhouseSite = boardSite("greenhouse", fetch.PlatformGreenhouse)
	LeverSite      = boardSite("lever", fetch.PlatformLever)
	WorkdaySite    = boardSite("workday", fetch.PlatformWorkday)
)

func boardSite(name string, platform fetch.Platform) *Site {
	s := *GenericSite
	s.Name = name
	s.Platform = platform
	s.MainText = true
	return &s
}

// SiteFor picks the strategy for rawURL by its host.
func SiteFor(rawURL string) *Site {
	switch fetch.DetectPlatform(rawURL) {
	case fetch.PlatformLinkedIn:
		return LinkedInSite
	case fetch.PlatformIndeed:
		return IndeedSite
	case fetch.PlatformGreenhouse:
		return GreenhouseSite
	case fetch.PlatformLever:
		return LeverSite
	case fetch.PlatformWorkday:
		return WorkdaySite
	default:
		return GenericSite
	}
}
