package scraping

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// ErrInvalidURL is returned for URLs that are not absolute http(s) URLs.
var ErrInvalidURL = errors.New("invalid job URL")

var jobURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`linkedin\.com/jobs/`),
	regexp.MustCompile(`indeed\.com/jobs/`),
	regexp.MustCompile(`jobs\.`),
	regexp.MustCompile(`careers\.`),
	regexp.MustCompile(`(?i)job`),
	regexp.MustCompile(`(?i)career`),
	regexp.MustCompile(`(?i)position`),
}

// ParseURL parses rawURL and requires a scheme and host.
func ParseURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, ErrInvalidURL
	}
	return u, nil
}

// IsValidJobURL is a permissive pre-filter: the URL must parse and look like
// a job board or careers address. A true result does not promise the page
// can be scraped.
func IsValidJobURL(rawURL string) bool {
	if _, err := ParseURL(rawURL); err != nil {
		return false
	}
	for _, pattern := range jobURLPatterns {
		if pattern.MatchString(rawURL) {
			return true
		}
	}
	return false
}

var wordStart = regexp.MustCompile(`\b\w`)

// TitleFromURL guesses a title from the last path segment, turning dashes
// into spaces and capitalizing each word.
func TitleFromURL(rawURL string) string {
	u, err := ParseURL(rawURL)
	if err != nil {
		return ""
	}
	path := strings.TrimRight(u.Path, "/")
	segment := path[strings.LastIndex(path, "/")+1:]
	if unescaped, err := url.PathUnescape(segment); err == nil {
		segment = unescaped
	}
	segment = strings.TrimSpace(strings.ReplaceAll(segment, "-", " "))
	return wordStart.ReplaceAllStringFunc(segment, strings.ToUpper)
}

// CompanyFromURL guesses a company from the first host label, ignoring a
// leading "www.".
func CompanyFromURL(rawURL string) string {
	u, err := ParseURL(rawURL)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	label, _, _ := strings.Cut(host, ".")
	return label
}
