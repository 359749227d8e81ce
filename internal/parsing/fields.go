package parsing

import (
	"regexp"
	"strings"
)

var (
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern    = regexp.MustCompile(`(\+?1[-.\s]?)?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})`)
	linkedinPattern = regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`)
	yearPattern     = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	gpaPattern      = regexp.MustCompile(`(?i)gpa[:\s]*([0-9]\.[0-9]+)`)
	degreePattern   = regexp.MustCompile(`(?i)(bachelor|master|phd|associate|doctorate|b\.s\.|m\.s\.|b\.a\.|m\.a\.)`)
	locationPattern = regexp.MustCompile(`([A-Za-z\s]+,\s*[A-Za-z\s]+)`)
	numberedPrefix  = regexp.MustCompile(`^\d+\.`)
	bulletPrefix    = regexp.MustCompile(`^(?:[•\-*]|\d+\.)\s*`)
)

// Date range patterns, most specific first so a year-only pattern never
// claims part of a month/year token. The present/current forms report an
// empty end date.
var dateRangePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2}/\d{4})\s*[–\-—]\s*(\d{1,2}/\d{4})`),
	regexp.MustCompile(`(\d{4})\s*[–\-—]\s*(\d{4})`),
	regexp.MustCompile(`(?i)(\d{1,2}/\d{2,4})\s*[–\-—]\s*(present|current)`),
	regexp.MustCompile(`(?i)(\d{4})\s*[–\-—]\s*(present|current)`),
}

// DateRange is a start/end pair found in a line. End is empty for ongoing roles.
type DateRange struct {
	Start string
	End   string
	// Match is the full text that matched, used to strip the range from the line.
	Match string
}

// Email returns the first email address in line.
func Email(line string) string {
	return emailPattern.FindString(line)
}

// Phone returns the first phone number in line.
func Phone(line string) string {
	return phonePattern.FindString(line)
}

// LinkedInHandle returns the first linkedin.com/in/<handle> reference in line.
func LinkedInHandle(line string) string {
	return linkedinPattern.FindString(line)
}

// FindDateRange returns the first date range in line, trying patterns in order.
func FindDateRange(line string) (DateRange, bool) {
	for _, pattern := range dateRangePatterns {
		m := pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		end := m[2]
		switch strings.ToLower(end) {
		case "present", "current":
			end = ""
		}
		return DateRange{Start: m[1], End: end, Match: m[0]}, true
	}
	return DateRange{}, false
}

// Year returns the first four-digit year between 1900 and 2099 in line.
func Year(line string) string {
	return yearPattern.FindString(line)
}

// GPA returns the decimal following a "gpa" keyword, without the keyword.
func GPA(line string) string {
	m := gpaPattern.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return m[1]
}

// DegreeToken returns the first degree keyword in line as written.
func DegreeToken(line string) string {
	return degreePattern.FindString(line)
}

// Location returns the first "City, Region" shaped span in line.
func Location(line string) string {
	return strings.TrimSpace(locationPattern.FindString(line))
}

// IsBullet reports whether line starts with a list marker: •, -, * or "N.".
func IsBullet(line string) bool {
	return strings.HasPrefix(line, "•") ||
		strings.HasPrefix(line, "-") ||
		strings.HasPrefix(line, "*") ||
		numberedPrefix.MatchString(line)
}

// StripBullet removes a leading list marker and the whitespace after it.
func StripBullet(line string) string {
	return strings.TrimSpace(bulletPrefix.ReplaceAllString(line, ""))
}

func hasContactMatch(line string) bool {
	return Email(line) != "" || Phone(line) != "" || LinkedInHandle(line) != ""
}
