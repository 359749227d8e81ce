package scraping

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// jobPostingLD is the subset of a schema.org JobPosting block used to fill
// fields the selector chains left empty.
type jobPostingLD struct {
	Title          string
	Company        string
	Location       string
	Description    string // HTML
	EmploymentType string
	Salary         string
	PostedDate     string
}

// findJobPostingLD returns the first JobPosting found in an ld+json script.
// Blocks may hold a single object, an array or an @graph.
func findJobPostingLD(doc *goquery.Document) (jobPostingLD, bool) {
	if doc == nil {
		return jobPostingLD{}, false
	}

	var found jobPostingLD
	ok := false
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var raw any
		if err := json.Unmarshal([]byte(strings.TrimSpace(s.Text())), &raw); err != nil {
			return true
		}
		if obj := findJobPostingObject(raw); obj != nil {
			found, ok = decodeJobPostingLD(obj), true
			return false
		}
		return true
	})
	return found, ok
}

func findJobPostingObject(raw any) map[string]any {
	switch v := raw.(type) {
	case []any:
		for _, item := range v {
			if obj := findJobPostingObject(item); obj != nil {
				return obj
			}
		}
	case map[string]any:
		if isJobPostingType(v["@type"]) {
			return v
		}
		if graph, ok := v["@graph"]; ok {
			return findJobPostingObject(graph)
		}
	}
	return nil
}

func isJobPostingType(t any) bool {
	switch v := t.(type) {
	case string:
		return v == "JobPosting"
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s == "JobPosting" {
				return true
			}
		}
	}
	return false
}

func decodeJobPostingLD(data map[string]any) jobPostingLD {
	var ld jobPostingLD

	ld.Title, _ = data["title"].(string)
	ld.PostedDate, _ = data["datePosted"].(string)
	if desc, ok := data["description"].(string); ok {
		// descriptions are frequently entity-escaped HTML
		ld.Description = html.UnescapeString(desc)
	}

	switch org := data["hiringOrganization"].(type) {
	case map[string]any:
		ld.Company, _ = org["name"].(string)
	case string:
		ld.Company = org
	}

	ld.Location = locationLD(data["jobLocation"])

	switch emp := data["employmentType"].(type) {
	case string:
		ld.EmploymentType = emp
	case []any:
		var types []string
		for _, item := range emp {
			if s, ok := item.(string); ok {
				types = append(types, s)
			}
		}
		ld.EmploymentType = strings.Join(types, ", ")
	}

	if salary, ok := data["baseSalary"].(map[string]any); ok {
		ld.Salary = salaryLD(salary)
	}

	return ld
}

func locationLD(raw any) string {
	switch v := raw.(type) {
	case []any:
		if len(v) > 0 {
			return locationLD(v[0])
		}
	case map[string]any:
		addr, ok := v["address"].(map[string]any)
		if !ok {
			return ""
		}
		var parts []string
		for _, key := range []string{"addressLocality", "addressRegion", "addressCountry"} {
			if s, ok := addr[key].(string); ok && s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

func salaryLD(salary map[string]any) string {
	currency, _ := salary["currency"].(string)
	val, ok := salary["value"].(map[string]any)
	if !ok {
		return ""
	}

	minValue, _ := val["minValue"].(float64)
	maxValue, _ := val["maxValue"].(float64)
	if minValue == 0 && maxValue == 0 {
		if single, ok := val["value"].(float64); ok {
			minValue, maxValue = single, single
		}
	}
	if minValue <= 0 && maxValue <= 0 {
		return ""
	}

	out := fmt.Sprintf("%.0f-%.0f", minValue, maxValue)
	if minValue == maxValue {
		out = fmt.Sprintf("%.0f", minValue)
	}
	if currency != "" {
		out += " " + currency
	}
	if unit, ok := val["unitText"].(string); ok && unit != "" {
		out += " per " + strings.ToLower(unit)
	}
	return out
}
