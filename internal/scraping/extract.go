package scraping

import (
	"github.com/jonathan/resume-tailor/internal/fetch"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/jonathan/resume-tailor/internal/vocab"
)

// Extractor turns fetched job page HTML into a StructuredJobPosting. It never
// fails: missing fields stay empty. Safe for concurrent use.
type Extractor struct {
	vocab *vocab.Vocabulary
}

// NewExtractor creates an extractor over v, or over the embedded vocabulary
// when v is nil.
func NewExtractor(v *vocab.Vocabulary) *Extractor {
	if v == nil {
		v = vocab.Default()
	}
	return &Extractor{vocab: v}
}

// Extract picks the site strategy from sourceURL and extracts html with it.
func (e *Extractor) Extract(html, sourceURL string) types.StructuredJobPosting {
	return e.ExtractWithSite(SiteFor(sourceURL), html, sourceURL)
}

// ExtractWithSite extracts html using site's selector chains. Fields still
// empty afterwards are filled from a schema.org JobPosting block and, for
// sites that allow it, from the board's main content and the URL.
func (e *Extractor) ExtractWithSite(site *Site, html, sourceURL string) types.StructuredJobPosting {
	p, _ := e.extract(site, html, sourceURL)
	return p
}

// ExtractWithDescription is Extract that also returns the raw description
// HTML the lists were classified from.
func (e *Extractor) ExtractWithDescription(html, sourceURL string) (types.StructuredJobPosting, string) {
	return e.extract(SiteFor(sourceURL), html, sourceURL)
}

func (e *Extractor) extract(site *Site, html, sourceURL string) (types.StructuredJobPosting, string) {
	p := types.NewStructuredJobPosting()
	r := NewResolver(html)

	p.Title = r.Resolve(site.Title)
	p.Company = r.Resolve(site.Company)
	p.Location = r.Resolve(site.Location)

	var descriptionHTML string
	if m, ok := r.ResolveMatch(site.Description); ok {
		p.Description = m.Text
		descriptionHTML = m.Raw
	}

	p.Salary = r.Resolve(site.Salary)
	p.EmploymentType = r.Resolve(site.EmploymentType)
	p.PostedDate = r.Resolve(site.PostedDate)

	if ld, ok := findJobPostingLD(r.Document()); ok {
		fillEmpty(&p.Title, CleanText(ld.Title))
		fillEmpty(&p.Company, CleanText(ld.Company))
		fillEmpty(&p.Location, CleanText(ld.Location))
		fillEmpty(&p.EmploymentType, CleanText(ld.EmploymentType))
		fillEmpty(&p.Salary, ld.Salary)
		fillEmpty(&p.PostedDate, CleanText(ld.PostedDate))
		if p.Description == "" && ld.Description != "" {
			p.Description = CleanText(ld.Description)
			descriptionHTML = ld.Description
		}
	}

	if p.Description == "" && site.MainText {
		text, err := fetch.ExtractMainText(html, fetch.PlatformContentSelectors(site.Platform), fetch.PlatformNoiseSelectors(site.Platform)...)
		if err == nil && len(CleanText(text)) > MinDescriptionLength {
			p.Description = CleanText(text)
			descriptionHTML = text
		}
	}

	if site.URLFallback {
		fillEmpty(&p.Title, TitleFromURL(sourceURL))
		fillEmpty(&p.Company, CompanyFromURL(sourceURL))
	}

	if p.Description != "" {
		c := Classify(e.vocab, descriptionHTML)
		p.Requirements = c.Requirements
		p.Responsibilities = c.Responsibilities
		p.Skills = c.Skills
		p.Qualifications = c.Qualifications
	}

	p.Normalize()
	return p, descriptionHTML
}

// ExtractJobPosting extracts html with the embedded vocabulary.
func ExtractJobPosting(html, sourceURL string) types.StructuredJobPosting {
	return defaultExtractor.Extract(html, sourceURL)
}

var defaultExtractor = NewExtractor(nil)

func fillEmpty(field *string, value string) {
	if *field == "" {
		*field = value
	}
}
