// Package scraping extracts structured job postings from job board and career
// site HTML. Field values come from ordered CSS selector chains; list fields
// come from keyword classification of the description.
package scraping

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// MinDescriptionLength is the cleaned length a description candidate must
// exceed, which rejects boilerplate snippets.
const MinDescriptionLength = 100

// Candidate is one selector in a chain together with how a match is read.
type Candidate struct {
	Selector string
	Extract  func(*goquery.Selection) string
}

// Chain is an ordered list of candidates evaluated lazily. MinLength is the
// cleaned rune count a value must exceed to be accepted.
type Chain struct {
	Candidates []Candidate
	MinLength  int
}

// Match is the accepted value of a chain.
type Match struct {
	Selector string
	Raw      string // value as extracted, possibly HTML
	Text     string // Raw after CleanText
}

func firstText(s *goquery.Selection) string {
	return s.First().Text()
}

func firstHTML(s *goquery.Selection) string {
	html, err := s.First().Html()
	if err != nil {
		return ""
	}
	return html
}

// TextChain builds a chain that reads the text of the first element matched
// by each selector and accepts any non-empty value.
func TextChain(selectors ...string) Chain {
	return newChain(firstText, selectors)
}

// HTMLChain builds a chain that reads the inner HTML of the first element
// matched by each selector and accepts values longer than
// MinDescriptionLength once cleaned.
func HTMLChain(selectors ...string) Chain {
	return newChain(firstHTML, selectors).WithMinLength(MinDescriptionLength)
}

func newChain(extract func(*goquery.Selection) string, selectors []string) Chain {
	candidates := make([]Candidate, 0, len(selectors))
	for _, sel := range selectors {
		candidates = append(candidates, Candidate{Selector: sel, Extract: extract})
	}
	return Chain{Candidates: candidates}
}

// WithMinLength returns a copy of c with a different acceptance threshold.
func (c Chain) WithMinLength(n int) Chain {
	c.MinLength = n
	return c
}

// ResolveMatch evaluates candidates in order and stops at the first value
// whose cleaned form is longer than MinLength.
func (c Chain) ResolveMatch(doc *goquery.Document) (Match, bool) {
	if doc == nil {
		return Match{}, false
	}
	for _, cand := range c.Candidates {
		sel := doc.Find(cand.Selector)
		if sel.Length() == 0 {
			continue
		}
		raw := cand.Extract(sel)
		text := CleanText(raw)
		if text != "" && utf8.RuneCountInString(text) > c.MinLength {
			return Match{Selector: cand.Selector, Raw: raw, Text: text}, true
		}
	}
	return Match{}, false
}

// Resolve returns the cleaned value of the first accepted candidate, or "".
func (c Chain) Resolve(doc *goquery.Document) string {
	m, _ := c.ResolveMatch(doc)
	return m.Text
}

// Resolver parses a document once and resolves any number of chains against it.
type Resolver struct {
	doc *goquery.Document
}

// NewResolver parses html. Malformed markup still yields a usable, possibly
// empty, document.
func NewResolver(html string) *Resolver {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return &Resolver{}
	}
	return &Resolver{doc: doc}
}

// Document returns the parsed document, or nil when parsing failed.
func (r *Resolver) Document() *goquery.Document {
	return r.doc
}

// Resolve returns the cleaned value of chain, or "".
func (r *Resolver) Resolve(chain Chain) string {
	return chain.Resolve(r.doc)
}

// ResolveMatch returns the accepted match of chain.
func (r *Resolver) ResolveMatch(chain Chain) (Match, bool) {
	return chain.ResolveMatch(r.doc)
}
