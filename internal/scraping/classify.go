package scraping

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/resume-tailor/internal/vocab"
)

// Caps on each classified list.
const (
	MaxRequirements     = 10
	MaxResponsibilities = 10
	MaxSkills           = 20
	MaxQualifications   = 8
)

// Bounds, in runes, for list items taken by the requirement and
// responsibility fallback.
const (
	fallbackMinLen = 10
	fallbackMaxLen = 200
)

// descriptionBlocks is a description split into the units the classifiers read.
type descriptionBlocks struct {
	blocks []string // cleaned li and p texts in document order
	items  []string // cleaned li texts in document order
	text   string   // lower-cased cleaned text of the whole description
}

// splitDescription parses description HTML. Plain text, or HTML without
// list items or paragraphs, is split into lines that serve as both blocks
// and items.
func splitDescription(description string) descriptionBlocks {
	var out descriptionBlocks

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(description))
	if err != nil {
		return out
	}
	out.text = strings.ToLower(CleanText(doc.Text()))

	doc.Find("li, p").Each(func(_ int, s *goquery.Selection) {
		text := CleanText(s.Text())
		if text == "" {
			return
		}
		out.blocks = append(out.blocks, text)
		if goquery.NodeName(s) == "li" {
			out.items = append(out.items, text)
		}
	})

	if len(out.blocks) == 0 {
		for line := range strings.SplitSeq(doc.Text(), "\n") {
			if line = CleanText(line); line != "" {
				out.blocks = append(out.blocks, line)
			}
		}
		out.items = out.blocks
	}

	return out
}

// keywordBlocks returns blocks containing any keyword, falling back to
// medium-length list items when fallback is set and nothing matched.
func (d descriptionBlocks) keywordBlocks(keywords []string, limit int, fallback bool) []string {
	matched := []string{}
	for _, block := range d.blocks {
		if vocab.ContainsAny(strings.ToLower(block), keywords) {
			matched = append(matched, block)
		}
	}

	if len(matched) == 0 && fallback {
		for _, item := range d.items {
			if n := utf8.RuneCountInString(item); n >= fallbackMinLen && n < fallbackMaxLen {
				matched = append(matched, item)
			}
		}
	}

	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

// Classification holds the four independent lists derived from a description.
type Classification struct {
	Requirements     []string
	Responsibilities []string
	Skills           []string
	Qualifications   []string
}

// Classify runs the requirement, responsibility, skill and qualification
// extractors over description, which may be HTML or plain text. The lists
// may overlap.
func Classify(v *vocab.Vocabulary, description string) Classification {
	if v == nil {
		v = vocab.Default()
	}
	d := splitDescription(description)

	skills := vocab.Matches(d.text, v.Job.Skills)
	if len(skills) > MaxSkills {
		skills = skills[:MaxSkills]
	}

	return Classification{
		Requirements:     d.keywordBlocks(v.Job.Requirements, MaxRequirements, true),
		Responsibilities: d.keywordBlocks(v.Job.Responsibilities, MaxResponsibilities, true),
		Skills:           skills,
		Qualifications:   d.keywordBlocks(v.Job.Qualifications, MaxQualifications, false),
	}
}
