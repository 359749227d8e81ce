package parsing

import (
	"strings"

	"github.com/jonathan/resume-tailor/internal/vocab"
)

// Section identifies the resume section the extractor is currently reading
type Section int

// Sections in entry priority order. When a line matches several entry
// keyword sets, the earliest section wins.
const (
	SectionNone Section = iota
	SectionSummary
	SectionExperience
	SectionEducation
	SectionSkills
	SectionCertifications
	SectionProjects
)

var sectionOrder = []Section{
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionCertifications,
	SectionProjects,
}

var sectionNames = map[Section]string{
	SectionNone:           "none",
	SectionSummary:        "summary",
	SectionExperience:     "experience",
	SectionEducation:      "education",
	SectionSkills:         "skills",
	SectionCertifications: "certifications",
	SectionProjects:       "projects",
}

func (s Section) String() string {
	if name, ok := sectionNames[s]; ok {
		return name
	}
	return "unknown"
}

// Classifier answers keyword questions about single lines. It only reads its
// vocabulary, so one Classifier can serve any number of goroutines.
type Classifier struct {
	vocab *vocab.Vocabulary
}

// NewClassifier creates a Classifier over v, falling back to the embedded
// vocabulary when v is nil.
func NewClassifier(v *vocab.Vocabulary) *Classifier {
	if v == nil {
		v = vocab.Default()
	}
	return &Classifier{vocab: v}
}

// IsSectionHeader reports whether line is a strict section header: it names a
// header keyword, is shorter than 50 bytes and is entirely upper case.
func (c *Classifier) IsSectionHeader(line string) bool {
	if line == "" || len(line) >= 50 {
		return false
	}
	if line != strings.ToUpper(line) {
		return false
	}
	return vocab.ContainsAny(strings.ToLower(line), c.vocab.SectionHeaders)
}

// EntryKeywords returns the loose keyword set that opens section s.
func (c *Classifier) EntryKeywords(s Section) []string {
	if s == SectionNone {
		return nil
	}
	return c.vocab.SectionEntry[s.String()]
}

// MatchesEntry reports whether line contains one of the entry keywords of s.
func (c *Classifier) MatchesEntry(s Section, line string) bool {
	return vocab.ContainsAny(strings.ToLower(line), c.EntryKeywords(s))
}

// EnteredSection returns the first section, in priority order, whose entry
// keywords occur anywhere in line, or SectionNone.
func (c *Classifier) EnteredSection(line string) Section {
	lower := strings.ToLower(line)
	for _, s := range sectionOrder {
		if vocab.ContainsAny(lower, c.EntryKeywords(s)) {
			return s
		}
	}
	return SectionNone
}
