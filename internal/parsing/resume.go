package parsing

import (
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/jonathan/resume-tailor/internal/vocab"
)

// Length thresholds below which a line is treated as noise
const (
	minSummaryLineLen     = 10 // summary lines must be longer than this
	minBulletLen          = 5  // stripped bullets must be longer than this
	minLooseBulletLen     = 20 // unmarked experience lines must be longer than this
	minEducationDetailLen = 10
	minCertificationLen   = 10
	minProjectNameLen     = 5
)

// ResumeExtractor builds a StructuredResume from plain text with a single
// section state machine. It holds no per-call state and is safe for
// concurrent use.
type ResumeExtractor struct {
	cls *Classifier
}

// NewResumeExtractor creates an extractor over v, or over the embedded
// vocabulary when v is nil.
func NewResumeExtractor(v *vocab.Vocabulary) *ResumeExtractor {
	return &ResumeExtractor{cls: NewClassifier(v)}
}

// Classifier exposes the line classifier the extractor uses.
func (e *ResumeExtractor) Classifier() *Classifier {
	return e.cls
}

var defaultExtractor = NewResumeExtractor(nil)

// ExtractResumeStructure extracts a resume with the embedded vocabulary.
func ExtractResumeStructure(text string) types.StructuredResume {
	return defaultExtractor.Extract(text)
}

// Extract runs one pass over the normalized lines of text. Empty or
// unrecognizable text yields the all-default skeleton.
func (e *ResumeExtractor) Extract(text string) types.StructuredResume {
	st := &parseState{
		cls:    e.cls,
		resume: types.NewStructuredResume(),
	}

	head := make([]string, 0, contactWindow)
	for line := range Lines(text) {
		if len(head) < contactWindow {
			head = append(head, line)
		}
		st.step(line)
	}
	st.flush()

	st.resume.ContactInfo = ExtractContactInfo(head)
	st.resume.Normalize()
	return st.resume
}

// parseState is the state machine for one Extract call. At most one of the
// active records is non-nil at a time.
type parseState struct {
	cls     *Classifier
	section Section
	resume  types.StructuredResume

	experience *types.WorkExperience
	education  *types.Education
	project    *types.Project
}

func (st *parseState) step(line string) {
	// Loose entry: a line whose first matching section, in priority order,
	// is not the active one switches to it. Lines resolving to the active
	// section stay data.
	if next := st.cls.EnteredSection(line); next != SectionNone && next != st.section {
		st.flush()
		st.section = next
		return
	}

	// Strict exit: an all-caps header that opens no known section.
	if st.section != SectionNone && st.cls.IsSectionHeader(line) && !st.cls.MatchesEntry(st.section, line) {
		st.flush()
		st.section = SectionNone
		return
	}

	switch st.section {
	case SectionSummary:
		st.summaryLine(line)
	case SectionExperience:
		st.experienceLine(line)
	case SectionEducation:
		st.educationLine(line)
	case SectionSkills:
		st.skillsLine(line)
	case SectionCertifications:
		st.certificationLine(line)
	case SectionProjects:
		st.projectLine(line)
	}
}

// flush moves the in-progress record, if any, into the output.
func (st *parseState) flush() {
	if st.experience != nil {
		st.resume.WorkExperience = append(st.resume.WorkExperience, *st.experience)
		st.experience = nil
	}
	if st.education != nil {
		st.resume.Education = append(st.resume.Education, *st.education)
		st.education = nil
	}
	if st.project != nil {
		st.resume.Projects = append(st.resume.Projects, *st.project)
		st.project = nil
	}
}

func (st *parseState) summaryLine(line string) {
	if len(line) <= minSummaryLineLen {
		return
	}
	if st.resume.ProfessionalSummary != "" {
		st.resume.ProfessionalSummary += " "
	}
	st.resume.ProfessionalSummary += line
}

func (st *parseState) experienceLine(line string) {
	// Marked lines under an open entry are bullets even when they carry a
	// hyphen or a date range.
	if st.experience != nil && IsBullet(line) {
		if bullet := StripBullet(line); len(bullet) > minBulletLen {
			st.experience.Bullets = append(st.experience.Bullets, bullet)
		}
		return
	}

	dates, hasDates := FindDateRange(line)
	if hasDates || strings.ContainsAny(line, "–-") {
		st.flush()
		entry := types.WorkExperience{Bullets: []string{}}
		remainder := line
		if hasDates {
			entry.StartDate = dates.Start
			entry.EndDate = dates.End
			remainder = strings.Replace(line, dates.Match, "", 1)
		}
		entry.Position, entry.Company = splitRoleLine(remainder)
		st.experience = &entry
		return
	}

	if st.experience != nil && len(line) > minLooseBulletLen && !st.cls.IsSectionHeader(line) {
		st.experience.Bullets = append(st.experience.Bullets, line)
	}
}

// roleSeparators split "<company> – <position>" lines, tried in order.
var roleSeparators = []string{" – ", " - ", " — "}

// splitRoleLine parses "<position> at <company>" first, then
// "<company> – <position>". Anything else is taken as the company.
func splitRoleLine(remainder string) (position, company string) {
	remainder = strings.Trim(remainder, " \t,|()–—-")
	if remainder == "" {
		return "", ""
	}

	if idx := strings.Index(strings.ToLower(remainder), " at "); idx >= 0 {
		return strings.TrimSpace(remainder[:idx]), strings.TrimSpace(remainder[idx+len(" at "):])
	}

	for _, sep := range roleSeparators {
		if idx := strings.Index(remainder, sep); idx >= 0 {
			return strings.TrimSpace(remainder[idx+len(sep):]), strings.TrimSpace(remainder[:idx])
		}
	}

	return "", remainder
}

func (st *parseState) educationLine(line string) {
	lower := strings.ToLower(line)
	degree := DegreeToken(line)

	if degree != "" || strings.Contains(lower, "university") || strings.Contains(lower, "college") {
		st.flush()
		entry := types.Education{
			Year: Year(line),
			GPA:  GPA(line),
		}
		if vocab.ContainsAny(lower, st.cls.vocab.SchoolKeywords) {
			entry.School = line
		}
		if degree != "" {
			entry.Degree = line
		}
		st.education = &entry
		return
	}

	if st.education != nil && len(line) > minEducationDetailLen &&
		(strings.Contains(lower, "major") || strings.Contains(lower, "field")) {
		st.education.Field = line
	}
}

func (st *parseState) skillsLine(line string) {
	for _, fragment := range SplitSkills(line) {
		st.cls.addSkill(&st.resume.Skills, fragment)
	}
}

func (st *parseState) certificationLine(line string) {
	if len(line) <= minCertificationLen {
		return
	}
	st.resume.Certifications = append(st.resume.Certifications, types.Certification{
		Name: line,
		Year: Year(line),
	})
}

func (st *parseState) projectLine(line string) {
	marked := strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*")

	if !marked {
		if len(line) > minProjectNameLen {
			st.flush()
			st.project = &types.Project{Name: line, Technologies: []string{}}
		}
		return
	}

	if st.project == nil {
		return
	}
	bullet := StripBullet(line)
	switch {
	case bullet == "":
	case st.cls.IsTechnicalSkill(bullet):
		st.project.Technologies = append(st.project.Technologies, bullet)
	default:
		if st.project.Description != "" {
			st.project.Description += " "
		}
		st.project.Description += bullet
	}
}
