package parsing

import (
	"regexp"
	"slices"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/jonathan/resume-tailor/internal/vocab"
)

// SkillCategory is the bucket a skill fragment lands in
type SkillCategory string

// Skill categories, in the order they are tested
const (
	SkillTechnical SkillCategory = "technical"
	SkillTool      SkillCategory = "tools"
	SkillLanguage  SkillCategory = "languages"
	SkillSoft      SkillCategory = "soft"
)

var skillSeparators = regexp.MustCompile(`[,;•\-\n]`)

// CategorizeSkill classifies a fragment as technical, tool or language by
// substring containment against the closed vocabularies. Unmatched fragments
// are soft skills.
func (c *Classifier) CategorizeSkill(fragment string) SkillCategory {
	lower := strings.ToLower(fragment)
	switch {
	case vocab.ContainsAny(lower, c.vocab.ResumeSkills.Technical):
		return SkillTechnical
	case vocab.ContainsAny(lower, c.vocab.ResumeSkills.Tools):
		return SkillTool
	case vocab.ContainsAny(lower, c.vocab.ResumeSkills.Languages):
		return SkillLanguage
	default:
		return SkillSoft
	}
}

// IsTechnicalSkill reports whether fragment contains a technical keyword.
func (c *Classifier) IsTechnicalSkill(fragment string) bool {
	return vocab.ContainsAny(strings.ToLower(fragment), c.vocab.ResumeSkills.Technical)
}

// SplitSkills splits a skills line into trimmed, non-empty fragments.
func SplitSkills(line string) []string {
	fragments := []string{}
	for _, part := range skillSeparators.Split(line, -1) {
		if part = strings.TrimSpace(part); part != "" {
			fragments = append(fragments, part)
		}
	}
	return fragments
}

// addSkill adds fragment to the bucket chosen by CategorizeSkill. Buckets are
// sets: a fragment already present is not added twice.
func (c *Classifier) addSkill(skills *types.SkillSet, fragment string) {
	var bucket *[]string
	switch c.CategorizeSkill(fragment) {
	case SkillTechnical:
		bucket = &skills.Technical
	case SkillTool:
		bucket = &skills.Tools
	case SkillLanguage:
		bucket = &skills.Languages
	default:
		bucket = &skills.Soft
	}
	if !slices.Contains(*bucket, fragment) {
		*bucket = append(*bucket, fragment)
	}
}
