// Package types provides type definitions for structured data used throughout the resume-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// StructuredResume is the default-complete record produced by resume extraction.
// Every string defaults to "" and every collection to an empty, non-nil slice.
type StructuredResume struct {
	ContactInfo         ContactInfo      `json:"contactInfo"`
	ProfessionalSummary string           `json:"professionalSummary"`
	WorkExperience      []WorkExperience `json:"workExperience"`
	Education           []Education      `json:"education"`
	Skills              SkillSet         `json:"skills"`
	Certifications      []Certification  `json:"certifications"`
	Projects            []Project        `json:"projects"`
}

// ContactInfo holds the candidate's contact details
type ContactInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
}

// WorkExperience represents one employment entry
type WorkExperience struct {
	Company   string   `json:"company"`
	Position  string   `json:"position"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"` // "" when the role is current
	Bullets   []string `json:"bullets"`
}

// Education represents one education entry
type Education struct {
	School string `json:"school"`
	Degree string `json:"degree"`
	Field  string `json:"field"`
	Year   string `json:"year"`
	GPA    string `json:"gpa"`
}

// SkillSet buckets skills by category, preserving encounter order within each bucket
type SkillSet struct {
	Technical []string `json:"technical"`
	Tools     []string `json:"tools"`
	Soft      []string `json:"soft"`
	Languages []string `json:"languages"`
}

// Certification represents one certification entry
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Year   string `json:"year"`
}

// Project represents one project entry
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// NewStructuredResume returns the all-default resume skeleton.
func NewStructuredResume() StructuredResume {
	return StructuredResume{
		WorkExperience: []WorkExperience{},
		Education:      []Education{},
		Skills:         NewSkillSet(),
		Certifications: []Certification{},
		Projects:       []Project{},
	}
}

// NewSkillSet returns a skill set with every bucket empty.
func NewSkillSet() SkillSet {
	return SkillSet{
		Technical: []string{},
		Tools:     []string{},
		Soft:      []string{},
		Languages: []string{},
	}
}

// Normalize replaces nil collections with empty slices so the record always
// serializes every key as an array. Records decoded from external JSON (for
// example LLM output) pass through here before being returned.
func (r *StructuredResume) Normalize() {
	r.WorkExperience = nonNil(r.WorkExperience)
	for i := range r.WorkExperience {
		r.WorkExperience[i].Bullets = nonNil(r.WorkExperience[i].Bullets)
	}
	r.Education = nonNil(r.Education)
	r.Skills.Technical = nonNil(r.Skills.Technical)
	r.Skills.Tools = nonNil(r.Skills.Tools)
	r.Skills.Soft = nonNil(r.Skills.Soft)
	r.Skills.Languages = nonNil(r.Skills.Languages)
	r.Certifications = nonNil(r.Certifications)
	r.Projects = nonNil(r.Projects)
	for i := range r.Projects {
		r.Projects[i].Technologies = nonNil(r.Projects[i].Technologies)
	}
}

// IsEmpty reports whether nothing at all was extracted.
func (r StructuredResume) IsEmpty() bool {
	return r.ContactInfo == (ContactInfo{}) &&
		r.ProfessionalSummary == "" &&
		len(r.WorkExperience) == 0 &&
		len(r.Education) == 0 &&
		len(r.Skills.Technical)+len(r.Skills.Tools)+len(r.Skills.Soft)+len(r.Skills.Languages) == 0 &&
		len(r.Certifications) == 0 &&
		len(r.Projects) == 0
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
