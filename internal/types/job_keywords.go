package types

// JobKeywords is the condensed keyword view of a job posting produced by the
// LLM path. Keys use snake_case to match the prompt contract.
type JobKeywords struct {
	JobTitle            string   `json:"job_title"`
	RequiredSkills      []string `json:"required_skills"`
	KeyResponsibilities []string `json:"key_responsibilities"`
	Keywords            []string `json:"keywords"`
}

// DefaultJobTitle is used when no title could be recovered.
const DefaultJobTitle = "Position"

// NewJobKeywords returns the fallback keyword record.
func NewJobKeywords() JobKeywords {
	return JobKeywords{
		JobTitle:            DefaultJobTitle,
		RequiredSkills:      []string{},
		KeyResponsibilities: []string{},
		Keywords:            []string{},
	}
}

// Normalize replaces nil slices and fills an empty title with DefaultJobTitle.
func (k *JobKeywords) Normalize() {
	if k.JobTitle == "" {
		k.JobTitle = DefaultJobTitle
	}
	k.RequiredSkills = nonNil(k.RequiredSkills)
	k.KeyResponsibilities = nonNil(k.KeyResponsibilities)
	k.Keywords = nonNil(k.Keywords)
}
