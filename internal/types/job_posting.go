package types

// StructuredJobPosting is the default-complete record produced by job posting extraction
type StructuredJobPosting struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	Description      string   `json:"description"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
	Skills           []string `json:"skills"`
	Qualifications   []string `json:"qualifications"`
	Salary           string   `json:"salary"`
	EmploymentType   string   `json:"employmentType"`
	PostedDate       string   `json:"postedDate"`
}

// NewStructuredJobPosting returns the all-default job posting skeleton.
func NewStructuredJobPosting() StructuredJobPosting {
	return StructuredJobPosting{
		Requirements:     []string{},
		Responsibilities: []string{},
		Skills:           []string{},
		Qualifications:   []string{},
	}
}

// Normalize replaces nil collections with empty slices.
func (p *StructuredJobPosting) Normalize() {
	p.Requirements = nonNil(p.Requirements)
	p.Responsibilities = nonNil(p.Responsibilities)
	p.Skills = nonNil(p.Skills)
	p.Qualifications = nonNil(p.Qualifications)
}
