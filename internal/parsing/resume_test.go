package parsing

import (
	"strings"
	"sync"
	"testing"

	"github.com/jonathan/resume-tailor/internal/schemas"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Doe
jane.doe@example.com | (555) 123-4567
linkedin.com/in/janedoe
Seattle, WA

SUMMARY
Backend engineer with eight years building payment systems.
Enjoys mentoring.
Short.

EXPERIENCE
Senior Engineer at Globex, 06/2019 - Present
• Led migration of billing to Kubernetes
• Cut p99 latency by 40%
- Ok
Mentored four junior engineers on code review practices
Initech – Software Engineer 2015 - 2019
* Built REST APIs in Python

EDUCATION
B.S. Computer Science, State University 2015 GPA: 3.7
Major: Computer Science and Mathematics

SKILLS
Python, Go, Docker; Jira • Spanish
Leadership, Python

CERTIFICATIONS
AWS Certified Solutions Architect 2020
CKA

PROJECTS
Ledger CLI
- Python
- Reconciles bank exports nightly
Open source parser toolkit

REFERENCES
Available on request
`

func TestExtractResumeStructure_EmptyInputReturnsSkeleton(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n\r\n"} {
		got := ExtractResumeStructure(input)
		assert.Equal(t, types.NewStructuredResume(), got)
		assert.True(t, got.IsEmpty())
	}
}

func TestExtractResumeStructure_ContactLineWithEmail(t *testing.T) {
	got := ExtractResumeStructure("John Doe, john@x.com, (555) 123-4567")

	assert.Equal(t, "john@x.com", got.ContactInfo.Email)
	assert.Equal(t, "(555) 123-4567", got.ContactInfo.Phone)
	assert.Empty(t, got.ContactInfo.Name)
	assert.Empty(t, got.ContactInfo.Location)
}

func TestExtractResumeStructure_SectionExitAndReentry(t *testing.T) {
	text := strings.Join([]string{
		"EXPERIENCE",
		"Acme Corp - Engineer 2019-2021",
		"• Built X",
		"EDUCATION",
		"State University 2021",
	}, "\n")

	got := ExtractResumeStructure(text)

	require.Len(t, got.WorkExperience, 1)
	exp := got.WorkExperience[0]
	assert.Equal(t, "Acme Corp", exp.Company)
	assert.Equal(t, "Engineer", exp.Position)
	assert.Equal(t, "2019", exp.StartDate)
	assert.Equal(t, "2021", exp.EndDate)
	assert.Equal(t, []string{"Built X"}, exp.Bullets)

	require.Len(t, got.Education, 1)
	assert.Equal(t, "State University 2021", got.Education[0].School)
	assert.Equal(t, "2021", got.Education[0].Year)
}

func TestExtractResumeStructure_ProjectsThenWorkExperience(t *testing.T) {
	text := strings.Join([]string{
		"PROJECTS",
		"Resume Parser Tool",
		"- Python",
		"WORK EXPERIENCE",
		"Acme Corp - Engineer 2019-2021",
		"• Built the billing pipeline",
	}, "\n")

	got := ExtractResumeStructure(text)

	require.Len(t, got.Projects, 1)
	assert.Equal(t, "Resume Parser Tool", got.Projects[0].Name)
	assert.Equal(t, []string{"Python"}, got.Projects[0].Technologies)

	require.Len(t, got.WorkExperience, 1)
	assert.Equal(t, "Acme Corp", got.WorkExperience[0].Company)
	assert.Equal(t, "Engineer", got.WorkExperience[0].Position)
	assert.Equal(t, []string{"Built the billing pipeline"}, got.WorkExperience[0].Bullets)
}

func TestExtractResumeStructure_EntryKeywordLines(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantWork     int
		wantProjects int
		wantBullets  []string
	}{
		{
			name:        "own keyword stays in experience",
			text:        "EXPERIENCE\nAcme - Engineer 2019 - 2021\n• Owned the work queue rewrite",
			wantWork:    1,
			wantBullets: []string{"Owned the work queue rewrite"},
		},
		{
			name:         "shared keyword in projects opens experience",
			text:         "PROJECTS\nLedger CLI\nOpen source work\nAcme - Engineer 2019 - 2021",
			wantWork:     1,
			wantProjects: 1,
			wantBullets:  []string{},
		},
		{
			name:         "projects header inside experience",
			text:         "EXPERIENCE\nAcme - Engineer 2019 - 2021\nPROJECTS\nLedger CLI",
			wantWork:     1,
			wantProjects: 1,
			wantBullets:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractResumeStructure(tt.text)
			require.Len(t, got.WorkExperience, tt.wantWork)
			assert.Len(t, got.Projects, tt.wantProjects)
			assert.Equal(t, tt.wantBullets, got.WorkExperience[0].Bullets)
		})
	}
}

func TestExtractResumeStructure_MarkedLinesStayBullets(t *testing.T) {
	text := strings.Join([]string{
		"EXPERIENCE",
		"Acme - Engineer 2019 - 2021",
		"- Shipped the self-serve onboarding flow",
		"• Ran the 2020 - 2021 on-call rotation",
	}, "\n")

	got := ExtractResumeStructure(text)

	require.Len(t, got.WorkExperience, 1)
	assert.Equal(t, []string{
		"Shipped the self-serve onboarding flow",
		"Ran the 2020 - 2021 on-call rotation",
	}, got.WorkExperience[0].Bullets)
}

func TestExtractResumeStructure_UnknownHeaderLeavesNone(t *testing.T) {
	text := strings.Join([]string{
		"EXPERIENCE",
		"Acme Corp - Engineer 2019-2021",
		"CONTACT",
		"Reach me any time for a reference call",
	}, "\n")

	got := ExtractResumeStructure(text)

	require.Len(t, got.WorkExperience, 1)
	assert.Empty(t, got.WorkExperience[0].Bullets)
}

func TestExtractResumeStructure_FullResume(t *testing.T) {
	got := ExtractResumeStructure(sampleResume)

	assert.Equal(t, types.ContactInfo{
		Name:     "Jane Doe",
		Email:    "jane.doe@example.com",
		Phone:    "(555) 123-4567",
		Location: "Seattle, WA",
		LinkedIn: "linkedin.com/in/janedoe",
	}, got.ContactInfo)

	assert.Equal(t, "Backend engineer with eight years building payment systems. Enjoys mentoring.", got.ProfessionalSummary)

	require.Len(t, got.WorkExperience, 2)
	assert.Equal(t, types.WorkExperience{
		Company:   "Globex",
		Position:  "Senior Engineer",
		StartDate: "06/2019",
		EndDate:   "",
		Bullets: []string{
			"Led migration of billing to Kubernetes",
			"Cut p99 latency by 40%",
			"Mentored four junior engineers on code review practices",
		},
	}, got.WorkExperience[0])
	assert.Equal(t, "Initech", got.WorkExperience[1].Company)
	assert.Equal(t, "Software Engineer", got.WorkExperience[1].Position)
	assert.Equal(t, "2015", got.WorkExperience[1].StartDate)
	assert.Equal(t, "2019", got.WorkExperience[1].EndDate)
	assert.Equal(t, []string{"Built REST APIs in Python"}, got.WorkExperience[1].Bullets)

	require.Len(t, got.Education, 1)
	edu := got.Education[0]
	assert.Equal(t, "B.S. Computer Science, State University 2015 GPA: 3.7", edu.School)
	assert.Equal(t, edu.School, edu.Degree)
	assert.Equal(t, "2015", edu.Year)
	assert.Equal(t, "3.7", edu.GPA)
	assert.Equal(t, "Major: Computer Science and Mathematics", edu.Field)

	assert.Equal(t, []string{"Python", "Docker"}, got.Skills.Technical)
	assert.Equal(t, []string{"Jira"}, got.Skills.Tools)
	assert.Equal(t, []string{"Spanish"}, got.Skills.Languages)
	assert.Equal(t, []string{"Go", "Leadership"}, got.Skills.Soft)

	require.Len(t, got.Certifications, 1)
	assert.Equal(t, types.Certification{Name: "AWS Certified Solutions Architect 2020", Year: "2020"}, got.Certifications[0])

	require.Len(t, got.Projects, 2)
	assert.Equal(t, "Ledger CLI", got.Projects[0].Name)
	assert.Equal(t, []string{"Python"}, got.Projects[0].Technologies)
	assert.Equal(t, "Reconciles bank exports nightly", got.Projects[0].Description)
	assert.Equal(t, "Open source parser toolkit", got.Projects[1].Name)
	assert.Empty(t, got.Projects[1].Technologies)
}

func TestExtractResumeStructure_OutputPassesSchema(t *testing.T) {
	for _, input := range []string{"", sampleResume} {
		assert.NoError(t, schemas.ValidateResume(ExtractResumeStructure(input)))
	}
}

func TestExtractResumeStructure_BulletOrderPreserved(t *testing.T) {
	text := "EXPERIENCE\nAcme - Engineer 2020 - 2021\n• first bullet\n• second bullet\n• third bullet"

	got := ExtractResumeStructure(text)

	require.Len(t, got.WorkExperience, 1)
	assert.Equal(t, []string{"first bullet", "second bullet", "third bullet"}, got.WorkExperience[0].Bullets)
}

func TestExtractResumeStructure_RoleLineForms(t *testing.T) {
	tests := []struct {
		line         string
		wantPosition string
		wantCompany  string
	}{
		{line: "Data Analyst at Umbrella Corp 2016 - 2018", wantPosition: "Data Analyst", wantCompany: "Umbrella Corp"},
		{line: "Umbrella Corp – Data Analyst, 2016 – 2018", wantPosition: "Data Analyst", wantCompany: "Umbrella Corp"},
		{line: "Umbrella Corp 01/2016 - 02/2018", wantPosition: "", wantCompany: "Umbrella Corp"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := ExtractResumeStructure("EXPERIENCE\n" + tt.line)
			require.Len(t, got.WorkExperience, 1)
			assert.Equal(t, tt.wantPosition, got.WorkExperience[0].Position)
			assert.Equal(t, tt.wantCompany, got.WorkExperience[0].Company)
		})
	}
}

func TestExtractResumeStructure_Idempotent(t *testing.T) {
	first := ExtractResumeStructure(sampleResume)
	second := ExtractResumeStructure(sampleResume)
	assert.Equal(t, first, second)
}

func TestResumeExtractor_ConcurrentUse(t *testing.T) {
	extractor := NewResumeExtractor(nil)
	want := extractor.Extract(sampleResume)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, extractor.Extract(sampleResume))
		}()
	}
	wg.Wait()
}

func TestExtractContactInfo_OnlyFirstFiveLines(t *testing.T) {
	lines := []string{"Jane Doe", "Engineer", "Remote", "Open to relocation", "Available now", "jane@x.com"}
	got := ExtractContactInfo(lines)

	assert.Equal(t, "Jane Doe", got.Name)
	assert.Empty(t, got.Email)
}
