package scraping

import (
	"testing"

	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptionMarkdown(t *testing.T) {
	md, err := DescriptionMarkdown("<p>Build <strong>APIs</strong></p><ul><li>Go</li><li>SQL</li></ul>")
	require.NoError(t, err)
	assert.Contains(t, md, "Build **APIs**")
	assert.Contains(t, md, "- Go")
	assert.Contains(t, md, "- SQL")

	md, err = DescriptionMarkdown("   ")
	require.NoError(t, err)
	assert.Equal(t, "", md)
}

func TestFormatDescription(t *testing.T) {
	p := types.NewStructuredJobPosting()
	assert.Equal(t, "", FormatDescription(p))

	p.Title = "Backend Engineer"
	p.Company = "Globex"
	p.Description = "Build payment services."
	p.Requirements = []string{"5 years of Go"}
	p.Skills = []string{"go", "sql"}

	got := FormatDescription(p)
	assert.Equal(t, `Job Title: Backend Engineer
Company: Globex

Description:
Build payment services.

Requirements:
- 5 years of Go

Skills: go, sql`, got)
}

func TestKeywordInput(t *testing.T) {
	p := types.NewStructuredJobPosting()
	p.Title = "Backend Engineer"
	p.Description = "Build APIs Go SQL"

	got := KeywordInput(p, "<p>Build <strong>APIs</strong></p><ul><li>Go</li><li>SQL</li></ul>")
	assert.Contains(t, got, "Job Title: Backend Engineer")
	assert.Contains(t, got, "Build **APIs**")
	assert.Contains(t, got, "- Go")
	assert.NotContains(t, got, "Build APIs Go SQL")
	assert.Equal(t, "Build APIs Go SQL", p.Description, "posting is not modified")

	assert.Contains(t, KeywordInput(p, ""), "Build APIs Go SQL")
}
