package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-tailor/internal/fetch"
	"github.com/jonathan/resume-tailor/internal/pdftext"
	"github.com/jonathan/resume-tailor/internal/scraping"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Doe
jane.doe@example.com | (555) 123-4567

EXPERIENCE
Senior Engineer at Globex, 06/2019 - Present
• Led migration of billing to Kubernetes

SKILLS
Python, Docker`

const jobPage = `<html><body>
<h1>Platform Engineer</h1>
<div class="company-name">Umbrella</div>
<div class="job-description">
<p>You will run the Kubernetes platform that every product team at Umbrella deploys to, and keep it boring.</p>
<ul><li>Must have production Terraform experience</li></ul>
</div>
</body></html>`

func TestParseResume(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "resume.txt", sampleResume)

	stdout, _, err := executeCommand(t, "parse-resume", "--in", in, "--validate")
	require.NoError(t, err)

	var resume types.StructuredResume
	require.NoError(t, json.Unmarshal([]byte(stdout), &resume))
	assert.Equal(t, "Jane Doe", resume.ContactInfo.Name)
	require.Len(t, resume.WorkExperience, 1)
	assert.Equal(t, "Globex", resume.WorkExperience[0].Company)
	assert.Equal(t, []string{"Python", "Docker"}, resume.Skills.Technical)
}

func TestParseResume_OutFileAndVerbose(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "resume.txt", sampleResume)
	out := filepath.Join(dir, "resume.json")

	stdout, stderr, err := executeCommand(t, "parse-resume", "-i", in, "-o", out, "--verbose")
	require.NoError(t, err)

	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "EXTRACTED RESUME")
	assert.Contains(t, stderr, "Jane Doe")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"contactInfo"`)
}

func TestParseResume_Errors(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "resume.txt", sampleResume)
	brokenPDF := writeFile(t, dir, "broken.pdf", "%PDF-1.4\nnot really a pdf")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "missing --in", args: []string{"parse-resume"}, wantErr: `required flag(s) "in" not set`},
		{name: "missing file", args: []string{"parse-resume", "--in", filepath.Join(dir, "nope.txt")}, wantErr: "failed to read input file"},
		{name: "llm without key", args: []string{"parse-resume", "--in", in, "--llm"}, wantErr: "API key is required"},
		{name: "broken pdf", args: []string{"parse-resume", "--in", brokenPDF}, wantErr: "failed to parse PDF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GEMINI_API_KEY", "")
			_, _, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseResume_BrokenPDFIsTyped(t *testing.T) {
	in := writeFile(t, t.TempDir(), "resume.pdf", "%PDF-1.4\n%%EOF")

	_, _, err := executeCommand(t, "parse-resume", "--in", in)
	var pdfErr *pdftext.PDFParseError
	assert.True(t, errors.As(err, &pdfErr))
}

func TestParseJob(t *testing.T) {
	dir := t.TempDir()
	html := writeFile(t, dir, "job.html", jobPage)

	stdout, _, err := executeCommand(t, "parse-job", "--html", html, "--url", "https://careers.umbrella.com/jobs/platform-engineer", "--validate")
	require.NoError(t, err)

	var posting types.StructuredJobPosting
	require.NoError(t, json.Unmarshal([]byte(stdout), &posting))
	assert.Equal(t, "Platform Engineer", posting.Title)
	assert.Equal(t, "Umbrella", posting.Company)
	assert.Equal(t, []string{"kubernetes", "terraform"}, posting.Skills)
	assert.Equal(t, []string{"Must have production Terraform experience"}, posting.Requirements)
}

func TestParseJob_Errors(t *testing.T) {
	html := writeFile(t, t.TempDir(), "job.html", jobPage)

	_, _, err := executeCommand(t, "parse-job", "--html", html, "--url", "not a url")
	assert.True(t, errors.Is(err, scraping.ErrInvalidURL))

	_, _, err = executeCommand(t, "parse-job", "--html", html)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "url" not set`)

	t.Setenv("GEMINI_API_KEY", "")
	_, _, err = executeCommand(t, "parse-job", "--html", html, "--url", "https://careers.umbrella.com/jobs/1", "--keywords", filepath.Join(t.TempDir(), "k.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestScrapeJob(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/jobs/gone" {
			w.WriteHeader(http.StatusGone)
			return
		}
		_, _ = w.Write([]byte(jobPage))
	}))
	defer page.Close()

	out := filepath.Join(t.TempDir(), "job.json")
	_, stderr, err := executeCommand(t, "scrape-job", "--url", page.URL+"/jobs/platform-engineer", "--out", out, "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "SCRAPED JOB POSTING")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var posting types.StructuredJobPosting
	require.NoError(t, json.Unmarshal(data, &posting))
	assert.Equal(t, "Platform Engineer", posting.Title)

	_, _, err = executeCommand(t, "scrape-job", "--url", page.URL+"/jobs/gone")
	var scrapeErr *scraping.ScrapeError
	require.True(t, errors.As(err, &scrapeErr))
	var fetchErr *fetch.Error
	assert.True(t, errors.As(err, &fetchErr))
}

func TestValidateURL(t *testing.T) {
	stdout, _, err := executeCommand(t, "validate-url", "https://careers.example.com/123")
	require.NoError(t, err)

	var resp types.ValidateURLResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.True(t, resp.Valid)

	stdout, _, err = executeCommand(t, "validate-url", "https://example.com/about")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a job URL")
	assert.Contains(t, stdout, `"valid": false`)

	_, _, err = executeCommand(t, "validate-url")
	assert.Error(t, err)
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "alice.txt", sampleResume)
	writeFile(t, dir, "bob.md", "Bob Smith\nbob@example.com")
	writeFile(t, dir, "broken.pdf", "%PDF-1.4\nnot really a pdf")
	writeFile(t, dir, "notes.csv", "ignored")
	outDir := filepath.Join(dir, "out")

	_, stderr, err := executeCommand(t, "batch", "--dir", dir, "--out-dir", outDir, "--concurrency", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 files failed")
	assert.Contains(t, stderr, "BATCH RESULTS")
	assert.Contains(t, stderr, "broken.pdf")

	for _, name := range []string{"alice.json", "bob.json"} {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		require.NoError(t, err, name)
		var resume types.StructuredResume
		require.NoError(t, json.Unmarshal(data, &resume))
	}
	assert.NoFileExists(t, filepath.Join(outDir, "broken.json"))
	assert.NoFileExists(t, filepath.Join(outDir, "notes.json"))
}

func TestBatch_AllSucceed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "alice.txt", sampleResume)

	_, stderr, err := executeCommand(t, "batch", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, stderr, "1 FILES EXTRACTED")
	assert.FileExists(t, filepath.Join(dir, "alice.json"))
}

func TestBatch_EmptyDir(t *testing.T) {
	_, _, err := executeCommand(t, "batch", "--dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no resumes found")
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "resume.txt", sampleResume)

	bad := writeFile(t, dir, "config.json", `{"concurrency": 500}`)
	_, _, err := executeCommand(t, "--config", bad, "parse-resume", "--in", in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Concurrency")

	missingVocab := writeFile(t, dir, "vocab-config.json", `{"vocabulary": "/nonexistent/vocab.json"}`)
	_, _, err = executeCommand(t, "--config", missingVocab, "parse-resume", "--in", in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vocabulary file not found")
}
