package scraping

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidJobURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{url: "https://careers.example.com/123", want: true},
		{url: "https://example.com/about", want: false},
		{url: "https://www.linkedin.com/jobs/view/3712345", want: true},
		{url: "https://www.indeed.com/jobs/q-golang", want: true},
		{url: "https://jobs.lever.co/acme/abc", want: true},
		{url: "https://acme.com/open-positions", want: true},
		{url: "https://acme.com/Careers", want: true},
		{url: "https://acme.com/team", want: false},
		{url: "/jobs/relative", want: false},
		{url: "not a url", want: false},
		{url: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidJobURL(tt.url))
		})
	}
}

func TestParseURL(t *testing.T) {
	u, err := ParseURL(" https://careers.example.com/123 ")
	assert.NoError(t, err)
	assert.Equal(t, "careers.example.com", u.Host)

	_, err = ParseURL("example.com/jobs")
	assert.True(t, errors.Is(err, ErrInvalidURL))
}

func TestTitleFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{url: "https://www.acme.com/jobs/senior-backend-engineer", want: "Senior Backend Engineer"},
		{url: "https://acme.com/jobs/senior-backend-engineer/", want: "Senior Backend Engineer"},
		{url: "https://acme.com/jobs/data%20engineer", want: "Data Engineer"},
		{url: "https://acme.com", want: ""},
		{url: "nonsense", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleFromURL(tt.url))
		})
	}
}

func TestCompanyFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{url: "https://www.acme.com/jobs/1", want: "acme"},
		{url: "https://careers.globex.io/x", want: "careers"},
		{url: "http://localhost:8080/jobs", want: "localhost"},
		{url: "nonsense", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, CompanyFromURL(tt.url))
		})
	}
}
