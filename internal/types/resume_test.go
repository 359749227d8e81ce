package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStructuredResume_SerializesEveryKey(t *testing.T) {
	jsonBytes, err := json.Marshal(NewStructuredResume())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(jsonBytes, &decoded))

	for _, key := range []string{"contactInfo", "professionalSummary", "workExperience", "education", "skills", "certifications", "projects"} {
		assert.Contains(t, decoded, key)
	}
	assert.Equal(t, []any{}, decoded["workExperience"])
	assert.Equal(t, []any{}, decoded["projects"])

	skills, ok := decoded["skills"].(map[string]any)
	require.True(t, ok)
	for _, bucket := range []string{"technical", "tools", "soft", "languages"} {
		assert.Equal(t, []any{}, skills[bucket], bucket)
	}

	contact, ok := decoded["contactInfo"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"name", "email", "phone", "location", "linkedin"} {
		assert.Equal(t, "", contact[key], key)
	}
}

func TestStructuredResume_NormalizeReplacesNil(t *testing.T) {
	var r StructuredResume
	r.WorkExperience = []WorkExperience{{Company: "Acme"}}
	r.Projects = []Project{{Name: "Tool"}}

	r.Normalize()

	assert.NotNil(t, r.WorkExperience[0].Bullets)
	assert.NotNil(t, r.Projects[0].Technologies)
	assert.NotNil(t, r.Education)
	assert.NotNil(t, r.Certifications)
	assert.NotNil(t, r.Skills.Languages)

	jsonBytes, err := json.Marshal(r)
	require.NoError(t, err)
	assert.NotContains(t, string(jsonBytes), "null")
}

func TestStructuredResume_IsEmpty(t *testing.T) {
	r := NewStructuredResume()
	assert.True(t, r.IsEmpty())

	r.Skills.Soft = append(r.Skills.Soft, "Leadership")
	assert.False(t, r.IsEmpty())
}

func TestNewStructuredJobPosting_SerializesEveryKey(t *testing.T) {
	jsonBytes, err := json.Marshal(NewStructuredJobPosting())
	require.NoError(t, err)
	assert.NotContains(t, string(jsonBytes), "null")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(jsonBytes, &decoded))
	assert.Len(t, decoded, 11)
	assert.Equal(t, []any{}, decoded["requirements"])
	assert.Equal(t, "", decoded["employmentType"])
}

func TestStructuredJobPosting_Normalize(t *testing.T) {
	var p StructuredJobPosting
	p.Normalize()
	assert.NotNil(t, p.Requirements)
	assert.NotNil(t, p.Responsibilities)
	assert.NotNil(t, p.Skills)
	assert.NotNil(t, p.Qualifications)
}

func TestJobKeywords_Normalize(t *testing.T) {
	var k JobKeywords
	k.Normalize()
	assert.Equal(t, NewJobKeywords(), k)

	k = JobKeywords{JobTitle: "Staff Engineer", Keywords: []string{"go"}}
	k.Normalize()
	assert.Equal(t, "Staff Engineer", k.JobTitle)
	assert.Equal(t, []string{"go"}, k.Keywords)
	assert.Equal(t, []string{}, k.RequiredSkills)
}
