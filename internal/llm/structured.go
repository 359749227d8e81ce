package llm

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/resume-tailor/internal/schemas"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/rs/zerolog"
)

// ResumeFromLLM extracts a StructuredResume from resume text with the model.
// The result is normalized so every key is present, same as the heuristic
// parser's output. Blank text returns the empty skeleton without a call.
func ResumeFromLLM(ctx context.Context, client Client, text string) (types.StructuredResume, error) {
	if strings.TrimSpace(text) == "" {
		return types.NewStructuredResume(), nil
	}

	schema, err := ResumeSchema()
	if err != nil {
		return types.StructuredResume{}, err
	}
	responseText, err := client.GenerateJSON(ctx, TaskResume, BuildExtractionPrompt(schema, text))
	if err != nil {
		return types.StructuredResume{}, &APICallError{
			Message: "failed to generate resume extraction",
			Cause:   err,
		}
	}

	var resume types.StructuredResume
	if err := json.Unmarshal([]byte(CleanJSONBlock(responseText)), &resume); err != nil {
		return types.StructuredResume{}, &ParseError{
			Message: "failed to parse resume JSON",
			Cause:   err,
		}
	}
	resume.Normalize()

	if err := schemas.ValidateResume(resume); err != nil {
		return types.StructuredResume{}, &ParseError{
			Message: "resume does not match schema",
			Cause:   err,
		}
	}
	return resume, nil
}

// JobKeywordsFromLLM extracts the keyword view of a job description. A
// response that cannot be decoded yields NewJobKeywords rather than an
// error; only a failed call is reported.
func JobKeywordsFromLLM(ctx context.Context, client Client, description string) (types.JobKeywords, error) {
	if strings.TrimSpace(description) == "" {
		return types.NewJobKeywords(), nil
	}

	schema, err := JobKeywordsSchema("job description")
	if err != nil {
		return types.JobKeywords{}, err
	}
	responseText, err := client.GenerateJSON(ctx, TaskJobKeywords, BuildExtractionPrompt(schema, description))
	if err != nil {
		return types.JobKeywords{}, &APICallError{
			Message: "failed to generate job keywords",
			Cause:   err,
		}
	}

	var keywords types.JobKeywords
	if err := json.Unmarshal([]byte(CleanJSONBlock(responseText)), &keywords); err != nil {
		zerolog.Ctx(ctx).Warn().
			Err(&ParseError{Message: "failed to parse job keywords JSON", Cause: err}).
			Str("model", client.Model(TaskJobKeywords)).
			Msg("using default job keywords")
		return types.NewJobKeywords(), nil
	}
	keywords.Normalize()
	return keywords, nil
}
