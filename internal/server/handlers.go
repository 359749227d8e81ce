package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/resume-tailor/internal/db"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/pdftext"
	"github.com/jonathan/resume-tailor/internal/scraping"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/rs/zerolog"
)

const (
	maxJSONBodyBytes = 5 << 20  // resume text or job page HTML
	maxUploadBytes   = 10 << 20 // resume file uploads
)

// ExtractionsResponse is the response for GET /extractions
type ExtractionsResponse struct {
	Extractions []db.Extraction `json:"extractions"`
	Count       int             `json:"count"`
}

// resumeInput is a resume request after JSON or multipart decoding.
type resumeInput struct {
	text   string
	source string
	useLLM bool
}

// handleExtractResume parses resume text from a JSON body or an uploaded
// text or PDF file.
func (s *Server) handleExtractResume(w http.ResponseWriter, r *http.Request) {
	in, err := s.decodeResumeInput(w, r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	method := db.MethodHeuristic
	var resume types.StructuredResume
	if in.useLLM {
		if s.llmClient == nil {
			s.handleError(w, r, &ErrValidation{Field: "use_llm", Message: "LLM extraction is not configured"})
			return
		}
		method = db.MethodLLM
		resume, err = llm.ResumeFromLLM(r.Context(), s.llmClient, in.text)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
	} else {
		resume = s.resumes.Extract(in.text)
	}

	s.saveExtraction(r.Context(), db.KindResume, method, in.source, resume)
	s.jsonResponse(w, http.StatusOK, resume)
}

func (s *Server) decodeResumeInput(w http.ResponseWriter, r *http.Request) (*resumeInput, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req types.ExtractResumeRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return nil, err
		}
		if err := req.Validate(); err != nil {
			return nil, err
		}
		return &resumeInput{text: req.Text, useLLM: req.UseLLM}, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, &ErrValidation{Field: "file", Message: "invalid multipart upload: " + err.Error()}
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, &ErrValidation{Field: "file", Message: "file is required"}
	}
	defer file.Close() //nolint:errcheck // multipart temp file

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	in := &resumeInput{source: header.Filename}
	if v := r.FormValue("use_llm"); v != "" {
		in.useLLM, err = strconv.ParseBool(v)
		if err != nil {
			return nil, &ErrValidation{Field: "use_llm", Message: "must be a boolean"}
		}
	}

	if pdftext.IsPDF(data) {
		in.text, err = pdftext.ExtractBytes(data)
		if err != nil {
			return nil, err
		}
	} else {
		in.text = string(data)
	}

	zerolog.Ctx(r.Context()).Debug().
		Str("filename", header.Filename).
		Int("bytes", len(data)).
		Msg("decoded resume upload")
	return in, nil
}

// handleScrapeJob fetches a job page and extracts the posting.
func (s *Server) handleScrapeJob(w http.ResponseWriter, r *http.Request) {
	var req types.ScrapeJobRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, err)
		return
	}

	scraper := s.scraper
	if req.Browser {
		if s.browser == nil {
			s.handleError(w, r, &ErrValidation{Field: "browser", Message: "browser rendering is disabled"})
			return
		}
		scraper = s.browser
	}

	posting, err := scraper.Scrape(r.Context(), req.URL)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.saveExtraction(r.Context(), db.KindJobPosting, db.MethodHeuristic, req.URL, posting)
	s.jsonResponse(w, http.StatusOK, posting)
}

// handleExtractJob extracts a posting from HTML the caller already fetched.
func (s *Server) handleExtractJob(w http.ResponseWriter, r *http.Request) {
	var req types.ExtractJobRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, err)
		return
	}

	posting := s.jobs.Extract(req.HTML, req.URL)

	s.saveExtraction(r.Context(), db.KindJobPosting, db.MethodHeuristic, req.URL, posting)
	s.jsonResponse(w, http.StatusOK, posting)
}

// handleValidateURL runs the job URL pre-filter.
func (s *Server) handleValidateURL(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if strings.TrimSpace(rawURL) == "" {
		s.handleError(w, r, &ErrValidation{Field: "url", Message: "url query parameter is required"})
		return
	}

	s.jsonResponse(w, http.StatusOK, types.ValidateURLResponse{
		URL:   rawURL,
		Valid: scraping.IsValidJobURL(rawURL),
	})
}

// handleListExtractions lists stored extractions, newest first.
func (s *Server) handleListExtractions(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.handleError(w, r, ErrHistoryDisabled)
		return
	}

	opts, err := parseListOptions(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	extractions, err := s.store.ListExtractions(r.Context(), opts)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if extractions == nil {
		extractions = []db.Extraction{}
	}

	s.jsonResponse(w, http.StatusOK, ExtractionsResponse{
		Extractions: extractions,
		Count:       len(extractions),
	})
}

func parseListOptions(r *http.Request) (db.ListOptions, error) {
	q := r.URL.Query()
	opts := db.ListOptions{Kind: q.Get("kind")}

	if opts.Kind != "" && !db.IsValidKind(opts.Kind) {
		return opts, &ErrValidation{Field: "kind", Message: fmt.Sprintf("unknown kind %q", opts.Kind)}
	}

	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"limit", &opts.Limit},
		{"offset", &opts.Offset},
	} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, &ErrValidation{Field: p.name, Message: "must be a non-negative integer"}
		}
		*p.dst = n
	}
	return opts, nil
}

// saveExtraction records a result in history. Failures are logged and never
// fail the request.
func (s *Server) saveExtraction(ctx context.Context, kind, method, source string, result any) {
	if s.store == nil {
		return
	}
	_, err := s.store.SaveExtraction(ctx, &db.ExtractionInput{
		Kind:   kind,
		Method: method,
		Source: source,
		Result: result,
	})
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("kind", kind).Msg("failed to save extraction")
	}
}

// decodeJSON decodes a size-limited JSON request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return &ErrValidation{Field: "body", Message: fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit)}
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}
