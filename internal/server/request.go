package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/jonathan/hiresense/internal/ingestion"
	"github.com/jonathan/hiresense/internal/types"
)

// MaxRequestBytes caps the whole /analyze body, uploads included
const MaxRequestBytes = ingestion.MaxUploadBytes

// Form and JSON field names accepted by /analyze
const (
	FieldCareerGoal = "career_goal"
	FieldSkillsText = "skills_text"
	FieldResumeText = "resume_text"
	FieldResumeFile = "resume_file"
	FieldProfileURL = "profile_url"
)

// MsgProfileURLDisabled is returned when profile_url is sent to a server that does not accept it
const MsgProfileURLDisabled = "profile URLs are not enabled on this server"

// analyzeBody is the JSON form of an /analyze request
type analyzeBody struct {
	types.AnalysisRequest
	ProfileURL string `json:"profile_url,omitempty"`
}

// parseAnalyzeRequest reads a multipart or JSON body into an AnalysisRequest.
// An uploaded resume replaces resume_text when text can be extracted from it; files with
// unsupported extensions are ignored. A profile URL is fetched and appended.
func (s *Server) parseAnalyzeRequest(w http.ResponseWriter, r *http.Request) (types.AnalysisRequest, error) {
	if r.ContentLength > MaxRequestBytes {
		return types.AnalysisRequest{}, &ErrPayloadTooLarge{Limit: MaxRequestBytes}
	}
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var (
		req        types.AnalysisRequest
		profileURL string
		err        error
	)
	switch mediaType {
	case "application/json":
		req, profileURL, err = s.decodeJSON(r)
	default:
		req, profileURL, err = s.decodeForm(r)
	}
	if err != nil {
		return types.AnalysisRequest{}, err
	}

	if profileURL = strings.TrimSpace(profileURL); profileURL != "" {
		if !s.allowProfileURLs {
			return types.AnalysisRequest{}, &ErrValidation{Field: FieldProfileURL, Message: MsgProfileURLDisabled}
		}
		text := ingestion.FromURL(r.Context(), profileURL, ingestion.URLOptions{
			UseBrowser: s.useBrowser,
			Fetch:      s.fetchOptions,
		})
		req.ResumeText = joinText(req.ResumeText, text)
	}

	return req.Trimmed(), nil
}

func (s *Server) decodeJSON(r *http.Request) (types.AnalysisRequest, string, error) {
	var body analyzeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return types.AnalysisRequest{}, "", &ErrPayloadTooLarge{Limit: MaxRequestBytes}
		}
		return types.AnalysisRequest{}, "", &ErrValidation{Message: fmt.Sprintf("invalid JSON body: %v", err)}
	}
	return body.AnalysisRequest, body.ProfileURL, nil
}

func (s *Server) decodeForm(r *http.Request) (types.AnalysisRequest, string, error) {
	if err := r.ParseMultipartForm(MaxRequestBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return types.AnalysisRequest{}, "", &ErrPayloadTooLarge{Limit: MaxRequestBytes}
		}
		return types.AnalysisRequest{}, "", &ErrValidation{Message: fmt.Sprintf("invalid form body: %v", err)}
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	req := types.AnalysisRequest{
		CareerGoal: r.FormValue(FieldCareerGoal),
		SkillsText: r.FormValue(FieldSkillsText),
		ResumeText: r.FormValue(FieldResumeText),
	}

	file, header, err := r.FormFile(FieldResumeFile)
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	case err != nil:
		return types.AnalysisRequest{}, "", &ErrValidation{Field: FieldResumeFile, Message: err.Error()}
	default:
		defer func() { _ = file.Close() }()
		if !ingestion.AllowedFile(header.Filename) {
			slog.Debug("ignoring upload with unsupported type", slog.String("file", header.Filename))
			break
		}
		data, err := io.ReadAll(file)
		if err != nil {
			return types.AnalysisRequest{}, "", fmt.Errorf("failed to read upload: %w", err)
		}
		if text := ingestion.Extract(r.Context(), header.Filename, data); text != "" {
			req.ResumeText = text
		}
	}

	return req, r.FormValue(FieldProfileURL), nil
}

func joinText(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "\n\n" + b
	}
}
