package types

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// User-facing validation messages
const (
	MsgMissingCareerGoal = "Please provide a career goal or target role."
	MsgMissingProfile    = "Please provide a resume, academic details, or skills list."
)

// Analysis sources
const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

// AnalysisRequest is the input to every report producer.
type AnalysisRequest struct {
	ResumeText string `json:"resume_text" validate:"required_without=SkillsText"`
	CareerGoal string `json:"career_goal" validate:"required"`
	SkillsText string `json:"skills_text,omitempty"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field
func (r AnalysisRequest) Trimmed() AnalysisRequest {
	return AnalysisRequest{
		ResumeText: strings.TrimSpace(r.ResumeText),
		CareerGoal: strings.TrimSpace(r.CareerGoal),
		SkillsText: strings.TrimSpace(r.SkillsText),
	}
}

// Validate checks the request and returns an error carrying the user-facing message.
// The career goal is checked first.
func (r *AnalysisRequest) Validate() error {
	validate := validator.New()
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msg := MsgMissingProfile
	for _, fe := range fieldErrs {
		if fe.StructField() == "CareerGoal" {
			msg = MsgMissingCareerGoal
			break
		}
	}
	return &RequestError{Message: msg, Cause: err}
}

// RequestError is returned when an AnalysisRequest is incomplete
type RequestError struct {
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// AnalysisResponse is the envelope returned by every outer surface (HTTP, CLI, worker, MCP).
type AnalysisResponse struct {
	Success   bool      `json:"success"`
	ID        uuid.UUID `json:"id,omitzero"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	Data      *Report   `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Failed builds an unsuccessful response with the given message
func Failed(msg string) AnalysisResponse {
	return AnalysisResponse{Success: false, Error: msg}
}
