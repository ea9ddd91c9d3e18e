//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysisRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request AnalysisRequest
		wantMsg string
	}{
		{
			name:    "resume only",
			request: AnalysisRequest{ResumeText: "python developer", CareerGoal: "Software Engineer"},
		},
		{
			name:    "skills only",
			request: AnalysisRequest{SkillsText: "sql, pandas", CareerGoal: "Data Scientist"},
		},
		{
			name:    "missing career goal",
			request: AnalysisRequest{ResumeText: "python developer"},
			wantMsg: MsgMissingCareerGoal,
		},
		{
			name:    "missing profile",
			request: AnalysisRequest{CareerGoal: "Data Scientist"},
			wantMsg: MsgMissingProfile,
		},
		{
			name:    "everything missing reports career goal first",
			request: AnalysisRequest{},
			wantMsg: MsgMissingCareerGoal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())

			var reqErr *RequestError
			assert.True(t, errors.As(err, &reqErr))
		})
	}
}

func TestAnalysisRequest_Trimmed(t *testing.T) {
	req := AnalysisRequest{ResumeText: "  resume \n", CareerGoal: "\tWeb Developer ", SkillsText: " "}
	trimmed := req.Trimmed()

	assert.Equal(t, "resume", trimmed.ResumeText)
	assert.Equal(t, "Web Developer", trimmed.CareerGoal)
	assert.Empty(t, trimmed.SkillsText)

	// whitespace-only profile text counts as missing once trimmed
	blank := AnalysisRequest{SkillsText: "   ", CareerGoal: "x"}.Trimmed()
	assert.Error(t, blank.Validate())
}

func TestAnalysisResponse_JSONOmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(Failed(MsgMissingProfile))
	require.NoError(t, err)

	assert.JSONEq(t, `{"success": false, "error": "Please provide a resume, academic details, or skills list."}`, string(data))

	resp := AnalysisResponse{Success: true, ID: uuid.MustParse("6f1c2f8e-4a53-4b53-9a8e-0d4b8f7d6c11"), Source: SourceFallback}
	data, err = json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id":"6f1c2f8e-4a53-4b53-9a8e-0d4b8f7d6c11"`)
	assert.Contains(t, string(data), `"source":"fallback"`)
}
