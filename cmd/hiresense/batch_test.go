package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/hiresense/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRequests(t *testing.T) {
	input := `{"career_goal": "Data Scientist", "skills_text": "python"}

{"career_goal": "Web Developer", "resume_text": "html css"}
`
	reqs, err := readRequests(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, "Data Scientist", reqs[0].CareerGoal)
	assert.Equal(t, "html css", reqs[1].ResumeText)
}

func TestReadRequests_InvalidLine(t *testing.T) {
	input := `{"career_goal": "Data Scientist", "skills_text": "python"}
not json`
	_, err := readRequests(strings.NewReader(input))
	assert.ErrorContains(t, err, "line 2")
}

func TestRunBatch(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	batchIn = filepath.Join(dir, "requests.jsonl")
	require.NoError(t, os.WriteFile(batchIn, []byte(strings.Join([]string{
		`{"career_goal": "Data Scientist", "skills_text": "python, sql"}`,
		`{"career_goal": "", "skills_text": "python"}`,
		`{"career_goal": "DevOps Engineer", "resume_text": "linux docker"}`,
	}, "\n")), 0o644))

	cmd, out, _ := newTestCmd()
	require.NoError(t, runBatch(cmd, nil))

	var responses []types.AnalysisResponse
	scanner := bufio.NewScanner(bytes.NewReader(out.Bytes()))
	scanner.Buffer(make([]byte, 64*1024), maxBatchLine)
	for scanner.Scan() {
		var resp types.AnalysisResponse
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &resp))
		responses = append(responses, resp)
	}
	require.NoError(t, scanner.Err())
	require.Len(t, responses, 3)

	assert.True(t, responses[0].Success)
	assert.False(t, responses[1].Success)
	assert.Equal(t, types.MsgMissingCareerGoal, responses[1].Error)
	assert.True(t, responses[2].Success)
	assert.NotEqual(t, responses[0].ID, responses[2].ID)
}

func TestRunBatch_MissingInput(t *testing.T) {
	resetFlags(t)
	batchIn = filepath.Join(t.TempDir(), "missing.jsonl")

	cmd, _, _ := newTestCmd()
	assert.ErrorContains(t, runBatch(cmd, nil), "failed to open input file")
}
