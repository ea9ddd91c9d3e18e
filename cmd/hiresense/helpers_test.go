package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/hiresense/internal/config"
	"github.com/spf13/cobra"
)

// getBinaryPath returns the path to the hiresense binary for testing
func getBinaryPath(t *testing.T) string {
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", "hiresense")
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'make build'", binaryPath)
	}

	return binaryPath
}

// resetFlags restores every command flag variable and clears the environment that would
// reach external services
func resetFlags(t *testing.T) {
	t.Helper()

	configPath, catalogPath = "", ""
	verbose, logFormat = false, "text"

	analyzeGoal, analyzeResume, analyzeResumeText = "", "", ""
	analyzeSkills, analyzeProfileURL, analyzeOut = "", "", ""
	analyzeFormat, analyzeNoAI = formatText, true

	batchIn, batchOut, batchConcurrency, batchNoAI = "", "", 2, true
	validateIn, tokenSubject = "", ""

	for _, key := range []string{config.EnvGeminiKey, config.EnvDatabaseURL, config.EnvAMQPURL, config.EnvPort} {
		t.Setenv(key, "")
	}
}

// newTestCmd returns a command with captured output and a background context
func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	return cmd, &out, &errOut
}
