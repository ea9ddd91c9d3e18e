package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jonathan/hiresense/internal/analysis"
	"github.com/jonathan/hiresense/internal/ingestion"
	"github.com/jonathan/hiresense/internal/observability"
	"github.com/jonathan/hiresense/internal/types"
	"github.com/spf13/cobra"
)

// Output formats
const (
	formatText = "text"
	formatJSON = "json"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a profile against a career goal",
	Long: `Analyze a resume file, pasted resume text, a skills list or a profile URL against a career
goal and print the skill-gap report. At least one of --resume, --resume-text, --skills or
--profile-url is required.`,
	Example: `  hiresense analyze --goal "Data Scientist" --resume cv.pdf
  hiresense analyze --goal "DevOps Engineer" --skills "linux, docker, bash" --format json --out report.json`,
	RunE: runAnalyze,
}

var (
	analyzeGoal       string
	analyzeResume     string
	analyzeResumeText string
	analyzeSkills     string
	analyzeProfileURL string
	analyzeOut        string
	analyzeFormat     string
	analyzeNoAI       bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeGoal, "goal", "g", "", "Career goal or target role (required)")
	analyzeCmd.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to a resume file ("+strings.Join(ingestion.AllowedExtensions(), ", ")+")")
	analyzeCmd.Flags().StringVar(&analyzeResumeText, "resume-text", "", "Resume or academic background as text")
	analyzeCmd.Flags().StringVarP(&analyzeSkills, "skills", "s", "", "Current skills, comma separated")
	analyzeCmd.Flags().StringVar(&analyzeProfileURL, "profile-url", "", "Portfolio or online resume URL to include")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Write the output to this file instead of stdout")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", formatText, "Output format: text or json")
	analyzeCmd.Flags().BoolVar(&analyzeNoAI, "no-ai", false, "Skip Gemini and use the deterministic engine")

	_ = analyzeCmd.MarkFlagRequired("goal")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if analyzeFormat != formatText && analyzeFormat != formatJSON {
		return fmt.Errorf("unknown format %q (want text or json)", analyzeFormat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	producer, cleanup, err := buildProducer(ctx, cfg, analyzeNoAI)
	if err != nil {
		return err
	}
	defer cleanup()

	resumeText := analyzeResumeText
	if analyzeResume != "" {
		if !ingestion.AllowedFile(analyzeResume) {
			return fmt.Errorf("unsupported resume file %s (allowed: %s)", analyzeResume, strings.Join(ingestion.AllowedExtensions(), ", "))
		}
		if text := ingestion.ExtractFile(ctx, analyzeResume); text != "" {
			resumeText = text
		} else {
			slog.Warn("no text extracted from resume file", slog.String("path", analyzeResume))
		}
	}
	if analyzeProfileURL != "" {
		profile := ingestion.FromURL(ctx, analyzeProfileURL, ingestion.URLOptions{UseBrowser: cfg.UseBrowser})
		resumeText = strings.TrimSpace(strings.Join([]string{resumeText, profile}, "\n\n"))
	}

	resp := analysis.Run(ctx, producer, types.AnalysisRequest{
		ResumeText: resumeText,
		SkillsText: analyzeSkills,
		CareerGoal: analyzeGoal,
	})

	if err := writeOutput(cmd.OutOrStdout(), analyzeOut, func(w io.Writer) error {
		return writeResponse(w, resp, analyzeFormat)
	}); err != nil {
		return err
	}

	if !resp.Success {
		return fmt.Errorf("analysis failed: %s", resp.Error)
	}
	return nil
}

// writeResponse renders one response in the requested format
func writeResponse(w io.Writer, resp types.AnalysisResponse, format string) error {
	if format == formatText {
		observability.NewPrinter(w).PrintResponse(resp)
		return nil
	}

	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// writeOutput runs write against path, or against stdout when path is empty
func writeOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	slog.Info("output written", slog.String("path", path))
	return nil
}
