package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/hiresense/internal/schemas"
	"github.com/spf13/cobra"
)

var validateIn string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a report JSON file against the report schema",
	Long: `Validate a report against the embedded report schema. The file may hold a bare report
or a response envelope, in which case its data field is validated.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateIn, "in", "i", "", "Path to the report or envelope JSON (required)")
	_ = validateCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(validateIn)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	report, err := reportDocument(data)
	if err != nil {
		return err
	}

	if err := schemas.ValidateReport(report); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			_, _ = fmt.Fprint(cmd.ErrOrStderr(), validationErr.Error())
			return fmt.Errorf("%s does not match the report schema", validateIn)
		}
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is a valid report\n", validateIn)
	return nil
}

// reportDocument returns the report inside an envelope, or data itself when it is not one
func reportDocument(data []byte) ([]byte, error) {
	var envelope struct {
		Success *bool           `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("input is not valid JSON: %w", err)
	}
	if envelope.Success == nil {
		return data, nil
	}
	if len(envelope.Data) == 0 {
		return nil, fmt.Errorf("envelope has no report data")
	}
	return envelope.Data, nil
}
