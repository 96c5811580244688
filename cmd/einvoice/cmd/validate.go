package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/einvoice/internal/processor"
)

var strictImport bool

// ValidationResult is the per-file validation output
type ValidationResult struct {
	File     string   `json:"file"`
	Valid    bool     `json:"valid"`
	Findings []string `json:"findings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate invoice documents against a rule profile",
	Long: `Validate one or more UBL invoice documents.

Documents are imported (leniently unless --strict), totals are recomputed,
and the selected profile's rule layers run over the result. Import
anomalies and total mismatches count as findings.

Examples:
  einvoice validate invoice.xml
  einvoice validate --profile ublbe --strict *.xml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&strictImport, "strict", false, "Abort on structural defects instead of recording them")
}

func runValidate(cmd *cobra.Command, args []string) error {
	pipeline := processor.NewPipeline(processor.WithLogger(newLogger()))

	results := make([]*ValidationResult, 0, len(args))
	allValid := true

	for _, file := range args {
		result := validateFile(pipeline, file)
		results = append(results, result)
		if !result.Valid {
			allValid = false
		}
	}

	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Valid {
				fmt.Printf("✓ %s: VALID\n", r.File)
				continue
			}
			fmt.Printf("✗ %s: INVALID\n", r.File)
			if r.Error != "" {
				fmt.Printf("  - %s\n", r.Error)
			}
			for _, f := range r.Findings {
				fmt.Printf("  - %s\n", f)
			}
		}
	}

	if !allValid {
		return fmt.Errorf("validation failed for some files")
	}
	return nil
}

func validateFile(pipeline *processor.Pipeline, file string) *ValidationResult {
	result := &ValidationResult{File: file}

	data, err := os.ReadFile(file)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	run, err := pipeline.Process(data, strictImport, profileID)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Findings = append(result.Findings, run.Findings...)
	result.Findings = append(result.Findings, run.Import.Anomalies...)
	for field, m := range run.Import.TotalMismatches {
		result.Findings = append(result.Findings, fmt.Sprintf(
			"%s: declared %s, calculated %s (diff %s)",
			field, m.Declared.StringFixed(2), m.Calculated.StringFixed(2), m.Diff.StringFixed(2)))
	}
	result.Valid = len(result.Findings) == 0
	return result
}
