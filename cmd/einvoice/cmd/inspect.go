package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/einvoice/internal/processor"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Show an invoice as a plain key/value structure",
	Long: `Import a UBL invoice leniently and print its plain-structure
representation: every entity's public fields, nested, with repeated
groups in document order.

Examples:
  einvoice inspect invoice.xml
  einvoice inspect -f json invoice.xml | jq .totals`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	pipeline := processor.NewPipeline(processor.WithLogger(newLogger()))
	result, err := pipeline.Process(data, false, profileID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result.Invoice.Plain()); err != nil {
		return err
	}

	for _, a := range result.Import.Anomalies {
		fmt.Fprintf(os.Stderr, "⚠ %s\n", a)
	}
	return nil
}
