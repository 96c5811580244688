package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/einvoice/internal/processor"
)

var convertOutput string

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Normalize an invoice document",
	Long: `Import a UBL invoice leniently, recompute all derived totals and
re-export the canonical document. Declared totals that disagreed with
the recompute are replaced; the disagreements are reported on stderr.

Examples:
  einvoice convert invoice.xml > normalized.xml
  einvoice convert invoice.xml -o normalized.xml`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output file (default stdout)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	pipeline := processor.NewPipeline(processor.WithLogger(newLogger()))
	result, err := pipeline.Process(data, false, profileID)
	if err != nil {
		return err
	}

	for field, m := range result.Import.TotalMismatches {
		fmt.Fprintf(os.Stderr, "⚠ %s: declared %s, calculated %s (diff %s)\n",
			field, m.Declared.StringFixed(2), m.Calculated.StringFixed(2), m.Diff.StringFixed(2))
	}
	for _, a := range result.Import.Anomalies {
		fmt.Fprintf(os.Stderr, "⚠ %s\n", a)
	}

	output, err := pipeline.Export(result.Invoice)
	if err != nil {
		return err
	}

	if convertOutput == "" {
		_, err = os.Stdout.Write(output)
		return err
	}
	return os.WriteFile(convertOutput, output, 0o644)
}
