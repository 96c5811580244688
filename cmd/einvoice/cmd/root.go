package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
	profileID    string
)

var rootCmd = &cobra.Command{
	Use:   "einvoice",
	Short: "Work with EN16931 electronic invoices (UBL 2.1)",
	Long: `einvoice imports, validates and normalizes electronic invoices
encoded as UBL 2.1 documents per the EN16931 semantic model.

Validation profiles:
  en16931  - core European rules (default)
  peppol   - en16931 plus Peppol BIS network mandates
  ublbe    - peppol plus Belgian UBL.BE mandates

Examples:
  # Validate an invoice under the Belgian profile
  einvoice validate --profile ublbe invoice.xml

  # Show an invoice as a plain structure
  einvoice inspect invoice.xml

  # Re-export a document with recomputed totals
  einvoice convert invoice.xml > normalized.xml

  # Compute the check digits of a structured payment reference
  einvoice reference 1234567890`,
	Version: version,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "table", "Output format (json, table)")
	rootCmd.PersistentFlags().StringVarP(&profileID, "profile", "p", "en16931", "Validation profile (en16931, peppol, ublbe)")
}

// newLogger builds the CLI logger honoring the verbose flag
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}
