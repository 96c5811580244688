package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rezonia/einvoice/internal/checksum"
)

var referenceCmd = &cobra.Command{
	Use:   "reference [base-or-full]",
	Short: "Compute or verify a structured payment reference",
	Long: `Work with Belgian structured payment references (OGM/VCS).

Given a 10-digit base, prints the full reference with its modulo-97
check digits appended. Given a 12-digit reference, verifies its check
digits.

Examples:
  einvoice reference 1234567890
  einvoice reference +++123/4567/89002+++`,
	Args: cobra.ExactArgs(1),
	RunE: runReference,
}

func init() {
	rootCmd.AddCommand(referenceCmd)
}

func runReference(cmd *cobra.Command, args []string) error {
	input := args[0]

	if full, err := checksum.StructuredReferenceFromBase(input); err == nil {
		fmt.Println(full)
		return nil
	}

	if err := checksum.ValidateStructuredReference(input); err != nil {
		return err
	}
	fmt.Printf("✓ %s: check digits valid\n", input)
	return nil
}
