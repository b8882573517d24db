package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aolang/ao/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Tokenize and parse an .ao file, reporting only success or error",
	Long: `Check runs the full tokenizer/parser pipeline over a file and
reports whether it parsed cleanly, without printing the resulting AST —
useful for a pre-commit hook or CI step that only cares about pass/fail.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	path := args[0]

	result, derr := driver.Load(settings, path)
	if derr != nil {
		fmt.Fprintln(os.Stderr, derr.Format(false))
		return fmt.Errorf("%s: parse failed", path)
	}
	fmt.Printf("%s: ok (%d tokens)\n", path, result.TokenCount)
	return nil
}
