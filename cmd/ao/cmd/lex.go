package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aolang/ao/internal/diag"
	"github.com/aolang/ao/internal/driver"
	"github.com/aolang/ao/internal/lexer"
	"github.com/aolang/ao/internal/source"
	"github.com/aolang/ao/pkg/token"
)

var (
	lexShowPos bool
	lexShowCat bool
)

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Tokenize an .ao file and print the resulting tokens",
	Long: `Tokenize (lex) an ao program and print the resulting tokens.

Examples:
  ao lex contract.ao
  ao lex --show-pos --show-cat contract.ao`,
	Args: cobra.ExactArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&lexShowCat, "show-cat", false, "show token categories")
}

func runLex(cmd *cobra.Command, args []string) error {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	path := args[0]
	if err := driver.CheckExtension(path); err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	src := string(data)

	if settings.Verbose {
		fmt.Printf("Tokenizing: %s (%d bytes)\n---\n", path, len(src))
	}

	tz := lexer.New(source.NewFromString(src))
	count := 0
	for {
		tok, err := tz.Next()
		if err != nil {
			fmt.Fprintln(os.Stderr, diag.FromError(err, path, src).Format(false))
			return fmt.Errorf("tokenizing %s failed", path)
		}
		count++
		printToken(tok)
		if tok.Category == token.CatEOF {
			break
		}
	}

	if settings.Verbose {
		fmt.Printf("---\nTotal tokens: %d\n", count)
	}
	return nil
}

func printToken(tok token.Token) {
	var out string
	if lexShowCat {
		out = fmt.Sprintf("[%-10s]", tok.Category)
	}
	switch {
	case tok.Category == token.CatEOF:
		out += " EOF"
	case tok.Category == token.CatNewline:
		out += " NEWLINE"
	case tok.Category == token.CatIndent:
		out += " INDENT"
	case tok.Literal != "":
		out += fmt.Sprintf(" %q", tok.Literal)
	default:
		out += fmt.Sprintf(" %s", tok.Kind)
	}
	if lexShowPos {
		out += fmt.Sprintf(" @%s", tok.Pos)
	}
	fmt.Println(out)
}
