// Package driver wires the tokenizer/parser pipeline (internal/lexer,
// internal/parser) to a filesystem entry point: it owns the Settings
// configuration struct and the load function the CLI (cmd/ao) and tests
// call to turn a path on disk into a parsed AST or a diagnostic.
package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/aolang/ao/internal/ast"
	"github.com/aolang/ao/internal/diag"
	"github.com/aolang/ao/internal/lexer"
	"github.com/aolang/ao/internal/parser"
	"github.com/aolang/ao/internal/source"
	"github.com/aolang/ao/internal/types"
	"github.com/aolang/ao/pkg/token"
)

// Settings configures one run of the front end, loadable from a YAML
// file so CI and local runs can share a checked-in config instead of
// repeating flags, matching how the teacher's cmd layer turns flags
// into behavior (cmd/dwscript/cmd/lex.go's --show-pos/--show-type/-v).
type Settings struct {
	// Verbose enables the progress messages (bytes read, token counts)
	// that the lex and parse commands print to stdout.
	Verbose bool `yaml:"verbose"`
	// StrictIndentation is read from the settings file, but Load does not
	// pass it to the tokenizer: a lone tab is always accepted as one
	// indentation unit, equivalent to four spaces.
	StrictIndentation bool `yaml:"strict_indentation"`
	// UnitSearchPaths are directories searched, in order, when `import`
	// resolves a unit name to a file. Resolution itself is out of scope
	// for this front end (spec.md §1's Non-goals), but the search path
	// list is still part of the driver's configuration surface so a
	// downstream stage can reuse it unchanged.
	UnitSearchPaths []string `yaml:"unit_search_paths"`
}

// DefaultSettings returns the configuration used when no YAML file is
// given.
func DefaultSettings() Settings {
	return Settings{}
}

// LoadSettings reads and unmarshals a YAML settings file.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("reading settings file: %w", err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parsing settings file %s: %w", path, err)
	}
	return s, nil
}

// sourceExtension is the only file extension Load accepts, per spec.md
// §6's documented entry point.
const sourceExtension = ".ao"

// CheckExtension reports a descriptive error if path does not end in
// ".ao", the same check Load applies before reading the file. Exported
// so callers that read a file themselves instead of going through Load
// (cmd/ao's lex command, which streams tokens rather than parsing) can
// apply the identical rule.
func CheckExtension(path string) error {
	if ext := filepath.Ext(path); ext != sourceExtension {
		return fmt.Errorf("%s: expected a %s file, got %q", path, sourceExtension, ext)
	}
	return nil
}

// Result is what Load returns on a successful parse: the AST root plus
// the token count the CLI reports (ao check always, ao parse with -v).
type Result struct {
	Root       *ast.Node
	TokenCount int
}

// Load is the driver's single entry point named in spec.md §6: read the
// file at path, tokenize and parse it under settings, and return either
// the resulting AST or a Diagnostic. Load itself prints nothing; the CLI
// commands print progress messages when settings.Verbose is set.
func Load(settings Settings, path string) (*Result, *diag.Diagnostic) {
	if err := CheckExtension(path); err != nil {
		return nil, diag.New("E_DRIVER_BAD_EXTENSION", token.Position{}, err.Error())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, diag.New("E_DRIVER_READ", token.Position{}, err.Error())
	}
	src := string(data)

	tokenCount, err := countTokens(src)
	if err != nil {
		return nil, diag.FromError(err, path, src)
	}

	interner := types.NewInterner()
	tz := lexer.New(source.NewFromString(src))
	root, err := parser.Parse(tz, interner)
	if err != nil {
		return nil, diag.FromError(err, path, src)
	}

	return &Result{Root: root, TokenCount: tokenCount}, nil
}

// countTokens re-tokenizes src on a fresh stream purely to fill
// Result.TokenCount; it never feeds the parser, which owns its own
// Tokenizer over an independent stream so a counting pass can never
// perturb parse state.
func countTokens(src string) (int, error) {
	tz := lexer.New(source.NewFromString(src))
	n := 0
	for {
		tok, err := tz.Next()
		if err != nil {
			return n, err
		}
		n++
		if tok.Category == token.CatEOF {
			return n, nil
		}
	}
}
