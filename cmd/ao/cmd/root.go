package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information, overridable by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var settingsPath string

var rootCmd = &cobra.Command{
	Use:   "ao",
	Short: "Front end for the ao smart-contract scripting language",
	Long: `ao tokenizes and parses .ao programs and exposes the resulting
tokens and abstract syntax tree for inspection.

This front end does not compile or execute ao programs; it is the
tokenizer and precedence-climbing parser only.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "path to a YAML settings file")
}
