package cmd

import (
	"github.com/spf13/cobra"

	"github.com/aolang/ao/internal/driver"
)

// resolveSettings loads driver.Settings from --settings when given,
// otherwise falls back to DefaultSettings with --verbose layered on top
// — the CLI's -v flag always wins over a settings file's verbose: false.
func resolveSettings(cmd *cobra.Command) (driver.Settings, error) {
	settings := driver.DefaultSettings()
	if settingsPath != "" {
		s, err := driver.LoadSettings(settingsPath)
		if err != nil {
			return driver.Settings{}, err
		}
		settings = s
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		settings.Verbose = true
	}
	return settings, nil
}
