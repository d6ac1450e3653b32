package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TheTechnobear/Percussa.Rnbo/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "rnbo",
	Short: "Manage RNBO plugin modules for the Percussa SSP and XMX",
	Long: `rnbo manages the plugin modules of a Percussa.Rnbo project: C++
plugins that wrap Max RNBO exports for desktop VST3 and the SSP and XMX
hardware targets.

Typical workflow:
  rnbo create VERB     Scaffold a new module
  (export from Max into modules/VERB/VERB-rnbo/)
  rnbo regen VERB      Re-render stubs against the export
  rnbo check           Verify the build environment`,
	Version:       version.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute initializes dependencies and runs the root command.
func Execute() error {
	InitDependencies()
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("rnbo %s\n", version.GetFullVersion()))
}
