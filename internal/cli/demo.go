package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TheTechnobear/Percussa.Rnbo/internal/lifecycle"
	"github.com/TheTechnobear/Percussa.Rnbo/internal/module"
	"github.com/TheTechnobear/Percussa.Rnbo/internal/ui"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Manage the bundled DEMO validation module",
	Long: `The DEMO module carries a bundled RNBO export, so one install-and-build
cycle validates the whole environment without opening Max.`,
}

var demoInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the DEMO module with its bundled export",
	Args:  cobra.NoArgs,
	RunE:  runDemoInstall,
}

var demoRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove the DEMO module",
	Args:  cobra.NoArgs,
	RunE:  runDemoRemove,
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.AddCommand(demoInstallCmd)
	demoCmd.AddCommand(demoRemoveCmd)

	demoRemoveCmd.Flags().Bool("force", false, "Remove without confirmation")
}

func runDemoInstall(cmd *cobra.Command, _ []string) error {
	if err := deps.EnsureProject(); err != nil {
		return err
	}
	if _, err := deps.Manager.InstallDemo(); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderSuccessCard(
		"Demo module installed",
		renderKeyValueLines([]kvPair{
			{"Location", "modules/" + module.DemoIdentity + "/"},
			{"Build", "mkdir build && cd build && cmake .. && cmake --build ."},
			{"Cleanup", "rnbo demo remove --force"},
		}),
	))
	return nil
}

func runDemoRemove(cmd *cobra.Command, _ []string) error {
	if err := deps.EnsureProject(); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	err := deps.Manager.RemoveDemo(getBoolFlag(cmd, "force"))
	switch {
	case errors.Is(err, lifecycle.ErrDeclined), errors.Is(err, ui.ErrCancelled):
		_, _ = fmt.Fprintln(out, cliMuted.Render("Demo module not removed."))
		return nil
	case err != nil:
		return err
	}
	_, _ = fmt.Fprintf(out, "%sModule %s removed.\n", cliSuccess.Render("✓ "), module.DemoIdentity)
	return nil
}
