package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TheTechnobear/Percussa.Rnbo/internal/lifecycle"
	"github.com/TheTechnobear/Percussa.Rnbo/internal/ui"
)

var removeCmd = &cobra.Command{
	Use:   "remove <IDENTITY>",
	Short: "Remove a plugin module and all its files",
	Long: `Remove a module directory in full, including any RNBO export it
contains. Asks for confirmation unless --force is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)

	removeCmd.Flags().Bool("force", false, "Remove without confirmation")
}

func runRemove(cmd *cobra.Command, args []string) error {
	id := args[0]
	if err := deps.EnsureProject(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	err := deps.Manager.Remove(id, getBoolFlag(cmd, "force"))
	switch {
	case errors.Is(err, lifecycle.ErrDeclined), errors.Is(err, ui.ErrCancelled):
		_, _ = fmt.Fprintf(out, "%s\n", cliMuted.Render(fmt.Sprintf("Module %s not removed.", id)))
		return nil
	case err != nil:
		return err
	}

	_, _ = fmt.Fprintf(out, "%sModule %s removed.\n", cliSuccess.Render("✓ "), id)
	return nil
}
