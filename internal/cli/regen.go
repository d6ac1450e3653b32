package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var regenCmd = &cobra.Command{
	Use:   "regen <IDENTITY>",
	Short: "Re-render a module's stubs against its current RNBO export",
	Long: `Re-render the generated files of an existing module. Run this after
exporting (or re-exporting) a patch from Max so the processor and editor
stubs bind the export's current parameters. Files whose content is
unchanged are left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runRegen,
}

func init() {
	rootCmd.AddCommand(regenCmd)
}

func runRegen(cmd *cobra.Command, args []string) error {
	id := args[0]
	if err := deps.EnsureProject(); err != nil {
		return err
	}
	if err := deps.Manager.Regenerate(id); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%sModule %s regenerated.\n", cliSuccess.Render("✓ "), id)
	return nil
}
