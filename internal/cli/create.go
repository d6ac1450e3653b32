package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TheTechnobear/Percussa.Rnbo/internal/export"
	"github.com/TheTechnobear/Percussa.Rnbo/internal/lifecycle"
	"github.com/TheTechnobear/Percussa.Rnbo/internal/module"
	"github.com/TheTechnobear/Percussa.Rnbo/internal/ui"
)

var createCmd = &cobra.Command{
	Use:   "create <IDENTITY>",
	Short: "Scaffold a new plugin module",
	Long: `Scaffold a new plugin module under modules/<IDENTITY>/.

The identity is the module's permanent key: exactly four characters,
starting with an uppercase letter, uppercase letters and digits only
(e.g. VERB, DLY1). If an RNBO export is already present in
modules/<IDENTITY>/<IDENTITY>-rnbo/, the generated stubs bind its
parameters; otherwise placeholder stubs are generated and
"rnbo regen" picks the export up later.`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().String("name", "", "Display name (default: derived from the identity)")
	createCmd.Flags().String("description", "", "Short module description")
	createCmd.Flags().String("author", "", "Module author")
	createCmd.Flags().Bool("non-interactive", false, "Never prompt; use flags and defaults")
}

func runCreate(cmd *cobra.Command, args []string) error {
	id := args[0]
	out := cmd.OutOrStdout()
	if err := deps.EnsureProject(); err != nil {
		return err
	}

	opts := lifecycle.CreateOptions{
		Name:        getStringFlag(cmd, "name"),
		Description: getStringFlag(cmd, "description"),
		Author:      getStringFlag(cmd, "author"),
	}

	// Validate before prompting so a bad identity fails immediately.
	if err := module.ValidateIdentity(id); err != nil {
		return err
	}

	if !getBoolFlag(cmd, "non-interactive") && ui.IsInteractive() {
		if err := promptCreateOptions(id, &opts); err != nil {
			if errors.Is(err, ui.ErrCancelled) {
				_, _ = fmt.Fprintln(out, cliMuted.Render("Cancelled."))
				return nil
			}
			return err
		}
	}

	d, err := deps.Manager.Create(id, opts)
	if err != nil {
		return err
	}

	_, introspectErr := export.NewIntrospector(deps.FS).Introspect(id)
	hasExport := introspectErr == nil

	exportStatus := "bound to supplied RNBO export"
	if !hasExport {
		exportStatus = fmt.Sprintf("none yet — export into modules/%s/%s-rnbo/ then run: rnbo regen %s", id, id, id)
	}
	_, _ = fmt.Fprintln(out, renderSuccessCard(
		fmt.Sprintf("Module %s created", id),
		renderKeyValueLines([]kvPair{
			{"Name", d.Name},
			{"Location", "modules/" + id + "/"},
			{"Export", exportStatus},
		}),
	))
	return nil
}

// promptCreateOptions fills the descriptor fields omitted on the command
// line from interactive prompts.
func promptCreateOptions(id string, opts *lifecycle.CreateOptions) error {
	if opts.Name == "" {
		name, err := deps.Prompts.Input("Display name", module.DefaultName(id))
		if err != nil {
			return err
		}
		opts.Name = name
	}
	if opts.Description == "" {
		desc, err := deps.Prompts.Input("Description", "")
		if err != nil {
			return err
		}
		opts.Description = desc
	}
	if opts.Author == "" {
		author, err := deps.Prompts.Input("Author", "")
		if err != nil {
			return err
		}
		opts.Author = author
	}
	return nil
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}
