package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TheTechnobear/Percussa.Rnbo/internal/export"
	"github.com/TheTechnobear/Percussa.Rnbo/internal/module"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the project's plugin modules",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if err := deps.EnsureProject(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	registry := deps.Manager.Registry()
	ids, err := registry.List()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		_, _ = fmt.Fprintln(out, cliMuted.Render("No modules. Start with: rnbo demo install"))
		return nil
	}

	introspector := export.NewIntrospector(deps.FS)
	for _, id := range ids {
		_, _ = fmt.Fprintln(out, listLine(registry, introspector, id))
	}
	return nil
}

// listLine formats one module row: export status marker, identity, name,
// and parameter count or a completion hint.
func listLine(registry *module.Registry, introspector *export.Introspector, id string) string {
	name := id
	if d, err := module.ReadDescriptor(deps.FS, registry.Dir(id)); err == nil {
		name = d.Name
	}

	meta, err := introspector.Introspect(id)
	switch {
	case err == nil:
		detail := fmt.Sprintf("%d parameter(s)", len(meta.Parameters))
		return fmt.Sprintf("%s %s  %s  %s", cliSuccess.Render("✓"), cliTitle.Render(id), name, cliMuted.Render(detail))
	case errors.Is(err, export.ErrExportMissing):
		return fmt.Sprintf("%s %s  %s  %s", cliWarn.Render("!"), cliTitle.Render(id), name, cliMuted.Render("export not supplied"))
	default:
		return fmt.Sprintf("%s %s  %s  %s", cliFail.Render("✗"), cliTitle.Render(id), name, cliMuted.Render("export unusable"))
	}
}
