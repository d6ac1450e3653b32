package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/TheTechnobear/Percussa.Rnbo/internal/doctor"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the build environment and module status",
	Long: `Run every environment check: native build tools, cross-compilation SDK
roots, project structure, the JUCE submodule, and the export status of
each module. All checks run even when one fails, so a single run
surfaces every problem.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolP("verbose", "v", false, "Show resolved paths for passing checks")
	checkCmd.Flags().String("json", "", "Also write the report as JSON to the given path")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	if err := deps.EnsureProject(); err != nil {
		return err
	}

	report := deps.NewChecker(getBoolFlag(cmd, "verbose")).Run()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, cliTitle.Render("Environment check"))
	_, _ = fmt.Fprintln(out)
	for _, c := range report.Checks {
		printCheck(out, c)
	}
	ok, warn, fail := report.Counts()
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, renderSummary(ok, warn, fail))
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprint(out, renderNextSteps(doctor.NextSteps(report)))

	if jsonPath := getStringFlag(cmd, "json"); jsonPath != "" {
		abs, err := filepath.Abs(jsonPath)
		if err != nil {
			return fmt.Errorf("resolve report path: %w", err)
		}
		if err := report.ExportJSON(deps.Sysfs, abs); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, cliMuted.Render("Report written to "+jsonPath))
	}

	if report.Failed() {
		return fmt.Errorf("%w: %d check(s) failed", ErrEnvironment, fail)
	}
	return nil
}

func printCheck(out io.Writer, c doctor.Check) {
	_, _ = fmt.Fprintf(out, "%s %s\n", statusIcon(c.Status), c.Message)
	if c.Detail != "" {
		_, _ = fmt.Fprintln(out, "  "+cliMuted.Render(c.Detail))
	}
}

func renderSummary(ok, warn, fail int) string {
	parts := []string{cliSuccess.Render(fmt.Sprintf("%d ok", ok))}
	if warn > 0 {
		parts = append(parts, cliWarn.Render(fmt.Sprintf("%d warning(s)", warn)))
	}
	if fail > 0 {
		parts = append(parts, cliFail.Render(fmt.Sprintf("%d failure(s)", fail)))
	}
	return strings.Join(parts, ", ")
}

// renderNextSteps renders the recommendation markdown for a terminal,
// falling back to the raw markdown when stdout is not a TTY (or the
// renderer cannot initialize).
func renderNextSteps(markdown string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return markdown
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return markdown
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}
