package doctor

import (
	"fmt"
	"strings"
)

// NextSteps builds a markdown recommendation section from a report,
// mirroring what a maintainer would tell someone reading it: fix hard
// failures first, complete half-scaffolded modules next, then build.
func NextSteps(r Report) string {
	var b strings.Builder
	b.WriteString("# Next steps\n\n")

	if r.Failed() {
		b.WriteString("## Critical issues — fix these first\n\n")
		for _, c := range r.Checks {
			if c.Status != StatusFail {
				continue
			}
			fmt.Fprintf(&b, "- %s", c.Message)
			if c.Detail != "" {
				fmt.Fprintf(&b, " — %s", c.Detail)
			}
			b.WriteString("\n")
		}
		b.WriteString("\nSee docs/setup.md for the full setup guide.\n")
		return b.String()
	}

	var complete, incomplete []Check
	hasModules := false
	for _, c := range r.Checks {
		if !strings.HasPrefix(c.Name, "module ") {
			continue
		}
		hasModules = true
		if c.Status == StatusOK {
			complete = append(complete, c)
		} else {
			incomplete = append(incomplete, c)
		}
	}

	if !hasModules {
		b.WriteString("Environment looks good. Start with the demo:\n\n")
		b.WriteString("```\nrnbo demo install\nmkdir build && cd build && cmake .. && cmake --build .\nrnbo demo remove --force\n```\n")
	}

	if len(incomplete) > 0 {
		b.WriteString("## Complete these modules\n\n")
		for _, c := range incomplete {
			fmt.Fprintf(&b, "- %s", c.Message)
			if c.Detail != "" {
				fmt.Fprintf(&b, " — %s", c.Detail)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(complete) > 0 {
		b.WriteString("## Ready to build\n\n")
		for _, c := range complete {
			fmt.Fprintf(&b, "- %s\n", c.Message)
		}
		b.WriteString("\n```\nmkdir build && cd build\n")
		b.WriteString("cmake ..                                     # desktop VST3\n")
		b.WriteString("cmake -DCMAKE_TOOLCHAIN_FILE=../xcSSP.cmake ..   # SSP hardware\n")
		b.WriteString("cmake -DCMAKE_TOOLCHAIN_FILE=../xcXMX.cmake ..   # XMX hardware\n")
		b.WriteString("cmake --build .\n```\n")
	}

	b.WriteString("\nCreate a new module with `rnbo create <IDENTITY>`.\n")
	return b.String()
}
