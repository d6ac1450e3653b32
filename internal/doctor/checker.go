package doctor

import (
	"errors"
	"fmt"

	"github.com/go-git/go-billy/v5"

	"github.com/TheTechnobear/Percussa.Rnbo/internal/export"
	"github.com/TheTechnobear/Percussa.Rnbo/internal/module"
	"github.com/TheTechnobear/Percussa.Rnbo/internal/toolchain"
)

// sspDownloadURL is where the SSP SDK buildroot is published.
const sspDownloadURL = "https://sw13072022.s3.us-west-1.amazonaws.com/arm-rockchip-linux-gnueabihf_sdk-buildroot.tar.gz"

// requiredTools must be on the search path for any build to succeed.
var requiredTools = []string{"cmake", "git"}

// pythonCandidates are accepted interpreters for the helper scripts;
// finding any one of them satisfies the check.
var pythonCandidates = []string{"python3", "python"}

// projectPaths are the fixed project-tree entries every check run
// verifies, in report order.
var projectPaths = []struct {
	path string
	dir  bool
}{
	{"CMakeLists.txt", false},
	{"modules", true},
	{"ssp-sdk", true},
}

// Checker composes the toolchain resolver, export introspector, and
// module registry into one environment report. All state is resolved
// fresh on every Run; nothing is cached across invocations.
type Checker struct {
	project      billy.Filesystem // project root
	sysfs        billy.Filesystem // absolute paths, for SDK roots
	resolver     *toolchain.Resolver
	registry     *module.Registry
	introspector *export.Introspector
	cfg          toolchain.Config
	verbose      bool
}

// NewChecker creates a Checker. verbose adds resolved paths to passing
// checks.
func NewChecker(project, sysfs billy.Filesystem, resolver *toolchain.Resolver, cfg toolchain.Config, verbose bool) *Checker {
	return &Checker{
		project:      project,
		sysfs:        sysfs,
		resolver:     resolver,
		registry:     module.NewRegistry(project),
		introspector: export.NewIntrospector(project),
		cfg:          cfg,
		verbose:      verbose,
	}
}

// Run performs every check in a fixed order and returns the report.
// Checks are independent: none short-circuits, so one run surfaces every
// problem rather than one per invocation.
func (c *Checker) Run() Report {
	var checks []Check
	checks = append(checks, c.checkTools()...)
	checks = append(checks, c.checkCompilers()...)
	checks = append(checks, c.checkSDK(toolchain.TargetSSP))
	checks = append(checks, c.checkSDK(toolchain.TargetXMX))
	checks = append(checks, c.checkProjectStructure()...)
	checks = append(checks, c.checkFramework())
	checks = append(checks, c.checkModules()...)
	return Report{Checks: checks}
}

func (c *Checker) checkTools() []Check {
	var checks []Check
	for _, tool := range requiredTools {
		checks = append(checks, c.toolCheck(tool, tool, installHint(tool, c.cfg.OS)))
	}

	python := Check{Name: "python", Status: StatusFail,
		Message: "python not found (needed for helper scripts)",
		Detail:  installHint("python3", c.cfg.OS)}
	for _, cand := range pythonCandidates {
		if path, err := c.resolver.LookTool(cand); err == nil {
			python = Check{Name: "python", Status: StatusOK, Message: cand + " found"}
			if c.verbose {
				python.Detail = "path: " + path
			}
			break
		}
	}
	return append(checks, python)
}

func (c *Checker) checkCompilers() []Check {
	if c.cfg.OS == "windows" {
		return []Check{{Name: "compilers", Status: StatusFail,
			Message: "Windows is not supported for cross-compilation",
			Detail:  "Build on macOS or Linux"}}
	}

	tools := []string{"clang", "clang++"}
	if c.cfg.OS == "linux" {
		tools = append(tools, "arm-linux-gnueabihf-gcc")
	}
	var checks []Check
	for _, tool := range tools {
		checks = append(checks, c.toolCheck(tool, tool, installHint(tool, c.cfg.OS)))
	}
	return checks
}

func (c *Checker) toolCheck(name, tool, hint string) Check {
	path, err := c.resolver.LookTool(tool)
	if err != nil {
		return Check{Name: name, Status: StatusFail, Message: tool + " not found", Detail: hint}
	}
	check := Check{Name: name, Status: StatusOK, Message: tool + " found"}
	if c.verbose {
		check.Detail = "path: " + path
	}
	return check
}

func (c *Checker) checkSDK(target toolchain.Target) Check {
	name := fmt.Sprintf("%s-sdk", target)
	res := c.resolver.Resolve(target)

	switch {
	case res.Valid && res.Source == toolchain.SourceExplicit:
		check := Check{Name: name, Status: StatusOK, Message: fmt.Sprintf("%s SDK root valid: %s", target, res.Root)}
		if c.verbose {
			check.Detail = "cc: " + res.CC
		}
		return check

	case res.Valid && res.Source == toolchain.SourceDefault:
		return Check{Name: name, Status: StatusWarn,
			Message: fmt.Sprintf("%s SDK found at default location: %s", target, res.Root),
			Detail:  fmt.Sprintf("Consider setting %s explicitly", envVarFor(target))}

	case res.Source == toolchain.SourceUnresolved && target == toolchain.TargetXMX:
		// XMX is optional; only XMX hardware builds need it.
		return Check{Name: name, Status: StatusWarn,
			Message: fmt.Sprintf("%s not set (only needed for %s builds)", envVarFor(target), target),
			Detail:  "Expected at " + res.Root}

	case res.Source == toolchain.SourceUnresolved:
		return Check{Name: name, Status: StatusFail,
			Message: fmt.Sprintf("%s not set and default location not found", envVarFor(target)),
			Detail:  "Download from " + sspDownloadURL}

	case !c.rootExists(res.Root):
		return Check{Name: name, Status: StatusFail,
			Message: fmt.Sprintf("%s path does not exist: %s", envVarFor(target), res.Root)}

	default:
		return Check{Name: name, Status: StatusWarn,
			Message: fmt.Sprintf("%s SDK root %s is missing expected subdirectories", target, res.Root),
			Detail:  fmt.Sprintf("missing: %v", res.MissingMarkers)}
	}
}

func (c *Checker) rootExists(root string) bool {
	info, err := c.sysfs.Stat(root)
	return err == nil && info.IsDir()
}

func (c *Checker) checkProjectStructure() []Check {
	var checks []Check
	for _, p := range projectPaths {
		info, err := c.project.Stat(p.path)
		switch {
		case err != nil:
			checks = append(checks, Check{Name: p.path, Status: StatusFail,
				Message: "missing " + p.path,
				Detail:  "Run the tool from the project root"})
		case p.dir != info.IsDir():
			checks = append(checks, Check{Name: p.path, Status: StatusFail,
				Message: p.path + " has the wrong type"})
		default:
			checks = append(checks, Check{Name: p.path, Status: StatusOK, Message: "found " + p.path})
		}
	}
	return checks
}

// checkFramework verifies the JUCE dependency. Its absence fails
// distinctly from a missing SDK root: JUCE is a git submodule of the
// project, not part of any toolchain.
func (c *Checker) checkFramework() Check {
	if _, err := c.project.Stat(c.project.Join("juce", "CMakeLists.txt")); err != nil {
		return Check{Name: "juce", Status: StatusFail,
			Message: "JUCE submodule not initialized",
			Detail:  "Run: git submodule update --init --recursive"}
	}
	return Check{Name: "juce", Status: StatusOK, Message: "JUCE submodule initialized"}
}

func (c *Checker) checkModules() []Check {
	ids, err := c.registry.List()
	if err != nil {
		return []Check{{Name: "modules", Status: StatusFail,
			Message: fmt.Sprintf("cannot list modules: %v", err)}}
	}
	if len(ids) == 0 {
		return []Check{{Name: "modules", Status: StatusWarn,
			Message: "no modules found",
			Detail:  "Start with: rnbo demo install"}}
	}

	var checks []Check
	for _, id := range ids {
		name := "module " + id
		_, err := c.introspector.Introspect(id)
		switch {
		case err == nil:
			checks = append(checks, Check{Name: name, Status: StatusOK, Message: id + " is complete"})
		case errors.Is(err, export.ErrExportMissing):
			// A module may legitimately be scaffolded before its export
			// is supplied, so this is never a hard failure.
			checks = append(checks, Check{Name: name, Status: StatusWarn,
				Message: id + " is missing its RNBO export",
				Detail:  fmt.Sprintf("Max > Export C++ Source Code > modules/%s/%s-rnbo/", id, id)})
		default:
			checks = append(checks, Check{Name: name, Status: StatusWarn,
				Message: id + " has an unusable export",
				Detail:  err.Error()})
		}
	}
	return checks
}

func envVarFor(target toolchain.Target) string {
	if target == toolchain.TargetXMX {
		return toolchain.EnvXMXBuildroot
	}
	return toolchain.EnvSSPBuildroot
}

// installHint suggests how to install a missing tool on the current OS.
func installHint(tool, goos string) string {
	switch goos {
	case "darwin":
		return fmt.Sprintf("Install %s: brew install %s", tool, tool)
	default:
		return fmt.Sprintf("Install %s: apt install %s (or your distribution's package manager)", tool, tool)
	}
}
