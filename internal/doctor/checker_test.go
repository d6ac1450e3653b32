package doctor

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/TheTechnobear/Percussa.Rnbo/internal/toolchain"
)

// allTools resolves every tool, as on a fully provisioned machine.
func allTools(name string) (string, error) {
	return "/usr/bin/" + name, nil
}

func toolsExcept(missing ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, m := range missing {
			if name == m {
				return "", errors.New("not found")
			}
		}
		return "/usr/bin/" + name, nil
	}
}

// projectFS builds a complete project tree, optionally with modules.
func projectFS(t *testing.T, moduleIDs ...string) billy.Filesystem {
	t.Helper()
	fsys := memfs.New()
	if err := util.WriteFile(fsys, "CMakeLists.txt", []byte("project(rnbo)"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := util.WriteFile(fsys, "juce/CMakeLists.txt", []byte("juce"), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, dir := range []string{"modules", "ssp-sdk"} {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	for _, id := range moduleIDs {
		if err := fsys.MkdirAll(fsys.Join("modules", id), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return fsys
}

// sdkFS builds an absolute-path filesystem carrying a valid SSP SDK.
func sdkFS(t *testing.T, roots ...string) billy.Filesystem {
	t.Helper()
	fsys := memfs.New()
	triples := map[string]string{
		"/opt/ssp-sdk": "arm-rockchip-linux-gnueabihf",
		"/opt/xmx-sdk": "aarch64-rockchip-linux-gnu",
	}
	for _, root := range roots {
		triple := triples[root]
		for _, marker := range []string{
			fsys.Join(root, triple, "sysroot", "usr"),
			fsys.Join(root, "lib", "gcc", triple, "8.4.0"),
		} {
			if err := fsys.MkdirAll(marker, 0o755); err != nil {
				t.Fatal(err)
			}
		}
	}
	return fsys
}

func checkByName(t *testing.T, r Report, name string) Check {
	t.Helper()
	for _, c := range r.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("no check named %q in report", name)
	return Check{}
}

func newChecker(project, sysfs billy.Filesystem, cfg toolchain.Config, look func(string) (string, error)) *Checker {
	resolver := toolchain.NewResolver(sysfs, cfg, look)
	return NewChecker(project, sysfs, resolver, cfg, false)
}

func TestCheckerRun(t *testing.T) {
	t.Run("missing_sdk_fails_independently", func(t *testing.T) {
		// SSP SDK configured and valid, XMX absent: exactly the XMX check
		// degrades, everything else passes.
		cfg := toolchain.Config{SSPBuildroot: "/opt/ssp-sdk", Home: "/home/u", OS: "linux"}
		c := newChecker(projectFS(t, "VERB"), sdkFS(t, "/opt/ssp-sdk"), cfg, allTools)
		r := c.Run()

		if got := checkByName(t, r, "ssp-sdk"); got.Status != StatusOK {
			t.Errorf("ssp-sdk = %+v, want ok", got)
		}
		if got := checkByName(t, r, "xmx-sdk"); got.Status != StatusWarn {
			t.Errorf("xmx-sdk = %+v, want warn (optional target)", got)
		}
		if got := checkByName(t, r, "cmake"); got.Status != StatusOK {
			t.Errorf("cmake = %+v, want ok", got)
		}
		if r.Failed() {
			t.Errorf("report should not fail: %+v", r.Checks)
		}
	})

	t.Run("ssp_unconfigured_is_a_hard_failure", func(t *testing.T) {
		cfg := toolchain.Config{Home: "/home/u", OS: "linux"}
		c := newChecker(projectFS(t), memfs.New(), cfg, allTools)
		r := c.Run()

		got := checkByName(t, r, "ssp-sdk")
		if got.Status != StatusFail {
			t.Errorf("ssp-sdk = %+v, want fail", got)
		}
		if !strings.Contains(got.Detail, "Download") {
			t.Errorf("ssp-sdk failure should carry the download hint, got %q", got.Detail)
		}
	})

	t.Run("no_short_circuit_all_problems_in_one_report", func(t *testing.T) {
		// Missing cmake AND git AND JUCE: all three surface at once.
		cfg := toolchain.Config{SSPBuildroot: "/opt/ssp-sdk", Home: "/home/u", OS: "linux"}
		project := projectFS(t)
		if err := util.RemoveAll(project, "juce"); err != nil {
			t.Fatal(err)
		}
		c := newChecker(project, sdkFS(t, "/opt/ssp-sdk"), cfg, toolsExcept("cmake", "git"))
		r := c.Run()

		for _, name := range []string{"cmake", "git", "juce"} {
			if got := checkByName(t, r, name); got.Status != StatusFail {
				t.Errorf("%s = %+v, want fail", name, got)
			}
		}
		_, _, fails := r.Counts()
		if fails != 3 {
			t.Errorf("fail count = %d, want 3", fails)
		}
	})

	t.Run("juce_fails_distinctly_from_sdk", func(t *testing.T) {
		cfg := toolchain.Config{SSPBuildroot: "/opt/ssp-sdk", Home: "/home/u", OS: "linux"}
		project := projectFS(t)
		if err := util.RemoveAll(project, "juce"); err != nil {
			t.Fatal(err)
		}
		r := newChecker(project, sdkFS(t, "/opt/ssp-sdk"), cfg, allTools).Run()

		if got := checkByName(t, r, "juce"); got.Status != StatusFail || !strings.Contains(got.Detail, "submodule") {
			t.Errorf("juce = %+v, want fail with submodule hint", got)
		}
		if got := checkByName(t, r, "ssp-sdk"); got.Status != StatusOK {
			t.Errorf("ssp-sdk = %+v, want ok despite JUCE failure", got)
		}
	})

	t.Run("python_fallback_accepts_python", func(t *testing.T) {
		cfg := toolchain.Config{SSPBuildroot: "/opt/ssp-sdk", Home: "/home/u", OS: "linux"}
		r := newChecker(projectFS(t), sdkFS(t, "/opt/ssp-sdk"), cfg, toolsExcept("python3")).Run()
		if got := checkByName(t, r, "python"); got.Status != StatusOK {
			t.Errorf("python = %+v, want ok via fallback", got)
		}
	})

	t.Run("module_without_export_warns_not_fails", func(t *testing.T) {
		cfg := toolchain.Config{SSPBuildroot: "/opt/ssp-sdk", Home: "/home/u", OS: "linux"}
		r := newChecker(projectFS(t, "VERB"), sdkFS(t, "/opt/ssp-sdk"), cfg, allTools).Run()

		got := checkByName(t, r, "module VERB")
		if got.Status != StatusWarn {
			t.Errorf("module VERB = %+v, want warn", got)
		}
		if r.Failed() {
			t.Error("a scaffolded-but-unexported module must not fail the run")
		}
	})

	t.Run("malformed_export_warns_with_reason", func(t *testing.T) {
		cfg := toolchain.Config{SSPBuildroot: "/opt/ssp-sdk", Home: "/home/u", OS: "linux"}
		project := projectFS(t, "VERB")
		if err := util.WriteFile(project, "modules/VERB/VERB-rnbo/description.json", []byte("{bad"), 0o644); err != nil {
			t.Fatal(err)
		}
		r := newChecker(project, sdkFS(t, "/opt/ssp-sdk"), cfg, allTools).Run()

		got := checkByName(t, r, "module VERB")
		if got.Status != StatusWarn || got.Detail == "" {
			t.Errorf("module VERB = %+v, want warn with detail", got)
		}
	})

	t.Run("windows_is_unsupported", func(t *testing.T) {
		cfg := toolchain.Config{Home: `C:\Users\u`, OS: "windows"}
		r := newChecker(projectFS(t), memfs.New(), cfg, allTools).Run()
		if got := checkByName(t, r, "compilers"); got.Status != StatusFail {
			t.Errorf("compilers = %+v, want fail on windows", got)
		}
	})

	t.Run("verbose_includes_tool_paths", func(t *testing.T) {
		cfg := toolchain.Config{SSPBuildroot: "/opt/ssp-sdk", Home: "/home/u", OS: "linux"}
		sysfs := sdkFS(t, "/opt/ssp-sdk")
		resolver := toolchain.NewResolver(sysfs, cfg, allTools)
		r := NewChecker(projectFS(t), sysfs, resolver, cfg, true).Run()

		if got := checkByName(t, r, "cmake"); !strings.Contains(got.Detail, "path:") {
			t.Errorf("verbose cmake detail = %q, want resolved path", got.Detail)
		}
	})
}

func TestReportExportJSON(t *testing.T) {
	fsys := memfs.New()
	r := Report{Checks: []Check{
		{Name: "cmake", Status: StatusOK, Message: "cmake found"},
		{Name: "ssp-sdk", Status: StatusFail, Message: "missing", Detail: "hint"},
	}}
	if err := r.ExportJSON(fsys, "report.json"); err != nil {
		t.Fatalf("ExportJSON error: %v", err)
	}
	data, err := util.ReadFile(fsys, "report.json")
	if err != nil {
		t.Fatal(err)
	}
	var decoded Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("exported report is not valid JSON: %v", err)
	}
	if len(decoded.Checks) != 2 || decoded.Checks[1].Detail != "hint" {
		t.Errorf("round-trip mismatch: %+v", decoded)
	}
}

func TestNextSteps(t *testing.T) {
	t.Run("failures_come_first", func(t *testing.T) {
		md := NextSteps(Report{Checks: []Check{
			{Name: "cmake", Status: StatusFail, Message: "cmake not found", Detail: "Install cmake"},
		}})
		if !strings.Contains(md, "Critical issues") || !strings.Contains(md, "cmake not found") {
			t.Errorf("NextSteps = %q", md)
		}
	})

	t.Run("demo_suggested_when_no_modules", func(t *testing.T) {
		md := NextSteps(Report{Checks: []Check{
			{Name: "cmake", Status: StatusOK, Message: "cmake found"},
		}})
		if !strings.Contains(md, "rnbo demo install") {
			t.Errorf("NextSteps should suggest the demo, got %q", md)
		}
	})

	t.Run("complete_modules_get_build_commands", func(t *testing.T) {
		md := NextSteps(Report{Checks: []Check{
			{Name: "module VERB", Status: StatusOK, Message: "VERB is complete"},
			{Name: "module DLY1", Status: StatusWarn, Message: "DLY1 is missing its RNBO export"},
		}})
		if !strings.Contains(md, "cmake --build") {
			t.Error("NextSteps should include build commands for complete modules")
		}
		if !strings.Contains(md, "DLY1 is missing") {
			t.Error("NextSteps should list incomplete modules")
		}
	})
}
