// Package toolchain resolves and validates the cross-compilation SDK
// roots and native compilers for the three build targets: desktop VST3,
// the SSP hardware target, and the XMX hardware target.
//
// The surrounding shell environment is captured once per invocation into
// a Config; resolution is pure given that Config plus a filesystem, and
// is never cached across invocations — the environment and filesystem
// are the source of truth.
package toolchain

import "runtime"

// Target names one build target.
type Target string

// The three build targets.
const (
	TargetDesktop Target = "desktop"
	TargetSSP     Target = "ssp"
	TargetXMX     Target = "xmx"
)

// Environment variable names for the SDK roots.
const (
	EnvSSPBuildroot = "SSP_BUILDROOT"
	EnvXMXBuildroot = "XMX_BUILDROOT"
)

// Config is the explicit snapshot of environment state consumed by the
// Resolver. Tests supply synthetic configurations.
type Config struct {
	SSPBuildroot string // value of SSP_BUILDROOT, may be empty
	XMXBuildroot string // value of XMX_BUILDROOT, may be empty
	Home         string // user home directory, for conventional defaults
	OS           string // GOOS value, selects platform compiler checks
}

// ConfigFromEnv captures a Config from an environment lookup function
// (normally os.Getenv) and home directory.
func ConfigFromEnv(getenv func(string) string, home string) Config {
	return Config{
		SSPBuildroot: getenv(EnvSSPBuildroot),
		XMXBuildroot: getenv(EnvXMXBuildroot),
		Home:         home,
		OS:           runtime.GOOS,
	}
}
