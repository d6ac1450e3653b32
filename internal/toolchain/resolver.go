package toolchain

import (
	"errors"
	"fmt"

	"github.com/go-git/go-billy/v5"
)

// ErrToolchainUnresolved indicates a target whose SDK root could not be
// located from configuration or filesystem conventions.
var ErrToolchainUnresolved = errors.New("toolchain: unresolved")

// Source records how an SDK root was located.
type Source string

// Resolution sources, in resolution order.
const (
	SourceExplicit   Source = "explicit"   // environment variable
	SourceDefault    Source = "default"    // conventional path under $HOME
	SourceUnresolved Source = "unresolved" // neither present
)

// sdkSpec describes the filesystem conventions of one hardware SDK.
type sdkSpec struct {
	target  Target
	envVar  string
	triple  string
	defName string
}

var sdkSpecs = map[Target]sdkSpec{
	TargetSSP: {
		target:  TargetSSP,
		envVar:  EnvSSPBuildroot,
		triple:  "arm-rockchip-linux-gnueabihf",
		defName: "arm-rockchip-linux-gnueabihf_sdk-buildroot",
	},
	TargetXMX: {
		target:  TargetXMX,
		envVar:  EnvXMXBuildroot,
		triple:  "aarch64-rockchip-linux-gnu",
		defName: "aarch64-rockchip-linux-gnu_sdk-buildroot",
	},
}

// Resolution is the per-target outcome: where the SDK root was found,
// whether its internal layout is as expected, and the compiler paths
// derived from it.
type Resolution struct {
	Target         Target
	Root           string
	Source         Source
	Valid          bool
	MissingMarkers []string
	CC             string
	CXX            string
}

// Err returns nil for a valid resolution and a wrapped
// ErrToolchainUnresolved otherwise.
func (r Resolution) Err() error {
	if r.Valid {
		return nil
	}
	if r.Source == SourceUnresolved {
		return fmt.Errorf("%w: %s SDK root not configured (%s)", ErrToolchainUnresolved, r.Target, r.Root)
	}
	return fmt.Errorf("%w: %s SDK root %s is missing %v", ErrToolchainUnresolved, r.Target, r.Root, r.MissingMarkers)
}

// Resolver locates SDK roots and native tools. LookPath is injected so
// tests run against synthetic tool sets.
type Resolver struct {
	fsys     billy.Filesystem // absolute-path filesystem
	cfg      Config
	lookPath func(string) (string, error)
}

// NewResolver creates a Resolver over an absolute-path filesystem with
// the given environment snapshot and PATH lookup.
func NewResolver(fsys billy.Filesystem, cfg Config, lookPath func(string) (string, error)) *Resolver {
	return &Resolver{fsys: fsys, cfg: cfg, lookPath: lookPath}
}

// Resolve locates the SDK root of one hardware target. Resolution order:
// explicit environment value, then the conventional default path under
// the home directory, else unresolved.
func (r *Resolver) Resolve(target Target) Resolution {
	spec, ok := sdkSpecs[target]
	if !ok {
		return Resolution{Target: target, Source: SourceUnresolved}
	}

	res := Resolution{Target: target, Source: SourceUnresolved}
	explicit := r.envValue(spec.envVar)
	defaultRoot := r.fsys.Join(r.cfg.Home, "buildroot", spec.defName)

	switch {
	case explicit != "":
		res.Root = explicit
		res.Source = SourceExplicit
	case r.dirExists(defaultRoot):
		res.Root = defaultRoot
		res.Source = SourceDefault
	default:
		res.Root = defaultRoot // the path the caller should create or point at
		return res
	}

	res.MissingMarkers = r.missingMarkers(res.Root, spec.triple)
	res.Valid = len(res.MissingMarkers) == 0
	res.CC = r.fsys.Join(res.Root, "bin", spec.triple+"-gcc")
	res.CXX = r.fsys.Join(res.Root, "bin", spec.triple+"-g++")
	return res
}

// ResolveAll resolves both hardware targets, SSP first.
func (r *Resolver) ResolveAll() []Resolution {
	return []Resolution{r.Resolve(TargetSSP), r.Resolve(TargetXMX)}
}

// Configured reports whether the target's environment variable is set.
func (r *Resolver) Configured(target Target) bool {
	spec, ok := sdkSpecs[target]
	return ok && r.envValue(spec.envVar) != ""
}

// LookTool resolves a native tool on the search path.
func (r *Resolver) LookTool(name string) (string, error) {
	return r.lookPath(name)
}

func (r *Resolver) envValue(name string) string {
	switch name {
	case EnvSSPBuildroot:
		return r.cfg.SSPBuildroot
	case EnvXMXBuildroot:
		return r.cfg.XMXBuildroot
	}
	return ""
}

// missingMarkers returns the expected marker subdirectories absent or
// empty under root. A present SDK must carry the target sysroot and the
// gcc library tree for its triple.
func (r *Resolver) missingMarkers(root, triple string) []string {
	markers := []string{
		r.fsys.Join(triple, "sysroot"),
		r.fsys.Join("lib", "gcc", triple),
	}
	var missing []string
	for _, m := range markers {
		path := r.fsys.Join(root, m)
		if !r.dirExists(path) || r.dirEmpty(path) {
			missing = append(missing, m)
		}
	}
	return missing
}

func (r *Resolver) dirExists(path string) bool {
	info, err := r.fsys.Stat(path)
	return err == nil && info.IsDir()
}

func (r *Resolver) dirEmpty(path string) bool {
	entries, err := r.fsys.ReadDir(path)
	return err != nil || len(entries) == 0
}
