// Package cli provides the Cobra command tree for the rnbo tool. This
// file is the composition root: the only place concrete implementations
// are instantiated and wired together. Commands reach their
// collaborators through the package-level Dependencies.
package cli

import (
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/TheTechnobear/Percussa.Rnbo/internal/doctor"
	"github.com/TheTechnobear/Percussa.Rnbo/internal/lifecycle"
	"github.com/TheTechnobear/Percussa.Rnbo/internal/project"
	"github.com/TheTechnobear/Percussa.Rnbo/internal/toolchain"
	"github.com/TheTechnobear/Percussa.Rnbo/internal/ui"
)

// Dependencies holds the services used by the commands. Project-rooted
// services (filesystem, lifecycle manager) are initialized lazily
// because commands like --version run fine outside a project tree.
type Dependencies struct {
	Root      string
	FS        billy.Filesystem // rooted at the project
	Sysfs     billy.Filesystem // rooted at /, for SDK paths
	Manager   *lifecycle.Manager
	Confirmer ui.Confirmer
	Prompts   ui.PromptSource
	Logger    *log.Logger
	LookPath  func(string) (string, error)
}

// deps is the global instance, initialized by InitDependencies.
var deps *Dependencies

// InitDependencies wires the production implementations. Called once
// from Execute.
func InitDependencies() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})
	if !ui.IsInteractive() {
		logger.SetLevel(log.WarnLevel)
	}
	deps = &Dependencies{
		Sysfs:     osfs.New("/"),
		Confirmer: ui.HuhConfirmer{},
		Prompts:   ui.HuhPrompts{},
		Logger:    logger,
		LookPath:  exec.LookPath,
	}
}

// SetDeps replaces the global dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}

// EnsureProject locates the project root and initializes the
// project-rooted services. Subsequent calls are no-ops.
func (d *Dependencies) EnsureProject() error {
	if d.Manager != nil {
		return nil
	}
	if d.Root == "" {
		root, err := project.FindRoot()
		if err != nil {
			return err
		}
		d.Root = root
	}
	if d.FS == nil {
		d.FS = osfs.New(d.Root)
	}
	m, err := lifecycle.NewManager(d.FS, d.Confirmer, d.Logger)
	if err != nil {
		return err
	}
	d.Manager = m
	return nil
}

// NewChecker builds an environment checker over the project and system
// filesystems with a fresh environment snapshot.
func (d *Dependencies) NewChecker(verbose bool) *doctor.Checker {
	home, _ := os.UserHomeDir()
	cfg := toolchain.ConfigFromEnv(os.Getenv, home)
	resolver := toolchain.NewResolver(d.Sysfs, cfg, d.LookPath)
	return doctor.NewChecker(d.FS, d.Sysfs, resolver, cfg, verbose)
}
