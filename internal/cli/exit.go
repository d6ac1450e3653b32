package cli

import (
	"errors"

	"github.com/TheTechnobear/Percussa.Rnbo/internal/export"
	"github.com/TheTechnobear/Percussa.Rnbo/internal/module"
	"github.com/TheTechnobear/Percussa.Rnbo/internal/scaffold"
	"github.com/TheTechnobear/Percussa.Rnbo/internal/toolchain"
)

// ErrEnvironment indicates a failed environment check run.
var ErrEnvironment = errors.New("cli: environment check failed")

// Exit codes, distinguishable so scripts can branch on the failure
// class.
const (
	ExitOK          = 0
	ExitError       = 1
	ExitValidation  = 2
	ExitEnvironment = 3
	ExitRender      = 4
)

// ExitCode maps an error to the process exit code for its failure
// class.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, module.ErrInvalidIdentity),
		errors.Is(err, module.ErrIdentityTaken),
		errors.Is(err, module.ErrUnknownModule):
		return ExitValidation
	case errors.Is(err, toolchain.ErrToolchainUnresolved),
		errors.Is(err, ErrEnvironment):
		return ExitEnvironment
	case errors.Is(err, export.ErrExportMalformed),
		errors.Is(err, scaffold.ErrRender),
		errors.Is(err, scaffold.ErrTargetExists):
		return ExitRender
	default:
		return ExitError
	}
}
