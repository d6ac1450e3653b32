// Package module defines module identities, descriptors, and the on-disk
// registry of scaffolded modules. The filesystem is the persistence layer:
// a module exists exactly when its directory exists under modules/.
package module

import (
	"errors"
	"fmt"
)

// Sentinel errors for module identity and registry operations.
var (
	// ErrInvalidIdentity indicates an identity that violates the naming rule.
	ErrInvalidIdentity = errors.New("module: invalid identity")

	// ErrIdentityTaken indicates an identity already registered on disk.
	ErrIdentityTaken = errors.New("module: identity already taken")

	// ErrUnknownModule indicates an identity with no module directory.
	ErrUnknownModule = errors.New("module: unknown module")

	// ErrDescriptorMalformed indicates an unparseable module.yaml.
	ErrDescriptorMalformed = errors.New("module: malformed descriptor")
)

// InvalidIdentityError reports why an identity failed validation.
type InvalidIdentityError struct {
	Identity string
	Reason   string
}

// Error implements the error interface.
func (e *InvalidIdentityError) Error() string {
	return fmt.Sprintf("module: invalid identity %q: %s", e.Identity, e.Reason)
}

// Unwrap returns ErrInvalidIdentity for errors.Is support.
func (e *InvalidIdentityError) Unwrap() error {
	return ErrInvalidIdentity
}
