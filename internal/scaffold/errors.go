// Package scaffold renders module project scaffolding from an embedded
// template set. Rendering is a pure function from (descriptor, export
// metadata) to a set of files; all filesystem effects live in the commit
// step, which stages output and moves it into place only when every
// template rendered successfully.
package scaffold

import "errors"

// Sentinel errors for template rendering and commit.
var (
	// ErrTemplateNotFound indicates a template missing from the embedded set.
	ErrTemplateNotFound = errors.New("scaffold: template not found")

	// ErrMissingTemplateKey indicates a template referenced a key absent
	// from the render context (templates run with missingkey=error).
	ErrMissingTemplateKey = errors.New("scaffold: missing template key")

	// ErrUnexpandedToken indicates leftover template tokens in rendered output.
	ErrUnexpandedToken = errors.New("scaffold: unexpanded token in rendered output")

	// ErrRender indicates a filesystem failure while staging or committing
	// rendered output. The target module directory is never left partially
	// written.
	ErrRender = errors.New("scaffold: render failed")

	// ErrTargetExists indicates a create-mode commit into an existing
	// module directory.
	ErrTargetExists = errors.New("scaffold: target directory already exists")
)
