package export

import (
	"errors"
	"fmt"
)

// Sentinel errors for export introspection.
var (
	// ErrExportMissing indicates the export directory is absent. This is
	// a soft failure: a module may be scaffolded before its patch is
	// exported, and scaffolding proceeds with placeholder metadata.
	ErrExportMissing = errors.New("export: export not supplied")

	// ErrExportMalformed indicates export files are present but not
	// usable: unparseable metadata or a class name that breaks the
	// <Identity>Rnbo convention. Hard failure, since generated source
	// references that symbol directly.
	ErrExportMalformed = errors.New("export: export malformed")
)

// MalformedError carries the file and reason of a malformed export.
type MalformedError struct {
	Path   string
	Reason string
}

// Error implements the error interface.
func (e *MalformedError) Error() string {
	return fmt.Sprintf("export: %s: %s", e.Path, e.Reason)
}

// Unwrap returns ErrExportMalformed for errors.Is support.
func (e *MalformedError) Unwrap() error {
	return ErrExportMalformed
}
