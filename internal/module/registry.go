package module

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-git/go-billy/v5"
)

// ModulesDir is the directory under the project root that holds one
// subdirectory per module.
const ModulesDir = "modules"

// sharedDirs are non-module subdirectories of modules/ shared by all
// module builds; they never count as registered identities.
var sharedDirs = map[string]bool{
	"common": true,
	"inc":    true,
}

// Registry tracks module identities on disk. All reads are snapshots of
// the filesystem at call time; the tool runs as a single short-lived
// command, so no locking is involved.
type Registry struct {
	fsys billy.Filesystem // rooted at the project root
}

// NewRegistry creates a Registry over a project-root filesystem.
func NewRegistry(fsys billy.Filesystem) *Registry {
	return &Registry{fsys: fsys}
}

// Dir returns the path of a module directory relative to the project root.
func (r *Registry) Dir(id string) string {
	return r.fsys.Join(ModulesDir, id)
}

// List returns all registered identities in lexicographic order.
// Shared directories and entries that do not follow the identity rule
// (e.g. dotfiles) are skipped.
func (r *Registry) List() ([]string, error) {
	entries, err := r.fsys.ReadDir(ModulesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("module: list %s: %w", ModulesDir, err)
	}

	var ids []string
	for _, entry := range entries {
		if !entry.IsDir() || sharedDirs[entry.Name()] {
			continue
		}
		if !IsValidIdentity(entry.Name()) {
			continue
		}
		ids = append(ids, entry.Name())
	}
	sort.Strings(ids)
	return ids, nil
}

// Exists reports whether a module directory exists for id.
func (r *Registry) Exists(id string) bool {
	info, err := r.fsys.Stat(r.Dir(id))
	return err == nil && info.IsDir()
}

// ValidateForCreate checks that id is well-formed and not yet registered.
func (r *Registry) ValidateForCreate(id string) error {
	if err := ValidateIdentity(id); err != nil {
		return err
	}
	if r.Exists(id) {
		return fmt.Errorf("%w: %s", ErrIdentityTaken, id)
	}
	return nil
}

// ValidateForRemove checks that id is well-formed and registered.
func (r *Registry) ValidateForRemove(id string) error {
	if err := ValidateIdentity(id); err != nil {
		return err
	}
	if !r.Exists(id) {
		return fmt.Errorf("%w: %s", ErrUnknownModule, id)
	}
	return nil
}
