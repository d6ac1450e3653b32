// Package lifecycle orchestrates module create, remove, regenerate, and
// demo operations. No module state persists in memory across operations:
// a module's state machine (absent, scaffolded, export-ready) lives
// entirely on disk.
package lifecycle

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/TheTechnobear/Percussa.Rnbo/internal/export"
	"github.com/TheTechnobear/Percussa.Rnbo/internal/module"
	"github.com/TheTechnobear/Percussa.Rnbo/internal/scaffold"
	"github.com/TheTechnobear/Percussa.Rnbo/internal/ui"
)

// ErrDeclined indicates the user answered no at a confirmation gate.
var ErrDeclined = errors.New("lifecycle: declined")

// CreateOptions carries the optional descriptor fields of a new module.
type CreateOptions struct {
	Name        string
	Description string
	Author      string
}

// Manager composes the registry, introspector, and template engine into
// the lifecycle operations.
type Manager struct {
	fsys         billy.Filesystem // project root
	registry     *module.Registry
	introspector *export.Introspector
	engine       *scaffold.Engine
	confirmer    ui.Confirmer
	log          *log.Logger
}

// NewManager creates a Manager over a project-root filesystem. confirmer
// gates destructive operations; logger may be nil for silent operation.
func NewManager(fsys billy.Filesystem, confirmer ui.Confirmer, logger *log.Logger) (*Manager, error) {
	engine, err := scaffold.NewEngine(fsys)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{
		fsys:         fsys,
		registry:     module.NewRegistry(fsys),
		introspector: export.NewIntrospector(fsys),
		engine:       engine,
		confirmer:    confirmer,
		log:          logger,
	}, nil
}

// Registry exposes the registry for listing.
func (m *Manager) Registry() *module.Registry {
	return m.registry
}

// Create scaffolds a new module. The export introspector runs in
// tolerant mode: a not-yet-supplied export is fine and scaffolding
// proceeds with placeholder metadata, but a malformed export blocks
// generation that would reference it.
func (m *Manager) Create(id string, opts CreateOptions) (module.Descriptor, error) {
	if err := m.registry.ValidateForCreate(id); err != nil {
		return module.Descriptor{}, err
	}

	meta, hasExport, err := m.introspectTolerant(id)
	if err != nil {
		return module.Descriptor{}, err
	}

	d := module.NewDescriptor(id, opts.Name, opts.Description, opts.Author)
	files, err := m.engine.RenderFiles(d, meta, hasExport)
	if err != nil {
		return module.Descriptor{}, err
	}
	if err := m.engine.Commit(m.registry.Dir(id), files); err != nil {
		return module.Descriptor{}, err
	}

	m.log.Info("module created", "id", id, "name", d.Name, "export", hasExport)
	return d, nil
}

// Regenerate re-renders an existing module's scaffolding, picking up a
// re-exported patch. Files whose content is unchanged are not touched.
func (m *Manager) Regenerate(id string) error {
	if err := m.registry.ValidateForRemove(id); err != nil {
		return err
	}

	d, err := module.ReadDescriptor(m.fsys, m.registry.Dir(id))
	if err != nil {
		// Modules created by the older script tooling have no
		// descriptor; regenerate writes one with defaults.
		d = module.NewDescriptor(id, "", "", "")
	}

	meta, hasExport, err := m.introspectTolerant(id)
	if err != nil {
		return err
	}
	files, err := m.engine.RenderFiles(d, meta, hasExport)
	if err != nil {
		return err
	}
	if err := m.engine.Update(m.registry.Dir(id), files); err != nil {
		return err
	}

	m.log.Info("module regenerated", "id", id, "export", hasExport)
	return nil
}

// Remove deletes a module directory in full. Without force the
// confirmation gate must pass first. Deletion is all-or-nothing: the
// directory is first moved aside and only then deleted, so a failure
// never leaves a half-deleted module in place.
func (m *Manager) Remove(id string, force bool) error {
	if err := m.registry.ValidateForRemove(id); err != nil {
		return err
	}

	if !force {
		ok, err := m.confirmer.Confirm(fmt.Sprintf("Remove module %s and all its files?", id))
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s not removed", ErrDeclined, id)
		}
	}

	dir := m.registry.Dir(id)
	aside := m.fsys.Join(module.ModulesDir, fmt.Sprintf(".%s.removing-%d", id, time.Now().UnixNano()))
	if err := m.fsys.Rename(dir, aside); err != nil {
		return fmt.Errorf("lifecycle: remove %s: %w", id, err)
	}
	if err := util.RemoveAll(m.fsys, aside); err != nil {
		return fmt.Errorf("lifecycle: remove %s: %w", id, err)
	}

	m.log.Info("module removed", "id", id)
	return nil
}

// introspectTolerant runs the introspector, mapping a missing export to
// placeholder metadata. Malformed exports propagate as hard failures.
func (m *Manager) introspectTolerant(id string) (export.Metadata, bool, error) {
	meta, err := m.introspector.Introspect(id)
	switch {
	case err == nil:
		return meta, true, nil
	case errors.Is(err, export.ErrExportMissing):
		return export.Placeholder(id), false, nil
	default:
		return export.Metadata{}, false, err
	}
}
