package lifecycle

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/go-git/go-billy/v5/util"

	"github.com/TheTechnobear/Percussa.Rnbo/internal/module"
)

//go:embed demoexport
var demoExportFS embed.FS

// InstallDemo creates the reserved DEMO module together with a bundled
// export, so one build validates the whole environment: scaffolding,
// introspection, and the module build wiring.
func (m *Manager) InstallDemo() (module.Descriptor, error) {
	d, err := m.Create(module.DemoIdentity, CreateOptions{
		Name:        "Demo",
		Description: "End-to-end environment validation module",
		Author:      "Percussa",
	})
	if err != nil {
		return module.Descriptor{}, err
	}

	if err := m.installDemoExport(); err != nil {
		// Keep the tree as it was before the operation.
		_ = m.Remove(module.DemoIdentity, true)
		return module.Descriptor{}, err
	}

	// Re-render so the stubs bind the demo export's parameters.
	if err := m.Regenerate(module.DemoIdentity); err != nil {
		_ = m.Remove(module.DemoIdentity, true)
		return module.Descriptor{}, err
	}

	m.log.Info("demo installed", "id", module.DemoIdentity)
	return d, nil
}

// RemoveDemo removes the reserved DEMO module.
func (m *Manager) RemoveDemo(force bool) error {
	return m.Remove(module.DemoIdentity, force)
}

// installDemoExport copies the embedded demo export into the DEMO
// module's export directory.
func (m *Manager) installDemoExport() error {
	exportDir := m.fsys.Join(m.registry.Dir(module.DemoIdentity), module.DemoIdentity+"-rnbo")
	sub, err := fs.Sub(demoExportFS, "demoexport")
	if err != nil {
		return fmt.Errorf("lifecycle: load demo export: %w", err)
	}
	entries, err := fs.ReadDir(sub, ".")
	if err != nil {
		return fmt.Errorf("lifecycle: read demo export: %w", err)
	}
	for _, entry := range entries {
		data, err := fs.ReadFile(sub, entry.Name())
		if err != nil {
			return fmt.Errorf("lifecycle: read demo export %s: %w", entry.Name(), err)
		}
		dest := m.fsys.Join(exportDir, entry.Name())
		if err := util.WriteFile(m.fsys, dest, data, 0o644); err != nil {
			return fmt.Errorf("lifecycle: write demo export %s: %w", dest, err)
		}
	}
	return nil
}
