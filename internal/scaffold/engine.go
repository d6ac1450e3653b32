package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/TheTechnobear/Percussa.Rnbo/internal/export"
	"github.com/TheTechnobear/Percussa.Rnbo/internal/module"
)

//go:embed templates
var templatesFS embed.FS

// File is one rendered output file, with Path relative to the module
// directory.
type File struct {
	Path    string
	Content []byte
}

// templateSpec maps one embedded template to its destination path.
type templateSpec struct {
	template string
	dest     func(id string) string
}

// modulePlan is the fixed set of files generated per module.
var modulePlan = []templateSpec{
	{"module/CMakeLists.txt.tmpl", func(string) string { return "CMakeLists.txt" }},
	{"module/Processor.h.tmpl", func(id string) string { return "Source/" + id + "Processor.h" }},
	{"module/Editor.h.tmpl", func(id string) string { return "Source/" + id + "Editor.h" }},
	{"module/CompactEditor.h.tmpl", func(id string) string { return "Source/" + id + "CompactEditor.h" }},
	{"module/export-README.md.tmpl", func(id string) string { return id + "-rnbo/README.md" }},
}

// Engine renders module scaffolding and commits it to the project tree.
type Engine struct {
	renderer Renderer
	fsys     billy.Filesystem // rooted at the project root
}

// NewEngine creates an Engine over a project-root filesystem, using the
// embedded template set.
func NewEngine(fsys billy.Filesystem) (*Engine, error) {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("scaffold: load embedded templates: %w", err)
	}
	return &Engine{renderer: NewRenderer(sub), fsys: fsys}, nil
}

// RenderFiles renders the full module file set from a descriptor and
// export metadata. Pure: no filesystem writes, and identical inputs
// always produce byte-identical output.
func (e *Engine) RenderFiles(d module.Descriptor, meta export.Metadata, hasExport bool) ([]File, error) {
	ctx := NewContext(d, meta, hasExport)

	files := make([]File, 0, len(modulePlan)+1)
	for _, spec := range modulePlan {
		content, err := e.renderer.Render(spec.template, ctx)
		if err != nil {
			return nil, err
		}
		files = append(files, File{Path: spec.dest(d.Identity), Content: content})
	}

	desc, err := module.EncodeDescriptor(d)
	if err != nil {
		return nil, err
	}
	files = append(files, File{Path: module.DescriptorFile, Content: desc})
	return files, nil
}

// Commit writes a rendered file set into a new module directory,
// all-or-nothing: files are staged into a sibling directory and moved
// into the final path only once every file is in place. A failure
// partway leaves no trace of the target.
func (e *Engine) Commit(targetDir string, files []File) error {
	if _, err := e.fsys.Stat(targetDir); err == nil {
		return fmt.Errorf("%w: %s", ErrTargetExists, targetDir)
	}

	staging := fmt.Sprintf("%s.staging-%d", targetDir, time.Now().UnixNano())
	if err := e.writeAll(staging, files); err != nil {
		_ = util.RemoveAll(e.fsys, staging)
		return err
	}
	if err := e.fsys.Rename(staging, targetDir); err != nil {
		_ = util.RemoveAll(e.fsys, staging)
		return fmt.Errorf("%w: commit %s: %v", ErrRender, targetDir, err)
	}
	return nil
}

// Update writes a rendered file set into an existing module directory.
// Files whose on-disk content already matches are left untouched, so a
// re-render with identical inputs is a no-op diff.
func (e *Engine) Update(targetDir string, files []File) error {
	if _, err := e.fsys.Stat(targetDir); err != nil {
		return fmt.Errorf("%w: update target %s: %v", ErrRender, targetDir, err)
	}
	for _, f := range files {
		dest := e.fsys.Join(targetDir, f.Path)
		if existing, err := util.ReadFile(e.fsys, dest); err == nil && bytes.Equal(existing, f.Content) {
			continue
		}
		if err := e.writeFile(dest, f.Content); err != nil {
			return err
		}
	}
	return nil
}

// writeAll stages every file under dir.
func (e *Engine) writeAll(dir string, files []File) error {
	for _, f := range files {
		if err := e.writeFile(e.fsys.Join(dir, f.Path), f.Content); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) writeFile(path string, content []byte) error {
	if err := util.WriteFile(e.fsys, path, content, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrRender, path, err)
	}
	return nil
}
