package export

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/TheTechnobear/Percussa.Rnbo/internal/module"
)

const (
	// DescriptionFile is the primary metadata file of an RNBO export.
	DescriptionFile = "description.json"

	// DependenciesFile is the export's dependency manifest.
	DependenciesFile = "dependencies.json"

	// ClassNameSuffix is appended to the module identity to form the
	// required generated class name, e.g. VERB -> VERBRnbo.
	ClassNameSuffix = "Rnbo"

	// sourceSuffix marks RNBO-generated C++ source files.
	sourceSuffix = ".cpp.h"
)

// exportDirNames are the accepted export subdirectory names inside a
// module directory, tried in order. Older script tooling used several.
func exportDirNames(id string) []string {
	return []string{
		id + "-rnbo",
		id + "-export",
		"rnbo-export",
		"export",
	}
}

// Introspector locates and parses module exports under a project-root
// filesystem.
type Introspector struct {
	fsys billy.Filesystem
}

// NewIntrospector creates an Introspector over a project-root filesystem.
func NewIntrospector(fsys billy.Filesystem) *Introspector {
	return &Introspector{fsys: fsys}
}

// Dir returns the export directory of a module, or ErrExportMissing when
// no export subdirectory exists.
func (in *Introspector) Dir(id string) (string, error) {
	moduleDir := in.fsys.Join(module.ModulesDir, id)
	for _, name := range exportDirNames(id) {
		dir := in.fsys.Join(moduleDir, name)
		if info, err := in.fsys.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
	}
	return "", fmt.Errorf("%w: module %s has no export directory", ErrExportMissing, id)
}

// description.json shape as written by the RNBO C++ export.
type descriptionFile struct {
	NumInputChannels  int `json:"numInputChannels"`
	NumOutputChannels int `json:"numOutputChannels"`
	Parameters        []struct {
		Type         string  `json:"type"`
		Index        int     `json:"index"`
		Name         string  `json:"name"`
		ParamID      string  `json:"paramId"`
		DisplayName  string  `json:"displayName"`
		Unit         string  `json:"unit"`
		Minimum      float64 `json:"minimum"`
		Maximum      float64 `json:"maximum"`
		InitialValue float64 `json:"initialValue"`
	} `json:"parameters"`
}

// Introspect parses the export of a module and returns its metadata.
// Returns ErrExportMissing when the export directory or its description
// file is absent, and ErrExportMalformed when present files are not
// usable. Parameter order follows the export's indices: the export's
// internal parameter addressing is positional.
func (in *Introspector) Introspect(id string) (Metadata, error) {
	dir, err := in.Dir(id)
	if err != nil {
		return Metadata{}, err
	}

	descPath := in.fsys.Join(dir, DescriptionFile)
	data, err := util.ReadFile(in.fsys, descPath)
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: %s not found in %s", ErrExportMissing, DescriptionFile, dir)
	}

	var desc descriptionFile
	if err := json.Unmarshal(data, &desc); err != nil {
		return Metadata{}, &MalformedError{Path: descPath, Reason: fmt.Sprintf("parse: %v", err)}
	}

	meta := Metadata{
		IO: IOSpec{Inputs: desc.NumInputChannels, Outputs: desc.NumOutputChannels},
	}
	for _, p := range desc.Parameters {
		name := p.Name
		if name == "" {
			name = p.ParamID
		}
		if name == "" {
			return Metadata{}, &MalformedError{Path: descPath, Reason: fmt.Sprintf("parameter %d has no name", p.Index)}
		}
		display := p.DisplayName
		if display == "" {
			display = name
		}
		meta.Parameters = append(meta.Parameters, ParameterSpec{
			Name:        name,
			DisplayName: display,
			Index:       p.Index,
			Min:         p.Minimum,
			Max:         p.Maximum,
			Default:     p.InitialValue,
			Unit:        p.Unit,
		})
	}
	// Indices are authoritative; order the sequence by them so downstream
	// generation always addresses parameters positionally.
	sort.SliceStable(meta.Parameters, func(i, j int) bool {
		return meta.Parameters[i].Index < meta.Parameters[j].Index
	})

	className, err := in.findClassName(dir)
	if err != nil {
		return Metadata{}, err
	}
	if want := id + ClassNameSuffix; className != want {
		return Metadata{}, &MalformedError{
			Path:   dir,
			Reason: fmt.Sprintf("generated class %q does not match required name %q", className, want),
		}
	}
	meta.ClassName = className

	if _, err := in.fsys.Stat(in.fsys.Join(dir, DependenciesFile)); err == nil {
		meta.HasDependencies = true
	}

	return meta, nil
}

// findClassName derives the exported class name from the generated
// *.cpp.h source file in the export directory.
func (in *Introspector) findClassName(dir string) (string, error) {
	entries, err := in.fsys.ReadDir(dir)
	if err != nil {
		return "", &MalformedError{Path: dir, Reason: fmt.Sprintf("read export directory: %v", err)}
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), sourceSuffix) {
			continue
		}
		return strings.TrimSuffix(entry.Name(), sourceSuffix), nil
	}
	return "", &MalformedError{Path: dir, Reason: "no generated *.cpp.h source file found"}
}
