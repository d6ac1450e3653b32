package scaffold

import (
	"github.com/TheTechnobear/Percussa.Rnbo/internal/export"
	"github.com/TheTechnobear/Percussa.Rnbo/internal/module"
)

// CompactControlCount is the number of controls one compact-interface
// encoder page can display. The compact stub binds the first
// CompactControlCount parameters; the full interface always binds all of
// them, so the two never diverge in naming, only in how many are shown.
const CompactControlCount = 8

// Param is the template-facing view of one exported parameter.
type Param struct {
	Name        string
	DisplayName string
	Index       int
	Min         float64
	Max         float64
	Default     float64
	Unit        string
}

// Context provides data for module template rendering. All fields are
// exported for use with text/template; templates run in strict mode, so
// every field referenced by a template must be populated here.
type Context struct {
	Identity    string
	Name        string
	Description string
	Author      string
	CreatedAt   string // RFC 3339, from the descriptor

	ClassName string
	HasExport bool
	ExportDir string // relative to the module directory, e.g. VERB-rnbo

	NumInputs  int
	NumOutputs int

	Parameters     []Param
	CompactParams  []Param // first CompactControlCount of Parameters
	CompactOmitted int     // parameters not reachable from the compact interface
}

// NewContext builds a render context from a descriptor and export
// metadata. Parameter order is taken verbatim from the metadata, which
// the introspector already ordered by the export's indices.
func NewContext(d module.Descriptor, meta export.Metadata, hasExport bool) Context {
	ctx := Context{
		Identity:    d.Identity,
		Name:        d.Name,
		Description: d.Description,
		Author:      d.Author,
		CreatedAt:   d.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		ClassName:   meta.ClassName,
		HasExport:   hasExport,
		ExportDir:   d.Identity + "-rnbo",
		NumInputs:   meta.IO.Inputs,
		NumOutputs:  meta.IO.Outputs,
	}
	for _, p := range meta.Parameters {
		ctx.Parameters = append(ctx.Parameters, Param{
			Name:        p.Name,
			DisplayName: p.DisplayName,
			Index:       p.Index,
			Min:         p.Min,
			Max:         p.Max,
			Default:     p.Default,
			Unit:        p.Unit,
		})
	}
	if len(ctx.Parameters) > CompactControlCount {
		ctx.CompactParams = ctx.Parameters[:CompactControlCount]
		ctx.CompactOmitted = len(ctx.Parameters) - CompactControlCount
	} else {
		ctx.CompactParams = ctx.Parameters
	}
	return ctx
}
