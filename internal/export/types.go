// Package export introspects the C++ code export produced by the RNBO
// patching tool for one module: parameter definitions, audio channel
// counts, and the generated class-name contract. Everything here is
// read-only; the scaffolding system never synthesizes or edits export
// metadata.
package export

// ParameterSpec describes one exported parameter. Index is the export's
// internal positional address and is order-significant end to end.
type ParameterSpec struct {
	Name        string
	DisplayName string
	Index       int
	Min         float64
	Max         float64
	Default     float64
	Unit        string // display-formatting hint, may be empty
}

// IOSpec holds the audio channel counts of the export, used to size
// generated audio-routing stubs.
type IOSpec struct {
	Inputs  int
	Outputs int
}

// Metadata is the full introspection result for one module's export.
type Metadata struct {
	Parameters []ParameterSpec
	IO         IOSpec
	// ClassName is the top-level exported C++ class, which must follow
	// the <Identity>Rnbo convention; generated source references it.
	ClassName string
	// HasDependencies reports whether the export shipped its dependency
	// manifest alongside the description.
	HasDependencies bool
}

// Placeholder returns the metadata used when a module is scaffolded
// before its export has been supplied: no parameters and a stereo bus
// pair, with the conventional class name precomputed for the stubs.
func Placeholder(id string) Metadata {
	return Metadata{
		IO:        IOSpec{Inputs: 2, Outputs: 2},
		ClassName: id + ClassNameSuffix,
	}
}
