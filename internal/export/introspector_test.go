package export

import (
	"errors"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
)

const verbDescription = `{
  "numInputChannels": 2,
  "numOutputChannels": 2,
  "parameters": [
    {"type": "ParameterTypeNumber", "index": 1, "name": "decay", "displayName": "Decay", "unit": "s", "minimum": 0.1, "maximum": 10, "initialValue": 2.5},
    {"type": "ParameterTypeNumber", "index": 0, "name": "mix", "displayName": "Mix", "unit": "%", "minimum": 0, "maximum": 100, "initialValue": 50}
  ]
}`

func writeExport(t *testing.T, fsys billy.Filesystem, id, dirName, className, description string) {
	t.Helper()
	dir := fsys.Join("modules", id, dirName)
	if err := util.WriteFile(fsys, fsys.Join(dir, DescriptionFile), []byte(description), 0o644); err != nil {
		t.Fatalf("write description: %v", err)
	}
	if className != "" {
		if err := util.WriteFile(fsys, fsys.Join(dir, className+".cpp.h"), []byte("// generated"), 0o644); err != nil {
			t.Fatalf("write source: %v", err)
		}
	}
}

func TestIntrospect(t *testing.T) {
	t.Run("parses_parameters_in_index_order", func(t *testing.T) {
		fsys := memfs.New()
		writeExport(t, fsys, "VERB", "VERB-rnbo", "VERBRnbo", verbDescription)

		meta, err := NewIntrospector(fsys).Introspect("VERB")
		if err != nil {
			t.Fatalf("Introspect error: %v", err)
		}
		if meta.ClassName != "VERBRnbo" {
			t.Errorf("ClassName = %q, want VERBRnbo", meta.ClassName)
		}
		if meta.IO.Inputs != 2 || meta.IO.Outputs != 2 {
			t.Errorf("IO = %+v, want 2 in / 2 out", meta.IO)
		}
		if len(meta.Parameters) != 2 {
			t.Fatalf("got %d parameters, want 2", len(meta.Parameters))
		}
		// The description lists decay first but mix has index 0.
		if meta.Parameters[0].Name != "mix" || meta.Parameters[1].Name != "decay" {
			t.Errorf("parameter order = [%s %s], want [mix decay]",
				meta.Parameters[0].Name, meta.Parameters[1].Name)
		}
		if meta.Parameters[1].Max != 10 || meta.Parameters[1].Default != 2.5 {
			t.Errorf("decay range = %+v, want max 10 default 2.5", meta.Parameters[1])
		}
	})

	t.Run("missing_export_directory", func(t *testing.T) {
		fsys := memfs.New()
		if err := fsys.MkdirAll("modules/VERB", 0o755); err != nil {
			t.Fatal(err)
		}
		_, err := NewIntrospector(fsys).Introspect("VERB")
		if !errors.Is(err, ErrExportMissing) {
			t.Errorf("Introspect = %v, want ErrExportMissing", err)
		}
	})

	t.Run("unparseable_description_is_malformed", func(t *testing.T) {
		fsys := memfs.New()
		writeExport(t, fsys, "VERB", "VERB-rnbo", "VERBRnbo", "{not json")
		_, err := NewIntrospector(fsys).Introspect("VERB")
		if !errors.Is(err, ErrExportMalformed) {
			t.Errorf("Introspect = %v, want ErrExportMalformed", err)
		}
	})

	t.Run("wrong_class_name_is_malformed_even_when_json_parses", func(t *testing.T) {
		fsys := memfs.New()
		writeExport(t, fsys, "VERB", "VERB-rnbo", "SomethingElse", verbDescription)
		_, err := NewIntrospector(fsys).Introspect("VERB")
		if !errors.Is(err, ErrExportMalformed) {
			t.Fatalf("Introspect = %v, want ErrExportMalformed", err)
		}
		var me *MalformedError
		if !errors.As(err, &me) {
			t.Fatalf("expected *MalformedError, got %T", err)
		}
	})

	t.Run("missing_generated_source_is_malformed", func(t *testing.T) {
		fsys := memfs.New()
		writeExport(t, fsys, "VERB", "VERB-rnbo", "", verbDescription)
		_, err := NewIntrospector(fsys).Introspect("VERB")
		if !errors.Is(err, ErrExportMalformed) {
			t.Errorf("Introspect = %v, want ErrExportMalformed", err)
		}
	})

	t.Run("alternate_export_directory_names", func(t *testing.T) {
		fsys := memfs.New()
		writeExport(t, fsys, "DLY1", "rnbo-export", "DLY1Rnbo", `{"numInputChannels":1,"numOutputChannels":1,"parameters":[]}`)
		meta, err := NewIntrospector(fsys).Introspect("DLY1")
		if err != nil {
			t.Fatalf("Introspect error: %v", err)
		}
		if meta.IO.Inputs != 1 || meta.IO.Outputs != 1 {
			t.Errorf("IO = %+v, want 1 in / 1 out", meta.IO)
		}
	})

	t.Run("dependency_manifest_detected", func(t *testing.T) {
		fsys := memfs.New()
		writeExport(t, fsys, "VERB", "VERB-rnbo", "VERBRnbo", verbDescription)
		if err := util.WriteFile(fsys, "modules/VERB/VERB-rnbo/dependencies.json", []byte("[]"), 0o644); err != nil {
			t.Fatal(err)
		}
		meta, err := NewIntrospector(fsys).Introspect("VERB")
		if err != nil {
			t.Fatalf("Introspect error: %v", err)
		}
		if !meta.HasDependencies {
			t.Error("HasDependencies = false, want true")
		}
	})
}

func TestPlaceholder(t *testing.T) {
	meta := Placeholder("VERB")
	if meta.ClassName != "VERBRnbo" {
		t.Errorf("ClassName = %q, want VERBRnbo", meta.ClassName)
	}
	if len(meta.Parameters) != 0 {
		t.Errorf("placeholder should have no parameters, got %d", len(meta.Parameters))
	}
	if meta.IO.Inputs != 2 || meta.IO.Outputs != 2 {
		t.Errorf("IO = %+v, want stereo", meta.IO)
	}
}
