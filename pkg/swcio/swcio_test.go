package swcio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/efharkin/swc2dot/pkg/morph"
)

func TestReadMorphology(t *testing.T) {
	input := "1 1 0 0 0 1.0 -1\n2 2 1 0 0 0.2 1\n"
	g, err := ReadMorphology(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadMorphology() error = %v", err)
	}
	if g.Len() != 2 {
		t.Errorf("Len() = %d, want 2", g.Len())
	}
}

func TestReadMorphology_StructuralError(t *testing.T) {
	input := "1 1 0 0 0 1.0 -1\n1 2 1 0 0 0.2 -1\n"
	_, err := ReadMorphology(strings.NewReader(input))
	var dup *morph.DuplicateIDError
	if !errors.As(err, &dup) {
		t.Errorf("ReadMorphology() error = %v, want *morph.DuplicateIDError", err)
	}
}

func TestImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neuron.swc")
	if err := os.WriteFile(path, []byte("1 1 0 0 0 1.0 -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}
	if g.Len() != 1 {
		t.Errorf("Len() = %d, want 1", g.Len())
	}
}

func TestImportFile_MissingFile(t *testing.T) {
	_, err := ImportFile(filepath.Join(t.TempDir(), "nope.swc"))
	if err == nil {
		t.Error("ImportFile() = nil, want error for missing file")
	}
}

func TestExportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.dot")
	if err := ExportFile(path, []byte("graph{\n}\n")); err != nil {
		t.Fatalf("ExportFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "graph{\n}\n" {
		t.Errorf("file contents = %q", data)
	}
}
