// Package swcio loads SWC input into validated morphology forests and
// writes conversion artifacts. The pipeline reads its input through
// [ReadMorphology]; [ImportFile] and [ExportFile] are the file-path
// conveniences built on the same entry points.
package swcio

import (
	"fmt"
	"io"
	"os"

	"github.com/efharkin/swc2dot/pkg/morph"
	"github.com/efharkin/swc2dot/pkg/swc"
)

// ReadMorphology parses SWC text from r and builds the validated forest.
//
// It returns the same errors as [swc.Parse] for malformed records and
// [morph.Build] for structural failures, wrapped with context. ReadMorphology
// does not close r.
func ReadMorphology(r io.Reader) (*morph.Graph, error) {
	records, err := swc.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	g, err := morph.Build(records)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}
	return g, nil
}

// ImportFile reads the SWC file at path and returns the validated forest.
// The error wraps the underlying cause with the file path for context.
func ImportFile(path string) (*morph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	g, err := ReadMorphology(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
