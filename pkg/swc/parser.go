package swc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// fieldCount is the number of whitespace-separated fields in a record line.
const fieldCount = 7

// MalformedRecordError reports a line that could not be parsed as an SWC
// record. It carries the 1-based line number and the raw line text so the
// offending record can be located in the input file.
type MalformedRecordError struct {
	Line  int    // 1-based line number
	Text  string // raw line text
	Cause error  // underlying field error
}

// Error implements the error interface.
func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("line %d: malformed record %q: %v", e.Line, e.Text, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *MalformedRecordError) Unwrap() error { return e.Cause }

// ParseLine parses a single line of SWC text.
//
// Blank lines and '#' comments yield (nil, nil): they are skipped, not
// errors. A valid record line has exactly seven whitespace-separated fields
// in the order "id type x y z radius parent". Compartment ids must be
// positive. Any field-count mismatch, non-positive id, or numeric-parse
// failure returns a [*MalformedRecordError] carrying lineno and the raw
// text.
//
// A parent field starting with '-' (any negative value) marks a root; it is
// normalized to [NoParent].
func ParseLine(line string, lineno int) (*Compartment, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, nil
	}

	fields := strings.Fields(trimmed)
	if len(fields) != fieldCount {
		return nil, &MalformedRecordError{
			Line:  lineno,
			Text:  trimmed,
			Cause: fmt.Errorf("expected %d fields, got %d", fieldCount, len(fields)),
		}
	}

	fail := func(field string, err error) (*Compartment, error) {
		return nil, &MalformedRecordError{
			Line:  lineno,
			Text:  trimmed,
			Cause: fmt.Errorf("%s: %w", field, err),
		}
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return fail("id", err)
	}
	if id <= 0 {
		return fail("id", errors.New("must be positive"))
	}
	code, err := strconv.Atoi(fields[1])
	if err != nil {
		return fail("type", err)
	}

	var pos [3]float64
	for i, name := range []string{"x", "y", "z"} {
		pos[i], err = strconv.ParseFloat(fields[2+i], 64)
		if err != nil {
			return fail(name, err)
		}
	}
	radius, err := strconv.ParseFloat(fields[5], 64)
	if err != nil {
		return fail("radius", err)
	}

	parent, err := strconv.Atoi(fields[6])
	if err != nil {
		return fail("parent", err)
	}
	if parent < 0 {
		parent = NoParent
	}

	return &Compartment{
		ID:     id,
		Kind:   KindOf(code),
		X:      pos[0],
		Y:      pos[1],
		Z:      pos[2],
		Radius: radius,
		Parent: parent,
	}, nil
}

// Parse reads SWC text from r and returns all compartment records in file
// order. Comments and blank lines are skipped.
//
// Parse scans the entire input even when it encounters malformed lines, so
// a single run reports every bad record. The returned error joins one
// [*MalformedRecordError] per offending line (use errors.As to inspect
// them); the records slice is nil when any line failed.
func Parse(r io.Reader) ([]Compartment, error) {
	var (
		records []Compartment
		errs    []error
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for lineno := 1; sc.Scan(); lineno++ {
		c, err := ParseLine(sc.Text(), lineno)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if c != nil {
			records = append(records, *c)
		}
	}
	if err := sc.Err(); err != nil {
		errs = append(errs, fmt.Errorf("read: %w", err))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return records, nil
}
