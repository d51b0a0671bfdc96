package pipeline

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/efharkin/swc2dot/pkg/morph"
	"github.com/efharkin/swc2dot/pkg/styles"
	"github.com/efharkin/swc2dot/pkg/swc"
)

const sampleSWC = `# soma with two dendrites
1 1 0 0 0 1.0 -1
2 3 1 0 0 0.5 1
3 3 2 0 0 0.5 1
`

func TestRun_DOTFormat(t *testing.T) {
	result, err := Run(context.Background(), strings.NewReader(sampleSWC), Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.Compartments != 3 {
		t.Errorf("Compartments = %d, want 3", result.Stats.Compartments)
	}
	if result.Stats.Roots != 1 {
		t.Errorf("Roots = %d, want 1", result.Stats.Roots)
	}
	if result.RunID == "" {
		t.Error("RunID is empty")
	}
	if string(result.Artifact) != result.DOT {
		t.Error("Artifact should equal DOT text for the default format")
	}
	if !strings.Contains(result.DOT, "1 -- {2, 3};") {
		t.Errorf("DOT missing structural line:\n%s", result.DOT)
	}
}

func TestRun_InvalidFormat(t *testing.T) {
	_, err := Run(context.Background(), strings.NewReader(sampleSWC), Options{Format: "pdf"})
	if err == nil || !strings.Contains(err.Error(), "invalid format") {
		t.Errorf("Run() error = %v, want invalid format", err)
	}
}

func TestRun_PropagatesParseErrors(t *testing.T) {
	_, err := Run(context.Background(), strings.NewReader("not an swc line\n"), Options{})
	var malformed *swc.MalformedRecordError
	if !errors.As(err, &malformed) {
		t.Errorf("Run() error = %v, want *swc.MalformedRecordError", err)
	}
}

func TestRun_PropagatesStructuralErrors(t *testing.T) {
	input := "1 1 0 0 0 1.0 -1\n2 3 0 0 0 0.5 42\n"
	_, err := Run(context.Background(), strings.NewReader(input), Options{})
	var unknown *morph.UnknownParentError
	if !errors.As(err, &unknown) {
		t.Fatalf("Run() error = %v, want *morph.UnknownParentError", err)
	}
	if unknown.Child != 2 || unknown.Parent != 42 {
		t.Errorf("got child %d parent %d, want child 2 parent 42", unknown.Child, unknown.Parent)
	}
	// The loader wraps structural errors with stage context.
	if !strings.Contains(err.Error(), "build graph") {
		t.Errorf("error %q missing loader context", err.Error())
	}
}

func TestRun_DebugLogsKindBreakdown(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	if _, err := Run(context.Background(), strings.NewReader(sampleSWC), Options{Logger: logger}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, frag := range []string{"1 somatic", "2 (basal) dendritic"} {
		if !strings.Contains(buf.String(), frag) {
			t.Errorf("debug output missing %q:\n%s", frag, buf.String())
		}
	}
}

func TestRun_UsesSuppliedStyles(t *testing.T) {
	reg := styles.New()
	reg.ApplyOverrides(styles.Overrides{"soma": {"fillcolor": "orange"}})

	result, err := Run(context.Background(), strings.NewReader(sampleSWC), Options{Styles: reg})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(result.DOT, "fillcolor=orange") {
		t.Errorf("DOT missing overridden style:\n%s", result.DOT)
	}
}

func TestRun_Deterministic(t *testing.T) {
	first, err := Run(context.Background(), strings.NewReader(sampleSWC), Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	second, err := Run(context.Background(), strings.NewReader(sampleSWC), Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if first.DOT != second.DOT {
		t.Errorf("DOT differs between runs:\n%s\nvs\n%s", first.DOT, second.DOT)
	}
}

func TestValidateFormat(t *testing.T) {
	for _, format := range []string{FormatDOT, FormatSVG, FormatPNG} {
		if err := ValidateFormat(format); err != nil {
			t.Errorf("ValidateFormat(%q) = %v, want nil", format, err)
		}
	}
	if err := ValidateFormat("gif"); err == nil {
		t.Error("ValidateFormat(\"gif\") = nil, want error")
	}
}
