package styles

import (
	"strings"
	"testing"

	"github.com/efharkin/swc2dot/pkg/swc"
)

func TestNew_HasRuleForEveryKind(t *testing.T) {
	reg := New()
	for _, kind := range swc.Kinds {
		rule := reg.Resolve(kind)
		if rule == nil {
			t.Fatalf("Resolve(%v) = nil", kind)
		}
		if rule.Len() == 0 {
			t.Errorf("Resolve(%v) has no attributes", kind)
		}
	}
}

func TestResolve_UnrecognizedKindFallsBackToCustom(t *testing.T) {
	reg := New()
	got := reg.Resolve(swc.KindOf(42))
	want := reg.Resolve(swc.KindCustom)
	if got != want {
		t.Errorf("Resolve(KindOf(42)) = %p, want custom rule %p", got, want)
	}
}

func TestApplyOverrides_MergesPerAttribute(t *testing.T) {
	reg := New()
	before := reg.Resolve(swc.KindCustom)
	shape, _ := before.Get("shape")

	reg.ApplyOverrides(Overrides{"custom": {"fillcolor": "red"}})

	rule := reg.Resolve(swc.KindCustom)
	if got, _ := rule.Get("fillcolor"); got != "red" {
		t.Errorf("fillcolor = %q, want %q", got, "red")
	}
	// Attributes not mentioned in the override keep their built-in values.
	if got, _ := rule.Get("shape"); got != shape {
		t.Errorf("shape = %q, want untouched %q", got, shape)
	}
}

func TestApplyOverrides_UnknownGroupCreatesRule(t *testing.T) {
	reg := New()
	reg.ApplyOverrides(Overrides{"glia": {"color": "green"}})

	rule, ok := reg.rules["glia"]
	if !ok {
		t.Fatal("override with unknown group did not create a rule")
	}
	if got, _ := rule.Get("color"); got != "green" {
		t.Errorf("color = %q, want %q", got, "green")
	}
}

func TestApplyOverrides_ReplacementKeepsAttributePosition(t *testing.T) {
	reg := New()
	keysBefore := append([]string(nil), reg.Resolve(swc.KindSoma).Keys()...)

	reg.ApplyOverrides(Overrides{"soma": {"fillcolor": "red"}})

	keysAfter := reg.Resolve(swc.KindSoma).Keys()
	if len(keysAfter) != len(keysBefore) {
		t.Fatalf("key count changed: %v → %v", keysBefore, keysAfter)
	}
	for i := range keysBefore {
		if keysAfter[i] != keysBefore[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, keysAfter[i], keysBefore[i])
		}
	}
}

func TestRule_Attrs(t *testing.T) {
	rule := NewRule()
	rule.Set("shape", "circle")
	rule.Set("fillcolor", "light blue") // needs quoting
	rule.Set("penwidth", "2")

	got := rule.Attrs()
	want := `node [shape=circle,fillcolor="light blue",penwidth=2];`
	if got != want {
		t.Errorf("Attrs() = %q, want %q", got, want)
	}
}

func TestRule_AttrsDeterministic(t *testing.T) {
	reg := New()
	reg.ApplyOverrides(Overrides{"axon": {"b": "2", "a": "1", "c": "3"}})

	first := reg.Resolve(swc.KindAxon).Attrs()
	for i := 0; i < 10; i++ {
		fresh := New()
		fresh.ApplyOverrides(Overrides{"axon": {"b": "2", "a": "1", "c": "3"}})
		if got := fresh.Resolve(swc.KindAxon).Attrs(); got != first {
			t.Fatalf("Attrs() not deterministic: %q vs %q", got, first)
		}
	}
	// New keys from an unordered override map are appended in sorted order.
	idx := strings.Index(first, "a=1")
	if idx == -1 || idx > strings.Index(first, "b=2") || strings.Index(first, "b=2") > strings.Index(first, "c=3") {
		t.Errorf("Attrs() = %q, want a=1 before b=2 before c=3", first)
	}
}
