package mathtex

import (
	"errors"
	"strings"
	"testing"
)

func TestSplit_InlineSpan(t *testing.T) {
	segments := Split("Speed is $v=d/t$ always.")

	if len(segments) != 3 {
		t.Fatalf("segments = %d, want 3", len(segments))
	}
	if segments[0].Mode != Plain || segments[0].Text != "Speed is " {
		t.Errorf("segment 0 = %+v", segments[0])
	}
	if segments[1].Mode != Inline || segments[1].Text != "v=d/t" {
		t.Errorf("segment 1 = %+v", segments[1])
	}
	if segments[2].Mode != Plain || segments[2].Text != " always." {
		t.Errorf("segment 2 = %+v", segments[2])
	}
}

func TestSplit_BlockBeforeInline(t *testing.T) {
	segments := Split("$$F = ma$$")

	if len(segments) != 1 {
		t.Fatalf("segments = %d, want 1", len(segments))
	}
	if segments[0].Mode != Block || segments[0].Text != "F = ma" {
		t.Fatalf("segment = %+v", segments[0])
	}
}

func TestSplit_MixedSpans(t *testing.T) {
	segments := Split("Energy: $E = mc^2$ or in full $$E^2 = (mc^2)^2 + (pc)^2$$ done")

	var modes []Mode
	for _, s := range segments {
		modes = append(modes, s.Mode)
	}
	want := []Mode{Plain, Inline, Plain, Block, Plain}
	if len(modes) != len(want) {
		t.Fatalf("modes = %v, want %v", modes, want)
	}
	for i := range want {
		if modes[i] != want[i] {
			t.Fatalf("modes = %v, want %v", modes, want)
		}
	}
}

func TestSplit_PreservesPlainCharacters(t *testing.T) {
	inputs := []string{
		"no math at all",
		"Speed is $v=d/t$ always.",
		"$$a$$ then $b$ then $$c$$",
		"unbalanced $ dollar stays",
		"trailing block $$x",
		"",
	}

	for _, input := range inputs {
		var rejoined strings.Builder
		for _, seg := range Split(input) {
			rejoined.WriteString(seg.Raw)
		}
		if rejoined.String() != input {
			t.Errorf("split of %q loses characters: %q", input, rejoined.String())
		}
	}
}

func TestSplit_UnbalancedIsPlain(t *testing.T) {
	segments := Split("costs $5 at most")
	if len(segments) != 1 || segments[0].Mode != Plain {
		t.Fatalf("segments = %+v", segments)
	}
}

func TestRender_NilRendererPassthrough(t *testing.T) {
	input := "Speed is $v=d/t$ always."
	if got := Render(input, nil); got != input {
		t.Fatalf("nil renderer changed text: %q", got)
	}
}

type failingRenderer struct{}

func (failingRenderer) RenderToString(string, bool) (string, error) {
	return "", errors.New("render failed")
}

func TestRender_ErrorFallsBackToRawSpan(t *testing.T) {
	input := "Speed is $v=d/t$ always."
	got := Render(input, failingRenderer{})
	if got != input {
		t.Fatalf("failed rendering must keep original text, got %q", got)
	}
}

type upperRenderer struct{}

func (upperRenderer) RenderToString(expr string, displayMode bool) (string, error) {
	if displayMode {
		return "[" + strings.ToUpper(expr) + "]", nil
	}
	return strings.ToUpper(expr), nil
}

func TestRender_AppliesRendererPerMode(t *testing.T) {
	got := Render("a $x$ b $$y$$ c", upperRenderer{})
	if got != "a X b [Y] c" {
		t.Fatalf("got %q", got)
	}
}

func TestTermRenderer_Lowering(t *testing.T) {
	r := NewTermRenderer()

	tests := []struct {
		expr string
		want string
	}{
		{"v = d/t", "v = d/t"},
		{"E = mc^2", "E = mc²"},
		{"v_0 + at", "v₀ + at"},
		{`\frac{d}{t}`, "d/t"},
		{`\sqrt{2gh}`, "√(2gh)"},
		{`F \cdot d`, "F · d"},
		{`\Delta v`, "Δ v"},
		{`\theta \approx \pi`, "θ ≈ π"},
		{`x^{10}`, "x¹⁰"},
		{`F_{net}`, "F_net"},
	}

	for _, tt := range tests {
		got, err := r.RenderToString(tt.expr, false)
		if err != nil {
			t.Errorf("%q: %v", tt.expr, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q = %q, want %q", tt.expr, got, tt.want)
		}
	}
}

func TestTermRenderer_BlockFraming(t *testing.T) {
	r := NewTermRenderer()
	got, err := r.RenderToString("F = ma", true)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "\n") || !strings.HasSuffix(got, "\n") {
		t.Fatalf("block output not on its own line: %q", got)
	}
	if !strings.Contains(got, "F = ma") {
		t.Fatalf("got %q", got)
	}
}
