// Package mathtex splits text into plain and math segments using the
// $...$ / $$...$$ delimiter convention and typesets the math segments.
// Rendering is fail-soft throughout: without a renderer, or when one
// errors, the original text passes through untouched.
package mathtex

import "strings"

// Mode distinguishes inline from block math.
type Mode int

const (
	// Plain is ordinary text.
	Plain Mode = iota
	// Inline is a $...$ span rendered within the line.
	Inline
	// Block is a $$...$$ span rendered on its own line.
	Block
)

// Segment is one piece of a split text. For math segments Text holds the
// expression without its delimiters; Raw holds the original span with
// delimiters for pass-through.
type Segment struct {
	Mode Mode
	Text string
	Raw  string
}

// Split scans text left to right into plain and math segments. Block
// delimiters are matched before inline ones so "$$x$$" is a single block
// span, never two empty inline spans. Unbalanced delimiters are treated
// as plain text.
func Split(text string) []Segment {
	var segments []Segment
	var plain strings.Builder

	flushPlain := func() {
		if plain.Len() > 0 {
			s := plain.String()
			segments = append(segments, Segment{Mode: Plain, Text: s, Raw: s})
			plain.Reset()
		}
	}

	i := 0
	for i < len(text) {
		if text[i] != '$' {
			plain.WriteByte(text[i])
			i++
			continue
		}

		// Block first: $$...$$.
		if strings.HasPrefix(text[i:], "$$") {
			if end := strings.Index(text[i+2:], "$$"); end >= 0 {
				flushPlain()
				raw := text[i : i+2+end+2]
				segments = append(segments, Segment{
					Mode: Block,
					Text: text[i+2 : i+2+end],
					Raw:  raw,
				})
				i += 2 + end + 2
				continue
			}
			// No closing $$: literal text.
			plain.WriteString(text[i:])
			break
		}

		// Inline: $...$.
		if end := strings.IndexByte(text[i+1:], '$'); end >= 0 {
			flushPlain()
			raw := text[i : i+1+end+1]
			segments = append(segments, Segment{
				Mode: Inline,
				Text: text[i+1 : i+1+end],
				Raw:  raw,
			})
			i += 1 + end + 1
			continue
		}
		plain.WriteString(text[i:])
		break
	}
	flushPlain()

	return segments
}

// Renderer typesets a single math expression. displayMode selects block
// layout. Implementations may fail; Render treats any failure as a
// signal to fall back to the raw span.
type Renderer interface {
	RenderToString(expression string, displayMode bool) (string, error)
}

// Render typesets every math span in text. A nil renderer returns the
// input unchanged, and a span whose rendering fails keeps its original
// delimited form. The plain characters of the input always survive in
// order.
func Render(text string, r Renderer) string {
	if r == nil {
		return text
	}

	var b strings.Builder
	for _, seg := range Split(text) {
		switch seg.Mode {
		case Plain:
			b.WriteString(seg.Text)
		case Inline, Block:
			rendered, err := r.RenderToString(seg.Text, seg.Mode == Block)
			if err != nil {
				b.WriteString(seg.Raw)
				continue
			}
			b.WriteString(rendered)
		}
	}
	return b.String()
}
