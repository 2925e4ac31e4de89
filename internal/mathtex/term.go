package mathtex

import (
	"regexp"
	"strings"
)

// TermRenderer lowers a practical LaTeX subset to Unicode suitable for a
// terminal. It is intentionally lossy: anything it does not understand
// is left as-is rather than erroring, so even exotic expressions stay
// readable.
type TermRenderer struct{}

// NewTermRenderer returns a terminal math renderer.
func NewTermRenderer() *TermRenderer {
	return &TermRenderer{}
}

var (
	fracRe = regexp.MustCompile(`\\frac\{([^{}]*)\}\{([^{}]*)\}`)
	sqrtRe = regexp.MustCompile(`\\sqrt\{([^{}]*)\}`)
	supRe  = regexp.MustCompile(`\^\{([^{}]*)\}|\^(.)`)
	subRe  = regexp.MustCompile(`_\{([^{}]*)\}|_(.)`)
	textRe = regexp.MustCompile(`\\(?:text|mathrm)\{([^{}]*)\}`)
)

var commandReplacer = strings.NewReplacer(
	`\alpha`, "α", `\beta`, "β", `\gamma`, "γ", `\delta`, "δ",
	`\epsilon`, "ε", `\theta`, "θ", `\lambda`, "λ", `\mu`, "μ",
	`\pi`, "π", `\rho`, "ρ", `\sigma`, "σ", `\tau`, "τ",
	`\phi`, "φ", `\omega`, "ω", `\Delta`, "Δ", `\Omega`, "Ω",
	`\cdot`, "·", `\times`, "×", `\div`, "÷", `\pm`, "±",
	`\leq`, "≤", `\geq`, "≥", `\neq`, "≠", `\approx`, "≈",
	`\propto`, "∝", `\infty`, "∞", `\rightarrow`, "→", `\to`, "→",
	`\sum`, "Σ", `\int`, "∫", `\partial`, "∂", `\nabla`, "∇",
	`\degree`, "°", `\,`, " ", `\;`, " ", `\left`, "", `\right`, "",
)

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'+': '⁺', '-': '⁻', 'n': 'ⁿ', 'i': 'ⁱ',
}

var subscripts = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄',
	'5': '₅', '6': '₆', '7': '₇', '8': '₈', '9': '₉',
	'+': '₊', '-': '₋',
}

// RenderToString lowers expression to Unicode text. Block expressions
// come back framed by newlines so they sit on their own line.
func (t *TermRenderer) RenderToString(expression string, displayMode bool) (string, error) {
	out := expression

	out = textRe.ReplaceAllString(out, "$1")
	out = fracRe.ReplaceAllString(out, "$1/$2")
	out = sqrtRe.ReplaceAllString(out, "√($1)")
	out = commandReplacer.Replace(out)
	out = replaceScripts(out, supRe, superscripts, "^")
	out = replaceScripts(out, subRe, subscripts, "_")
	out = strings.ReplaceAll(out, "{", "")
	out = strings.ReplaceAll(out, "}", "")
	out = strings.TrimSpace(out)

	if displayMode {
		return "\n  " + out + "\n", nil
	}
	return out, nil
}

// replaceScripts maps ^/_ arguments to super/subscript runes when every
// rune has a mapping, otherwise keeps a plain marker form like v_0 → v_0.
func replaceScripts(s string, re *regexp.Regexp, table map[rune]rune, marker string) string {
	return re.ReplaceAllStringFunc(s, func(m string) string {
		groups := re.FindStringSubmatch(m)
		arg := groups[1]
		if arg == "" {
			arg = groups[2]
		}

		var b strings.Builder
		for _, r := range arg {
			mapped, ok := table[r]
			if !ok {
				return marker + arg
			}
			b.WriteRune(mapped)
		}
		return b.String()
	})
}
