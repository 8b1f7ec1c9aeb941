package explain

import (
	"strconv"
	"strings"
)

// Template turns one step into text. The returned text may span several
// lines; Render terminates it with a newline.
type Template func(Step) string

// Templates maps step ops to templates.
type Templates map[string]Template

// Text builds a Template from a pattern. {0}..{9} are replaced by operands
// and {r} by the step result. Missing operands render as empty strings.
func Text(pattern string) Template {
	return func(s Step) string {
		var b strings.Builder
		for i := 0; i < len(pattern); i++ {
			if pattern[i] != '{' {
				b.WriteByte(pattern[i])
				continue
			}
			end := strings.IndexByte(pattern[i:], '}')
			if end < 0 {
				b.WriteString(pattern[i:])
				break
			}
			key := pattern[i+1 : i+end]
			switch {
			case key == "r":
				b.WriteString(s.Result)
			case isIndex(key):
				idx, _ := strconv.Atoi(key)
				if idx < len(s.Operands) {
					b.WriteString(s.Operands[idx])
				}
			default:
				b.WriteString(pattern[i : i+end+1])
			}
			i += end
		}
		return b.String()
	}
}

// Silent is a Template for steps that carry data but no text.
func Silent(Step) string { return "" }

func isIndex(key string) bool {
	if key == "" || len(key) > 2 {
		return false
	}
	for _, c := range key {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Render produces the human-readable text of an explanation.
// Steps whose op has no template fall back to "op(operands) = result".
// Steps whose template yields "" are skipped.
func Render(e *Explanation, t Templates) string {
	var b strings.Builder
	for _, s := range e.Steps {
		tmpl, ok := t[s.Op]
		if !ok {
			b.WriteString(fallback(s))
			b.WriteByte('\n')
			continue
		}
		text := tmpl(s)
		if text == "" {
			continue
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	if e.Failure != nil {
		b.WriteString(RenderFailure(e.Failure))
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderFailure renders a failure with its glyph.
func RenderFailure(f *Failure) string {
	if f.Kind == FailInternal {
		return GlyphWarning + " Error: " + f.Message
	}
	return GlyphFailure + " " + f.Message
}

func fallback(s Step) string {
	out := s.Op
	if len(s.Operands) > 0 {
		out += "(" + strings.Join(s.Operands, ", ") + ")"
	}
	if s.Result != "" {
		out += " = " + s.Result
	}
	return out
}
