package engine

import "strings"

// kwPrefix marks keyword arguments after preprocessing. A :keyword in
// design source becomes the string literal "__kw_keyword", which the
// builtin argument parser recognizes and strips.
const kwPrefix = "__kw_"

// preprocessSource rewrites design source into zygomys-compatible
// form:
//
//   - :keyword    -> "__kw_keyword"  (keywords become tagged strings,
//     avoiding global symbol registration; := is left alone)
//   - profile-point -> profile_point (zygomys reads a bare hyphen as
//     subtraction, so kebab identifiers convert to underscore form)
//   - ; comment   -> // comment      (zygomys line comments)
//
// String literal contents are copied untouched.
func preprocessSource(source string) string {
	var out strings.Builder
	out.Grow(len(source) + len(source)/4)

	b := []byte(source)
	for i := 0; i < len(b); {
		switch {
		case b[i] == '"' || b[i] == '`':
			i = copyStringLiteral(&out, b, i)

		case b[i] == ';':
			out.WriteString("//")
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				out.WriteByte(b[i])
				i++
			}

		case b[i] == ':' && i+1 < len(b) && isAlpha(b[i+1]):
			j := i + 1
			for j < len(b) && isKeywordChar(b[j]) {
				j++
			}
			out.WriteByte('"')
			out.WriteString(kwPrefix)
			out.WriteString(strings.ReplaceAll(string(b[i+1:j]), "-", "_"))
			out.WriteByte('"')
			i = j

		case b[i] == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isAlpha(b[i+1]):
			out.WriteByte('_')
			i++

		default:
			out.WriteByte(b[i])
			i++
		}
	}
	return out.String()
}

// copyStringLiteral copies a quoted literal starting at b[i] verbatim,
// honoring backslash escapes inside double quotes, and returns the
// index just past its closing quote.
func copyStringLiteral(out *strings.Builder, b []byte, i int) int {
	quote := b[i]
	out.WriteByte(quote)
	i++
	for i < len(b) && b[i] != quote {
		if quote == '"' && b[i] == '\\' && i+1 < len(b) {
			out.WriteByte(b[i])
			i++
		}
		out.WriteByte(b[i])
		i++
	}
	if i < len(b) {
		out.WriteByte(quote)
		i++
	}
	return i
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKeywordChar(c byte) bool {
	return isAlpha(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isAlpha(c) || (c >= '0' && c <= '9') || c == '_'
}
