package parse

import (
	"strings"
)

// stripComment removes a ';' comment outside of string literals.
func stripComment(line string) string {
	var quote byte
	for n := 0; n < len(line); n++ {
		c := line[n]
		switch {
		case quote != 0 && c == '\\':
			n++
		case quote != 0 && c == quote:
			quote = 0
		case quote != 0:
		case c == '"' || c == '\'':
			quote = c
		case c == ';':
			return line[:n]
		}
	}
	return line
}

// splitTop splits text at each sep that is outside of string literals and
// parentheses.
func splitTop(text string, sep string) (parts []string) {
	var quote byte
	depth := 0
	start := 0
	for n := 0; n < len(text); n++ {
		c := text[n]
		switch {
		case quote != 0 && c == '\\':
			n++
		case quote != 0 && c == quote:
			quote = 0
		case quote != 0:
		case c == '"' || c == '\'':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			depth--
		case depth == 0 && strings.HasPrefix(text[n:], sep):
			parts = append(parts, text[start:n])
			n += len(sep) - 1
			start = n + 1
		}
	}
	parts = append(parts, text[start:])
	return
}

// logicalOps rewrites C style logical operators outside of string literals
// into their Starlark keywords.
func logicalOps(text string) string {
	var buf strings.Builder
	var quote byte
	for n := 0; n < len(text); n++ {
		c := text[n]
		switch {
		case quote != 0 && c == '\\':
			buf.WriteByte(c)
			if n+1 < len(text) {
				n++
				buf.WriteByte(text[n])
			}
			continue
		case quote != 0 && c == quote:
			quote = 0
		case quote != 0:
		case c == '"' || c == '\'':
			quote = c
		case strings.HasPrefix(text[n:], "&&"):
			buf.WriteString(" and ")
			n++
			continue
		case strings.HasPrefix(text[n:], "||"):
			buf.WriteString(" or ")
			n++
			continue
		case c == '!' && !strings.HasPrefix(text[n:], "!="):
			buf.WriteString(" not ")
			continue
		}
		buf.WriteByte(c)
	}
	return buf.String()
}

// words splits text on whitespace.
func words(text string) []string {
	return strings.Fields(text)
}

// unquote strips matching quotes from a directive argument.
func unquote(text string) string {
	text = strings.TrimSpace(text)
	if len(text) >= 2 && (text[0] == '"' || text[0] == '\'') && text[len(text)-1] == text[0] {
		return text[1 : len(text)-1]
	}
	return text
}

// charLiterals replaces each 'x' character literal outside of double quoted
// strings by the result of eval.
func charLiterals(line string, eval func(word string) string) string {
	var buf strings.Builder
	for n := 0; n < len(line); {
		switch line[n] {
		case '"':
			end := n + 1
			for end < len(line) && line[end] != '"' {
				if line[end] == '\\' {
					end++
				}
				end++
			}
			end = min(end+1, len(line))
			buf.WriteString(line[n:end])
			n = end
			continue
		case '\'':
			loc := reCharacter.FindStringIndex(line[n:])
			if loc != nil && loc[0] == 0 {
				buf.WriteString(eval(line[n : n+loc[1]]))
				n += loc[1]
				continue
			}
		}
		buf.WriteByte(line[n])
		n++
	}
	return buf.String()
}
