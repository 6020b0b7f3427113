// Package escape decodes raw string and block string lexemes into their
// string values.
package escape

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
)

// UnquoteString strips the surrounding quotes from a single line string
// lexeme and processes its escape sequences, including \uXXXX code point
// escapes with surrogate pair handling for code points above the BMP.
func UnquoteString(raw string) (string, error) {
	body := raw[1 : len(raw)-1]

	var out strings.Builder
	out.Grow(len(body))

	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			out.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(body) {
			return "", fmt.Errorf("incomplete escape sequence")
		}
		switch body[i+1] {
		case '"', '\\', '/':
			out.WriteByte(body[i+1])
			i += 2
		case 'b':
			out.WriteByte('\b')
			i += 2
		case 'f':
			out.WriteByte('\f')
			i += 2
		case 'n':
			out.WriteByte('\n')
			i += 2
		case 'r':
			out.WriteByte('\r')
			i += 2
		case 't':
			out.WriteByte('\t')
			i += 2
		case 'u':
			r, consumed, err := decodeUnicodeEscape(body[i:])
			if err != nil {
				return "", err
			}
			out.WriteRune(r)
			i += consumed
		default:
			return "", fmt.Errorf("bad escaped character %q", body[i+1])
		}
	}

	return out.String(), nil
}

// decodeUnicodeEscape decodes one \uXXXX sequence at the start of s,
// consuming a second \uXXXX when the first names a surrogate half.
func decodeUnicodeEscape(s string) (r rune, consumed int, err error) {
	first, err := hexCodeUnit(s)
	if err != nil {
		return 0, 0, err
	}
	if !utf16.IsSurrogate(first) {
		return first, 6, nil
	}

	second, err := hexCodeUnit(s[6:])
	if err != nil {
		return 0, 0, fmt.Errorf("unpaired surrogate in \\u escape")
	}
	combined := utf16.DecodeRune(first, second)
	if combined == '�' {
		return 0, 0, fmt.Errorf("invalid surrogate pair in \\u escape")
	}
	return combined, 12, nil
}

func hexCodeUnit(s string) (rune, error) {
	if len(s) < 6 || s[0] != '\\' || s[1] != 'u' {
		return 0, fmt.Errorf("incomplete \\u escape")
	}
	value, err := strconv.ParseUint(s[2:6], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("malformed \\u escape %q", s[:6])
	}
	return rune(value), nil
}

// UnquoteBlockString strips the surrounding triple quotes from a block
// string lexeme, removes the common indentation from every line but the
// first, un-escapes \""" sequences and trims trailing whitespace.
func UnquoteBlockString(raw string) string {
	body := raw[3 : len(raw)-3]
	lines := splitLines(body)

	indent := -1
	for _, line := range lines[1:] {
		width := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent == -1 || width < indent {
			indent = width
		}
	}
	if indent == -1 {
		indent = 0
	}

	var out strings.Builder
	out.Grow(len(body))

	first := strings.Replace(strings.TrimSpace(lines[0]), `\"""`, `"""`, -1)
	if len(first) > 0 {
		out.WriteString(first)
		out.WriteByte('\n')
	}
	for _, line := range lines[1:] {
		out.WriteString(strings.Replace(line[indent:], `\"""`, `"""`, -1))
		out.WriteByte('\n')
	}

	return strings.TrimRight(out.String(), " \t\r\n")
}

// splitLines splits on line terminators without yielding a phantom empty
// line after a trailing newline, which would drag the common indent to zero
func splitLines(body string) []string {
	lines := strings.Split(body, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	return lines
}
