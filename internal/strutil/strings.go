// Package strutil provides string helpers used when building proposal labels
// and additional-info text.
package strutil

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsLowerCase reports whether r is unchanged by lower-casing.
// Runes without case (digits, punctuation) count as lower case.
func IsLowerCase(r rune) bool {
	return unicode.ToLower(r) == r
}

// StartsWithIgnoreCase reports whether text begins with prefix, comparing
// rune by rune after lower-casing.
func StartsWithIgnoreCase(text, prefix string) bool {
	tr := []rune(text)
	pr := []rune(prefix)
	if len(tr) < len(pr) {
		return false
	}
	for i := len(pr) - 1; i >= 0; i-- {
		if unicode.ToLower(pr[i]) != unicode.ToLower(tr[i]) {
			return false
		}
	}
	return true
}

// RemoveNewLine joins the lines of message with single spaces.
// Empty lines contribute no extra separator.
func RemoveNewLine(message string) string {
	var b strings.Builder
	current := 0
	index := strings.IndexByte(message, '\n')
	for index != -1 {
		b.WriteString(message[current:index])
		if current < index && index != 0 {
			b.WriteByte(' ')
		}
		current = index + 1
		next := strings.IndexByte(message[current:], '\n')
		if next == -1 {
			index = -1
		} else {
			index = current + next
		}
	}
	b.WriteString(message[current:])
	return b.String()
}

// ConvertIntoLines splits input into lines without their delimiters.
// "\r\n", "\r" and "\n" are all recognized. A trailing delimiter yields a
// final empty line.
func ConvertIntoLines(input string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(input); i++ {
		switch input[i] {
		case '\r':
			lines = append(lines, input[start:i])
			if i+1 < len(input) && input[i+1] == '\n' {
				i++
			}
			start = i + 1
		case '\n':
			lines = append(lines, input[start:i])
			start = i + 1
		}
	}
	return append(lines, input[start:])
}

// ContainsOnlyWhitespaces reports whether s consists only of white space.
// The empty string returns true.
func ContainsOnlyWhitespaces(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// RemoveTrailingEmptyLines drops blank lines from the end of lines.
func RemoveTrailingEmptyLines(lines []string) []string {
	last := len(lines) - 1
	for ; last >= 0; last-- {
		if strings.TrimSpace(lines[last]) != "" {
			break
		}
	}
	out := make([]string, last+1)
	copy(out, lines[:last+1])
	return out
}

// Concatenate joins lines with delimiter. No delimiter follows the last line.
func Concatenate(lines []string, delimiter string) string {
	return strings.Join(lines, delimiter)
}

// EqualsRunes reports whether s holds exactly the runes in r.
func EqualsRunes(s string, r []rune) bool {
	i := 0
	for _, c := range s {
		if i >= len(r) || r[i] != c {
			return false
		}
		i++
	}
	return i == len(r)
}

// RemoveTrailingCharacters strips every trailing occurrence of c from text.
func RemoveTrailingCharacters(text string, c rune) string {
	return strings.TrimRightFunc(text, func(r rune) bool { return r == c })
}

// UpperFirst upper-cases the first letter of s using the given mapping
// function, leaving any leading markup such as "}" in place. A nil mapping
// falls back to unicode.ToUpper.
func UpperFirst(s string, upper func(string) string) string {
	i := strings.IndexFunc(s, unicode.IsLetter)
	if i < 0 {
		return s
	}
	r, size := utf8.DecodeRuneInString(s[i:])
	if upper == nil {
		return s[:i] + string(unicode.ToUpper(r)) + s[i+size:]
	}
	return s[:i] + upper(s[i:i+size]) + s[i+size:]
}
