package util

import "strings"

/*
Utility functions for identifier normalization. Schema authors write message
and field names in whatever convention their tooling prefers; these helpers
produce the canonical spellings used throughout compiled output.
*/

////////////////////////////////////////////////////////////////////////////////

// SnakeCase normalizes a name to lowercase snake case. Runs of
// non-alphanumeric characters collapse to a single underscore, a leading
// digit gains an underscore prefix, and an empty input becomes "msg".
func SnakeCase(name string) string {
	return normalize(name, "msg", false)
}

// MacroCase normalizes a name to uppercase snake case, suitable for macro
// identifiers. An empty input becomes "MSG".
func MacroCase(name string) string {
	return normalize(name, "MSG", true)
}

func normalize(name string, empty string, upper bool) string {
	var sb strings.Builder
	lastUnderscore := false
	for _, c := range name {
		switch {
		case isAlnum(c):
			if upper {
				c = toUpper(c)
			} else {
				c = toLower(c)
			}
			if sb.Len() == 0 && c >= '0' && c <= '9' {
				sb.WriteByte('_')
			}
			sb.WriteRune(c)
			lastUnderscore = false
		case !lastUnderscore:
			sb.WriteByte('_')
			lastUnderscore = true
		}
	}
	s := strings.TrimSuffix(sb.String(), "_")
	if s == "" {
		return empty
	}
	return s
}

func isAlnum(c rune) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func toUpper(c rune) rune {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func toLower(c rune) rune {
	if c >= 'A' && c <= 'Z' {
		return c - 'A' + 'a'
	}
	return c
}
