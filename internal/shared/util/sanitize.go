package util

import (
	"errors"
	"strings"
)

var errInvalidFileName = errors.New("invalid file name")

// SanitizeFileName keeps letters, digits, dot, dash and underscore. Anything
// else, path separators included, becomes an underscore. Runs of dots collapse
// to one so the result can never be "..".
func SanitizeFileName(name string) (string, error) {
	s := strings.TrimSpace(name)
	if s == "" {
		return "", errInvalidFileName
	}
	var b strings.Builder
	var last rune
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == '.':
			if last == '.' {
				continue
			}
			b.WriteRune(r)
		default:
			if last == '_' {
				continue
			}
			r = '_'
			b.WriteRune(r)
		}
		last = r
	}
	out := strings.Trim(b.String(), "_.")
	if out == "" {
		return "", errInvalidFileName
	}
	return out, nil
}
