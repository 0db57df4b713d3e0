package summary

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// labelOverrides keeps wording staff are used to where the derived label reads poorly.
var labelOverrides = map[string]string{
	"bmi":                "BMI",
	"dob":                "Date of Birth",
	"idealWeight":        "Target Weight",
	"weightLossAttempts": "Previous Weight Loss Attempts",
	"sublingual_form":    "Sublingual Form",
}

// Label turns a raw form key into a display label: separators and camelCase
// boundaries become spaces and each word is title-cased.
func Label(key string) string {
	if l, ok := labelOverrides[key]; ok {
		return l
	}
	var b strings.Builder
	runes := []rune(key)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == '.':
			b.WriteRune(' ')
			continue
		case i > 0 && unicode.IsUpper(r):
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteRune(' ')
			}
		}
		b.WriteRune(r)
	}
	words := strings.Fields(b.String())
	return cases.Title(language.English).String(strings.ToLower(strings.Join(words, " ")))
}
