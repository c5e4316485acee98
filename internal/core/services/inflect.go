package services

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/custodia-labs/projector/internal/core/domain"
)

// FormatName spells a declared name in the given key format.
func FormatName(name string, format domain.KeyFormat) string {
	if format == domain.KeyFormatAsDeclared || format == "" {
		return name
	}

	words := splitWords(name)
	if len(words) == 0 {
		return name
	}

	switch format {
	case domain.KeyFormatCamelize:
		var b strings.Builder
		b.WriteString(words[0])
		for _, w := range words[1:] {
			b.WriteString(title(w))
		}
		return b.String()
	case domain.KeyFormatCapitalize:
		var b strings.Builder
		for _, w := range words {
			b.WriteString(title(w))
		}
		return b.String()
	case domain.KeyFormatDasherize:
		return strings.Join(words, "-")
	case domain.KeyFormatUnderscore:
		return strings.Join(words, "_")
	default:
		return name
	}
}

// title upper-cases the first letter of a word. Casers are stateful, so
// each call gets its own.
func title(word string) string {
	return cases.Title(language.Und).String(word)
}

// splitWords breaks a name into lower-case words at separators and at
// case transitions ("APIDocs" -> api, docs; "body_text" -> body, text).
func splitWords(name string) []string {
	runes := []rune(name)
	var words []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}

	for i, r := range runes {
		if r == '_' || r == '-' || r == ' ' || r == '.' {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}
