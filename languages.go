package artran

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// NormalizeLocale converts a language code to BCP 47 form (e.g., "es_ES" → "es-ES").
func NormalizeLocale(langCode string) string {
	return strings.ReplaceAll(strings.TrimSpace(langCode), "_", "-")
}

// ParseLanguage parses codes such as "es", "es-ES" or "es_ES".
func ParseLanguage(langCode string) (language.Tag, error) {
	return language.Parse(NormalizeLocale(langCode))
}

// LanguageName returns the English name for a language code.
// Falls back to the code itself if it cannot be parsed.
func LanguageName(langCode string) string {
	tag, err := ParseLanguage(langCode)
	if err != nil {
		return langCode
	}
	if name := display.Tags(language.English).Name(tag); name != "" {
		return name
	}
	return langCode
}

// BaseLanguage returns the base language subtag (e.g., "pt" for "pt_BR").
func BaseLanguage(langCode string) string {
	tag, err := ParseLanguage(langCode)
	if err != nil {
		return strings.ToLower(langCode)
	}
	base, _ := tag.Base()
	return base.String()
}
