package domain

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is the neutral fallback language code
const DefaultLanguage = "en"

// Language describes a supported target language
type Language struct {
	Code string
	Name string
	Flag string
}

// Label returns the flag followed by the language name
func (l Language) Label() string {
	if l.Flag == "" {
		return l.Name
	}
	return l.Flag + " " + l.Name
}

// Languages is the catalogue users can pick from, in display order
var Languages = []Language{
	{Code: "en", Name: "English", Flag: "🇺🇸"},
	{Code: "es", Name: "Spanish", Flag: "🇪🇸"},
	{Code: "fr", Name: "French", Flag: "🇫🇷"},
	{Code: "de", Name: "German", Flag: "🇩🇪"},
	{Code: "it", Name: "Italian", Flag: "🇮🇹"},
	{Code: "pt", Name: "Portuguese", Flag: "🇵🇹"},
	{Code: "ru", Name: "Russian", Flag: "🇷🇺"},
	{Code: "ja", Name: "Japanese", Flag: "🇯🇵"},
	{Code: "ko", Name: "Korean", Flag: "🇰🇷"},
	{Code: "zh", Name: "Chinese", Flag: "🇨🇳"},
	{Code: "ar", Name: "Arabic", Flag: "🇸🇦"},
	{Code: "hi", Name: "Hindi", Flag: "🇮🇳"},
	{Code: "vi", Name: "Vietnamese", Flag: "🇻🇳"},
	{Code: "th", Name: "Thai", Flag: "🇹🇭"},
	{Code: "id", Name: "Indonesian", Flag: "🇮🇩"},
	{Code: "tr", Name: "Turkish", Flag: "🇹🇷"},
	{Code: "pl", Name: "Polish", Flag: "🇵🇱"},
	{Code: "nl", Name: "Dutch", Flag: "🇳🇱"},
	{Code: "sv", Name: "Swedish", Flag: "🇸🇪"},
	{Code: "da", Name: "Danish", Flag: "🇩🇰"},
	{Code: "fi", Name: "Finnish", Flag: "🇫🇮"},
	{Code: "no", Name: "Norwegian", Flag: "🇳🇴"},
}

// PopularLanguageCodes are listed first by the langs command
var PopularLanguageCodes = []string{"en", "es", "fr", "de", "it", "pt", "ru", "ja", "ko", "zh", "ar", "hi", "vi"}

var languagesByCode = func() map[string]Language {
	m := make(map[string]Language, len(Languages))
	for _, l := range Languages {
		m[l.Code] = l
	}
	return m
}()

// LookupLanguage returns catalogue metadata for code.
// Unknown codes get a generic entry named after the code.
func LookupLanguage(code string) Language {
	if l, ok := languagesByCode[code]; ok {
		return l
	}
	return Language{Code: code, Name: strings.ToUpper(code), Flag: "🌐"}
}

// IsSupportedLanguage reports whether code is in the catalogue
func IsSupportedLanguage(code string) bool {
	_, ok := languagesByCode[code]
	return ok
}

// NormalizeLanguage lower-cases a language tag and strips region or script
// suffixes, so "zh-CN", "pt_BR" and "EN-us" become "zh", "pt" and "en".
// Unparseable input falls back to the lower-cased primary subtag.
func NormalizeLanguage(code string) string {
	code = strings.TrimSpace(strings.ReplaceAll(code, "_", "-"))
	if code == "" {
		return ""
	}
	if strings.EqualFold(code, "auto") {
		return "auto"
	}
	primary := strings.ToLower(strings.SplitN(code, "-", 2)[0])
	tag, err := language.Parse(code)
	if err != nil {
		return primary
	}
	base, conf := tag.Base()
	if conf == language.No {
		return primary
	}
	// Keep codes the catalogue knows under their legacy form (e.g. "no").
	if IsSupportedLanguage(primary) {
		return primary
	}
	return base.String()
}
