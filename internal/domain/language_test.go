package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain code", input: "es", expected: "es"},
		{name: "region suffix", input: "zh-CN", expected: "zh"},
		{name: "underscore separator", input: "pt_BR", expected: "pt"},
		{name: "mixed case", input: "EN-us", expected: "en"},
		{name: "surrounding whitespace", input: "  fr ", expected: "fr"},
		{name: "auto passes through", input: "auto", expected: "auto"},
		{name: "norwegian kept", input: "no", expected: "no"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeLanguage(tt.input))
		})
	}
}

func TestLookupLanguage(t *testing.T) {
	es := LookupLanguage("es")
	assert.Equal(t, "Spanish", es.Name)
	assert.Equal(t, "🇪🇸 Spanish", es.Label())

	unknown := LookupLanguage("xx")
	assert.Equal(t, "XX", unknown.Name)
	assert.Equal(t, "🌐", unknown.Flag)
}

func TestIsSupportedLanguage(t *testing.T) {
	assert.True(t, IsSupportedLanguage("vi"))
	assert.True(t, IsSupportedLanguage("no"))
	assert.False(t, IsSupportedLanguage("xx"))
	assert.False(t, IsSupportedLanguage(""))
}

func TestLanguagesHaveUniqueCodes(t *testing.T) {
	seen := map[string]bool{}
	for _, l := range Languages {
		assert.False(t, seen[l.Code], "duplicate code %s", l.Code)
		seen[l.Code] = true
	}
	for _, code := range PopularLanguageCodes {
		assert.True(t, seen[code], "popular code %s missing from catalogue", code)
	}
}
