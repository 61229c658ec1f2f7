// Package render formats bot replies independently of the chat platform.
package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"translatebot/internal/domain"
)

// MaxFieldLength is the longest original or translated text shown in a reply
const MaxFieldLength = 800

// TranslationFailed is shown when a manual translation cannot be produced
const TranslationFailed = "Translation failed, please try again."

// Field is a titled block of a reply
type Field struct {
	Name  string
	Value string
}

// Reply is a platform-neutral message: a title, a body and optional fields
type Reply struct {
	Title  string
	Body   string
	Fields []Field
	Footer string
	Error  bool
}

// Truncate shortens s to max runes, ending with "..." when cut
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 3 {
		return string([]rune(s)[:max])
	}
	return string([]rune(s)[:max-3]) + "..."
}

// LanguageLabel returns "flag name" for code
func LanguageLabel(code string) string {
	return domain.LookupLanguage(code).Label()
}

// MentionHeader is the line addressing the recipients of a group translation
func MentionHeader(mentions []string) string {
	if len(mentions) == 0 {
		return ""
	}
	return "Translation for " + strings.Join(mentions, ", ")
}

// Translation renders an original/translated pair
func Translation(author, original, translated, sourceLang, targetLang string) Reply {
	r := Reply{
		Fields: []Field{
			{Name: LanguageLabel(sourceLang), Value: Truncate(original, MaxFieldLength)},
			{Name: LanguageLabel(targetLang), Value: Truncate(translated, MaxFieldLength)},
		},
	}
	if author != "" {
		r.Title = "Message by " + author
	}
	return r
}

// GroupTranslation renders one dispatched group result
func GroupTranslation(author, original string, res domain.GroupResult) Reply {
	r := Translation(author, original, res.TranslatedText, res.SourceLanguage, res.Language)
	names := make([]string, 0, len(res.Recipients))
	for _, m := range res.Recipients {
		names = append(names, m.DisplayName)
	}
	if len(names) > 0 {
		r.Footer = "Translated for " + strings.Join(names, ", ")
	}
	return r
}

// Text flattens a reply for platforms without rich embeds
func (r Reply) Text() string {
	var sb strings.Builder
	if r.Title != "" {
		sb.WriteString(r.Title)
	}
	if r.Body != "" {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(r.Body)
	}
	for _, f := range r.Fields {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(f.Name)
		sb.WriteString("\n")
		sb.WriteString(f.Value)
	}
	if r.Footer != "" {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(r.Footer)
	}
	return sb.String()
}

// Failure is a short error reply
func Failure(title, body string) Reply {
	return Reply{Title: "❌ " + title, Body: body, Error: true}
}

// Languages lists the catalogue, popular languages first
func Languages(prefix string) Reply {
	popular := make(map[string]bool, len(domain.PopularLanguageCodes))
	for _, code := range domain.PopularLanguageCodes {
		popular[code] = true
	}

	var top, rest []string
	for _, l := range domain.Languages {
		line := fmt.Sprintf("%s `%s` - %s", l.Flag, l.Code, l.Name)
		if popular[l.Code] {
			top = append(top, line)
		} else {
			rest = append(rest, line)
		}
	}

	r := Reply{
		Title: "🌍 Available Languages",
		Body:  fmt.Sprintf("Set your language with `%smylang <code>`", prefix),
	}
	if len(top) > 0 {
		r.Fields = append(r.Fields, Field{Name: "Popular Languages", Value: strings.Join(top, "\n")})
	}
	for i := 0; i < len(rest); i += 10 {
		end := i + 10
		if end > len(rest) {
			end = len(rest)
		}
		name := "More Languages"
		if i > 0 {
			name = "More Languages (cont.)"
		}
		r.Fields = append(r.Fields, Field{Name: name, Value: strings.Join(rest[i:end], "\n")})
	}
	return r
}

// Help describes every command
func Help(prefix string) Reply {
	return Reply{
		Title: "🤖 Translation Bot Help",
		Body:  "Auto-translates any message to each user's preferred language",
		Fields: []Field{
			{
				Name: "🚀 Quick Start",
				Value: fmt.Sprintf("1. Admin: `%[1]sauto enable`\n2. Users: `%[1]smylang <code>`\n3. Any message is auto-translated for each user", prefix),
			},
			{
				Name: "👤 User Commands",
				Value: fmt.Sprintf("• `%[1]smylang [code]` - Show or set your language\n• `%[1]stranslate <lang> <text>` - Manual translation\n• `%[1]slangs` - List all languages\n• `%[1]sping` - Check the bot is online", prefix),
			},
			{
				Name:  "🛠️ Admin Commands",
				Value: fmt.Sprintf("• `%[1]sauto enable` - Enable auto-translate\n• `%[1]sauto disable` - Disable auto-translate", prefix),
			},
		},
	}
}

// AutoStatus reports whether the channel auto-translates
func AutoStatus(enabled bool, prefix string) Reply {
	r := Reply{Title: "⚙️ Auto-Translate Status"}
	if enabled {
		r.Body = "✅ ENABLED in this channel"
		return r
	}
	r.Body = "❌ DISABLED in this channel"
	r.Fields = []Field{{Name: "Enable:", Value: fmt.Sprintf("Use `%sauto enable` to turn on auto-translation", prefix)}}
	return r
}

// AutoChanged confirms a toggle
func AutoChanged(enabled bool, prefix string) Reply {
	if !enabled {
		return Reply{
			Title: "❌ Auto-Translate Disabled",
			Body:  "Auto-translation has been turned off for this channel.",
		}
	}
	return Reply{
		Title: "✅ Auto-Translate Enabled",
		Body:  "This channel will now auto-translate messages to each user's preferred language.",
		Fields: []Field{{
			Name:  "How it works:",
			Value: fmt.Sprintf("1. Users run `%smylang <code>` to select their language\n2. Any message in any language is detected\n3. Each user gets translations in their preferred language", prefix),
		}},
	}
}

// CurrentLanguage shows the user's language
func CurrentLanguage(code, prefix string) Reply {
	return Reply{
		Title: "🌍 Your Language",
		Body:  LanguageLabel(code),
		Fields: []Field{{
			Name:  "Change it:",
			Value: fmt.Sprintf("`%smylang <code>`, see `%slangs` for codes", prefix, prefix),
		}},
	}
}

// LanguageSet confirms a language change
func LanguageSet(code string) Reply {
	return Reply{
		Title: "✅ Language Set",
		Body:  "Your language is now " + LanguageLabel(code),
	}
}
