package aztrans

import (
	"sort"
	"strings"
)

// Language describes a target language code accepted by the translator.
type Language struct {
	Code string // lowercase, hyphenated: "pt-br"
	Name string
	RTL  bool
}

// languages lists the codes printed by "aztrans languages". Any other code
// is still sent to the model unchanged.
var languages = map[string]Language{
	"pt-br": {Name: "Portuguese (Brazil)"},
	"pt-pt": {Name: "Portuguese (Portugal)"},
	"en-us": {Name: "English (United States)"},
	"en-gb": {Name: "English (United Kingdom)"},
	"es":    {Name: "Spanish"},
	"es-mx": {Name: "Spanish (Mexico)"},
	"fr":    {Name: "French"},
	"de":    {Name: "German"},
	"it":    {Name: "Italian"},
	"nl":    {Name: "Dutch"},
	"pl":    {Name: "Polish"},
	"ru":    {Name: "Russian"},
	"uk":    {Name: "Ukrainian"},
	"tr":    {Name: "Turkish"},
	"ja":    {Name: "Japanese"},
	"ko":    {Name: "Korean"},
	"zh-cn": {Name: "Chinese (Simplified)"},
	"zh-tw": {Name: "Chinese (Traditional)"},
	"hi":    {Name: "Hindi"},
	"ar":    {Name: "Arabic", RTL: true},
	"he":    {Name: "Hebrew", RTL: true},
	"fa":    {Name: "Persian", RTL: true},
	"ur":    {Name: "Urdu", RTL: true},
}

// NormalizeLang lowercases a code and converts "pt_BR" to "pt-br".
func NormalizeLang(code string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(code), "_", "-"))
}

// LookupLanguage returns the known language for code.
// Region variants fall back to the base language ("es-ar" → "es").
func LookupLanguage(code string) (Language, bool) {
	code = NormalizeLang(code)
	if l, ok := languages[code]; ok {
		l.Code = code
		return l, true
	}
	if base, _, found := strings.Cut(code, "-"); found {
		if l, ok := languages[base]; ok {
			l.Code = base
			return l, true
		}
	}
	return Language{}, false
}

// LanguageName returns a readable name for code, or code itself if unknown.
func LanguageName(code string) string {
	if l, ok := LookupLanguage(code); ok {
		return l.Name
	}
	return code
}

// KnownLanguages returns every listed language sorted by code.
func KnownLanguages() []Language {
	out := make([]Language, 0, len(languages))
	for code, l := range languages {
		l.Code = code
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
