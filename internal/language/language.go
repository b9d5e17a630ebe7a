package language

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type entry struct {
	code    string // ISO 639-1 (2-letter)
	english string // English display name
}

var languages = []entry{
	{"en", "English"},
	{"es", "Spanish"},
	{"fr", "French"},
	{"de", "German"},
	{"it", "Italian"},
	{"pt", "Portuguese"},
	{"ja", "Japanese"},
	{"ko", "Korean"},
	{"zh", "Chinese"},
	{"ru", "Russian"},
	{"ar", "Arabic"},
	{"hi", "Hindi"},
	{"nl", "Dutch"},
	{"pl", "Polish"},
	{"sv", "Swedish"},
	{"da", "Danish"},
	{"no", "Norwegian"},
	{"fi", "Finnish"},
	{"tr", "Turkish"},
	{"fa", "Persian"},
	{"he", "Hebrew"},
	{"th", "Thai"},
	{"cs", "Czech"},
	{"el", "Greek"},
	{"hu", "Hungarian"},
	{"id", "Indonesian"},
	{"uk", "Ukrainian"},
	{"vi", "Vietnamese"},
}

var byCode map[string]string

func init() {
	byCode = make(map[string]string, len(languages))
	for _, e := range languages {
		byCode[e.code] = e.english
	}
}

// EnglishName returns the English display name for an ISO 639-1 code, or ""
// when the code is unknown.
func EnglishName(code string) string {
	return byCode[strings.ToLower(strings.TrimSpace(code))]
}

// DisplayName resolves the best English display name for a language: the
// table entry for the code when known, otherwise the provider-supplied native
// name normalized to title case.
func DisplayName(code, nativeName string) string {
	if name := EnglishName(code); name != "" {
		return name
	}
	nativeName = strings.TrimSpace(nativeName)
	if nativeName == "" {
		return strings.ToLower(strings.TrimSpace(code))
	}
	return cases.Title(language.Und).String(nativeName)
}
