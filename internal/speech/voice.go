package speech

import "strings"

// Voice identifies a voice offered by an engine. ID is the value passed back
// to the engine when speaking.
type Voice struct {
	ID   string
	Name string
	Lang string
}

// PickVoice chooses the voice for locale: an exact locale match first, then
// any voice in the same language, then any English voice, then the first
// voice available.
func PickVoice(voices []Voice, locale string) (Voice, bool) {
	if len(voices) == 0 {
		return Voice{}, false
	}
	want := normalizeLang(locale)
	if want != "" {
		for _, v := range voices {
			if normalizeLang(v.Lang) == want {
				return v, true
			}
		}
		if v, ok := firstInLanguage(voices, baseLang(want)); ok {
			return v, true
		}
	}
	if v, ok := firstInLanguage(voices, "en"); ok {
		return v, true
	}
	return voices[0], true
}

func firstInLanguage(voices []Voice, base string) (Voice, bool) {
	for _, v := range voices {
		lang := normalizeLang(v.Lang)
		if lang == base || strings.HasPrefix(lang, base+"-") {
			return v, true
		}
	}
	return Voice{}, false
}

func baseLang(lang string) string {
	if idx := strings.Index(lang, "-"); idx > 0 {
		return lang[:idx]
	}
	return lang
}

func normalizeLang(lang string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(lang), "_", "-"))
}
