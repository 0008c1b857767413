package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

//go:embed locales/*.json
var localeFS embed.FS

// DefaultLang is the fallback language for missing keys and the default
// startup selection.
const DefaultLang = "en"

// Translator resolves UI strings for a language chosen once at startup.
// It only affects rendered text, never data fetching. Keys missing from
// the selected language fall back to the default language, then to the
// key itself.
type Translator struct {
	lang     string
	messages map[string]string
	fallback map[string]string
}

func New(lang string) (*Translator, error) {
	if lang == "" {
		lang = DefaultLang
	}
	fallback, err := load(DefaultLang)
	if err != nil {
		return nil, err
	}
	messages := fallback
	if lang != DefaultLang {
		messages, err = load(lang)
		if err != nil {
			return nil, fmt.Errorf("unsupported language %q: %w", lang, err)
		}
	}
	return &Translator{lang: lang, messages: messages, fallback: fallback}, nil
}

func load(lang string) (map[string]string, error) {
	data, err := localeFS.ReadFile("locales/" + lang + ".json")
	if err != nil {
		return nil, err
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse locale %s: %w", lang, err)
	}
	return m, nil
}

func (t *Translator) Lang() string { return t.lang }

// T returns the translated string for key.
func (t *Translator) T(key string) string {
	if s, ok := t.messages[key]; ok {
		return s
	}
	if s, ok := t.fallback[key]; ok {
		return s
	}
	return key
}

// Languages lists the bundled locale tags, sorted.
func Languages() []string {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil
	}
	var langs []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".json"); ok {
			langs = append(langs, name)
		}
	}
	sort.Strings(langs)
	return langs
}
