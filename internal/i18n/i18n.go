// Package i18n resolves the `i18n(key)` template built-in: it loads TOML
// translation bundles per language and looks up a key with a fallback
// chain of current language -> default language -> the key itself.
package i18n

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gohugoio/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Translator loads and resolves translations for a single build.
type Translator struct {
	bundle      *i18n.Bundle
	defaultLang string
}

// NewTranslator creates a Translator, loading every "*.toml" file under
// i18nDir as a language bundle (the file stem, e.g. "en.toml", names the
// language tag). A missing or empty i18nDir yields a Translator whose
// lookups always fall back to the key itself.
func NewTranslator(i18nDir, defaultLang string) *Translator {
	tag, err := language.Parse(defaultLang)
	if err != nil {
		tag = language.English
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	if i18nDir != "" {
		entries, err := os.ReadDir(i18nDir)
		if err == nil {
			for _, e := range entries {
				if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".toml") {
					continue
				}
				_, _ = bundle.LoadMessageFile(filepath.Join(i18nDir, e.Name()))
			}
		}
	}

	return &Translator{bundle: bundle, defaultLang: defaultLang}
}

// Translate resolves key for lang, falling back to the Translator's default
// language and finally to the key itself.
func (t *Translator) Translate(lang, key string) string {
	loc := i18n.NewLocalizer(t.bundle, lang, t.defaultLang)
	msg, err := loc.Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil || msg == "" {
		return key
	}
	return msg
}
