// Package i18n resolves the deck's UI strings in English or Spanish and
// remembers the visitor's choice.
package i18n

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/prefs"
	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var locales embed.FS

// Supported lists the languages with a bundled message file, default first.
var Supported = []language.Tag{language.English, language.Spanish}

// NewBundle loads the embedded message files.
func NewBundle() (*goi18n.Bundle, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := locales.ReadDir("locales")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if _, err := bundle.LoadMessageFileFS(locales, "locales/"+e.Name()); err != nil {
			return nil, fmt.Errorf("load %s: %w", e.Name(), err)
		}
	}
	return bundle, nil
}

// Match maps a language code such as "es" or "es-MX" to a supported tag.
func Match(raw string) (language.Tag, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return language.English, false
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return language.English, false
	}
	base, _ := tag.Base()
	for _, s := range Supported {
		if sb, _ := s.Base(); sb == base {
			return s, true
		}
	}
	return language.English, false
}

// Translator localizes message IDs for the active language.
type Translator struct {
	bundle    *goi18n.Bundle
	store     prefs.Store
	lang      language.Tag
	localizer *goi18n.Localizer
}

// New creates a Translator. The stored language wins over fallback; anything
// unsupported resolves to English.
func New(ctx context.Context, store prefs.Store, fallback string) (*Translator, error) {
	bundle, err := NewBundle()
	if err != nil {
		return nil, err
	}

	t := &Translator{bundle: bundle, store: store}

	lang, _ := Match(fallback)
	if store != nil {
		stored, ok, err := prefs.LoadLanguage(ctx, store)
		if err != nil {
			return nil, err
		}
		if ok {
			if tag, matched := Match(stored); matched {
				lang = tag
			}
		}
	}
	t.use(lang)
	return t, nil
}

func (t *Translator) use(lang language.Tag) {
	t.lang = lang
	t.localizer = goi18n.NewLocalizer(t.bundle, lang.String(), language.English.String())
}

// Language returns the active language.
func (t *Translator) Language() language.Tag {
	return t.lang
}

// SetLanguage switches language and persists the choice.
func (t *Translator) SetLanguage(ctx context.Context, raw string) error {
	tag, ok := Match(raw)
	if !ok {
		return fmt.Errorf("unsupported language %q", raw)
	}
	t.use(tag)
	if t.store == nil {
		return nil
	}
	return prefs.SaveLanguage(ctx, t.store, tag.String())
}

// Toggle advances to the next supported language.
func (t *Translator) Toggle(ctx context.Context) error {
	next := Supported[0]
	for i, s := range Supported {
		if s == t.lang {
			next = Supported[(i+1)%len(Supported)]
			break
		}
	}
	return t.SetLanguage(ctx, next.String())
}

// T returns the message for id, or id itself when no message exists.
func (t *Translator) T(id string) string {
	return t.Tf(id, nil)
}

// Tf is T with template data.
func (t *Translator) Tf(id string, data map[string]any) string {
	msg, err := t.localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}
	return msg
}
