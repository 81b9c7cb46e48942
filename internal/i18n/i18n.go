// Package i18n resolves storefront labels from per-locale lookup tables.
package i18n

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// DefaultLocale is used when negotiation finds no supported language.
const DefaultLocale = "en"

// Supported lists the storefront locales. The first entry is the matcher default.
var Supported = []language.Tag{language.English, language.French, language.Arabic}

// Translator looks up messages by (locale, key).
type Translator struct {
	tables   map[string]map[string]string
	fallback string
	matcher  language.Matcher
}

// New loads the embedded locale tables. fallback must be a supported locale;
// empty means DefaultLocale.
func New(fallback string) (*Translator, error) {
	if fallback == "" {
		fallback = DefaultLocale
	}
	t := &Translator{
		tables:   make(map[string]map[string]string, len(Supported)),
		fallback: fallback,
		matcher:  language.NewMatcher(Supported),
	}
	for _, tag := range Supported {
		loc := baseOf(tag)
		data, err := localeFS.ReadFile(path.Join("locales", loc+".yaml"))
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", loc, err)
		}
		var table map[string]string
		if err := yaml.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", loc, err)
		}
		t.tables[loc] = table
	}
	if _, ok := t.tables[fallback]; !ok {
		return nil, fmt.Errorf("unsupported fallback locale %q", fallback)
	}
	return t, nil
}

// Negotiate picks a supported locale: an explicit supported choice wins,
// then the best Accept-Language match, then the fallback.
func (t *Translator) Negotiate(explicit, acceptLanguage string) string {
	if explicit != "" {
		if tag, err := language.Parse(explicit); err == nil {
			if loc := baseOf(tag); t.tables[loc] != nil {
				return loc
			}
		}
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return t.fallback
	}
	tag, _, conf := t.matcher.Match(tags...)
	if conf == language.No {
		return t.fallback
	}
	if loc := baseOf(tag); t.tables[loc] != nil {
		return loc
	}
	return t.fallback
}

// T returns the message for key in locale, falling back to the fallback
// locale and finally to the key itself. args are applied with fmt.Sprintf.
func (t *Translator) T(locale, key string, args ...any) string {
	msg, ok := t.tables[locale][key]
	if !ok {
		msg, ok = t.tables[t.fallback][key]
	}
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// Has reports whether locale defines key without fallback.
func (t *Translator) Has(locale, key string) bool {
	_, ok := t.tables[locale][key]
	return ok
}

// IsRTL reports whether the locale is written right to left.
func IsRTL(locale string) bool {
	return locale == "ar"
}

func baseOf(tag language.Tag) string {
	base, _ := tag.Base()
	return strings.ToLower(base.String())
}
