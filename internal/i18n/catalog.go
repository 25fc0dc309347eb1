// Package i18n loads the localized strings used in chat messages and sheets.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the fallback for missing locales and keys.
const BaseLocale = "en"

//go:embed locales/*.yaml
var embedded embed.FS

type localeFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog holds every locale's messages. It is built once and read-only
// afterwards, so it is safe to share between goroutines.
type Catalog struct {
	base     language.Tag
	tags     []language.Tag
	matcher  language.Matcher
	builder  *catalog.Builder
	messages map[string]map[string]string
}

// Load reads the embedded locale files.
func Load() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "locales")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// LoadFS reads *.yaml locale files from the root of fsys.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locales: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no locale files found")
	}
	sort.Strings(paths)

	base := language.MustParse(BaseLocale)
	c := &Catalog{
		base:     base,
		builder:  catalog.NewBuilder(catalog.Fallback(base)),
		messages: map[string]map[string]string{},
	}
	for _, p := range paths {
		raw, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		var f localeFile
		if err := yaml.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		if err := c.add(p, f); err != nil {
			return nil, err
		}
	}
	if _, ok := c.messages[base.String()]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined", BaseLocale)
	}

	// base first so the matcher falls back to it
	sort.SliceStable(c.tags, func(i, j int) bool { return c.tags[i] == base && c.tags[j] != base })
	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

func (c *Catalog) add(path string, f localeFile) error {
	tag, err := language.Parse(strings.TrimSpace(f.Locale))
	if err != nil {
		return fmt.Errorf("%s: locale %q: %w", path, f.Locale, err)
	}
	if len(f.Messages) == 0 {
		return fmt.Errorf("%s: messages map is required", path)
	}
	if _, dup := c.messages[tag.String()]; dup {
		return fmt.Errorf("%s: locale %s defined twice", path, tag)
	}
	msgs := make(map[string]string, len(f.Messages))
	for k, v := range f.Messages {
		key := strings.TrimSpace(k)
		if key == "" {
			return fmt.Errorf("%s: blank message key", path)
		}
		if err := c.builder.SetString(tag, key, v); err != nil {
			return fmt.Errorf("%s: key %s: %w", path, key, err)
		}
		msgs[key] = v
	}
	c.messages[tag.String()] = msgs
	c.tags = append(c.tags, tag)
	return nil
}

// Tags lists supported locales, base first.
func (c *Catalog) Tags() []language.Tag {
	return append([]language.Tag(nil), c.tags...)
}

// Match picks the best supported locale for an Accept-Language header or
// a bare tag such as "fr". Unparseable input yields the base locale.
func (c *Catalog) Match(accept string) language.Tag {
	accept = strings.TrimSpace(accept)
	if accept == "" {
		return c.base
	}
	prefs, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(prefs) == 0 {
		return c.base
	}
	_, idx, conf := c.matcher.Match(prefs...)
	if conf == language.No {
		return c.base
	}
	return c.tags[idx]
}

// Printer formats catalog keys for tag.
func (c *Catalog) Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(c.builder))
}

// Sprintf formats key for tag.
func (c *Catalog) Sprintf(tag language.Tag, key string, args ...any) string {
	return c.Printer(tag).Sprintf(key, args...)
}

// Lookup returns the raw message for key, falling back from tag to its
// base language and then to the base locale.
func (c *Catalog) Lookup(tag language.Tag, key string) (string, bool) {
	candidates := []string{tag.String()}
	if b, conf := tag.Base(); conf != language.No {
		candidates = append(candidates, b.String())
	}
	candidates = append(candidates, c.base.String())
	for _, cand := range candidates {
		if msg, ok := c.messages[cand][key]; ok {
			return msg, true
		}
	}
	return "", false
}

// Localizer adapts Lookup to a key/fallback function.
func (c *Catalog) Localizer(tag language.Tag) func(key, fallback string) string {
	return func(key, fallback string) string {
		if msg, ok := c.Lookup(tag, key); ok {
			return msg
		}
		return fallback
	}
}
