package i18n

import (
	"testing"
	"testing/fstest"

	"golang.org/x/text/language"
)

func TestLoad_EmbeddedLocales(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	tags := c.Tags()
	if len(tags) < 2 || tags[0].String() != "en" {
		t.Fatalf("unexpected tags: %v", tags)
	}
}

func TestLocalesCoverBaseKeys(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	base := c.messages[BaseLocale]
	for locale, msgs := range c.messages {
		for key := range base {
			if _, ok := msgs[key]; !ok {
				t.Errorf("locale %s missing key %s", locale, key)
			}
		}
		for key := range msgs {
			if _, ok := base[key]; !ok {
				t.Errorf("locale %s has key %s unknown to %s", locale, key, BaseLocale)
			}
		}
	}
}

func TestMatch(t *testing.T) {
	c, _ := Load()
	cases := map[string]language.Tag{
		"":                        language.English,
		"fr":                      language.French,
		"fr-CA,fr;q=0.9,en;q=0.5": language.French,
		"de-DE":                   language.English,
		"en-GB":                   language.English,
		"!!not a tag":             language.English,
	}
	for in, want := range cases {
		if got := c.Match(in); got.String() != want.String() {
			t.Errorf("Match(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSprintf_CheckMessage(t *testing.T) {
	c, _ := Load()
	en := c.Sprintf(language.English, "check.message", 42, 50, "combat", "Success", "Degree of Success", 1)
	if en != "Rolled 42 against TN 50 for combat. Success with Degree of Success 1" {
		t.Fatalf("en message = %q", en)
	}
	fr := c.Sprintf(language.French, "skill.not_found", "vol")
	if fr != "Compétence vol introuvable." {
		t.Fatalf("fr message = %q", fr)
	}
}

func TestLookupAndLocalizer(t *testing.T) {
	c, _ := Load()
	if msg, ok := c.Lookup(language.MustParse("fr-CA"), "item.type.weapon"); !ok || msg != "Arme" {
		t.Fatalf("Lookup fr-CA = %q %v", msg, ok)
	}
	if msg, ok := c.Lookup(language.German, "check.success"); !ok || msg != "Success" {
		t.Fatalf("Lookup falls back to base: %q %v", msg, ok)
	}
	loc := c.Localizer(language.French)
	if got := loc("nope.key", "fallback"); got != "fallback" {
		t.Fatalf("Localizer fallback = %q", got)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"empty":       {},
		"no base":     {"fr.yaml": {Data: []byte("locale: fr\nmessages:\n  a: \"b\"\n")}},
		"bad yaml":    {"en.yaml": {Data: []byte("locale: [\n")}},
		"no messages": {"en.yaml": {Data: []byte("locale: en\n")}},
		"bad locale":  {"en.yaml": {Data: []byte("locale: \"!!\"\nmessages:\n  a: \"b\"\n")}},
	}
	for name, fsys := range cases {
		if _, err := LoadFS(fsys); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
