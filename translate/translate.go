// Package translate localizes the user visible messages of mcugears.
//
// The language is chosen once, when the program starts, from the
// MCUGEARS_LANG environment variable and then the user locales. Package
// level error values are translated when they are declared, so a later
// SetLanguage only affects messages formatted after it.
package translate

import (
	"log"
	"os"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DEFAULT_LANGUAGE = "en-US"         // Language of the message keys.
	LANGUAGE_ENV     = "MCUGEARS_LANG" // Overrides the detected locales.
)

var (
	printer *message.Printer
	tag     language.Tag
	matcher language.Matcher
)

// detect returns the preferred locales of the user, best first.
func detect() (locales []string) {
	if lang, ok := os.LookupEnv(LANGUAGE_ENV); ok && len(lang) != 0 {
		locales = append(locales, lang)
	}

	system, err := locale.GetLocales()
	if err != nil {
		log.Printf("mcugears: locale: %v", err)
	}

	locales = append(locales, system...)
	return
}

func init() {
	register()
	matcher = language.NewMatcher(_languages)
	SetLanguage(detect()...)
}

// SetLanguage selects the message language by the best match of the
// preferred locales. Unmatched locales select en-US.
func SetLanguage(locales ...string) {
	var tags []language.Tag
	for _, loc := range locales {
		t, err := language.Parse(loc)
		if err != nil {
			continue
		}
		tags = append(tags, t)
	}

	_, index, _ := matcher.Match(tags...)
	tag = _languages[index]
	printer = message.NewPrinter(tag)
}

// Language returns the selected message language.
func Language() language.Tag {
	return tag
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
