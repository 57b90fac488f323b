package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// DEFAULT_LOCALE is used when the user's locales cannot be determined.
const DEFAULT_LOCALE = "en-US"

var printer = languagePrinter(nil)

func init() {
	locales, err := locale.GetLocales()
	printer = languagePrinter(locales)
	if err != nil {
		Logf("jcasm: locale unknown, using %v: %v", DEFAULT_LOCALE, err)
	}
}

// languagePrinter selects the printer best matching a list of locales.
func languagePrinter(locales []string) *message.Printer {
	if len(locales) == 0 {
		locales = []string{DEFAULT_LOCALE}
	}
	return message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// Logf translates an en-US Printf() format and sends it to the standard logger.
func Logf(key message.Reference, args ...any) {
	log.Print(printer.Sprintf(key, args...))
}
