package intent

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Lower lowercases text with Russian casing rules.
func Lower(text string) string {
	// cases.Caser is stateful, so a new one is made per call.
	return cases.Lower(language.Russian).String(text)
}

// Tokenize lowercases text and splits it on every rune that is neither a
// letter nor a digit.
func Tokenize(text string) []string {
	return strings.FieldsFunc(Lower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Command returns the bot command at the start of text ("/news@mybot x" gives
// "/news") and the remaining whitespace-separated arguments. ok is false when
// text does not start with a command.
func Command(text string) (name string, args []string, ok bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", nil, false
	}

	name = fields[0]
	if at := strings.IndexByte(name, '@'); at > 0 {
		name = name[:at]
	}

	return Lower(name), fields[1:], true
}
