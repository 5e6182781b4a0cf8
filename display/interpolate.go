package display

import (
	"regexp"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var placeholderPattern = regexp.MustCompile(`%\((\w+)\)s`)

// interpolate fills %(name)s placeholders. Unknown names are left as is.
func interpolate(format string, vars map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(format, func(m string) string {
		name := m[2 : len(m)-2]
		if v, ok := vars[name]; ok {
			return v
		}
		return m
	})
}

// capitalize upper-cases the first letter using the casing rules of tag.
func capitalize(s string, tag language.Tag) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return cases.Upper(tag).String(s[:size]) + s[size:]
}
