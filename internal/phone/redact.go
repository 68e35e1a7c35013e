package phone

import "regexp"

var candidate = regexp.MustCompile(`\+?\d[\d\s()-]{8,16}\d`)

// Redact masks every phone-looking run in free text so it can be logged.
func Redact(text string) string {
	return candidate.ReplaceAllStringFunc(text, func(m string) string {
		if p, ok := Normalize(m); ok {
			return Mask(p)
		}
		return m
	})
}
