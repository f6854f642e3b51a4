package animals

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"cattle-records/internal/platform/apperr"
)

const (
	MinTagLen = 2
	MaxTagLen = 20
)

var upper = cases.Upper(language.Und)

// NormalizeTag deja la caravana en la forma que se indexa: NFC, sin espacios en los bordes, mayúsculas.
// "cö-1" y "CÖ-1" terminan iguales.
func NormalizeTag(raw string) (string, error) {
	t := strings.TrimSpace(norm.NFC.String(raw))
	if t == "" {
		return "", apperr.Validation("tag", "is required")
	}
	// Upper puede cambiar la composición (ß => SS), se vuelve a NFC
	t = norm.NFC.String(upper.String(t))

	n := utf8.RuneCountInString(t)
	if n < MinTagLen || n > MaxTagLen {
		return "", apperr.Validationf("tag", "must be %d-%d characters, got %d", MinTagLen, MaxTagLen, n)
	}
	if strings.ContainsFunc(t, func(r rune) bool { return r < 0x20 || r == 0x7f }) {
		return "", apperr.Validation("tag", "must not contain control characters")
	}
	return t, nil
}
