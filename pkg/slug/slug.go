package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer descompone (NFD), elimina marcas diacríticas y recompone (NFC).
// "Compañía Ñandú" -> "Compania Nandu".
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize convierte un texto libre en un slug apto para URL:
// minúsculas, sin tildes, alfanumérico con guiones, sin guiones repetidos.
func Normalize(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	prevHyphen := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen && b.Len() > 0 {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// Valid informa si s ya es un slug bien formado (lo que Normalize produciría).
func Valid(s string) bool {
	return s != "" && s == Normalize(s)
}
