package valueobjects

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify gera um identificador amigável para URL ("Farmers' Market" -> "farmers-market").
// Acentos são removidos ("Santé" -> "sante"); outros caracteres não ASCII viram separador.
func Slugify(s string) string {
	folded, _, err := transform.String(foldAccents(), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(folded)) {
		switch {
		case r == '\'' || r == '’':
			continue
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// foldAccents decompõe (NFD) e descarta as marcas combinantes.
// Transformers guardam estado, então cada chamada usa uma cadeia nova.
func foldAccents() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}
