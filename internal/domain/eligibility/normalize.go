package eligibility

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize reduce un texto a su forma comparable: sin tildes, case-folded y solo
// letras/dígitos. "M. Tech", "mtech" y "MTECH" producen "mtech".
// Pensado para valores cortos (grado, curso); para texto libre usar Tokens.
func Normalize(s string) string {
	out := fold(s)
	var b strings.Builder
	b.Grow(len(out))
	for _, r := range out {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Tokens parte el texto en palabras normalizadas: sin tildes, case-folded y sin puntos
// internos. Los espacios y demás signos separan palabras, así "M.Tech" da ["mtech"],
// "M. Tech." da ["m" "tech"] y "Platform Technologies" nunca produce "mtech".
func Tokens(s string) []string {
	var (
		tokens []string
		b      strings.Builder
	)
	flush := func() {
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	for _, r := range fold(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '.':
			// "m.tech" es una sola palabra; "tech." cierra en el separador siguiente.
		default:
			flush()
		}
	}
	flush()
	return tokens
}

// ContainsTokens indica si phrase aparece en text como secuencia contigua de palabras.
func ContainsTokens(text, phrase []string) bool {
	if len(phrase) == 0 || len(phrase) > len(text) {
		return false
	}
outer:
	for i := 0; i+len(phrase) <= len(text); i++ {
		for j, p := range phrase {
			if text[i+j] != p {
				continue outer
			}
		}
		return true
	}
	return false
}

func fold(s string) string {
	// transform.Transformer y cases.Caser guardan estado: uno por llamada.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(out)
}

// NormalizeEmail email en minúsculas y sin espacios.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeMobile conserva solo los dígitos del número.
func NormalizeMobile(mobile string) string {
	var b strings.Builder
	for _, r := range mobile {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
