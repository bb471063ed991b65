// Package format normaliza nombres de participantes para el certificado.
//
// El formateo puede delegarse a un servicio remoto de generación de texto;
// ante cualquier falla remota se cae al formateo local determinista. El
// pipeline nunca se bloquea ni falla porque el formatter remoto no esté.
package format

import (
	"strings"
	"unicode"
)

// Local capitaliza un nombre de forma determinista: colapsa espacios,
// capitaliza cada palabra y maneja segmentos con apóstrofe y guion
// (O'Brien, Smith-Jones).
func Local(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		words[i] = capitalizeWord(w)
	}
	return strings.Join(words, " ")
}

func capitalizeWord(w string) string {
	if strings.Contains(w, "'") {
		return joinSegments(w, "'")
	}
	if strings.Contains(w, "-") {
		return joinSegments(w, "-")
	}
	return capitalize(w)
}

func joinSegments(w, sep string) string {
	parts := strings.Split(w, sep)
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, sep)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
