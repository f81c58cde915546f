// Package langhint picks the presentation locale of an itinerary document.
package langhint

import (
	"strings"
	"unicode"

	"itinerary/internal/core/fold"
)

// Locale is one of the two supported document locales
type Locale string

// Supported locales
const (
	ES Locale = "es"
	EN Locale = "en"
)

// Parse maps a free-form value onto a Locale; anything but "en" is Spanish
func Parse(s string) Locale {
	if strings.EqualFold(strings.TrimSpace(s), string(EN)) {
		return EN
	}
	return ES
}

// keyword votes, matched as whole folded tokens
var (
	spanish = map[string]struct{}{
		"nave": {}, "naviera": {}, "buque": {}, "salida": {}, "llegada": {}, "semana": {},
		"puerto": {}, "destino": {}, "origen": {}, "viaje": {}, "contenedor": {}, "reserva": {},
		"fecha": {}, "arribo": {}, "despacho": {}, "descarga": {},
	}
	english = map[string]struct{}{
		"vessel": {}, "ship": {}, "carrier": {}, "departure": {}, "arrival": {}, "week": {},
		"port": {}, "destination": {}, "origin": {}, "voyage": {}, "container": {}, "booking": {},
		"date": {}, "discharge": {}, "loading": {},
	}
)

// Detect counts Spanish against English itinerary keywords. Ties go to Spanish
func Detect(text string) Locale {
	var es, en int
	words := strings.FieldsFunc(fold.Fold(text), func(r rune) bool { return !unicode.IsLetter(r) })
	for _, w := range words {
		if _, ok := spanish[w]; ok {
			es++
		}
		if _, ok := english[w]; ok {
			en++
		}
	}
	if en > es {
		return EN
	}
	return ES
}
