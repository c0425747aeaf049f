// Package numbering implementa la numeración secuencial por máscara de los
// documentos fiscales. Una máscara combina texto literal con placeholders:
//
//	{counter}    consecutivo sin relleno
//	{counter:N}  consecutivo rellenado con ceros a N dígitos
//	{year}       año de la fecha del documento (4 dígitos)
//	{yy}         año a 2 dígitos
//
// Ej.: "FT-{counter}/{year}" con counter=1 y fecha 2024 → "FT-1/2024".
//
// El paquete es puro: el ámbito (tabla, año, sezionale) y la serialización
// concurrente de la asignación son responsabilidad del caso de uso y del
// repositorio (lock del segmento + unique constraint con reintento).
package numbering

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var placeholderRe = regexp.MustCompile(`\{counter(?::(\d+))?\}|\{year\}|\{yy\}`)

// Render construye el valor de la máscara para un consecutivo y una fecha.
// Devuelve error si la máscara no contiene exactamente un placeholder
// {counter}.
func Render(mask string, counter int, date time.Time) (string, error) {
	if err := validate(mask); err != nil {
		return "", err
	}
	out := placeholderRe.ReplaceAllStringFunc(mask, func(ph string) string {
		switch {
		case strings.HasPrefix(ph, "{counter"):
			if width := counterWidth(ph); width > 0 {
				return fmt.Sprintf("%0*d", width, counter)
			}
			return strconv.Itoa(counter)
		case ph == "{year}":
			return date.Format("2006")
		default: // {yy}
			return date.Format("06")
		}
	})
	return out, nil
}

// Parse extrae el consecutivo de un valor generado con la máscara.
// Un valor que no encaja con la máscara produce error.
func Parse(mask, value string) (int, error) {
	if err := validate(mask); err != nil {
		return 0, err
	}
	re, err := maskRegexp(mask)
	if err != nil {
		return 0, err
	}
	m := re.FindStringSubmatch(value)
	if m == nil {
		return 0, fmt.Errorf("numbering: el valor %q no encaja con la máscara %q", value, mask)
	}
	counter, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("numbering: consecutivo inválido en %q: %w", value, err)
	}
	return counter, nil
}

// Next calcula el siguiente valor del ámbito: parsea los valores existentes,
// toma el consecutivo máximo y renderiza max+1. Los valores que no encajan
// con la máscara (otra serie, máscara histórica distinta) se ignoran; con
// ámbito vacío el primer consecutivo es 1.
func Next(mask string, existing []string, date time.Time) (string, error) {
	if err := validate(mask); err != nil {
		return "", err
	}
	max := 0
	for _, v := range existing {
		if v == "" {
			continue
		}
		counter, err := Parse(mask, v)
		if err != nil {
			continue
		}
		if counter > max {
			max = counter
		}
	}
	return Render(mask, max+1, date)
}

// validate exige exactamente un placeholder {counter} en la máscara.
func validate(mask string) error {
	counters := 0
	for _, ph := range placeholderRe.FindAllString(mask, -1) {
		if strings.HasPrefix(ph, "{counter") {
			counters++
		}
	}
	if counters != 1 {
		return fmt.Errorf("numbering: la máscara %q debe contener exactamente un {counter}", mask)
	}
	return nil
}

// maskRegexp compila la máscara a una regexp anclada con un grupo de captura
// para el consecutivo.
func maskRegexp(mask string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")
	last := 0
	for _, loc := range placeholderRe.FindAllStringIndex(mask, -1) {
		b.WriteString(regexp.QuoteMeta(mask[last:loc[0]]))
		ph := mask[loc[0]:loc[1]]
		switch {
		case strings.HasPrefix(ph, "{counter"):
			if width := counterWidth(ph); width > 0 {
				fmt.Fprintf(&b, `(\d{%d,})`, width)
			} else {
				b.WriteString(`(\d+)`)
			}
		case ph == "{year}":
			b.WriteString(`\d{4}`)
		default: // {yy}
			b.WriteString(`\d{2}`)
		}
		last = loc[1]
	}
	b.WriteString(regexp.QuoteMeta(mask[last:]))
	b.WriteString("$")
	return regexp.Compile(b.String())
}

// counterWidth devuelve el ancho de relleno de un placeholder {counter:N}
// (0 si no tiene ancho).
func counterWidth(ph string) int {
	m := placeholderRe.FindStringSubmatch(ph)
	if m == nil || m[1] == "" {
		return 0
	}
	w, _ := strconv.Atoi(m[1])
	return w
}
