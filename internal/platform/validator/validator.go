// internal/platform/validator/validator.go
package validator

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxNameLength longitud máxima de nombres de instancias y targets.
const MaxNameLength = 255

var (
	labelRegex  = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]*$`)
	unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
)

// Name validators

// IsName verifica que un nombre de instancia sea usable: no vacío, sin
// caracteres de control y dentro de MaxNameLength.
func IsName(name string) bool {
	if IsEmpty(name) || !MaxLength(name, MaxNameLength) {
		return false
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// IsLabel verifica el formato de un target: alfanumérico inicial seguido de
// letras, dígitos, '.', '_', ':' o '-'.
func IsLabel(label string) bool {
	return MaxLength(label, MaxNameLength) && labelRegex.MatchString(label)
}

// File validators

// SafeFileName convierte un nombre arbitrario en un nombre de archivo
// portable. Retorna fallback si no queda ningún carácter útil.
func SafeFileName(name, fallback string) string {
	safe := strings.Trim(unsafeChars.ReplaceAllString(strings.TrimSpace(name), "_"), "._")
	if safe == "" {
		return fallback
	}
	if len(safe) > MaxNameLength {
		safe = safe[:MaxNameLength]
	}
	return safe
}

// Generic validators

// IsEmpty verifica si un string está vacío o solo contiene espacios.
func IsEmpty(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}

// MaxLength verifica que un string no exceda una longitud máxima.
func MaxLength(s string, max int) bool {
	return len(s) <= max
}

// MinLength verifica que un string tenga al menos una longitud mínima.
func MinLength(s string, min int) bool {
	return len(s) >= min
}
