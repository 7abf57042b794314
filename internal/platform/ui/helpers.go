// internal/platform/ui/helpers.go
package ui

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// StageTitle convierte la etiqueta kebab de un stage en un título ("pre-collect" -> "Pre Collect").
func StageTitle(label string) string {
	return titleCaser.String(strings.ReplaceAll(label, "-", " "))
}

// formatDuration formatea una duración de manera legible
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	} else if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	} else {
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
}

// formatPercent formatea una fracción [0,1] como porcentaje
func formatPercent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

// boolToString convierte booleano a string visual
func boolToString(b bool) string {
	if b {
		return StyleSuccess.Sprint("ON")
	}
	return StyleSecondary.Sprint("OFF")
}
