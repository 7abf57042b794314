// internal/platform/ui/symbols.go
package ui

import "github.com/pterm/pterm"

// Status representa el estado de un plugin o stage
type Status int

const (
	StatusSuccess Status = iota
	StatusError
	StatusSkipped
)

// String convierte el status a string
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Symbol retorna el símbolo Unicode para cada estado
func (s Status) Symbol() string {
	switch s {
	case StatusSuccess:
		return "✓"
	case StatusError:
		return "✗"
	case StatusSkipped:
		return "⊘"
	default:
		return "?"
	}
}

// Color retorna el color pterm para cada estado
func (s Status) Color() pterm.Color {
	switch s {
	case StatusSkipped:
		return pterm.FgGray
	case StatusSuccess:
		return pterm.FgGreen
	case StatusError:
		return pterm.FgRed
	default:
		return pterm.FgDefault
	}
}

// Style retorna un pterm.Style configurado para el estado
func (s Status) Style() *pterm.Style {
	return pterm.NewStyle(s.Color())
}

// StatusOf convierte el éxito de un resultado en Status.
func StatusOf(success bool) Status {
	if success {
		return StatusSuccess
	}
	return StatusError
}

// Icons globales para diferentes elementos de la UI
var (
	IconTarget  = "🎯"
	IconStage   = "🔄"
	IconStats   = "📊"
	IconTime    = "⏱"
	IconPlugins = "🔌"
	IconSuccess = "✓"
	IconError   = "✗"
)

// Separadores y bordes
var (
	SeparatorHeavy = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
	SeparatorLight = "────────────────────────────────────────────"
)
