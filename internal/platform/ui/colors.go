// internal/platform/ui/colors.go
package ui

import "github.com/pterm/pterm"

// Paleta de colores de publishx

// Colores primarios
var (
	// Amber - headers y elementos principales
	Amber = pterm.NewRGB(255, 176, 59)

	// Brick - errores de plugins
	Brick = pterm.NewRGB(205, 56, 56)

	// Slate - texto secundario, elementos pendientes
	Slate = pterm.NewRGB(110, 110, 120)

	// Paper - texto principal
	Paper = pterm.NewRGB(232, 232, 232)

	// Teal - éxito, checkpoints
	Teal = pterm.NewRGB(0, 178, 169)

	// Sky - plugins en ejecución
	Sky = pterm.NewRGB(86, 156, 214)
)

// Estilos preconfigurados para diferentes contextos
var (
	// StylePrimary - Estilo principal para headers y elementos destacados
	StylePrimary = Amber.ToRGBStyle()

	// StyleSuccess - Estilo para operaciones exitosas
	StyleSuccess = Teal.ToRGBStyle()

	// StyleError - Estilo para errores
	StyleError = Brick.ToRGBStyle()

	// StyleSecondary - Estilo para texto secundario
	StyleSecondary = Slate.ToRGBStyle()

	// StyleText - Estilo para texto principal
	StyleText = Paper.ToRGBStyle()

	// StyleActive - Estilo para elementos activos/running
	StyleActive = Sky.ToRGBStyle()
)
