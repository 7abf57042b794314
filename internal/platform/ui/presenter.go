// internal/platform/ui/presenter.go
package ui

import (
	"time"
)

// UIMode define el modo de visualización
type UIMode string

const (
	UIModeAuto  UIMode = "auto"  // pterm en terminal, plain en pipes (default)
	UIModePTerm UIMode = "pterm" // Secciones, barra de progreso y tabla final
	UIModePlain UIMode = "plain" // Una línea logfmt (o JSON) por evento
	UIModeQuiet UIMode = "quiet" // Sin UI visual
)

// ParseUIMode normaliza el modo; ok es false para valores desconocidos.
func ParseUIMode(s string) (UIMode, bool) {
	switch UIMode(s) {
	case UIModeAuto, UIModePTerm, UIModePlain, UIModeQuiet:
		return UIMode(s), true
	case "":
		return UIModeAuto, true
	default:
		return UIModeAuto, false
	}
}

// Presenter define la interfaz para presentar el progreso de una publicación
// a medida que el caller consume los resultados.
type Presenter interface {
	// Start inicia la presentación con información de la ejecución
	Start(info RunInfo)

	// StartStage notifica el inicio de un bucket
	StartStage(stage StageInfo)

	// FinishStage notifica la finalización de un bucket
	FinishStage(stage StageInfo, duration time.Duration)

	// StartPlugin notifica que un plugin va a procesar su primer par
	StartPlugin(stage StageInfo, plugin string)

	// FinishPlugin notifica el resultado de un par (plugin, instancia)
	FinishPlugin(plugin PluginInfo)

	// SkipPlugin notifica un plugin del bucket que no produjo ningún par
	SkipPlugin(stage StageInfo, plugin string)

	// Info muestra un mensaje informativo
	Info(msg string)

	// Warning muestra una advertencia
	Warning(msg string)

	// Error muestra un error
	Error(msg string)

	// Finish finaliza la presentación con estadísticas finales
	Finish(stats RunStats)

	// Close limpia recursos del presenter
	Close() error
}

// RunInfo contiene información inicial de la ejecución
type RunInfo struct {
	RunID        string
	Targets      []string
	Stages       []string
	TotalPlugins int
	Publish      bool
}

// StageInfo contiene información de un bucket
type StageInfo struct {
	Number      int
	TotalStages int
	Name        string
	Plugins     []string
}

// PluginInfo describe el resultado de un par (plugin, instancia)
type PluginInfo struct {
	Name     string
	Instance string
	Stage    string
	Status   Status
	Duration time.Duration
	Progress float64
	Error    string
}

// RunStats contiene estadísticas finales de la ejecución
type RunStats struct {
	RunID          string
	TotalDuration  time.Duration
	Results        int
	Succeeded      int
	Failed         int
	Plugins        int
	ResultsByStage map[string]int
	Checkpoints    []string
}
