// internal/platform/ui/raw_presenter.go
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// LogFormat define el formato de salida para el modo plain
type LogFormat string

const (
	LogFormatText LogFormat = "text" // Formato logfmt (default)
	LogFormatJSON LogFormat = "json" // Formato JSON estructurado
)

// RawPresenter implementa el Presenter para modo plain (líneas sin formato visual).
// Pensado para pipes, CI y archivos de log.
type RawPresenter struct {
	format    LogFormat
	out       io.Writer
	mu        sync.Mutex
	startTime time.Time
}

// NewRawPresenter crea un nuevo RawPresenter que escribe en stdout
func NewRawPresenter(format LogFormat) *RawPresenter {
	return NewRawPresenterWithWriter(os.Stdout, format)
}

// NewRawPresenterWithWriter crea un RawPresenter sobre un writer arbitrario
func NewRawPresenterWithWriter(w io.Writer, format LogFormat) *RawPresenter {
	if format != LogFormatJSON {
		format = LogFormatText
	}
	return &RawPresenter{
		format:    format,
		out:       w,
		startTime: time.Now(),
	}
}

// log escribe un log en el formato configurado
func (r *RawPresenter) log(level, message string, fields map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	timestamp := time.Now().UTC().Format(time.RFC3339)

	if r.format == LogFormatJSON {
		r.logJSON(timestamp, level, message, fields)
	} else {
		r.logText(timestamp, level, message, fields)
	}
}

// logText escribe en formato logfmt: timestamp LEVEL message key=value key2=value2
func (r *RawPresenter) logText(timestamp, level, message string, fields map[string]any) {
	parts := []string{timestamp, fmt.Sprintf("%-5s", level), message}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, r.formatValue(fields[k])))
	}

	fmt.Fprintln(r.out, strings.Join(parts, " "))
}

// logJSON escribe en formato JSON estructurado
func (r *RawPresenter) logJSON(timestamp, level, message string, fields map[string]any) {
	logEntry := map[string]any{
		"timestamp": timestamp,
		"level":     level,
		"message":   message,
	}

	if len(fields) > 0 {
		logEntry["data"] = fields
	}

	jsonBytes, _ := json.Marshal(logEntry)
	fmt.Fprintln(r.out, string(jsonBytes))
}

// formatValue formatea valores para logfmt (entrecomilla strings con espacios)
func (r *RawPresenter) formatValue(v any) string {
	switch val := v.(type) {
	case string:
		if strings.ContainsAny(val, " =\"") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case time.Duration:
		return val.String()
	case float64:
		return fmt.Sprintf("%.2f", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Start inicia la presentación
func (r *RawPresenter) Start(info RunInfo) {
	r.startTime = time.Now()
	r.log("INFO", "run_started", map[string]any{
		"run_id":  info.RunID,
		"targets": strings.Join(info.Targets, ","),
		"stages":  strings.Join(info.Stages, ","),
		"plugins": info.TotalPlugins,
		"publish": info.Publish,
	})
}

// StartStage notifica el inicio de un stage
func (r *RawPresenter) StartStage(stage StageInfo) {
	r.log("INFO", "stage_started", map[string]any{
		"stage":   stage.Name,
		"number":  stage.Number,
		"plugins": strings.Join(stage.Plugins, ","),
	})
}

// FinishStage notifica la finalización de un stage
func (r *RawPresenter) FinishStage(stage StageInfo, duration time.Duration) {
	r.log("INFO", "stage_completed", map[string]any{
		"stage":    stage.Name,
		"duration": duration,
	})
}

// StartPlugin no escribe nada: cada par se reporta al terminar
func (r *RawPresenter) StartPlugin(stage StageInfo, plugin string) {}

// FinishPlugin notifica el resultado de un par
func (r *RawPresenter) FinishPlugin(plugin PluginInfo) {
	level := "INFO"
	fields := map[string]any{
		"plugin":   plugin.Name,
		"stage":    plugin.Stage,
		"status":   plugin.Status.String(),
		"duration": plugin.Duration,
		"progress": plugin.Progress,
	}
	if plugin.Instance != "" {
		fields["instance"] = plugin.Instance
	}
	if plugin.Error != "" {
		level = "WARN"
		fields["error"] = plugin.Error
	}
	r.log(level, "plugin_processed", fields)
}

// SkipPlugin notifica un plugin sin pares
func (r *RawPresenter) SkipPlugin(stage StageInfo, plugin string) {
	r.log("INFO", "plugin_skipped", map[string]any{
		"plugin": plugin,
		"stage":  stage.Name,
		"status": StatusSkipped.String(),
	})
}

// Info muestra un mensaje informativo
func (r *RawPresenter) Info(msg string) {
	r.log("INFO", msg, nil)
}

// Warning muestra una advertencia
func (r *RawPresenter) Warning(msg string) {
	r.log("WARN", msg, nil)
}

// Error muestra un error
func (r *RawPresenter) Error(msg string) {
	r.log("ERROR", msg, nil)
}

// Finish finaliza la presentación con estadísticas finales
func (r *RawPresenter) Finish(stats RunStats) {
	r.log("INFO", "run_completed", map[string]any{
		"run_id":      stats.RunID,
		"duration":    stats.TotalDuration,
		"results":     stats.Results,
		"succeeded":   stats.Succeeded,
		"failed":      stats.Failed,
		"plugins":     stats.Plugins,
		"checkpoints": strings.Join(stats.Checkpoints, ","),
	})
}

// Close limpia recursos
func (r *RawPresenter) Close() error {
	return nil
}
