// internal/core/domain/result.go
package domain

import "time"

// Result es el resultado inmutable de una ejecución (plugin, instancia).
// Se entrega por valor; el orchestrator no conserva referencias después del yield.
type Result struct {
	// RunID identifica la ejecución del pipeline que produjo el resultado
	RunID string

	// Plugin nombre del plugin ejecutado
	Plugin string

	// Order order del plugin
	Order float64

	// Kind "context" o "instance"
	Kind string

	// Instance instancia procesada (nil para plugins de context)
	Instance *Instance

	// Success true si el plugin terminó sin error
	Success bool

	// Error error del plugin (nil si exitoso)
	Error error

	// Duration duración de la ejecución
	Duration time.Duration

	// Stage bucket en el que se ejecutó
	Stage Stage

	// Progress fracción current/total al momento del yield, en [0,1]
	Progress float64
}

// InstanceName retorna el nombre de la instancia o "" si no hay.
func (r Result) InstanceName() string {
	if r.Instance == nil {
		return ""
	}
	return r.Instance.Name
}

// ErrorMessage retorna el mensaje de error o "" si fue exitoso.
func (r Result) ErrorMessage() string {
	if r.Error == nil {
		return ""
	}
	return r.Error.Error()
}
