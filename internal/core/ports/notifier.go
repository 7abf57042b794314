// internal/core/ports/notifier.go
package ports

import (
	"context"
	"time"

	"publishx/internal/core/domain"
)

// Notifier es el port para el bus de eventos del proceso.
// Implementa el patrón Observer para desacoplar el orchestrator de quienes
// reaccionan a los checkpoints (métricas, UI, callbacks del usuario).
type Notifier interface {
	// Notify entrega un evento de forma síncrona
	Notify(ctx context.Context, event Event) error

	// Close cierra el notifier y libera recursos
	Close() error
}

// Event representa un evento del pipeline.
type Event struct {
	// Type tipo de evento
	Type EventType

	// RunID ejecución que generó el evento
	RunID string

	// Timestamp momento del evento
	Timestamp time.Time

	// Context context de la publicación (compartido, no copiado)
	Context *domain.Context

	// Result resultado asociado (solo en eventos por plugin)
	Result *domain.Result

	// Stage etiqueta del stage asociado (opcional)
	Stage string

	// Data datos específicos del evento
	Data any
}

// EventType define los tipos de eventos del sistema.
type EventType string

const (
	// Checkpoints del pipeline
	EventCollected  EventType = "collected"
	EventValidated  EventType = "validated"
	EventExtracted  EventType = "extracted"
	EventIntegrated EventType = "integrated"
	EventPublished  EventType = "published"

	// Plugin events
	EventPluginProcessed EventType = "pluginProcessed"
	EventPluginFailed    EventType = "pluginFailed"

	// Run lifecycle
	EventRunStarted    EventType = "run.started"
	EventRunFinished   EventType = "run.finished"
	EventStageStarted  EventType = "stage.started"
	EventStageFinished EventType = "stage.finished"
)

// CheckpointFor retorna el evento emitido al terminar el stage de un boundary.
func CheckpointFor(b domain.Boundary) EventType {
	return EventType(b.Checkpoint())
}

// NewEvent crea un nuevo evento.
func NewEvent(eventType EventType, runID string, c *domain.Context) Event {
	return Event{
		Type:      eventType,
		RunID:     runID,
		Timestamp: time.Now(),
		Context:   c,
	}
}

// WithResult retorna una copia del evento con el resultado asociado.
func (e Event) WithResult(r domain.Result) Event {
	e.Result = &r
	return e
}

// WithStage retorna una copia del evento con la etiqueta de stage.
func (e Event) WithStage(stage domain.Stage) Event {
	e.Stage = stage.String()
	return e
}

// NotifierFunc adapta una función a Notifier.
type NotifierFunc func(ctx context.Context, event Event) error

// Notify llama a la función.
func (f NotifierFunc) Notify(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Close no hace nada.
func (f NotifierFunc) Close() error {
	return nil
}
