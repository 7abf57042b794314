// internal/testutil/mocks.go
package testutil

import (
	"context"
	"sync"

	"publishx/internal/core/domain"
	"publishx/internal/core/ports"
)

// FakeBase implementa los getters de ports.Plugin con campos exportados.
type FakeBase struct {
	PluginName     string
	PluginOrder    float64
	Inactive       bool
	PluginTargets  []string
	PluginFamilies []string

	// Calls número de invocaciones recibidas
	Calls int
}

func (f *FakeBase) Name() string       { return f.PluginName }
func (f *FakeBase) Order() float64     { return f.PluginOrder }
func (f *FakeBase) Active() bool       { return !f.Inactive }
func (f *FakeBase) Targets() []string  { return f.PluginTargets }
func (f *FakeBase) Families() []string { return f.PluginFamilies }

// ContextFake es un ports.ContextPlugin configurable.
type ContextFake struct {
	FakeBase
	Fn func(ctx context.Context, c *domain.Context) error
}

// NewContextPlugin crea un plugin de context; fn puede ser nil.
func NewContextPlugin(name string, order float64, fn func(ctx context.Context, c *domain.Context) error) *ContextFake {
	return &ContextFake{
		FakeBase: FakeBase{PluginName: name, PluginOrder: order},
		Fn:       fn,
	}
}

// ProcessContext registra la llamada y delega en Fn.
func (f *ContextFake) ProcessContext(ctx context.Context, c *domain.Context) error {
	f.Calls++
	if f.Fn != nil {
		return f.Fn(ctx, c)
	}
	return nil
}

// InstanceFake es un ports.InstancePlugin configurable.
type InstanceFake struct {
	FakeBase
	Fn func(ctx context.Context, inst *domain.Instance) error

	// Seen nombres de las instancias procesadas, en orden
	Seen []string
}

// NewInstancePlugin crea un plugin de instancia; fn puede ser nil.
func NewInstancePlugin(name string, order float64, fn func(ctx context.Context, inst *domain.Instance) error) *InstanceFake {
	return &InstanceFake{
		FakeBase: FakeBase{PluginName: name, PluginOrder: order},
		Fn:       fn,
	}
}

// ProcessInstance registra la llamada y delega en Fn.
func (f *InstanceFake) ProcessInstance(ctx context.Context, inst *domain.Instance) error {
	f.Calls++
	f.Seen = append(f.Seen, inst.Name)
	if f.Fn != nil {
		return f.Fn(ctx, inst)
	}
	return nil
}

// Failing retorna una función de plugin de context que siempre falla con err.
func Failing(err error) func(context.Context, *domain.Context) error {
	return func(context.Context, *domain.Context) error { return err }
}

// RecordingNotifier guarda todos los eventos recibidos.
type RecordingNotifier struct {
	mu     sync.Mutex
	events []ports.Event
	closed bool
}

// NewRecordingNotifier crea un notifier vacío.
func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{}
}

// Notify guarda el evento.
func (r *RecordingNotifier) Notify(ctx context.Context, event ports.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Close marca el notifier como cerrado.
func (r *RecordingNotifier) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// Events retorna una copia de los eventos recibidos.
func (r *RecordingNotifier) Events() []ports.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ports.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types retorna los tipos de evento en orden de llegada.
func (r *RecordingNotifier) Types() []ports.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ports.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

// Count retorna cuántos eventos de un tipo se recibieron.
func (r *RecordingNotifier) Count(eventType ports.EventType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Type == eventType {
			n++
		}
	}
	return n
}

// Reset descarta los eventos guardados.
func (r *RecordingNotifier) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
