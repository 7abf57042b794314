// internal/platform/registry/target_registry.go
package registry

import (
	"slices"
	"sync"
)

// TargetRegistry es el conjunto ordenado de targets activos del proceso.
// Implementa ports.TargetRegistry; es seguro para uso concurrente.
//
// Un target está activo mientras esté registrado explícitamente (Register) o
// mientras alguna ejecución lo tenga adquirido (Acquire). Las adquisiciones se
// cuentan por ejecución, así que una ejecución que termina no retira un target
// que otra ejecución solapada sigue usando.
type TargetRegistry struct {
	mu     sync.RWMutex
	labels []string

	// pinned targets registrados explícitamente
	pinned map[string]struct{}

	// holds adquisiciones vigentes por target
	holds map[string]int
}

var globalTargets *TargetRegistry
var targetsOnce sync.Once

// GlobalTargets retorna el registro de targets del proceso.
func GlobalTargets() *TargetRegistry {
	targetsOnce.Do(func() {
		globalTargets = NewTargetRegistry()
	})
	return globalTargets
}

// NewTargetRegistry crea un registro con los targets dados registrados.
func NewTargetRegistry(labels ...string) *TargetRegistry {
	r := &TargetRegistry{
		pinned: make(map[string]struct{}),
		holds:  make(map[string]int),
	}
	for _, l := range labels {
		r.Register(l)
	}
	return r
}

// Register agrega un target. Registrar un target existente no tiene efecto.
func (r *TargetRegistry) Register(label string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pinned[label] = struct{}{}
	r.add(label)
}

// Deregister retira el registro explícito de un target. El target sigue
// activo mientras alguna ejecución lo tenga adquirido.
func (r *TargetRegistry) Deregister(label string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.pinned, label)
	r.dropIfUnused(label)
}

// Acquire marca un target como usado por una ejecución y lo activa si no lo estaba.
func (r *TargetRegistry) Acquire(label string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.holds[label]++
	r.add(label)
}

// Release libera una adquisición. El target se retira cuando no quedan
// adquisiciones y no estaba registrado explícitamente. Liberar un target no
// adquirido no tiene efecto.
func (r *TargetRegistry) Release(label string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.holds[label]
	if !ok {
		return
	}
	if n <= 1 {
		delete(r.holds, label)
	} else {
		r.holds[label] = n - 1
	}
	r.dropIfUnused(label)
}

// Registered retorna una copia de los targets en orden de registro.
func (r *TargetRegistry) Registered() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.labels)
}

// IsRegistered indica si el target está activo.
func (r *TargetRegistry) IsRegistered(label string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Contains(r.labels, label)
}

// Holds retorna las adquisiciones vigentes de un target.
func (r *TargetRegistry) Holds(label string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.holds[label]
}

// Clear elimina todos los targets y adquisiciones (útil para testing).
func (r *TargetRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.labels = nil
	r.pinned = make(map[string]struct{})
	r.holds = make(map[string]int)
}

func (r *TargetRegistry) add(label string) {
	if !slices.Contains(r.labels, label) {
		r.labels = append(r.labels, label)
	}
}

func (r *TargetRegistry) dropIfUnused(label string) {
	if _, ok := r.pinned[label]; ok {
		return
	}
	if r.holds[label] > 0 {
		return
	}
	if i := slices.Index(r.labels, label); i >= 0 {
		r.labels = slices.Delete(r.labels, i, i+1)
	}
}
