// internal/core/ports/scheduling.go
package ports

import (
	"context"
	"iter"
	"sort"

	"publishx/internal/core/domain"
)

// Executor es el servicio que ejecuta un plugin contra un context o una instancia.
// Nunca entra en pánico: los fallos viajan en Result.Error.
type Executor interface {
	Execute(ctx context.Context, p Plugin, c *domain.Context, inst *domain.Instance) domain.Result
}

// Pair es una invocación pendiente: un plugin y su instancia (nil para plugins de context).
type Pair struct {
	Plugin   Plugin
	Instance *domain.Instance

	// Index posición del plugin en la lista recibida por Pairs. Es opcional:
	// el runner lo valida contra la lista y, si no coincide, busca el plugin
	Index int
}

// Pairer expande una lista ordenada de plugins en pares (plugin, instancia).
// La secuencia es perezosa y consulta SchedulingState antes de cada plugin.
type Pairer interface {
	Pairs(ctx context.Context, plugins []Plugin, c *domain.Context, state *SchedulingState) iter.Seq[Pair]
}

// SchedulingState es el estado mutable de scheduling de una ejecución.
// Se comparte por referencia entre stages para que un fallo en un bucket
// sea visible para los buckets posteriores.
type SchedulingState struct {
	// NextOrder order del próximo plugin a emparejar (nil antes del primero)
	NextOrder *float64

	// OrdersWithError orders en los que ya se registró al menos un fallo
	OrdersWithError map[float64]struct{}
}

// NewSchedulingState crea un estado vacío.
func NewSchedulingState() *SchedulingState {
	return &SchedulingState{
		OrdersWithError: make(map[float64]struct{}),
	}
}

// SetNextOrder actualiza la pista del próximo order.
func (s *SchedulingState) SetNextOrder(order float64) {
	s.NextOrder = &order
}

// RecordError registra un fallo en order.
func (s *SchedulingState) RecordError(order float64) {
	if s.OrdersWithError == nil {
		s.OrdersWithError = make(map[float64]struct{})
	}
	s.OrdersWithError[order] = struct{}{}
}

// HasError indica si ya hubo un fallo en order.
func (s *SchedulingState) HasError(order float64) bool {
	_, ok := s.OrdersWithError[order]
	return ok
}

// ErrorOrders retorna los orders con error, ordenados.
func (s *SchedulingState) ErrorOrders() []float64 {
	out := make([]float64, 0, len(s.OrdersWithError))
	for order := range s.OrdersWithError {
		out = append(out, order)
	}
	sort.Float64s(out)
	return out
}

// TargetRegistry es el registro global de targets activos.
type TargetRegistry interface {
	// Register agrega un target; registrar dos veces no tiene efecto
	Register(label string)

	// Deregister retira el registro explícito de un target
	Deregister(label string)

	// Acquire marca un target como usado por una ejecución
	Acquire(label string)

	// Release libera una adquisición; el target se retira al quedar sin uso
	Release(label string)

	// Registered retorna los targets registrados en orden de registro
	Registered() []string

	// IsRegistered indica si el target está registrado
	IsRegistered(label string) bool
}

// PluginDiscoverer descubre los plugins disponibles cuando el caller no pasa ninguno.
type PluginDiscoverer interface {
	Discover() []Plugin
}
