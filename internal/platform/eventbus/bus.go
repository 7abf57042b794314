// internal/platform/eventbus/bus.go
package eventbus

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"publishx/internal/core/ports"
	"publishx/internal/platform/logx"
)

// ErrClosed se retorna al notificar sobre un bus cerrado.
var ErrClosed = errors.New("event bus closed")

// Wildcard es el tipo de suscripción que recibe todos los eventos.
const Wildcard ports.EventType = "*"

// Handler procesa un evento. Se invoca en la goroutine que emite el evento.
type Handler func(ctx context.Context, event ports.Event)

type subscription struct {
	id        string
	eventType ports.EventType
	handler   Handler
}

// Bus es un bus pub-sub síncrono. Implementa ports.Notifier.
//
// Los handlers específicos del tipo se llaman primero y después los de
// Wildcard, cada grupo en orden de suscripción. Un handler que entra en
// pánico se registra y no interrumpe la entrega al resto.
type Bus struct {
	mu            sync.RWMutex
	subscriptions map[ports.EventType][]subscription
	nextID        atomic.Uint64
	closed        atomic.Bool
	logger        logx.Logger
}

var globalBus *Bus
var once sync.Once

// Global retorna el bus del proceso.
func Global() *Bus {
	once.Do(func() {
		globalBus = New(logx.New())
	})
	return globalBus
}

// New crea un bus vacío.
func New(logger logx.Logger) *Bus {
	if logger == nil {
		logger = logx.New()
	}
	return &Bus{
		subscriptions: make(map[ports.EventType][]subscription),
		logger:        logger.With("component", "eventbus"),
	}
}

// Subscribe registra un handler para un tipo de evento y retorna su ID.
func (b *Bus) Subscribe(eventType ports.EventType, handler Handler) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := fmt.Sprintf("sub-%d", b.nextID.Add(1))
	b.subscriptions[eventType] = append(b.subscriptions[eventType], subscription{
		id:        id,
		eventType: eventType,
		handler:   handler,
	})
	return id
}

// SubscribeAll registra un handler para todos los eventos.
func (b *Bus) SubscribeAll(handler Handler) string {
	return b.Subscribe(Wildcard, handler)
}

// Unsubscribe elimina una suscripción. Retorna false si no existía.
func (b *Bus) Unsubscribe(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, subs := range b.subscriptions {
		for i, sub := range subs {
			if sub.id == id {
				b.subscriptions[eventType] = append(subs[:i:i], subs[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Notify entrega el evento a los handlers suscritos antes de retornar.
func (b *Bus) Notify(ctx context.Context, event ports.Event) error {
	if b.closed.Load() {
		return ErrClosed
	}

	b.mu.RLock()
	specific := append([]subscription(nil), b.subscriptions[event.Type]...)
	wildcard := append([]subscription(nil), b.subscriptions[Wildcard]...)
	b.mu.RUnlock()

	for _, sub := range specific {
		b.safeCall(ctx, sub, event)
	}
	for _, sub := range wildcard {
		b.safeCall(ctx, sub, event)
	}
	return nil
}

func (b *Bus) safeCall(ctx context.Context, sub subscription, event ports.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Warn("event handler panicked",
				"event", event.Type,
				"subscription", sub.id,
				"panic", r,
				"stack", string(debug.Stack()),
			)
		}
	}()
	sub.handler(ctx, event)
}

// SubscriptionCount retorna el número total de suscripciones activas.
func (b *Bus) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for _, subs := range b.subscriptions {
		count += len(subs)
	}
	return count
}

// Clear elimina todas las suscripciones.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscriptions = make(map[ports.EventType][]subscription)
}

// Close rechaza nuevos eventos y descarta las suscripciones.
// El bus global no debería cerrarse mientras haya ejecuciones activas.
func (b *Bus) Close() error {
	if b.closed.Swap(true) {
		return nil
	}
	b.Clear()
	return nil
}
