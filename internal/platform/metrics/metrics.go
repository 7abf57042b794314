// internal/platform/metrics/metrics.go
package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"publishx/internal/core/ports"
	"publishx/internal/platform/eventbus"
)

const namespace = "publishx"

// Outcomes de plugin.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Collector traduce eventos del bus a métricas Prometheus.
// Usa su propio registry para no mezclarse con el registry global del proceso.
type Collector struct {
	registry *prometheus.Registry

	PluginsProcessed *prometheus.CounterVec
	PluginDuration   *prometheus.HistogramVec
	Checkpoints      *prometheus.CounterVec
	Runs             prometheus.Counter
	RunFailures      prometheus.Counter

	bus  *eventbus.Bus
	subs []string
}

// NewCollector crea el collector y registra sus métricas.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		PluginsProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "plugins_processed_total",
				Help:      "Plugin executions by plugin, stage and outcome",
			},
			[]string{"plugin", "stage", "outcome"},
		),
		PluginDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "plugin_duration_seconds",
				Help:      "Duration of plugin executions",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
			},
			[]string{"plugin"},
		),
		Checkpoints: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "checkpoints_total",
				Help:      "Pipeline checkpoints emitted",
			},
			[]string{"name"},
		),
		Runs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Finished pipeline runs",
		}),
		RunFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "run_failures_total",
			Help:      "Finished runs with at least one failed plugin",
		}),
	}
}

// Registry retorna el registry con las métricas del collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Attach suscribe el collector al bus. Llamarlo dos veces no duplica suscripciones.
func (c *Collector) Attach(bus *eventbus.Bus) {
	if c.bus != nil {
		return
	}
	c.bus = bus
	c.subs = append(c.subs,
		bus.Subscribe(ports.EventPluginProcessed, c.onPlugin),
		bus.Subscribe(ports.EventRunFinished, c.onRunFinished),
	)
	for _, checkpoint := range checkpointEvents {
		c.subs = append(c.subs, bus.Subscribe(checkpoint, c.onCheckpoint))
	}
}

// Detach elimina las suscripciones del collector.
func (c *Collector) Detach() {
	if c.bus == nil {
		return
	}
	for _, id := range c.subs {
		c.bus.Unsubscribe(id)
	}
	c.bus = nil
	c.subs = nil
}

var checkpointEvents = []ports.EventType{
	ports.EventCollected,
	ports.EventValidated,
	ports.EventExtracted,
	ports.EventIntegrated,
	ports.EventPublished,
}

func (c *Collector) onPlugin(_ context.Context, e ports.Event) {
	if e.Result == nil {
		return
	}
	r := e.Result
	outcome := OutcomeSuccess
	if !r.Success {
		outcome = OutcomeFailure
	}
	c.PluginsProcessed.WithLabelValues(r.Plugin, r.Stage.String(), outcome).Inc()
	c.PluginDuration.WithLabelValues(r.Plugin).Observe(r.Duration.Seconds())
}

func (c *Collector) onCheckpoint(_ context.Context, e ports.Event) {
	c.Checkpoints.WithLabelValues(string(e.Type)).Inc()
}

// failureCounter lo implementa el resumen de ejecución que viaja en Event.Data.
type failureCounter interface {
	FailureCount() int
}

func (c *Collector) onRunFinished(_ context.Context, e ports.Event) {
	c.Runs.Inc()
	if fc, ok := e.Data.(failureCounter); ok && fc.FailureCount() > 0 {
		c.RunFailures.Inc()
	}
}

// WriteTextfile escribe las métricas en formato de texto Prometheus
// (para el textfile collector de node_exporter).
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
