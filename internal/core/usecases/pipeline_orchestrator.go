// internal/core/usecases/pipeline_orchestrator.go
package usecases

import (
	"context"
	"fmt"
	"strings"

	"publishx/internal/core/domain"
	"publishx/internal/core/ports"
	"publishx/internal/platform/eventbus"
	"publishx/internal/platform/logx"
	"publishx/internal/platform/registry"
	"publishx/internal/platform/ui"
)

// Publisher coordina la ejecución de plugins en los seis stages del pipeline.
// Un Publisher es reutilizable; cada llamada a Start crea un Run independiente
// con su propio estado de scheduling y progreso.
type Publisher struct {
	executor   ports.Executor
	pairer     ports.Pairer
	notifier   ports.Notifier
	targets    ports.TargetRegistry
	discoverer ports.PluginDiscoverer
	logger     logx.Logger
	presenter  ui.Presenter
}

// PublisherOptions configura el publisher. Los colaboradores no fijados usan
// los registros globales del proceso.
type PublisherOptions struct {
	Executor   ports.Executor
	Pairer     ports.Pairer
	Notifier   ports.Notifier
	Targets    ports.TargetRegistry
	Discoverer ports.PluginDiscoverer
	Logger     logx.Logger
	Presenter  ui.Presenter
}

// Request describe una ejecución.
type Request struct {
	// Context context de trabajo; nil crea uno vacío
	Context *domain.Context

	// Plugins plugins candidatos; nil usa el discoverer (un slice vacío no)
	Plugins []ports.Plugin

	// Targets targets a registrar durante la ejecución; vacío = ["default"]
	Targets []string

	// Boundaries restringe los stages nombrados; vacío = todos
	Boundaries []domain.Boundary

	// Publish emite el checkpoint "published" al completar la secuencia
	Publish bool
}

// NewPublisher crea una nueva instancia del publisher.
func NewPublisher(opts PublisherOptions) *Publisher {
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	if opts.Targets == nil {
		opts.Targets = registry.GlobalTargets()
	}
	if opts.Discoverer == nil {
		opts.Discoverer = registry.Global()
	}
	if opts.Notifier == nil {
		opts.Notifier = eventbus.Global()
	}
	if opts.Executor == nil {
		opts.Executor = NewDefaultExecutor(opts.Logger)
	}
	if opts.Pairer == nil {
		opts.Pairer = NewDefaultPairer(opts.Targets, WithPairerLogger(opts.Logger))
	}
	if opts.Presenter == nil {
		opts.Presenter = ui.NewNoopPresenter()
	}

	return &Publisher{
		executor:   opts.Executor,
		pairer:     opts.Pairer,
		notifier:   opts.Notifier,
		targets:    opts.Targets,
		discoverer: opts.Discoverer,
		logger:     opts.Logger.With("component", "publisher"),
		presenter:  opts.Presenter,
	}
}

// Start valida y particiona la ejecución. Los errores de configuración
// (plugins inválidos, orders no finitos, boundaries desconocidos, targets
// vacíos) se retornan aquí, antes de ejecutar cualquier stage.
//
// El Run retornado no hace ningún trabajo hasta que se consumen sus resultados.
func (p *Publisher) Start(ctx context.Context, req Request) (*Run, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	targets, err := normalizeTargets(req.Targets)
	if err != nil {
		return nil, err
	}

	plugins := req.Plugins
	if plugins == nil {
		plugins = p.discoverer.Discover()
	}

	buckets, err := Partition(plugins, req.Boundaries)
	if err != nil {
		return nil, fmt.Errorf("partition plugins: %w", err)
	}

	c := req.Context
	if c == nil {
		c = domain.NewContext()
	}

	run := newRun(p, ctx, c, buckets, req.Boundaries, targets, req.Publish)

	p.logger.Debug("run prepared",
		"run_id", run.id,
		"plugins", len(plugins),
		"scheduled", run.progress.Total,
		"targets", strings.Join(targets, ","),
		"boundaries", len(req.Boundaries),
	)

	return run, nil
}

// normalizeTargets aplica el default y elimina duplicados conservando el orden.
func normalizeTargets(targets []string) ([]string, error) {
	if len(targets) == 0 {
		return []string{ports.DefaultTarget}, nil
	}
	out := make([]string, 0, len(targets))
	seen := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		label := strings.TrimSpace(t)
		if label == "" {
			return nil, fmt.Errorf("%w: empty target label", domain.ErrInvalidConfig)
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return out, nil
}
