// internal/core/usecases/run.go
package usecases

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"publishx/internal/core/domain"
	"publishx/internal/core/ports"
	perrors "publishx/internal/platform/errors"
	"publishx/internal/platform/logx"
	"publishx/internal/platform/ui"
)

// Run es una ejecución del pipeline. Los resultados se producen a medida que
// el caller los consume con Results; Progress, Summary y Err pueden leerse en
// cualquier momento.
type Run struct {
	id         string
	publisher  *Publisher
	ctx        context.Context
	context    *domain.Context
	buckets    Buckets
	boundaries []domain.Boundary
	targets    []string
	publish    bool
	logger     logx.Logger

	// state se comparte entre todos los buckets de la ejecución
	state *ports.SchedulingState

	// acquired targets adquiridos por esta ejecución, a liberar al salir
	acquired []string

	started atomic.Bool

	mu       sync.Mutex
	progress Progress
	summary  RunSummary
	err      error
}

// RunSummary resume una ejecución.
type RunSummary struct {
	RunID          string
	Results        int
	Failed         int
	ResultsByStage map[string]int
	Stages         []StageResult
	Checkpoints    []string
	Completed      bool
	Duration       time.Duration
}

// Succeeded retorna los resultados sin error.
func (s RunSummary) Succeeded() int {
	return s.Results - s.Failed
}

// FailureCount retorna los resultados con error.
func (s RunSummary) FailureCount() int {
	return s.Failed
}

func newRun(p *Publisher, ctx context.Context, c *domain.Context, buckets Buckets, boundaries []domain.Boundary, targets []string, publish bool) *Run {
	id := uuid.NewString()
	return &Run{
		id:         id,
		publisher:  p,
		ctx:        ctx,
		context:    c,
		buckets:    buckets,
		boundaries: slices.Clone(boundaries),
		targets:    targets,
		publish:    publish,
		logger:     p.logger.With("run_id", id),
		state:      ports.NewSchedulingState(),
		progress:   Progress{Total: buckets.Scheduled(boundaries)},
		summary: RunSummary{
			RunID:          id,
			ResultsByStage: make(map[string]int),
		},
	}
}

// ID retorna el identificador único de la ejecución.
func (r *Run) ID() string {
	return r.id
}

// Context retorna el context de trabajo de la ejecución.
func (r *Run) Context() *domain.Context {
	return r.context
}

// Targets retorna los targets que la ejecución registra.
func (r *Run) Targets() []string {
	return slices.Clone(r.targets)
}

// Progress retorna una copia del progreso actual.
func (r *Run) Progress() Progress {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.progress
}

// Err retorna el error de la ejecución: cancelación del context.Context o un
// segundo consumo de Results. Los fallos de plugins nunca se reportan aquí.
func (r *Run) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Summary retorna una copia del resumen actual.
func (r *Run) Summary() RunSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.summary
	out.ResultsByStage = make(map[string]int, len(r.summary.ResultsByStage))
	for k, v := range r.summary.ResultsByStage {
		out.ResultsByStage[k] = v
	}
	out.Stages = slices.Clone(r.summary.Stages)
	out.Checkpoints = slices.Clone(r.summary.Checkpoints)
	return out
}

// Results retorna la secuencia perezosa de resultados. No se ejecuta nada
// hasta el primer pull; dejar de consumir detiene la ejecución. Los targets
// registrados por la ejecución se liberan siempre al salir de la secuencia.
//
// La secuencia solo puede consumirse una vez; un segundo consumo no produce
// resultados y fija Err a domain.ErrRunConsumed.
func (r *Run) Results() iter.Seq[domain.Result] {
	return func(yield func(domain.Result) bool) {
		if !r.started.CompareAndSwap(false, true) {
			r.setErr(domain.ErrRunConsumed)
			return
		}
		r.execute(yield)
	}
}

// execute recorre los seis buckets en orden fijo.
func (r *Run) execute(yield func(domain.Result) bool) {
	p := r.publisher
	startTime := time.Now()

	r.acquireTargets()
	defer r.releaseTargets()

	plan := r.plan()
	labels := make([]string, 0, len(plan))
	for _, s := range plan {
		labels = append(labels, s.String())
	}

	r.logger.Info("starting publish run",
		"targets", r.targets,
		"stages", labels,
		"plugins", r.progress.Total,
	)

	p.presenter.Start(ui.RunInfo{
		RunID:        r.id,
		Targets:      r.targets,
		Stages:       labels,
		TotalPlugins: r.progress.Total,
		Publish:      r.publish,
	})
	defer p.presenter.Close()

	r.notify(ports.NewEvent(ports.EventRunStarted, r.id, r.context))

	completed := true
	for i, stage := range plan {
		bucket := r.buckets.Stage(stage)

		info := ui.StageInfo{
			Number:      i + 1,
			TotalStages: len(plan),
			Name:        stage.String(),
			Plugins:     pluginNames(bucket),
		}

		outcome := stageCanceled
		if r.ctx.Err() == nil {
			r.logger.Debug("executing stage", "stage", stage, "plugins", len(bucket))
			p.presenter.StartStage(info)
			r.notify(ports.NewEvent(ports.EventStageStarted, r.id, r.context).WithStage(stage))

			var sr StageResult
			sr, outcome = r.runStage(stage, info, bucket, yield)
			r.recordStage(sr)

			p.presenter.FinishStage(info, sr.Duration)
			r.notify(ports.NewEvent(ports.EventStageFinished, r.id, r.context).WithStage(stage))

			r.logger.Debug("stage completed",
				"stage", stage,
				"results", sr.Results,
				"failures", sr.Failures,
				"skipped", sr.Skipped(),
				"duration_ms", sr.Duration.Milliseconds(),
			)
		}

		if outcome == stageCompleted {
			if b, gated := stage.Boundary(); gated {
				r.checkpoint(ports.CheckpointFor(b))
			}
			continue
		}

		completed = false
		if outcome == stageCanceled {
			r.setErr(canceledErr(context.Cause(r.ctx)))
			r.logger.Warn("publish run canceled", "stage", stage)
		}
		break
	}

	if completed && r.publish {
		r.checkpoint(ports.EventPublished)
	}

	summary := r.finish(completed, time.Since(startTime))

	finished := ports.NewEvent(ports.EventRunFinished, r.id, r.context)
	finished.Data = summary
	r.notify(finished)

	p.presenter.Finish(ui.RunStats{
		RunID:          r.id,
		TotalDuration:  summary.Duration,
		Results:        summary.Results,
		Succeeded:      summary.Succeeded(),
		Failed:         summary.Failed,
		Plugins:        r.progress.Total,
		ResultsByStage: summary.ResultsByStage,
		Checkpoints:    summary.Checkpoints,
	})

	r.logger.Info("publish run finished",
		"completed", completed,
		"results", summary.Results,
		"failed", summary.Failed,
		"duration_ms", summary.Duration.Milliseconds(),
	)
}

// plan retorna los stages a recorrer: los seleccionados que tienen plugins.
// Un bucket vacío es una transición sin trabajo y sin checkpoint.
func (r *Run) plan() []domain.Stage {
	plan := make([]domain.Stage, 0, 6)
	for _, s := range domain.Stages() {
		if stageSelected(s, r.boundaries) && len(r.buckets.Stage(s)) > 0 {
			plan = append(plan, s)
		}
	}
	return plan
}

// acquireTargets adquiere los targets pedidos en el registro. Un target que
// ya estaba activo, o que otra ejecución solapada usa, sigue activo al liberar.
func (r *Run) acquireTargets() {
	for _, t := range r.targets {
		r.publisher.targets.Acquire(t)
	}
	r.acquired = slices.Clone(r.targets)
}

// releaseTargets libera las adquisiciones de esta ejecución.
func (r *Run) releaseTargets() {
	for _, t := range r.acquired {
		r.publisher.targets.Release(t)
	}
	r.acquired = nil
}

func (r *Run) checkpoint(eventType ports.EventType) {
	r.mu.Lock()
	r.summary.Checkpoints = append(r.summary.Checkpoints, string(eventType))
	r.mu.Unlock()

	r.notify(ports.NewEvent(eventType, r.id, r.context))
}

// notify entrega un evento de forma síncrona; un fallo del notifier solo se registra.
func (r *Run) notify(event ports.Event) {
	if err := r.publisher.notifier.Notify(r.ctx, event); err != nil {
		r.logger.Warn("notification failed", "event", event.Type, "error", err.Error())
	}
}

func (r *Run) advance(n int) {
	r.mu.Lock()
	r.progress.advance(n)
	p := r.progress
	r.mu.Unlock()

	if p.Current > p.Total {
		r.logger.Warn("progress exceeded scheduled plugins", "current", p.Current, "total", p.Total)
	}
}

func (r *Run) record(result domain.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summary.Results++
	if !result.Success {
		r.summary.Failed++
	}
	r.summary.ResultsByStage[result.Stage.String()]++
}

func (r *Run) recordStage(sr StageResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summary.Stages = append(r.summary.Stages, sr)
}

func (r *Run) finish(completed bool, d time.Duration) RunSummary {
	r.mu.Lock()
	r.summary.Completed = completed
	r.summary.Duration = d
	r.mu.Unlock()
	return r.Summary()
}

func (r *Run) setErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// canceledErr clasifica la interrupción: ErrTimeout si venció el deadline,
// ErrCanceled en cualquier otro caso. La causa original se conserva.
func canceledErr(cause error) error {
	kind := perrors.ErrCanceled
	if errors.Is(cause, context.DeadlineExceeded) {
		kind = perrors.ErrTimeout
	}
	return fmt.Errorf("%w: %w: %w", domain.ErrRunCanceled, kind, cause)
}

func pluginNames(plugins []ports.Plugin) []string {
	names := make([]string, 0, len(plugins))
	for _, p := range plugins {
		names = append(names, p.Name())
	}
	return names
}
