// internal/core/usecases/stage.go
package usecases

import (
	"reflect"
	"time"

	"publishx/internal/core/domain"
	"publishx/internal/core/ports"
	"publishx/internal/platform/ui"
)

// StageResult encapsula el resultado de ejecución de un bucket.
type StageResult struct {
	// Stage bucket ejecutado
	Stage domain.Stage

	// Plugins tamaño declarado del bucket
	Plugins int

	// Processed plugins distintos que produjeron al menos un par
	Processed int

	// Results número de resultados emitidos
	Results int

	// Failures resultados con error
	Failures int

	// Duration tiempo total del bucket
	Duration time.Duration
}

// Skipped retorna los plugins del bucket que no produjeron ningún par
// (targets no registrados, familias sin instancias o pairing detenido).
func (sr StageResult) Skipped() int {
	return sr.Plugins - sr.Processed
}

// stageOutcome indica cómo terminó un bucket.
type stageOutcome int

const (
	// stageCompleted el pairer se agotó
	stageCompleted stageOutcome = iota

	// stageAbandoned el caller dejó de consumir resultados
	stageAbandoned

	// stageCanceled el context.Context fue cancelado
	stageCanceled
)

// runStage consume los pares de un bucket, ejecuta cada uno y entrega los
// resultados enriquecidos a yield.
//
// El progreso avanza una vez por plugin distinto. Si el bucket se agota con
// plugins que no produjeron pares, la diferencia se suma al final para que
// el progreso alcance la contribución completa del bucket.
func (r *Run) runStage(stage domain.Stage, info ui.StageInfo, bucket []ports.Plugin, yield func(domain.Result) bool) (StageResult, stageOutcome) {
	p := r.publisher
	startTime := time.Now()

	sr := StageResult{Stage: stage, Plugins: len(bucket)}
	seen := make(map[int]struct{}, len(bucket))
	outcome := stageCompleted

	for pair := range p.pairer.Pairs(r.ctx, bucket, r.context, r.state) {
		if r.ctx.Err() != nil {
			outcome = stageCanceled
			break
		}

		idx := pluginIndex(bucket, pair)
		if idx < 0 {
			r.logger.Warn("pairer yielded a plugin outside the bucket", "stage", stage, "plugin", pair.Plugin.Name())
		} else if _, ok := seen[idx]; !ok {
			seen[idx] = struct{}{}
			r.advance(1)
			p.presenter.StartPlugin(info, pair.Plugin.Name())
		}

		result := p.executor.Execute(r.ctx, pair.Plugin, r.context, pair.Instance)
		sr.Results++

		if result.Error != nil {
			sr.Failures++
			r.state.RecordError(pair.Plugin.Order())
			r.logger.Warn("plugin failed",
				"stage", stage,
				"plugin", result.Plugin,
				"instance", result.InstanceName(),
				"order", result.Order,
				"error", result.Error.Error(),
			)
		}

		result.RunID = r.id
		result.Stage = stage
		result.Progress = r.Progress().Fraction()
		r.record(result)

		p.presenter.FinishPlugin(ui.PluginInfo{
			Name:     result.Plugin,
			Instance: result.InstanceName(),
			Stage:    stage.String(),
			Status:   ui.StatusOf(result.Success),
			Duration: result.Duration,
			Progress: result.Progress,
			Error:    result.ErrorMessage(),
		})

		r.notify(ports.NewEvent(ports.EventPluginProcessed, r.id, r.context).WithStage(stage).WithResult(result))
		if !result.Success {
			r.notify(ports.NewEvent(ports.EventPluginFailed, r.id, r.context).WithStage(stage).WithResult(result))
		}

		if !yield(result) {
			outcome = stageAbandoned
			break
		}
	}

	if outcome == stageCompleted && r.ctx.Err() != nil {
		outcome = stageCanceled
	}

	sr.Processed = len(seen)
	if outcome == stageCompleted {
		r.advance(sr.Skipped())
		for i, plugin := range bucket {
			if _, ok := seen[i]; !ok {
				p.presenter.SkipPlugin(info, plugin.Name())
			}
		}
	}
	sr.Duration = time.Since(startTime)

	return sr, outcome
}

// pluginIndex resuelve la posición de pair.Plugin en el bucket. Pair.Index es
// solo una pista: se usa si apunta al mismo plugin; si no, se busca en el bucket.
// Retorna -1 si el plugin no pertenece al bucket.
func pluginIndex(bucket []ports.Plugin, pair ports.Pair) int {
	if pair.Index >= 0 && pair.Index < len(bucket) && samePlugin(bucket[pair.Index], pair.Plugin) {
		return pair.Index
	}
	for i, p := range bucket {
		if samePlugin(p, pair.Plugin) {
			return i
		}
	}
	return -1
}

// samePlugin compara por identidad cuando el tipo dinámico es comparable y
// por nombre cuando no lo es (p. ej. structs por valor con slices).
func samePlugin(a, b ports.Plugin) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta == nil || ta != tb {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Comparable() && vb.Comparable() {
		return va.Equal(vb)
	}
	return a.Name() == b.Name()
}
