// internal/core/usecases/partition.go
package usecases

import (
	"fmt"

	"publishx/internal/core/domain"
	"publishx/internal/core/ports"
)

// Buckets agrupa los plugins de una ejecución en los seis stages.
// Cada plugin sobreviviente está en exactamente un bucket y el orden
// relativo de entrada se conserva dentro de cada bucket.
type Buckets struct {
	stages [6][]ports.Plugin
}

// Stage retorna los plugins del bucket del stage.
func (b Buckets) Stage(s domain.Stage) []ports.Plugin {
	if s < domain.StagePreCollect || s > domain.StagePostIntegrate {
		return nil
	}
	return b.stages[s]
}

// Len retorna el total de plugins en los seis buckets.
func (b Buckets) Len() int {
	n := 0
	for _, bucket := range b.stages {
		n += len(bucket)
	}
	return n
}

// Each recorre los buckets en orden de ejecución.
func (b Buckets) Each(fn func(stage domain.Stage, plugins []ports.Plugin)) {
	for _, s := range domain.Stages() {
		fn(s, b.stages[s])
	}
}

// Scheduled cuenta los plugins de los buckets que efectivamente se
// ejecutarán con esa selección de boundaries. Es el total de progreso.
func (b Buckets) Scheduled(boundaries []domain.Boundary) int {
	n := 0
	for _, s := range domain.Stages() {
		if stageSelected(s, boundaries) {
			n += len(b.stages[s])
		}
	}
	return n
}

// stageSelected indica si el stage corre con esa selección. Pre-collect y
// post-integrate nunca dependen de la selección.
func stageSelected(s domain.Stage, boundaries []domain.Boundary) bool {
	b, gated := s.Boundary()
	if !gated || len(boundaries) == 0 {
		return true
	}
	return domain.ContainsBoundary(boundaries, b)
}

// ValidatePlugins rechaza plugins que no pueden programarse. Se ejecuta
// antes de cualquier trabajo para que los errores de configuración no dejen
// una ejecución a medias.
func ValidatePlugins(plugins []ports.Plugin) error {
	for i, p := range plugins {
		if p == nil {
			return fmt.Errorf("%w: plugin #%d is nil", domain.ErrInvalidPlugin, i)
		}
		if p.Name() == "" {
			return fmt.Errorf("%w: plugin #%d has no name", domain.ErrInvalidPlugin, i)
		}
		if ports.KindOf(p) == ports.KindInvalid {
			return fmt.Errorf("%w: %q must implement exactly one of ProcessContext or ProcessInstance",
				domain.ErrInvalidPlugin, p.Name())
		}
		if !domain.ValidOrder(p.Order()) {
			return fmt.Errorf("%w: %q has order %v", domain.ErrInvalidOrder, p.Name(), p.Order())
		}
	}
	return nil
}

// Partition clasifica los plugins en los seis buckets.
//
// Los plugins inactivos se descartan. Con boundaries pedidos, se descartan
// los plugins que caen en la banda de algún boundary nombrado pero en la de
// ninguno de los pedidos; los plugins fuera de toda banda nombrada se
// conservan siempre.
func Partition(plugins []ports.Plugin, boundaries []domain.Boundary) (Buckets, error) {
	var out Buckets

	if err := domain.ValidateBoundaries(boundaries); err != nil {
		return out, err
	}
	if err := ValidatePlugins(plugins); err != nil {
		return out, err
	}

	named := domain.Boundaries()
	for _, p := range plugins {
		if !p.Active() {
			continue
		}

		order := p.Order()
		if len(boundaries) > 0 && domain.InAnyRange(order, named) && !domain.InAnyRange(order, boundaries) {
			continue
		}

		stage, ok := domain.StageOf(order)
		if !ok {
			// ValidatePlugins ya rechazó los orders no finitos
			return out, fmt.Errorf("%w: %q has order %v", domain.ErrInvalidOrder, p.Name(), order)
		}
		out.stages[stage] = append(out.stages[stage], p)
	}

	return out, nil
}
