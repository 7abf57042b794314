// internal/core/usecases/pairing.go
package usecases

import (
	"context"
	"iter"
	"slices"

	"publishx/internal/core/domain"
	"publishx/internal/core/ports"
	"publishx/internal/platform/logx"
)

// StopTest decide si la secuencia de pares debe terminar antes del próximo
// plugin. Retorna la razón, o "" para continuar.
type StopTest func(state *ports.SchedulingState) string

// FailedValidation detiene la secuencia al pasar del stage de validación
// cuando algún validator falló.
func FailedValidation(state *ports.SchedulingState) string {
	if state.NextOrder == nil || *state.NextOrder < float64(domain.ValidatorOrder)+domain.OrderBand {
		return ""
	}
	for order := range state.OrdersWithError {
		if domain.InRange(order, domain.ValidatorOrder) {
			return "failed validation"
		}
	}
	return ""
}

// DefaultPairer expande plugins en pares (plugin, instancia).
//
// Un plugin se salta si ninguno de sus targets está registrado. Un plugin de
// context produce un par si sus familias incluyen "*" o alguna instancia
// coincide. Un plugin de instancia produce un par por cada instancia
// publicable que coincide, en el orden del context.
type DefaultPairer struct {
	targets   ports.TargetRegistry
	stopTests []StopTest
	logger    logx.Logger
}

// PairerOption configura un DefaultPairer.
type PairerOption func(*DefaultPairer)

// WithStopTest reemplaza los stop tests. Sin argumentos, la secuencia nunca se detiene antes de tiempo.
func WithStopTest(tests ...StopTest) PairerOption {
	return func(p *DefaultPairer) {
		p.stopTests = tests
	}
}

// WithPairerLogger fija el logger del pairer.
func WithPairerLogger(logger logx.Logger) PairerOption {
	return func(p *DefaultPairer) {
		p.logger = logger
	}
}

// NewDefaultPairer crea el pairer sobre el registro de targets dado.
func NewDefaultPairer(targets ports.TargetRegistry, opts ...PairerOption) *DefaultPairer {
	p := &DefaultPairer{
		targets:   targets,
		stopTests: []StopTest{FailedValidation},
		logger:    logx.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("component", "pairer")
	return p
}

// Pairs implementa ports.Pairer. Los targets registrados se leen en el primer pull.
func (p *DefaultPairer) Pairs(ctx context.Context, plugins []ports.Plugin, c *domain.Context, state *ports.SchedulingState) iter.Seq[ports.Pair] {
	return func(yield func(ports.Pair) bool) {
		registered := p.targets.Registered()

		for i, plugin := range plugins {
			if ctx.Err() != nil {
				return
			}
			if !targetsMatch(ports.TargetsOf(plugin), registered) {
				p.logger.Debug("skipping plugin for unregistered targets",
					"plugin", plugin.Name(),
					"targets", ports.TargetsOf(plugin),
				)
				continue
			}

			state.SetNextOrder(plugin.Order())
			if reason := p.stop(state); reason != "" {
				p.logger.Info("stopping pairing", "reason", reason, "next_order", plugin.Order())
				return
			}

			families := ports.FamiliesOf(plugin)
			switch ports.KindOf(plugin) {
			case ports.KindContext:
				if slices.Contains(families, "*") || anyInstanceMatches(c, families) {
					if !yield(ports.Pair{Plugin: plugin, Index: i}) {
						return
					}
				}
			case ports.KindInstance:
				for _, inst := range c.Instances() {
					if !inst.Publishable() || !inst.HasFamily(families) {
						continue
					}
					if !yield(ports.Pair{Plugin: plugin, Instance: inst, Index: i}) {
						return
					}
				}
			}
		}
	}
}

func (p *DefaultPairer) stop(state *ports.SchedulingState) string {
	for _, test := range p.stopTests {
		if reason := test(state); reason != "" {
			return reason
		}
	}
	return ""
}

func targetsMatch(pluginTargets, registered []string) bool {
	for _, t := range pluginTargets {
		if slices.Contains(registered, t) {
			return true
		}
	}
	return false
}

func anyInstanceMatches(c *domain.Context, families []string) bool {
	for _, inst := range c.Instances() {
		if inst.HasFamily(families) {
			return true
		}
	}
	return false
}
