// internal/core/usecases/executor.go
package usecases

import (
	"context"
	"fmt"
	"time"

	"publishx/internal/core/domain"
	"publishx/internal/core/ports"
	"publishx/internal/platform/logx"
)

// DefaultExecutor ejecuta un plugin contra el context o una instancia.
// Nunca entra en pánico: un pánico del plugin se convierte en ErrPluginPanic.
type DefaultExecutor struct {
	logger logx.Logger
}

// NewDefaultExecutor crea el executor.
func NewDefaultExecutor(logger logx.Logger) *DefaultExecutor {
	if logger == nil {
		logger = logx.New()
	}
	return &DefaultExecutor{
		logger: logger.With("component", "executor"),
	}
}

// Execute implementa ports.Executor.
func (e *DefaultExecutor) Execute(ctx context.Context, p ports.Plugin, c *domain.Context, inst *domain.Instance) (result domain.Result) {
	kind := ports.KindOf(p)
	result = domain.Result{
		Plugin:   p.Name(),
		Order:    p.Order(),
		Kind:     string(kind),
		Instance: inst,
	}

	startTime := time.Now()
	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Errorf("%w: %s: %v", domain.ErrPluginPanic, p.Name(), r)
		}
		result.Duration = time.Since(startTime)
		result.Success = result.Error == nil

		if result.Error != nil {
			e.logger.Debug("plugin returned error",
				"plugin", result.Plugin,
				"instance", result.InstanceName(),
				"error", result.Error.Error(),
			)
		}
	}()

	e.logger.Debug("executing plugin", "plugin", result.Plugin, "kind", kind, "instance", result.InstanceName())

	switch kind {
	case ports.KindContext:
		result.Error = p.(ports.ContextPlugin).ProcessContext(ctx, c)
	case ports.KindInstance:
		if inst == nil {
			result.Error = fmt.Errorf("%w: instance plugin %q paired without an instance", domain.ErrInvalidPlugin, p.Name())
			return result
		}
		result.Error = p.(ports.InstancePlugin).ProcessInstance(ctx, inst)
	default:
		result.Error = fmt.Errorf("%w: %q", domain.ErrInvalidPlugin, p.Name())
	}

	return result
}
