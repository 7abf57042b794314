// internal/platform/ui/noop_presenter.go
package ui

import "time"

// NoopPresenter es una implementación vacía del Presenter
// que no produce ninguna salida. Útil para modo quiet, JSON o tests.
type NoopPresenter struct{}

// NewNoopPresenter crea una instancia del presenter sin salida
func NewNoopPresenter() *NoopPresenter {
	return &NoopPresenter{}
}

// Start no hace nada
func (n *NoopPresenter) Start(info RunInfo) {}

// StartStage no hace nada
func (n *NoopPresenter) StartStage(stage StageInfo) {}

// FinishStage no hace nada
func (n *NoopPresenter) FinishStage(stage StageInfo, duration time.Duration) {}

// StartPlugin no hace nada
func (n *NoopPresenter) StartPlugin(stage StageInfo, plugin string) {}

// FinishPlugin no hace nada
func (n *NoopPresenter) FinishPlugin(plugin PluginInfo) {}

// SkipPlugin no hace nada
func (n *NoopPresenter) SkipPlugin(stage StageInfo, plugin string) {}

// Info no hace nada
func (n *NoopPresenter) Info(msg string) {}

// Warning no hace nada
func (n *NoopPresenter) Warning(msg string) {}

// Error no hace nada
func (n *NoopPresenter) Error(msg string) {}

// Finish no hace nada
func (n *NoopPresenter) Finish(stats RunStats) {}

// Close no hace nada
func (n *NoopPresenter) Close() error {
	return nil
}
