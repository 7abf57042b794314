// internal/plugins/common/base.go
// Package common provides shared building blocks for the built-in plugins.
package common

import (
	"slices"

	"publishx/internal/platform/logx"
)

// Base implementa los getters de ports.Plugin. Se embebe en cada plugin,
// que solo agrega su método ProcessContext o ProcessInstance.
type Base struct {
	PluginName     string
	PluginOrder    float64
	PluginTargets  []string
	PluginFamilies []string
	Disabled       bool

	logger logx.Logger
}

// BaseConfig contiene la configuración de Base.
type BaseConfig struct {
	Name     string
	Order    float64
	Targets  []string // vacío = "default"
	Families []string // vacío = "*"
}

// NewBase crea una Base con un logger etiquetado con el nombre del plugin.
func NewBase(logger logx.Logger, cfg BaseConfig) Base {
	if logger == nil {
		logger = logx.New()
	}
	return Base{
		PluginName:     cfg.Name,
		PluginOrder:    cfg.Order,
		PluginTargets:  slices.Clone(cfg.Targets),
		PluginFamilies: slices.Clone(cfg.Families),
		logger:         logger.With("plugin", cfg.Name),
	}
}

func (b *Base) Name() string       { return b.PluginName }
func (b *Base) Order() float64     { return b.PluginOrder }
func (b *Base) Active() bool       { return !b.Disabled }
func (b *Base) Targets() []string  { return slices.Clone(b.PluginTargets) }
func (b *Base) Families() []string { return slices.Clone(b.PluginFamilies) }

// Logger retorna el logger del plugin.
func (b *Base) Logger() logx.Logger {
	if b.logger == nil {
		b.logger = logx.New().With("plugin", b.PluginName)
	}
	return b.logger
}
