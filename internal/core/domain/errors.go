// internal/core/domain/errors.go
package domain

import "errors"

// Errores de dominio comunes.
var (
	// Configuration errors (fatales, antes de ejecutar cualquier stage)
	ErrInvalidBoundary = errors.New("invalid stage boundary")
	ErrInvalidOrder    = errors.New("invalid plugin order")
	ErrInvalidPlugin   = errors.New("invalid plugin")
	ErrInvalidConfig   = errors.New("invalid configuration")

	// Registry errors
	ErrDuplicatePlugin = errors.New("plugin already registered")
	ErrPluginNotFound  = errors.New("plugin not found")

	// Run errors
	ErrRunConsumed = errors.New("run results already consumed")
	ErrRunCanceled = errors.New("run was canceled")

	// Plugin errors (se reportan como datos en Result.Error)
	ErrPluginPanic   = errors.New("plugin panicked")
	ErrManifestParse = errors.New("failed to parse manifest")
)
