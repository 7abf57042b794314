// cmd/publishx/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"publishx/internal/core/domain"
	perrors "publishx/internal/platform/errors"

	// Import plugins for auto-registration via init()
	_ "publishx/internal/plugins/jsonexport"
	_ "publishx/internal/plugins/manifest"
	_ "publishx/internal/plugins/register"
	_ "publishx/internal/plugins/required"
	_ "publishx/internal/plugins/summary"
)

var (
	// Rellenables con -ldflags en build
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitConfig  = 2
)

func main() {
	cmd := newRootCommand()
	err := cmd.Execute()
	if msg := errorMessage(err); msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}
	os.Exit(exitCode(err))
}

// errorMessage formatea el error final del comando para stderr.
func errorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case perrors.IsTimeout(err):
		return "Error: timed out: " + err.Error()
	case perrors.IsCanceled(err), errors.Is(err, context.Canceled):
		return "Interrupted: " + err.Error()
	default:
		return "Error: " + err.Error()
	}
}

// exitError fija el código de salida de un error que no es de configuración.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// exitCode traduce el error de un comando: 2 para configuración inválida,
// 1 para fallos de plugins o cancelación.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	if isConfigError(err) {
		return exitConfig
	}
	return exitFailure
}

func isConfigError(err error) bool {
	return perrors.IsConfig(err) ||
		errors.Is(err, domain.ErrInvalidConfig) ||
		errors.Is(err, domain.ErrInvalidPlugin) ||
		errors.Is(err, domain.ErrInvalidOrder) ||
		errors.Is(err, domain.ErrInvalidBoundary)
}
