// internal/adapters/output/streaming.go
package output

import (
	"io"
	"sync"

	"publishx/internal/core/domain"
	"publishx/internal/platform/logx"
)

// StreamWriter escribe los resultados como JSON lines a medida que el
// pipeline los produce. Un fallo de escritura se registra y los siguientes
// resultados se descartan.
type StreamWriter struct {
	mu      sync.Mutex
	w       io.Writer
	written int
	err     error
	logger  logx.Logger
}

// NewStreamWriter crea un writer de streaming sobre w.
func NewStreamWriter(w io.Writer, logger logx.Logger) *StreamWriter {
	if logger == nil {
		logger = logx.New()
	}
	return &StreamWriter{
		w:      w,
		logger: logger.With("component", "stream-writer"),
	}
}

// Write emite un resultado.
func (s *StreamWriter) Write(r domain.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return
	}
	if err := JSONLines(s.w, r); err != nil {
		s.err = err
		s.logger.Warn("result stream stopped", "plugin", r.Plugin, "error", err.Error())
		return
	}
	s.written++
}

// Written retorna cuántos resultados se escribieron.
func (s *StreamWriter) Written() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.written
}

// Err retorna el primer error de escritura.
func (s *StreamWriter) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
