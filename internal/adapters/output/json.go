// internal/adapters/output/json.go
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"publishx/internal/core/domain"
	"publishx/internal/core/usecases"
)

// Record es la forma JSON de un domain.Result. El error se serializa como texto.
type Record struct {
	RunID      string  `json:"run_id"`
	Plugin     string  `json:"plugin"`
	Order      float64 `json:"order"`
	Kind       string  `json:"kind"`
	Stage      string  `json:"stage"`
	Instance   string  `json:"instance,omitempty"`
	Success    bool    `json:"success"`
	Error      string  `json:"error,omitempty"`
	DurationMS int64   `json:"duration_ms"`
	Progress   float64 `json:"progress"`
}

// NewRecord convierte un resultado en su forma serializable.
func NewRecord(r domain.Result) Record {
	return Record{
		RunID:      r.RunID,
		Plugin:     r.Plugin,
		Order:      r.Order,
		Kind:       r.Kind,
		Stage:      r.Stage.String(),
		Instance:   r.InstanceName(),
		Success:    r.Success,
		Error:      r.ErrorMessage(),
		DurationMS: r.Duration.Milliseconds(),
		Progress:   r.Progress,
	}
}

// JSONLines escribe un resultado como un objeto JSON en una línea.
func JSONLines(w io.Writer, r domain.Result) error {
	if err := json.NewEncoder(w).Encode(NewRecord(r)); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

// SummaryDocument es el reporte final de una ejecución.
type SummaryDocument struct {
	RunID          string         `json:"run_id"`
	Completed      bool           `json:"completed"`
	Results        int            `json:"results"`
	Succeeded      int            `json:"succeeded"`
	Failed         int            `json:"failed"`
	ResultsByStage map[string]int `json:"results_by_stage"`
	Checkpoints    []string       `json:"checkpoints"`
	DurationMS     int64          `json:"duration_ms"`
	Data           map[string]any `json:"data,omitempty"`
	WrittenAt      time.Time      `json:"written_at"`
}

// NewSummaryDocument construye el reporte a partir del resumen y el context final.
func NewSummaryDocument(s usecases.RunSummary, c *domain.Context) SummaryDocument {
	doc := SummaryDocument{
		RunID:          s.RunID,
		Completed:      s.Completed,
		Results:        s.Results,
		Succeeded:      s.Succeeded(),
		Failed:         s.Failed,
		ResultsByStage: s.ResultsByStage,
		Checkpoints:    s.Checkpoints,
		DurationMS:     s.Duration.Milliseconds(),
		WrittenAt:      time.Now().UTC(),
	}
	if doc.Checkpoints == nil {
		doc.Checkpoints = []string{}
	}
	if c != nil {
		doc.Data = c.Data
	}
	return doc
}

// WriteSummary escribe publishx_<run_id>.json en dir y retorna la ruta.
func WriteSummary(dir string, s usecases.RunSummary, c *domain.Context) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("publishx_%s.json", s.RunID))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewSummaryDocument(s, c)); err != nil {
		return "", fmt.Errorf("failed to encode summary: %w", err)
	}
	return path, nil
}
