// internal/plugins/jsonexport/jsonexport.go
package jsonexport

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"publishx/internal/core/domain"
	"publishx/internal/core/ports"
	perrors "publishx/internal/platform/errors"
	"publishx/internal/platform/logx"
	"publishx/internal/platform/registry"
	"publishx/internal/platform/validator"
	"publishx/internal/plugins/common"
)

// Name es el nombre registrado del plugin.
const Name = "extract_json"

// Auto-registro del plugin al importar el package
func init() {
	registry.Global().MustRegister(New(logx.New()), ports.PluginMetadata{
		Description: "Writes each publishable instance's data as JSON into the output directory",
		Version:     "1.0.0",
		Author:      "publishx",
	})
}

// Document es el contenido de cada archivo exportado.
type Document struct {
	Name     string         `json:"name"`
	Families []string       `json:"families"`
	Data     map[string]any `json:"data"`
}

// Exporter es un instance plugin que escribe <output_dir>/<instance>.json.
type Exporter struct {
	common.Base
}

// New crea el exportador JSON.
func New(logger logx.Logger) *Exporter {
	return &Exporter{
		Base: common.NewBase(logger, common.BaseConfig{
			Name:  Name,
			Order: float64(domain.ExtractorOrder),
		}),
	}
}

// ProcessInstance exporta la instancia. Sin output_dir, o con publish=false,
// no hace nada.
func (p *Exporter) ProcessInstance(ctx context.Context, inst *domain.Instance) error {
	if !inst.Publishable() {
		p.Logger().Debug("instance not publishable, skipping", "instance", inst.Name)
		return nil
	}
	dir := inst.Parent().DataString(common.KeyOutputDir)
	if dir == "" {
		p.Logger().Debug("no output directory configured", "instance", inst.Name)
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return perrors.Wrap(err, "create output directory")
	}

	doc := Document{
		Name:     inst.Name,
		Families: inst.Families,
		Data:     exportable(inst.Data),
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return perrors.Wrapf(err, "encode instance %s", inst.Name)
	}

	path := filepath.Join(dir, FileName(inst.Name))
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return perrors.Wrapf(err, "write %s", path)
	}

	inst.Data[common.KeyExportPath] = path
	p.Logger().Debug("instance exported", "instance", inst.Name, "path", path)
	return nil
}

// FileName retorna el nombre de archivo seguro para una instancia.
func FileName(instance string) string {
	return fmt.Sprintf("%s.json", validator.SafeFileName(instance, "instance"))
}

// exportable omite las claves que escriben los propios plugins.
func exportable(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		if k == common.KeyExportPath {
			continue
		}
		out[k] = v
	}
	return out
}
