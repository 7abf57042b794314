// internal/plugins/register/register.go
package register

import (
	"context"

	"publishx/internal/core/domain"
	"publishx/internal/core/ports"
	"publishx/internal/platform/logx"
	"publishx/internal/platform/registry"
	"publishx/internal/plugins/common"
)

// Name es el nombre registrado del plugin.
const Name = "integrate_register"

// Auto-registro del plugin al importar el package
func init() {
	registry.Global().MustRegister(New(logx.New()), ports.PluginMetadata{
		Description: "Records the exported files of all instances as published",
		Version:     "1.0.0",
		Author:      "publishx",
	})
}

// Registrar es un context plugin que junta las rutas exportadas en
// Context.Data["published_files"].
type Registrar struct {
	common.Base
}

// New crea el registrador de archivos publicados.
func New(logger logx.Logger) *Registrar {
	return &Registrar{
		Base: common.NewBase(logger, common.BaseConfig{
			Name:  Name,
			Order: float64(domain.IntegratorOrder),
		}),
	}
}

// ProcessContext registra las rutas en orden de creación de instancias.
func (p *Registrar) ProcessContext(ctx context.Context, c *domain.Context) error {
	files := make([]string, 0, c.Len())
	for _, inst := range c.Instances() {
		if path := common.GetString(inst.Data, common.KeyExportPath, ""); path != "" {
			files = append(files, path)
		}
	}
	c.Data[common.KeyPublishedFiles] = files

	p.Logger().Info("files registered", "count", len(files))
	return nil
}
