// internal/plugins/summary/summary.go
package summary

import (
	"context"
	"fmt"

	"publishx/internal/core/domain"
	"publishx/internal/core/ports"
	"publishx/internal/platform/logx"
	"publishx/internal/platform/registry"
	"publishx/internal/plugins/common"
)

// Name es el nombre registrado del plugin.
const Name = "post_summary"

// Order cae en el bucket post-integrate.
const Order = 3.5

// Auto-registro del plugin al importar el package
func init() {
	registry.Global().MustRegister(New(logx.New()), ports.PluginMetadata{
		Description: "Stores and logs a one-line summary of the publish",
		Version:     "1.0.0",
		Author:      "publishx",
	})
}

// Reporter es un context plugin que resume la publicación.
type Reporter struct {
	common.Base
}

// New crea el plugin de resumen.
func New(logger logx.Logger) *Reporter {
	return &Reporter{
		Base: common.NewBase(logger, common.BaseConfig{
			Name:  Name,
			Order: Order,
		}),
	}
}

// ProcessContext escribe Context.Data["summary"].
func (p *Reporter) ProcessContext(ctx context.Context, c *domain.Context) error {
	line := Line(c)
	c.Data[common.KeySummary] = line
	p.Logger().Info(line)
	return nil
}

// Line construye el resumen de una línea del context.
func Line(c *domain.Context) string {
	publishable := 0
	for _, inst := range c.Instances() {
		if inst.Publishable() {
			publishable++
		}
	}
	files := common.GetStrings(c.Data, common.KeyPublishedFiles)
	return fmt.Sprintf("%d instances (%d publishable), %d files published",
		c.Len(), publishable, len(files))
}
