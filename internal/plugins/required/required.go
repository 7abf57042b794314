// internal/plugins/required/required.go
package required

import (
	"context"
	"fmt"
	"strings"

	"publishx/internal/core/domain"
	"publishx/internal/core/ports"
	perrors "publishx/internal/platform/errors"
	"publishx/internal/platform/logx"
	"publishx/internal/platform/registry"
	"publishx/internal/plugins/common"
)

// Name es el nombre registrado del plugin.
const Name = "validate_required"

// Auto-registro del plugin al importar el package
func init() {
	registry.Global().MustRegister(New(logx.New()), ports.PluginMetadata{
		Description: "Fails instances missing the data keys listed in their \"required\" entry",
		Version:     "1.0.0",
		Author:      "publishx",
	})
}

// Validator es un instance plugin que exige las claves de Data["required"].
type Validator struct {
	common.Base
}

// New crea el validador de claves obligatorias.
func New(logger logx.Logger) *Validator {
	return &Validator{
		Base: common.NewBase(logger, common.BaseConfig{
			Name:  Name,
			Order: float64(domain.ValidatorOrder),
		}),
	}
}

// ProcessInstance falla si falta alguna clave obligatoria.
func (p *Validator) ProcessInstance(ctx context.Context, inst *domain.Instance) error {
	missing := Missing(inst)
	if len(missing) == 0 {
		return nil
	}
	p.Logger().Debug("instance missing required data", "instance", inst.Name, "missing", missing)
	return perrors.Wrap(
		fmt.Errorf("%w: missing %s", perrors.ErrInvalidInput, strings.Join(missing, ", ")),
		"instance "+inst.Name,
	)
}

// Missing retorna, en orden, las claves obligatorias ausentes de la instancia.
func Missing(inst *domain.Instance) []string {
	var missing []string
	for _, key := range common.GetStrings(inst.Data, common.KeyRequired) {
		if !common.Has(inst.Data, key) {
			missing = append(missing, key)
		}
	}
	return missing
}
