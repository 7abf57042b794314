// internal/core/ports/plugin.go
package ports

import (
	"context"

	"publishx/internal/core/domain"
)

// DefaultTarget es el target implícito cuando no se pide ninguno.
const DefaultTarget = "default"

// Plugin es el port primario para todas las unidades de procesamiento.
// Cada plugin es exactamente de un tipo: ContextPlugin o InstancePlugin.
type Plugin interface {
	// Name retorna el nombre único del plugin
	Name() string

	// Order retorna la prioridad numérica; menor se ejecuta antes
	Order() float64

	// Active indica si el plugin participa; los inactivos se ignoran por completo
	Active() bool

	// Targets retorna los targets para los que el plugin es elegible (vacío = "default")
	Targets() []string

	// Families retorna las familias de instancias que procesa (vacío = "*")
	Families() []string
}

// ContextPlugin procesa el context completo una vez por ejecución.
type ContextPlugin interface {
	Plugin

	ProcessContext(ctx context.Context, c *domain.Context) error
}

// InstancePlugin procesa cada instancia compatible del context.
type InstancePlugin interface {
	Plugin

	ProcessInstance(ctx context.Context, inst *domain.Instance) error
}

// Kind define el tipo cerrado de un plugin.
type Kind string

const (
	KindContext  Kind = "context"
	KindInstance Kind = "instance"
	KindInvalid  Kind = "invalid"
)

// KindOf clasifica un plugin. Un plugin que implementa ambos tipos, o ninguno,
// es KindInvalid.
func KindOf(p Plugin) Kind {
	if p == nil {
		return KindInvalid
	}
	_, isContext := p.(ContextPlugin)
	_, isInstance := p.(InstancePlugin)
	switch {
	case isContext && !isInstance:
		return KindContext
	case isInstance && !isContext:
		return KindInstance
	default:
		return KindInvalid
	}
}

// TargetsOf retorna los targets del plugin con el default aplicado.
func TargetsOf(p Plugin) []string {
	if targets := p.Targets(); len(targets) > 0 {
		return targets
	}
	return []string{DefaultTarget}
}

// FamiliesOf retorna las familias del plugin con el default "*" aplicado.
func FamiliesOf(p Plugin) []string {
	if families := p.Families(); len(families) > 0 {
		return families
	}
	return []string{"*"}
}

// PluginMetadata describe un plugin registrado.
type PluginMetadata struct {
	Name        string
	Description string
	Version     string
	Author      string
	Order       float64
	Kind        Kind
	Targets     []string
	Families    []string
}

// MetadataOf construye la metadata básica a partir del propio plugin.
func MetadataOf(p Plugin) PluginMetadata {
	return PluginMetadata{
		Name:     p.Name(),
		Order:    p.Order(),
		Kind:     KindOf(p),
		Targets:  TargetsOf(p),
		Families: FamiliesOf(p),
	}
}
