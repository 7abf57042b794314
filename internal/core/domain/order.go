// internal/core/domain/order.go
package domain

import (
	"fmt"
	"math"
	"strings"
)

// Boundary es el centro canónico de un stage nombrado del pipeline.
// Los plugins cuyo order cae dentro de la banda de un Boundary pertenecen a ese stage.
type Boundary float64

const (
	// CollectorOrder marca el stage de recolección (crea instancias en el context)
	CollectorOrder Boundary = 0

	// ValidatorOrder marca el stage de validación
	ValidatorOrder Boundary = 1

	// ExtractorOrder marca el stage de extracción
	ExtractorOrder Boundary = 2

	// IntegratorOrder marca el stage de integración
	IntegratorOrder Boundary = 3
)

// OrderBand es la mitad del ancho de la banda que rodea a cada Boundary.
const OrderBand = 0.5

// Boundaries retorna los cuatro boundaries nombrados en orden de ejecución.
func Boundaries() []Boundary {
	return []Boundary{CollectorOrder, ValidatorOrder, ExtractorOrder, IntegratorOrder}
}

// InRange indica si order cae dentro de la banda [b-0.5, b+0.5) del boundary.
func InRange(order float64, b Boundary) bool {
	base := float64(b)
	return base-OrderBand <= order && order < base+OrderBand
}

// InAnyRange indica si order cae dentro de la banda de alguno de los boundaries dados.
func InAnyRange(order float64, bs []Boundary) bool {
	for _, b := range bs {
		if InRange(order, b) {
			return true
		}
	}
	return false
}

// ValidOrder rechaza NaN e infinitos, que no pertenecen a ningún bucket.
func ValidOrder(order float64) bool {
	return !math.IsNaN(order) && !math.IsInf(order, 0)
}

// Valid indica si el boundary es uno de los cuatro nombrados.
func (b Boundary) Valid() bool {
	switch b {
	case CollectorOrder, ValidatorOrder, ExtractorOrder, IntegratorOrder:
		return true
	default:
		return false
	}
}

// String retorna el nombre corto del boundary.
func (b Boundary) String() string {
	switch b {
	case CollectorOrder:
		return "collect"
	case ValidatorOrder:
		return "validate"
	case ExtractorOrder:
		return "extract"
	case IntegratorOrder:
		return "integrate"
	default:
		return fmt.Sprintf("order(%g)", float64(b))
	}
}

// Checkpoint retorna el nombre del evento emitido al terminar el stage del boundary.
func (b Boundary) Checkpoint() string {
	switch b {
	case CollectorOrder:
		return "collected"
	case ValidatorOrder:
		return "validated"
	case ExtractorOrder:
		return "extracted"
	case IntegratorOrder:
		return "integrated"
	default:
		return ""
	}
}

// ParseBoundary convierte un nombre de stage en su Boundary.
func ParseBoundary(name string) (Boundary, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "collect", "collector", "collection":
		return CollectorOrder, nil
	case "validate", "validator", "validation":
		return ValidatorOrder, nil
	case "extract", "extractor", "extraction":
		return ExtractorOrder, nil
	case "integrate", "integrator", "integration":
		return IntegratorOrder, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidBoundary, name)
	}
}

// ParseBoundaries convierte una lista de nombres; falla con el primer nombre inválido.
func ParseBoundaries(names []string) ([]Boundary, error) {
	if len(names) == 0 {
		return nil, nil
	}
	out := make([]Boundary, 0, len(names))
	for _, name := range names {
		b, err := ParseBoundary(name)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// ValidateBoundaries verifica que todos los boundaries pedidos sean nombrados.
func ValidateBoundaries(bs []Boundary) error {
	for _, b := range bs {
		if !b.Valid() {
			return fmt.Errorf("%w: %g", ErrInvalidBoundary, float64(b))
		}
	}
	return nil
}

// ContainsBoundary indica si b aparece en bs.
func ContainsBoundary(bs []Boundary, b Boundary) bool {
	for _, candidate := range bs {
		if candidate == b {
			return true
		}
	}
	return false
}
