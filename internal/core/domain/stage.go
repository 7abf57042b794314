// internal/core/domain/stage.go
package domain

// Stage identifica uno de los seis buckets del pipeline, en orden de ejecución.
type Stage int

const (
	StagePreCollect Stage = iota
	StageCollect
	StageValidate
	StageExtract
	StageIntegrate
	StagePostIntegrate
)

// Stages retorna los seis stages en el orden fijo de ejecución.
func Stages() []Stage {
	return []Stage{
		StagePreCollect,
		StageCollect,
		StageValidate,
		StageExtract,
		StageIntegrate,
		StagePostIntegrate,
	}
}

// String retorna la etiqueta del stage.
func (s Stage) String() string {
	switch s {
	case StagePreCollect:
		return "pre-collect"
	case StageCollect:
		return "collect"
	case StageValidate:
		return "validate"
	case StageExtract:
		return "extract"
	case StageIntegrate:
		return "integrate"
	case StagePostIntegrate:
		return "post-integrate"
	default:
		return "unknown"
	}
}

// Boundary retorna el boundary que controla el stage. Pre-collect y
// post-integrate no tienen boundary: nunca se filtran por selección de stages.
func (s Stage) Boundary() (Boundary, bool) {
	switch s {
	case StageCollect:
		return CollectorOrder, true
	case StageValidate:
		return ValidatorOrder, true
	case StageExtract:
		return ExtractorOrder, true
	case StageIntegrate:
		return IntegratorOrder, true
	default:
		return 0, false
	}
}

// Gated indica si el stage depende de la selección de boundaries.
func (s Stage) Gated() bool {
	_, ok := s.Boundary()
	return ok
}

// StageOf clasifica un order en su stage. Para cualquier order finito la
// clasificación es exhaustiva: las bandas nombradas cubren [-0.5, 3.5).
// ok es false solo para NaN o infinitos.
func StageOf(order float64) (stage Stage, ok bool) {
	if !ValidOrder(order) {
		return 0, false
	}
	switch {
	case InRange(order, CollectorOrder):
		return StageCollect, true
	case InRange(order, ValidatorOrder):
		return StageValidate, true
	case InRange(order, ExtractorOrder):
		return StageExtract, true
	case InRange(order, IntegratorOrder):
		return StageIntegrate, true
	case order < float64(CollectorOrder) && !InRange(order, CollectorOrder):
		return StagePreCollect, true
	case order > float64(IntegratorOrder) && !InRange(order, IntegratorOrder):
		return StagePostIntegrate, true
	default:
		return 0, false
	}
}
