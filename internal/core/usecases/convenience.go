// internal/core/usecases/convenience.go
package usecases

import (
	"context"

	"publishx/internal/core/domain"
)

// Publish ejecuta el pipeline completo (o los stages de req.Boundaries),
// descarta los resultados y retorna el context final. Emite "published" al terminar.
//
// Los fallos de plugins no producen error; solo la configuración inválida o
// la cancelación lo hacen.
func Publish(ctx context.Context, pub *Publisher, req Request) (*domain.Context, error) {
	run, err := PublishIter(ctx, pub, req)
	if err != nil {
		return nil, err
	}
	Drain(run)
	return run.Context(), run.Err()
}

// PublishIter prepara una ejecución del pipeline con el checkpoint "published".
func PublishIter(ctx context.Context, pub *Publisher, req Request) (*Run, error) {
	req.Publish = true
	return pub.Start(ctx, req)
}

// Collect ejecuta solo la recolección (más pre-collect y post-integrate).
func Collect(ctx context.Context, pub *Publisher, req Request) (*domain.Context, error) {
	return runSingle(ctx, pub, req, domain.CollectorOrder)
}

// Validate ejecuta solo la validación (más pre-collect y post-integrate).
func Validate(ctx context.Context, pub *Publisher, req Request) (*domain.Context, error) {
	return runSingle(ctx, pub, req, domain.ValidatorOrder)
}

// Extract ejecuta solo la extracción (más pre-collect y post-integrate).
func Extract(ctx context.Context, pub *Publisher, req Request) (*domain.Context, error) {
	return runSingle(ctx, pub, req, domain.ExtractorOrder)
}

// Integrate ejecuta solo la integración (más pre-collect y post-integrate).
func Integrate(ctx context.Context, pub *Publisher, req Request) (*domain.Context, error) {
	return runSingle(ctx, pub, req, domain.IntegratorOrder)
}

// CollectIter prepara una ejecución restringida a la recolección.
func CollectIter(ctx context.Context, pub *Publisher, req Request) (*Run, error) {
	return startSingle(ctx, pub, req, domain.CollectorOrder)
}

// ValidateIter prepara una ejecución restringida a la validación.
func ValidateIter(ctx context.Context, pub *Publisher, req Request) (*Run, error) {
	return startSingle(ctx, pub, req, domain.ValidatorOrder)
}

// ExtractIter prepara una ejecución restringida a la extracción.
func ExtractIter(ctx context.Context, pub *Publisher, req Request) (*Run, error) {
	return startSingle(ctx, pub, req, domain.ExtractorOrder)
}

// IntegrateIter prepara una ejecución restringida a la integración.
func IntegrateIter(ctx context.Context, pub *Publisher, req Request) (*Run, error) {
	return startSingle(ctx, pub, req, domain.IntegratorOrder)
}

// StageIter prepara una ejecución restringida a un boundary arbitrario.
func StageIter(ctx context.Context, pub *Publisher, req Request, b domain.Boundary) (*Run, error) {
	return startSingle(ctx, pub, req, b)
}

// Drain consume todos los resultados de run y retorna cuántos hubo.
func Drain(run *Run) int {
	n := 0
	for range run.Results() {
		n++
	}
	return n
}

// Select es el nombre anterior de Collect.
//
// Deprecated: usar Collect.
func Select(ctx context.Context, pub *Publisher, req Request) (*domain.Context, error) {
	return Collect(ctx, pub, req)
}

// Conform es el nombre anterior de Integrate.
//
// Deprecated: usar Integrate.
func Conform(ctx context.Context, pub *Publisher, req Request) (*domain.Context, error) {
	return Integrate(ctx, pub, req)
}

// PublishAll es el nombre anterior de Publish.
//
// Deprecated: usar Publish.
func PublishAll(ctx context.Context, pub *Publisher, req Request) (*domain.Context, error) {
	pub.logger.Warn("PublishAll is deprecated; use Publish")
	return Publish(ctx, pub, req)
}

// ValidateAll ejecuta la recolección y después la validación sobre el mismo context.
//
// Deprecated: usar Collect seguido de Validate.
func ValidateAll(ctx context.Context, pub *Publisher, req Request) (*domain.Context, error) {
	pub.logger.Warn("ValidateAll is deprecated; use Collect followed by Validate")
	c, err := Collect(ctx, pub, req)
	if err != nil {
		return c, err
	}
	req.Context = c
	return Validate(ctx, pub, req)
}

func startSingle(ctx context.Context, pub *Publisher, req Request, b domain.Boundary) (*Run, error) {
	req.Boundaries = []domain.Boundary{b}
	req.Publish = false
	return pub.Start(ctx, req)
}

func runSingle(ctx context.Context, pub *Publisher, req Request, b domain.Boundary) (*domain.Context, error) {
	run, err := startSingle(ctx, pub, req, b)
	if err != nil {
		return nil, err
	}
	Drain(run)
	return run.Context(), run.Err()
}
