// internal/core/usecases/progress.go
package usecases

// Progress es el avance global de una ejecución, contado en plugins.
// Invariante: 0 <= Current <= Total, y Current == Total al agotar los resultados.
type Progress struct {
	// Current plugins distintos procesados (o saltados) hasta ahora
	Current int

	// Total plugins programados para la ejecución; fijo desde Start
	Total int
}

// Fraction retorna Current/Total en [0,1]. Una ejecución sin plugins está completa.
func (p Progress) Fraction() float64 {
	if p.Total <= 0 {
		return 1
	}
	f := float64(p.Current) / float64(p.Total)
	if f > 1 {
		return 1
	}
	return f
}

// Done indica si todos los plugins programados fueron contabilizados.
func (p Progress) Done() bool {
	return p.Current >= p.Total
}

// advance suma n plugins. No recorta en Total: un exceso es un error de
// contabilidad y debe quedar visible en Current.
func (p *Progress) advance(n int) {
	if n <= 0 {
		return
	}
	p.Current += n
}
