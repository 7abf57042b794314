// internal/platform/registry/filter.go
package registry

import (
	"fmt"

	"github.com/gobwas/glob"

	"publishx/internal/core/ports"
)

// FilterByName selecciona plugins por nombre con patrones glob ("validate_*").
// Con include vacío se conservan todos; exclude se aplica después de include.
// El orden relativo de entrada se conserva.
func FilterByName(plugins []ports.Plugin, include, exclude []string) ([]ports.Plugin, error) {
	inc, err := compileAll(include)
	if err != nil {
		return nil, err
	}
	exc, err := compileAll(exclude)
	if err != nil {
		return nil, err
	}

	out := make([]ports.Plugin, 0, len(plugins))
	for _, p := range plugins {
		name := p.Name()
		if len(inc) > 0 && !matchAny(inc, name) {
			continue
		}
		if matchAny(exc, name) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func compileAll(patterns []string) ([]glob.Glob, error) {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid plugin pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, g)
	}
	return compiled, nil
}

func matchAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}
