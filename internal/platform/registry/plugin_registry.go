// internal/platform/registry/plugin_registry.go
package registry

import (
	"fmt"
	"sort"
	"sync"

	"publishx/internal/core/domain"
	"publishx/internal/core/ports"
	"publishx/internal/platform/logx"
)

// PluginRegistry gestiona el registro de plugins disponibles.
// Implementa ports.PluginDiscoverer: los plugins se registran desde init()
// de cada paquete y el publisher los descubre cuando el caller no pasa ninguno.
type PluginRegistry struct {
	mu       sync.RWMutex
	entries  map[string]entry
	sequence int
	logger   logx.Logger
}

type entry struct {
	plugin ports.Plugin
	meta   ports.PluginMetadata
	seq    int
}

// globalRegistry es la instancia global del registry.
var globalRegistry *PluginRegistry
var once sync.Once

// Global retorna la instancia global del registry.
func Global() *PluginRegistry {
	once.Do(func() {
		globalRegistry = NewPluginRegistry(logx.New())
	})
	return globalRegistry
}

// NewPluginRegistry crea un nuevo registry de plugins.
func NewPluginRegistry(logger logx.Logger) *PluginRegistry {
	if logger == nil {
		logger = logx.New()
	}
	return &PluginRegistry{
		entries: make(map[string]entry),
		logger:  logger.With("component", "plugin-registry"),
	}
}

// Register registra un plugin con su metadata.
// Los campos de meta no fijados se completan a partir del propio plugin.
// Típicamente llamado desde init() de cada paquete de plugins.
func (r *PluginRegistry) Register(plugin ports.Plugin, meta ports.PluginMetadata) error {
	if plugin == nil {
		return fmt.Errorf("%w: plugin cannot be nil", domain.ErrInvalidPlugin)
	}

	name := plugin.Name()
	if name == "" {
		return fmt.Errorf("%w: plugin name cannot be empty", domain.ErrInvalidPlugin)
	}
	if ports.KindOf(plugin) == ports.KindInvalid {
		return fmt.Errorf("%w: %s must be a context or an instance plugin", domain.ErrInvalidPlugin, name)
	}
	if !domain.ValidOrder(plugin.Order()) {
		return fmt.Errorf("%w: %s has order %v", domain.ErrInvalidOrder, name, plugin.Order())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicatePlugin, name)
	}

	r.sequence++
	r.entries[name] = entry{
		plugin: plugin,
		meta:   completeMetadata(plugin, meta),
		seq:    r.sequence,
	}
	r.logger.Debug("plugin registered", "name", name, "order", plugin.Order(), "kind", ports.KindOf(plugin))

	return nil
}

// MustRegister registra un plugin y entra en pánico si falla. Para init().
func (r *PluginRegistry) MustRegister(plugin ports.Plugin, meta ports.PluginMetadata) {
	if err := r.Register(plugin, meta); err != nil {
		panic(err)
	}
}

// Deregister elimina un plugin registrado.
func (r *PluginRegistry) Deregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; !exists {
		return fmt.Errorf("%w: %s", domain.ErrPluginNotFound, name)
	}
	delete(r.entries, name)
	return nil
}

// Discover retorna los plugins registrados ordenados por order y, a igual
// order, por orden de registro.
func (r *PluginRegistry) Discover() []ports.Plugin {
	entries := r.sorted()
	plugins := make([]ports.Plugin, 0, len(entries))
	for _, e := range entries {
		plugins = append(plugins, e.plugin)
	}
	return plugins
}

// List retorna los nombres de todos los plugins registrados, en orden de ejecución.
func (r *PluginRegistry) List() []string {
	entries := r.sorted()
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.meta.Name)
	}
	return names
}

// Get retorna un plugin por nombre.
func (r *PluginRegistry) Get(name string) (ports.Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.entries[name]
	return e.plugin, exists
}

// Metadata retorna la metadata de un plugin.
func (r *PluginRegistry) Metadata(name string) (ports.PluginMetadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.entries[name]
	return e.meta, exists
}

// AllMetadata retorna la metadata de todos los plugins, en orden de ejecución.
func (r *PluginRegistry) AllMetadata() []ports.PluginMetadata {
	entries := r.sorted()
	out := make([]ports.PluginMetadata, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.meta)
	}
	return out
}

// IsRegistered verifica si un plugin está registrado.
func (r *PluginRegistry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.entries[name]
	return exists
}

// Len retorna el número de plugins registrados.
func (r *PluginRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Clear elimina todos los plugins registrados (útil para testing).
func (r *PluginRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[string]entry)
	r.sequence = 0
}

func (r *PluginRegistry) sorted() []entry {
	r.mu.RLock()
	entries := make([]entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool {
		oi, oj := entries[i].plugin.Order(), entries[j].plugin.Order()
		if oi != oj {
			return oi < oj
		}
		return entries[i].seq < entries[j].seq
	})
	return entries
}

func completeMetadata(plugin ports.Plugin, meta ports.PluginMetadata) ports.PluginMetadata {
	derived := ports.MetadataOf(plugin)
	if meta.Name == "" {
		meta.Name = derived.Name
	}
	meta.Order = derived.Order
	meta.Kind = derived.Kind
	if len(meta.Targets) == 0 {
		meta.Targets = derived.Targets
	}
	if len(meta.Families) == 0 {
		meta.Families = derived.Families
	}
	return meta
}
