// internal/core/domain/context.go
package domain

// Context es el objeto de trabajo compartido que atraviesa todos los stages.
// Los plugins lo mutan; el orchestrator solo lo pasa por referencia.
type Context struct {
	// Data datos libres a nivel de publicación (rutas, opciones, resumen)
	Data map[string]any

	instances []*Instance
}

// NewContext crea un context vacío.
func NewContext() *Context {
	return &Context{
		Data: make(map[string]any),
	}
}

// CreateInstance agrega una nueva instancia al context y la retorna.
func (c *Context) CreateInstance(name string, families ...string) *Instance {
	inst := &Instance{
		Name:     name,
		Families: append([]string(nil), families...),
		Data:     make(map[string]any),
		parent:   c,
	}
	c.instances = append(c.instances, inst)
	return inst
}

// Instances retorna una copia de la lista de instancias en orden de creación.
func (c *Context) Instances() []*Instance {
	out := make([]*Instance, len(c.instances))
	copy(out, c.instances)
	return out
}

// Len retorna el número de instancias.
func (c *Context) Len() int {
	return len(c.instances)
}

// Get busca una instancia por nombre.
func (c *Context) Get(name string) (*Instance, bool) {
	for _, inst := range c.instances {
		if inst.Name == name {
			return inst, true
		}
	}
	return nil, false
}

// Remove elimina la primera instancia con ese nombre.
func (c *Context) Remove(name string) bool {
	for i, inst := range c.instances {
		if inst.Name == name {
			c.instances = append(c.instances[:i], c.instances[i+1:]...)
			inst.parent = nil
			return true
		}
	}
	return false
}

// Filter conserva solo las instancias para las que keep retorna true.
func (c *Context) Filter(keep func(*Instance) bool) {
	kept := c.instances[:0]
	for _, inst := range c.instances {
		if keep(inst) {
			kept = append(kept, inst)
		} else {
			inst.parent = nil
		}
	}
	c.instances = kept
}

// DataString retorna un valor string del Data del context ("" si no existe).
func (c *Context) DataString(key string) string {
	if c == nil || c.Data == nil {
		return ""
	}
	s, _ := c.Data[key].(string)
	return s
}

// Instance es un elemento de trabajo creado durante la recolección.
type Instance struct {
	// Name identificador legible de la instancia
	Name string

	// Families familias de la instancia; la primera es la familia principal
	Families []string

	// Data datos de la instancia
	Data map[string]any

	parent *Context
}

// Parent retorna el context dueño de la instancia (nil si fue removida).
func (i *Instance) Parent() *Context {
	return i.parent
}

// Family retorna la familia principal.
func (i *Instance) Family() string {
	if len(i.Families) == 0 {
		return ""
	}
	return i.Families[0]
}

// Publishable es false solo cuando Data["publish"] es explícitamente false.
func (i *Instance) Publishable() bool {
	if v, ok := i.Data["publish"].(bool); ok {
		return v
	}
	return true
}

// HasFamily indica si alguna familia de la instancia coincide con los patrones.
// "*" coincide con todo, incluso con instancias sin familia.
func (i *Instance) HasFamily(patterns []string) bool {
	for _, p := range patterns {
		if p == "*" {
			return true
		}
		for _, f := range i.Families {
			if f == p {
				return true
			}
		}
	}
	return false
}
