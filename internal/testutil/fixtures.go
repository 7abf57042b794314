// internal/testutil/fixtures.go
package testutil

import "publishx/internal/core/domain"

// FixtureManifestYAML es un manifest YAML válido con dos instancias.
const FixtureManifestYAML = `instances:
  - name: hero
    families: [model, rig]
    data:
      path: assets/hero.ma
      required: [path]
  - name: backdrop
    families: [texture]
    data:
      publish: false
`

// FixtureManifestTOML es el mismo manifest en TOML.
const FixtureManifestTOML = `[[instances]]
name = "hero"
families = ["model", "rig"]

[instances.data]
path = "assets/hero.ma"
required = ["path"]

[[instances]]
name = "backdrop"
families = ["texture"]

[instances.data]
publish = false
`

// FixtureContext crea un context con tres instancias de familias distintas.
// "disabled" tiene publish=false.
func FixtureContext() *domain.Context {
	c := domain.NewContext()
	c.CreateInstance("hero", "model")
	c.CreateInstance("shot010", "render")
	disabled := c.CreateInstance("disabled", "model")
	disabled.Data["publish"] = false
	return c
}
