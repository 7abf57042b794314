// internal/plugins/manifest/manifest.go
package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"publishx/internal/core/domain"
	"publishx/internal/core/ports"
	"publishx/internal/platform/logx"
	"publishx/internal/platform/registry"
	"publishx/internal/platform/validator"
	"publishx/internal/plugins/common"
)

// Name es el nombre registrado del plugin.
const Name = "collect_manifest"

// Auto-registro del plugin al importar el package
func init() {
	registry.Global().MustRegister(New(logx.New()), ports.PluginMetadata{
		Description: "Creates instances from a YAML or TOML manifest",
		Version:     "1.0.0",
		Author:      "publishx",
	})
}

// File es el formato del manifest.
type File struct {
	// Data se mezcla en Context.Data sin pisar claves existentes
	Data      map[string]any `yaml:"data" toml:"data"`
	Instances []Entry        `yaml:"instances" toml:"instances"`
}

// Entry describe una instancia a crear.
type Entry struct {
	Name     string         `yaml:"name" toml:"name"`
	Families []string       `yaml:"families" toml:"families"`
	Data     map[string]any `yaml:"data" toml:"data"`
}

// Collector es un context plugin que lee Context.Data["manifest_path"] y
// crea una instancia por cada entrada del manifest.
type Collector struct {
	common.Base
}

// New crea el plugin de recolección por manifest.
func New(logger logx.Logger) *Collector {
	return &Collector{
		Base: common.NewBase(logger, common.BaseConfig{
			Name:  Name,
			Order: float64(domain.CollectorOrder),
		}),
	}
}

// ProcessContext carga el manifest. Sin manifest_path no hace nada.
func (p *Collector) ProcessContext(ctx context.Context, c *domain.Context) error {
	path := c.DataString(common.KeyManifestPath)
	if path == "" {
		p.Logger().Debug("no manifest configured")
		return nil
	}

	file, err := Load(path)
	if err != nil {
		return err
	}

	for k, v := range file.Data {
		if _, exists := c.Data[k]; !exists {
			c.Data[k] = v
		}
	}

	for _, e := range file.Instances {
		if err := ctx.Err(); err != nil {
			return err
		}
		inst := c.CreateInstance(e.Name, e.Families...)
		for k, v := range e.Data {
			inst.Data[k] = v
		}
	}

	p.Logger().Info("manifest collected", "path", path, "instances", len(file.Instances))
	return nil
}

// Load lee y decodifica un manifest. El formato se elige por extensión:
// ".toml" es TOML; cualquier otra se decodifica como YAML (que incluye JSON).
func Load(path string) (File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("%w: %s: %w", domain.ErrManifestParse, path, err)
	}
	return Parse(raw, Format(path))
}

// Format retorna "toml" o "yaml" según la extensión de path.
func Format(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return "toml"
	}
	return "yaml"
}

// Parse decodifica raw en el formato dado y valida las entradas.
func Parse(raw []byte, format string) (File, error) {
	var file File
	var err error
	switch format {
	case "toml":
		err = toml.Unmarshal(raw, &file)
	case "yaml":
		err = yaml.Unmarshal(raw, &file)
	default:
		return File{}, fmt.Errorf("%w: unknown format %q", domain.ErrManifestParse, format)
	}
	if err != nil {
		return File{}, fmt.Errorf("%w: %w", domain.ErrManifestParse, err)
	}

	seen := make(map[string]bool, len(file.Instances))
	for i, e := range file.Instances {
		if !validator.IsName(e.Name) {
			return File{}, fmt.Errorf("%w: instance %d has an invalid name %q", domain.ErrManifestParse, i, e.Name)
		}
		if seen[e.Name] {
			return File{}, fmt.Errorf("%w: duplicate instance %q", domain.ErrManifestParse, e.Name)
		}
		seen[e.Name] = true
	}
	return file, nil
}
