// internal/plugins/common/data.go
package common

import "fmt"

// Helpers de extracción type-safe para los mapas Data de context e instancias.
// Los valores llegan de manifests YAML/TOML, por eso aceptan varias representaciones.

// GetString extrae un string no vacío de data, o defaultValue.
func GetString(data map[string]any, key, defaultValue string) string {
	if data == nil {
		return defaultValue
	}
	if val, ok := data[key].(string); ok && val != "" {
		return val
	}
	return defaultValue
}

// GetStrings extrae una lista de strings. Acepta []string, []any con
// elementos string y un string suelto (lista de un elemento).
func GetStrings(data map[string]any, key string) []string {
	if data == nil {
		return nil
	}
	switch v := data[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			} else {
				out = append(out, fmt.Sprint(item))
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}

// GetBool extrae un bool de data, o defaultValue.
func GetBool(data map[string]any, key string, defaultValue bool) bool {
	if data == nil {
		return defaultValue
	}
	if val, ok := data[key].(bool); ok {
		return val
	}
	return defaultValue
}

// Has indica si data contiene key con un valor no nil.
func Has(data map[string]any, key string) bool {
	if data == nil {
		return false
	}
	v, ok := data[key]
	return ok && v != nil
}

// Claves de Data compartidas por los plugins built-in.
const (
	KeyManifestPath   = "manifest_path"   // context: ruta del manifest a recolectar
	KeyOutputDir      = "output_dir"      // context: directorio de exportación
	KeyPublishedFiles = "published_files" // context: []string registrado en integración
	KeySummary        = "summary"         // context: resumen de una línea
	KeyRequired       = "required"        // instancia: claves obligatorias
	KeyExportPath     = "export_path"     // instancia: archivo exportado
)
