// internal/platform/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"publishx/internal/core/domain"
	perrors "publishx/internal/platform/errors"
	"publishx/internal/platform/logx"
	"publishx/internal/platform/ui"
	"publishx/internal/platform/validator"
)

// EnvPrefix prefijo de todas las variables de entorno.
const EnvPrefix = "PUBLISHX_"

// DefaultEnvFile archivo .env leído si existe.
const DefaultEnvFile = ".env"

type Config struct {
	// Logging
	LogLevel string `yaml:"log_level" json:"log_level"`

	// Pipeline
	Targets []string `yaml:"targets" json:"targets"`
	Only    []string `yaml:"only" json:"only"`     // globs de plugins a incluir
	Skip    []string `yaml:"skip" json:"skip"`     // globs de plugins a excluir
	Stages  []string `yaml:"stages" json:"stages"` // boundaries para publish; vacío = todos

	// Plugins built-in
	Manifest  string `yaml:"manifest" json:"manifest"`
	OutputDir string `yaml:"output_dir" json:"output_dir"`

	// UI
	UI   string `yaml:"ui" json:"ui"`
	JSON bool   `yaml:"json" json:"json"`

	// Observabilidad
	MetricsFile string `yaml:"metrics_file" json:"metrics_file"`

	// TimeoutS segundos (0 = sin timeout)
	TimeoutS int `yaml:"timeout" json:"timeout"`

	// Origen de la configuración (no se leen del archivo)
	ConfigPath string `yaml:"-" json:"config_path,omitempty"`
	EnvFile    string `yaml:"-" json:"env_file,omitempty"`
}

// DefaultConfig retorna una configuración por defecto.
func DefaultConfig() Config {
	return Config{
		LogLevel:  "info",
		Targets:   []string{"default"},
		OutputDir: "publishx_out",
		UI:        string(ui.UIModeAuto),
		TimeoutS:  0,
		EnvFile:   DefaultEnvFile,
	}
}

// Nombres de flags.
const (
	FlagConfig      = "config"
	FlagEnvFile     = "env-file"
	FlagLogLevel    = "log-level"
	FlagTargets     = "target"
	FlagOnly        = "only"
	FlagSkip        = "skip"
	FlagStages      = "stage"
	FlagManifest    = "manifest"
	FlagOutputDir   = "out"
	FlagUI          = "ui"
	FlagJSON        = "json"
	FlagMetricsFile = "metrics-file"
	FlagTimeout     = "timeout"
)

// BindFlags registra los flags de configuración en fs.
// Los valores por defecto mostrados son los de DefaultConfig.
func BindFlags(fs *pflag.FlagSet) {
	def := DefaultConfig()

	fs.StringP(FlagConfig, "c", "", "YAML config file (env "+EnvPrefix+"CONFIG)")
	fs.String(FlagEnvFile, def.EnvFile, "dotenv file loaded before the environment")
	fs.String(FlagLogLevel, def.LogLevel, "log level: debug|info|warn|error")
	fs.StringSliceP(FlagTargets, "t", def.Targets, "target label registered during the run (repeatable)")
	fs.StringSlice(FlagOnly, nil, "only run plugins matching these globs")
	fs.StringSlice(FlagSkip, nil, "skip plugins matching these globs")
	fs.StringSlice(FlagStages, nil, "restrict publish to these stages: collect|validate|extract|integrate")
	fs.StringP(FlagManifest, "m", def.Manifest, "instance manifest (YAML or TOML) read by the collector")
	fs.StringP(FlagOutputDir, "o", def.OutputDir, "output directory for extracted files")
	fs.String(FlagUI, def.UI, "ui mode: auto|pterm|plain|quiet")
	fs.Bool(FlagJSON, def.JSON, "emit JSON lines instead of text")
	fs.String(FlagMetricsFile, def.MetricsFile, "write Prometheus metrics to this textfile after the run")
	fs.Int(FlagTimeout, def.TimeoutS, "global timeout in seconds (0 = no timeout)")
}

// Load construye la configuración por capas:
// defaults -> .env -> archivo YAML -> ENV -> flags (solo los cambiados).
// fs puede ser nil.
func Load(fs *pflag.FlagSet) (Config, error) {
	cfg := DefaultConfig()

	if fs != nil && fs.Changed(FlagEnvFile) {
		cfg.EnvFile, _ = fs.GetString(FlagEnvFile)
	}
	if err := loadEnvFile(cfg.EnvFile, cfg.EnvFile != DefaultEnvFile); err != nil {
		return cfg, err
	}

	cfg.ConfigPath = getenv(EnvPrefix+"CONFIG", "")
	if fs != nil && fs.Changed(FlagConfig) {
		cfg.ConfigPath, _ = fs.GetString(FlagConfig)
	}
	if cfg.ConfigPath != "" {
		if err := loadFromFile(cfg.ConfigPath, &cfg); err != nil {
			return cfg, err
		}
	}

	if err := loadFromEnv(&cfg); err != nil {
		return cfg, err
	}

	if fs != nil {
		if err := loadFromFlags(fs, &cfg); err != nil {
			return cfg, err
		}
	}

	normalize(&cfg)

	return cfg, cfg.Validate()
}

// loadEnvFile carga variables desde un archivo dotenv sin pisar las ya definidas.
// Un archivo ausente solo es error si fue pedido explícitamente.
func loadEnvFile(path string, required bool) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if !required && os.IsNotExist(err) {
			return nil
		}
		return &perrors.ConfigError{Field: FlagEnvFile, Value: path, Reason: "cannot read env file", Err: err}
	}
	if err := godotenv.Load(path); err != nil {
		return &perrors.ConfigError{Field: FlagEnvFile, Value: path, Reason: "cannot parse env file", Err: err}
	}
	return nil
}

// loadFromFile aplica los campos presentes en un archivo YAML.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		reason := "cannot read config file"
		if os.IsNotExist(err) {
			reason = "config file not found"
		}
		return &perrors.ConfigError{Field: FlagConfig, Value: path, Reason: reason, Err: err}
	}

	configPath, envFile := cfg.ConfigPath, cfg.EnvFile
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return &perrors.ConfigError{Field: FlagConfig, Value: path, Reason: "invalid YAML", Err: err}
	}
	cfg.ConfigPath, cfg.EnvFile = configPath, envFile
	return nil
}

// loadFromEnv carga configuración desde variables de entorno.
func loadFromEnv(cfg *Config) error {
	if v := getenv(logx.EnvLevel, ""); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv(EnvPrefix+"TARGETS", ""); v != "" {
		cfg.Targets = splitList(v)
	}
	if v := getenv(EnvPrefix+"ONLY", ""); v != "" {
		cfg.Only = splitList(v)
	}
	if v := getenv(EnvPrefix+"SKIP", ""); v != "" {
		cfg.Skip = splitList(v)
	}
	if v := getenv(EnvPrefix+"STAGES", ""); v != "" {
		cfg.Stages = splitList(v)
	}
	if v := getenv(EnvPrefix+"MANIFEST", ""); v != "" {
		cfg.Manifest = v
	}
	if v := getenv(EnvPrefix+"OUTPUT_DIR", ""); v != "" {
		cfg.OutputDir = v
	}
	if v := getenv(EnvPrefix+"UI", ""); v != "" {
		cfg.UI = v
	}
	if v := getenv(EnvPrefix+"JSON", ""); v != "" {
		cfg.JSON = parseBool(v)
	}
	if v := getenv(EnvPrefix+"METRICS_FILE", ""); v != "" {
		cfg.MetricsFile = v
	}
	if v := getenv(EnvPrefix+"TIMEOUT", ""); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return &perrors.ConfigError{Field: EnvPrefix + "TIMEOUT", Value: v, Reason: "not an integer", Err: err}
		}
		cfg.TimeoutS = n
	}
	return nil
}

// loadFromFlags aplica solo los flags que el usuario cambió.
func loadFromFlags(fs *pflag.FlagSet, cfg *Config) error {
	var err error
	set := func(name string, apply func() error) {
		if err != nil || fs.Lookup(name) == nil || !fs.Changed(name) {
			return
		}
		err = apply()
	}

	set(FlagLogLevel, func() (e error) { cfg.LogLevel, e = fs.GetString(FlagLogLevel); return })
	set(FlagTargets, func() (e error) { cfg.Targets, e = fs.GetStringSlice(FlagTargets); return })
	set(FlagOnly, func() (e error) { cfg.Only, e = fs.GetStringSlice(FlagOnly); return })
	set(FlagSkip, func() (e error) { cfg.Skip, e = fs.GetStringSlice(FlagSkip); return })
	set(FlagStages, func() (e error) { cfg.Stages, e = fs.GetStringSlice(FlagStages); return })
	set(FlagManifest, func() (e error) { cfg.Manifest, e = fs.GetString(FlagManifest); return })
	set(FlagOutputDir, func() (e error) { cfg.OutputDir, e = fs.GetString(FlagOutputDir); return })
	set(FlagUI, func() (e error) { cfg.UI, e = fs.GetString(FlagUI); return })
	set(FlagJSON, func() (e error) { cfg.JSON, e = fs.GetBool(FlagJSON); return })
	set(FlagMetricsFile, func() (e error) { cfg.MetricsFile, e = fs.GetString(FlagMetricsFile); return })
	set(FlagTimeout, func() (e error) { cfg.TimeoutS, e = fs.GetInt(FlagTimeout); return })

	if err != nil {
		return fmt.Errorf("read flags: %w", err)
	}
	return nil
}

func normalize(c *Config) {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.UI = strings.ToLower(strings.TrimSpace(c.UI))
	c.Targets = trimAll(c.Targets)
	c.Only = trimAll(c.Only)
	c.Skip = trimAll(c.Skip)
	c.Stages = trimAll(c.Stages)
	c.Manifest = strings.TrimSpace(c.Manifest)
	c.OutputDir = strings.TrimSpace(c.OutputDir)
	if len(c.Targets) == 0 {
		c.Targets = []string{"default"}
	}
	if c.UI == "" {
		c.UI = string(ui.UIModeAuto)
	}
}

// Validate verifica los valores y retorna el primer *errors.ConfigError encontrado.
func (c Config) Validate() error {
	if _, ok := logx.ParseLevel(c.LogLevel); !ok {
		return perrors.NewConfigError(FlagLogLevel, c.LogLevel, "expected debug, info, warn or error")
	}
	if _, ok := ui.ParseUIMode(c.UI); !ok {
		return perrors.NewConfigError(FlagUI, c.UI, "expected auto, pterm, plain or quiet")
	}
	if c.TimeoutS < 0 {
		return perrors.NewConfigError(FlagTimeout, strconv.Itoa(c.TimeoutS), "must be >= 0")
	}
	for _, label := range c.Targets {
		if !validator.IsLabel(label) {
			return perrors.NewConfigError(FlagTargets, label, "expected letters, digits, '.', '_', ':' or '-'")
		}
	}
	for _, name := range c.Stages {
		if _, err := domain.ParseBoundary(name); err != nil {
			return &perrors.ConfigError{Field: FlagStages, Value: name, Reason: "expected collect, validate, extract or integrate", Err: err}
		}
	}
	for _, patterns := range [][]string{c.Only, c.Skip} {
		for _, p := range patterns {
			if _, err := glob.Compile(p); err != nil {
				return &perrors.ConfigError{Field: FlagOnly + "/" + FlagSkip, Value: p, Reason: "invalid glob", Err: err}
			}
		}
	}
	return nil
}

// Boundaries retorna los stages pedidos ya validados (vacío = todos).
func (c Config) Boundaries() []domain.Boundary {
	bs, _ := domain.ParseBoundaries(c.Stages)
	return bs
}

// Level retorna el nivel de log ya validado.
func (c Config) Level() logx.Level {
	lvl, _ := logx.ParseLevel(c.LogLevel)
	return lvl
}

// UIMode retorna el modo de UI ya validado.
func (c Config) UIMode() ui.UIMode {
	mode, _ := ui.ParseUIMode(c.UI)
	return mode
}

// ToJSON serializa la configuración a JSON (útil para debugging).
func (c Config) ToJSON() (string, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Timeout devuelve un time.Duration útil si prefieres trabajar con duración.
func (c Config) Timeout() time.Duration {
	if c.TimeoutS <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutS) * time.Second
}

// Helpers

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func splitList(v string) []string {
	return trimAll(strings.Split(v, ","))
}

func trimAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
