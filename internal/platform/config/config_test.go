// internal/platform/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"publishx/internal/core/domain"
	perrors "publishx/internal/platform/errors"
	"publishx/internal/platform/logx"
	"publishx/internal/platform/ui"
	"publishx/internal/testutil"
)

func TestGetenv(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		def      string
		envValue string
		expected string
	}{
		{
			name:     "env var exists",
			key:      "PUBLISHX_TEST_KEY_1",
			def:      "default",
			envValue: "custom",
			expected: "custom",
		},
		{
			name:     "env var missing - uses default",
			key:      "PUBLISHX_TEST_KEY_MISSING",
			def:      "default",
			envValue: "",
			expected: "default",
		},
		{
			name:     "env var empty string",
			key:      "PUBLISHX_TEST_KEY_EMPTY",
			def:      "default",
			envValue: "",
			expected: "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			if tt.envValue != "" {
				t.Setenv(tt.key, tt.envValue)
			}

			// Execute
			result := getenv(tt.key, tt.def)

			// Assert
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		// Truthy values
		{"1", true},
		{"t", true},
		{"T", true},
		{"true", true},
		{"True", true},
		{"TRUE", true},
		{"y", true},
		{"Y", true},
		{"yes", true},
		{"Yes", true},
		{"YES", true},
		{"on", true},
		{"On", true},
		{"ON", true},
		{" true ", true},
		{" 1 ", true},

		// Falsy values
		{"0", false},
		{"f", false},
		{"false", false},
		{"False", false},
		{"FALSE", false},
		{"n", false},
		{"no", false},
		{"off", false},
		{"", false},
		{"random", false},
		{"garbage", false},
		{" false ", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := parseBool(tt.input)
			if result != tt.expected {
				t.Errorf("parseBool(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return fs
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"a", []string{"a"}},
		{"a,b", []string{"a", "b"}},
		{" a , ,b ", []string{"a", "b"}},
		{",", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := splitList(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("splitList(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("splitList(%q)[%d] = %q, expected %q", tt.input, i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	cfg := Config{
		LogLevel: "  DEBUG ",
		UI:       "",
		Targets:  []string{" ", ""},
		Only:     []string{" collect_* "},
		Manifest: " shot.yaml ",
	}
	normalize(&cfg)

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, expected debug", cfg.LogLevel)
	}
	if cfg.UI != string(ui.UIModeAuto) {
		t.Errorf("UI = %q, expected auto", cfg.UI)
	}
	if len(cfg.Targets) != 1 || cfg.Targets[0] != "default" {
		t.Errorf("Targets = %v, expected [default]", cfg.Targets)
	}
	if cfg.Only[0] != "collect_*" {
		t.Errorf("Only = %v", cfg.Only)
	}
	if cfg.Manifest != "shot.yaml" {
		t.Errorf("Manifest = %q", cfg.Manifest)
	}
}

func TestConfig_Timeout(t *testing.T) {
	tests := []struct {
		timeoutS int
		expected time.Duration
	}{
		{0, 0},
		{-1, 0},
		{30, 30 * time.Second},
	}

	for _, tt := range tests {
		cfg := Config{TimeoutS: tt.timeoutS}
		if got := cfg.Timeout(); got != tt.expected {
			t.Errorf("Timeout() with %d = %v, expected %v", tt.timeoutS, got, tt.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		field   string
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, "", false},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, FlagLogLevel, true},
		{"bad ui mode", func(c *Config) { c.UI = "fancy" }, FlagUI, true},
		{"negative timeout", func(c *Config) { c.TimeoutS = -5 }, FlagTimeout, true},
		{"bad glob", func(c *Config) { c.Skip = []string{"[oops"} }, FlagOnly + "/" + FlagSkip, true},
		{"bad target", func(c *Config) { c.Targets = []string{"render farm"} }, FlagTargets, true},
		{"known stages", func(c *Config) { c.Stages = []string{"collect", "Validation"} }, "", false},
		{"unknown stage", func(c *Config) { c.Stages = []string{"render"} }, FlagStages, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var ce *perrors.ConfigError
			if !perrors.As(err, &ce) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
			if ce.Field != tt.field {
				t.Errorf("Field = %q, expected %q", ce.Field, tt.field)
			}
			if !perrors.IsInvalidInput(err) {
				t.Error("config errors should classify as invalid input")
			}
		})
	}
}

func TestConfig_Boundaries(t *testing.T) {
	cfg := DefaultConfig()
	testutil.AssertLen(t, cfg.Boundaries(), 0, "no stages means all boundaries")

	cfg.Stages = []string{"validate", "integrate"}
	got := cfg.Boundaries()
	testutil.AssertLen(t, got, 2, "two boundaries")
	testutil.AssertEqual(t, got[0], domain.ValidatorOrder, "first boundary")
	testutil.AssertEqual(t, got[1], domain.IntegratorOrder, "second boundary")
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	def := DefaultConfig()
	if cfg.LogLevel != def.LogLevel || cfg.OutputDir != def.OutputDir || cfg.UI != def.UI {
		t.Errorf("Load() = %+v, expected defaults %+v", cfg, def)
	}
	if cfg.Level() != logx.LevelInfo {
		t.Errorf("Level() = %v, expected info", cfg.Level())
	}
	if cfg.UIMode() != ui.UIModeAuto {
		t.Errorf("UIMode() = %v, expected auto", cfg.UIMode())
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv(logx.EnvLevel, "warn")
	t.Setenv(EnvPrefix+"TARGETS", "farm, local")
	t.Setenv(EnvPrefix+"SKIP", "extract_*")
	t.Setenv(EnvPrefix+"MANIFEST", "shot.toml")
	t.Setenv(EnvPrefix+"JSON", "yes")
	t.Setenv(EnvPrefix+"TIMEOUT", "15")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if len(cfg.Targets) != 2 || cfg.Targets[1] != "local" {
		t.Errorf("Targets = %v", cfg.Targets)
	}
	if len(cfg.Skip) != 1 || cfg.Skip[0] != "extract_*" {
		t.Errorf("Skip = %v", cfg.Skip)
	}
	if cfg.Manifest != "shot.toml" || !cfg.JSON || cfg.TimeoutS != 15 {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoad_InvalidEnvTimeout(t *testing.T) {
	t.Setenv(EnvPrefix+"TIMEOUT", "soon")

	_, err := Load(nil)
	if !perrors.IsConfig(err) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestLoad_FileEnvFlagsPrecedence(t *testing.T) {
	path := writeFile(t, "publishx.yaml", `
log_level: debug
targets: [farm]
output_dir: from-file
manifest: file.yaml
ui: plain
timeout: 5
`)
	t.Setenv(EnvPrefix+"OUTPUT_DIR", "from-env")

	fs := newFlagSet(t, "--config", path, "--manifest", "flag.yaml")
	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ConfigPath != path {
		t.Errorf("ConfigPath = %q, expected %q", cfg.ConfigPath, path)
	}
	if cfg.LogLevel != "debug" || cfg.UI != "plain" || cfg.TimeoutS != 5 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Targets[0] != "farm" {
		t.Errorf("unchanged --target flag must not override the file, got %v", cfg.Targets)
	}
	if cfg.OutputDir != "from-env" {
		t.Errorf("OutputDir = %q, env should override file", cfg.OutputDir)
	}
	if cfg.Manifest != "flag.yaml" {
		t.Errorf("Manifest = %q, flag should override file", cfg.Manifest)
	}
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	path := writeFile(t, "c.yaml", "json: true\n")
	t.Setenv(EnvPrefix+"CONFIG", path)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.JSON {
		t.Error("expected json from config file")
	}
}

func TestLoad_ConfigFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		fs := newFlagSet(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"))
		_, err := Load(fs)
		var ce *perrors.ConfigError
		if !perrors.As(err, &ce) || ce.Reason != "config file not found" {
			t.Fatalf("expected not found config error, got %v", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeFile(t, "bad.yaml", "targets: [unclosed\n")
		_, err := Load(newFlagSet(t, "--config", path))
		if !perrors.IsConfig(err) {
			t.Fatalf("expected config error, got %v", err)
		}
	})
}

func TestLoad_EnvFile(t *testing.T) {
	const key = EnvPrefix + "METRICS_FILE"
	// godotenv no pisa variables existentes: t.Setenv registra la restauración y luego se elimina
	t.Setenv(key, "")
	os.Unsetenv(key)
	path := writeFile(t, "test.env", key+"=/tmp/publishx.prom\n")

	cfg, err := Load(newFlagSet(t, "--env-file", path))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.MetricsFile != "/tmp/publishx.prom" {
		t.Errorf("MetricsFile = %q, expected value from env file", cfg.MetricsFile)
	}
}

func TestLoad_MissingExplicitEnvFile(t *testing.T) {
	_, err := Load(newFlagSet(t, "--env-file", filepath.Join(t.TempDir(), "missing.env")))
	if !perrors.IsConfig(err) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestLoad_FlagsOverride(t *testing.T) {
	fs := newFlagSet(t,
		"--target", "farm", "--target", "local",
		"--only", "collect_*",
		"--stage", "validate",
		"--ui", "quiet",
		"--json",
		"--timeout", "9",
		"--log-level", "error",
	)

	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(cfg.Targets) != 2 || cfg.Targets[0] != "farm" {
		t.Errorf("Targets = %v", cfg.Targets)
	}
	if cfg.Only[0] != "collect_*" || cfg.Stages[0] != "validate" {
		t.Errorf("Only/Stages = %v/%v", cfg.Only, cfg.Stages)
	}
	if cfg.UIMode() != ui.UIModeQuiet || !cfg.JSON || cfg.TimeoutS != 9 || cfg.Level() != logx.LevelError {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoad_InvalidFlagValue(t *testing.T) {
	_, err := Load(newFlagSet(t, "--ui", "fancy"))
	if !perrors.IsConfig(err) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestConfig_ToJSON(t *testing.T) {
	out, err := DefaultConfig().ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error: %v", err)
	}
	if !strings.Contains(out, `"output_dir": "publishx_out"`) {
		t.Errorf("unexpected JSON: %s", out)
	}
}

