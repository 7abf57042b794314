// internal/platform/logx/logx_test.go
package logx

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestNew_LevelFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		want     Level
	}{
		{"debug", "debug", LevelDebug},
		{"short tag", "dbg", LevelDebug},
		{"mixed case warning", "Warning", LevelWarn},
		{"error with spaces", "  error ", LevelError},
		{"empty defaults to info", "", LevelInfo},
		{"unknown falls back to info", "verbose", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvLevel, tt.envValue)

			impl, ok := New().(*simpleLogger)
			if !ok {
				t.Fatal("New() should return *simpleLogger")
			}
			if impl.lvl != tt.want {
				t.Errorf("%s=%q: level %v, want %v", EnvLevel, tt.envValue, impl.lvl, tt.want)
			}
		})
	}
}

func TestEnvLevelName(t *testing.T) {
	if EnvLevel != "PUBLISHX_LOG_LEVEL" {
		t.Errorf("EnvLevel = %q", EnvLevel)
	}
}

func TestNewWithWriter_Filtering(t *testing.T) {
	tests := []struct {
		level Level
		tags  map[string]bool
	}{
		{LevelDebug, map[string]bool{"DBG": true, "INF": true, "WRN": true, "ERR": true}},
		{LevelInfo, map[string]bool{"DBG": false, "INF": true, "WRN": true, "ERR": true}},
		{LevelWarn, map[string]bool{"DBG": false, "INF": false, "WRN": true, "ERR": true}},
		{LevelError, map[string]bool{"DBG": false, "INF": false, "WRN": false, "ERR": true}},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWithWriter(&buf, tt.level)

			logger.Debug("executing stage", "stage", "collect")
			logger.Info("starting publish run", "plugins", 5)
			logger.Warn("plugin failed", "plugin", "validate_required")
			logger.Err(errors.New("write summary"), "phase", "output")

			out := buf.String()
			for tag, want := range tt.tags {
				if got := strings.Contains(out, " "+tag+" ") || strings.Contains(out, " "+tag+"\n"); got != want {
					t.Errorf("level %v: tag %s present=%v, want %v\n%s", tt.level, tag, got, want, out)
				}
			}
		})
	}
}

func TestLogger_WithScopesRunAndPlugin(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithWriter(&buf, LevelInfo)

	run := base.With("run_id", "r-1")
	plugin := run.With("plugin", "extract_json")

	plugin.Info("wrote instance", "path", "out/hero.json")
	base.Info("unscoped")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "run_id=r-1 plugin=extract_json path=out/hero.json") {
		t.Errorf("scope should precede call fields in order: %s", lines[0])
	}
	if strings.Contains(lines[1], "run_id") {
		t.Errorf("With must not leak into the parent logger: %s", lines[1])
	}
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, LevelInfo)

	logger.Debug("before")
	logger.SetLevel(LevelDebug)
	logger.Debug("after")

	out := buf.String()
	if strings.Contains(out, "before") {
		t.Errorf("debug line logged before SetLevel: %s", out)
	}
	if !strings.Contains(out, "after") {
		t.Errorf("debug line missing after SetLevel: %s", out)
	}
}

func TestLogger_Err(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, LevelError)

	logger.Err(nil, "phase", "metrics")
	if buf.Len() != 0 {
		t.Fatalf("nil error should not log: %q", buf.String())
	}

	logger.Err(errors.New("disk full"), "phase", "metrics")
	out := buf.String()
	if !strings.Contains(out, "ERR error=disk full phase=metrics") {
		t.Errorf("unexpected error line: %q", out)
	}
	if strings.Contains(out, "  ") {
		t.Errorf("error line without message should not contain double spaces: %q", out)
	}
}

func TestKVPairs(t *testing.T) {
	tests := []struct {
		name string
		in   []any
		want []string
	}{
		{"empty", nil, []string{}},
		{"pairs", []any{"stage", "validate", "failures", 2}, []string{"stage=validate", "failures=2"}},
		{"odd count", []any{"plugin"}, []string{"plugin=(missing)"}},
		{"float order", []any{"order", 3.5}, []string{"order=3.5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kvPairs(tt.in...)
			if len(got) != len(tt.want) {
				t.Fatalf("kvPairs(%v) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("pair %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
		ok    bool
	}{
		{"debug", LevelDebug, true},
		{"", LevelInfo, true},
		{"INFO", LevelInfo, true},
		{"WARNING", LevelWarn, true},
		{"err", LevelError, true},
		{"loud", LevelInfo, false},
	}

	for _, tt := range tests {
		got, ok := ParseLevel(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLevelString(t *testing.T) {
	names := map[Level]string{
		LevelDebug: "debug",
		LevelInfo:  "info",
		LevelWarn:  "warn",
		LevelError: "error",
		Level(9):   "level(9)",
	}
	for lvl, want := range names {
		if got := lvl.String(); got != want {
			t.Errorf("Level(%d).String() = %q, want %q", int(lvl), got, want)
		}
	}
}

func TestNewSilent(t *testing.T) {
	impl, ok := NewSilent().(*simpleLogger)
	if !ok || impl.lvl != LevelError {
		t.Errorf("NewSilent should log errors only")
	}
}

func TestLogger_ConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, LevelInfo)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			scoped := logger.With("worker", id)
			for j := 0; j < 50; j++ {
				scoped.Info("plugin processed", "n", j)
			}
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 500 {
		t.Errorf("expected 500 lines, got %d", len(lines))
	}
}
