// internal/core/usecases/mocks_test.go
package usecases

import (
	"context"
	"errors"
	"sync"
	"testing"

	"publishx/internal/core/domain"
	"publishx/internal/core/ports"
	"publishx/internal/platform/registry"
	"publishx/internal/platform/ui"
	"publishx/internal/testutil"
)

var errBoom = errors.New("boom")

// mockNotifier es un ports.Notifier que puede fallar
type mockNotifier struct {
	mu              sync.Mutex
	notifyFunc      func(ctx context.Context, event ports.Event) error
	notifyCallCount int
}

func (m *mockNotifier) Notify(ctx context.Context, event ports.Event) error {
	m.mu.Lock()
	m.notifyCallCount++
	m.mu.Unlock()

	if m.notifyFunc != nil {
		return m.notifyFunc(ctx, event)
	}
	return nil
}

func (m *mockNotifier) Close() error { return nil }

// mockPresenter registra las llamadas recibidas
type mockPresenter struct {
	ui.NoopPresenter

	started       int
	stages        []string
	pluginsStarts []string
	finished      []ui.PluginInfo
	skipped       []string
	stats         *ui.RunStats
	closed        int
}

func (m *mockPresenter) Start(info ui.RunInfo)         { m.started++ }
func (m *mockPresenter) StartStage(stage ui.StageInfo) { m.stages = append(m.stages, stage.Name) }
func (m *mockPresenter) StartPlugin(stage ui.StageInfo, plugin string) {
	m.pluginsStarts = append(m.pluginsStarts, plugin)
}
func (m *mockPresenter) FinishPlugin(p ui.PluginInfo) { m.finished = append(m.finished, p) }
func (m *mockPresenter) Finish(stats ui.RunStats)     { m.stats = &stats }
func (m *mockPresenter) SkipPlugin(stage ui.StageInfo, plugin string) {
	m.skipped = append(m.skipped, stage.Name+"/"+plugin)
}
func (m *mockPresenter) Close() error {
	m.closed++
	return nil
}

// harness agrupa un publisher con colaboradores aislados del estado global
type harness struct {
	pub       *Publisher
	targets   *registry.TargetRegistry
	events    *testutil.RecordingNotifier
	presenter *mockPresenter
	discover  *registry.PluginRegistry
}

func newHarness(t *testing.T, opts ...PairerOption) *harness {
	t.Helper()

	logger := testutil.NewTestLogger()
	h := &harness{
		targets:   registry.NewTargetRegistry(),
		events:    testutil.NewRecordingNotifier(),
		presenter: &mockPresenter{},
		discover:  registry.NewPluginRegistry(logger),
	}
	pairerOpts := append([]PairerOption{WithPairerLogger(logger)}, opts...)

	h.pub = NewPublisher(PublisherOptions{
		Pairer:     NewDefaultPairer(h.targets, pairerOpts...),
		Notifier:   h.events,
		Targets:    h.targets,
		Discoverer: h.discover,
		Logger:     logger,
		Presenter:  h.presenter,
	})
	return h
}

// start prepara una ejecución y falla el test ante errores de configuración
func (h *harness) start(t *testing.T, req Request) *Run {
	t.Helper()
	run, err := h.pub.Start(context.Background(), req)
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	return run
}

// collect consume todos los resultados
func collect(run *Run) []domain.Result {
	var out []domain.Result
	for r := range run.Results() {
		out = append(out, r)
	}
	return out
}

func resultNames(results []domain.Result) []string {
	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Plugin)
	}
	return names
}

func checkpoints(events *testutil.RecordingNotifier) []ports.EventType {
	var out []ports.EventType
	for _, typ := range events.Types() {
		switch typ {
		case ports.EventCollected, ports.EventValidated, ports.EventExtracted, ports.EventIntegrated, ports.EventPublished:
			out = append(out, typ)
		}
	}
	return out
}

func assertStrings(t *testing.T, got, want []string, msg string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: got %v, want %v", msg, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s: got %v, want %v", msg, got, want)
		}
	}
}

func assertEvents(t *testing.T, got, want []ports.EventType, msg string) {
	t.Helper()
	g := make([]string, len(got))
	for i := range got {
		g[i] = string(got[i])
	}
	w := make([]string, len(want))
	for i := range want {
		w[i] = string(want[i])
	}
	assertStrings(t, g, w, msg)
}

// createInstances retorna un collector que crea instancias con una familia
func createInstances(family string, names ...string) func(context.Context, *domain.Context) error {
	return func(_ context.Context, c *domain.Context) error {
		for _, n := range names {
			c.CreateInstance(n, family)
		}
		return nil
	}
}

func failInstance(context.Context, *domain.Instance) error { return errBoom }
