// internal/core/usecases/convenience_test.go
package usecases

import (
	"context"
	"testing"

	"publishx/internal/core/domain"
	"publishx/internal/core/ports"
	"publishx/internal/testutil"
)

func onePerStage() []ports.Plugin {
	return []ports.Plugin{
		testutil.NewContextPlugin("pre", -1, nil),
		testutil.NewContextPlugin("collect", 0, nil),
		testutil.NewContextPlugin("validate", 1, nil),
		testutil.NewContextPlugin("extract", 2, nil),
		testutil.NewContextPlugin("integrate", 3, nil),
		testutil.NewContextPlugin("post", 4, nil),
	}
}

func TestSingleStageFacades(t *testing.T) {
	type facade func(context.Context, *Publisher, Request) (*domain.Context, error)

	tests := []struct {
		name       string
		run        facade
		stage      string
		checkpoint ports.EventType
	}{
		{"collect", Collect, "collect", ports.EventCollected},
		{"validate", Validate, "validate", ports.EventValidated},
		{"extract", Extract, "extract", ports.EventExtracted},
		{"integrate", Integrate, "integrate", ports.EventIntegrated},
		{"select is collect", Select, "collect", ports.EventCollected},
		{"conform is integrate", Conform, "integrate", ports.EventIntegrated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			var ran []string
			spy := func(name string, order float64) ports.Plugin {
				return testutil.NewContextPlugin(name, order, func(context.Context, *domain.Context) error {
					ran = append(ran, name)
					return nil
				})
			}
			plugins := []ports.Plugin{
				spy("pre", -1), spy("collect", 0), spy("validate", 1),
				spy("extract", 2), spy("integrate", 3), spy("post", 4),
			}

			c := domain.NewContext()
			got, err := tt.run(context.Background(), h.pub, Request{Context: c, Plugins: plugins, Publish: true})
			testutil.AssertNoError(t, err, "facade should succeed")
			testutil.AssertTrue(t, got == c, "facade returns the given context")

			assertStrings(t, ran, []string{"pre", tt.stage, "post"}, "stage plus pre and post")
			assertEvents(t, checkpoints(h.events), []ports.EventType{tt.checkpoint}, "single checkpoint, never published")
		})
	}
}

func TestPublishAll(t *testing.T) {
	h := newHarness(t)

	c, err := PublishAll(context.Background(), h.pub, Request{Plugins: onePerStage()})
	testutil.AssertNoError(t, err, "publish all should succeed")
	testutil.AssertNotNil(t, c, "context returned")
	testutil.AssertEqual(t, h.events.Count(ports.EventPublished), 1, "behaves like Publish")
}

func TestValidateAll_CollectsThenValidates(t *testing.T) {
	h := newHarness(t)
	validator := testutil.NewInstancePlugin("validate", 1, nil)
	plugins := []ports.Plugin{
		testutil.NewContextPlugin("collect", 0, createInstances("model", "hero")),
		validator,
		testutil.NewContextPlugin("extract", 2, nil),
	}

	c, err := ValidateAll(context.Background(), h.pub, Request{Plugins: plugins})
	testutil.AssertNoError(t, err, "validate all should succeed")
	testutil.AssertEqual(t, c.Len(), 1, "collected instance kept")
	assertStrings(t, validator.Seen, []string{"hero"}, "validator sees the collected instance")
	assertEvents(t, checkpoints(h.events), []ports.EventType{ports.EventCollected, ports.EventValidated}, "two single-stage runs")
}

func TestStageIterMatchesFacade(t *testing.T) {
	h := newHarness(t)

	run, err := StageIter(context.Background(), h.pub, Request{Plugins: onePerStage()}, domain.ExtractorOrder)
	testutil.AssertNoError(t, err, "start should succeed")
	assertStrings(t, resultNames(collect(run)), []string{"pre", "extract", "post"}, "extract run")

	for _, start := range []func(context.Context, *Publisher, Request) (*Run, error){CollectIter, ValidateIter, ExtractIter, IntegrateIter} {
		run, err := start(context.Background(), h.pub, Request{Plugins: onePerStage()})
		testutil.AssertNoError(t, err, "start should succeed")
		testutil.AssertEqual(t, Drain(run), 3, "one gated stage plus pre and post")
	}
}

func TestPublish_CreatesContextWhenNil(t *testing.T) {
	h := newHarness(t)
	plugins := []ports.Plugin{testutil.NewContextPlugin("collect", 0, createInstances("model", "hero"))}

	c, err := Publish(context.Background(), h.pub, Request{Plugins: plugins})
	testutil.AssertNoError(t, err, "publish should succeed")
	testutil.AssertNotNil(t, c, "context created")
	testutil.AssertEqual(t, c.Len(), 1, "collector output visible")
	testutil.AssertEqual(t, h.events.Count(ports.EventPublished), 1, "published fired")
}

func TestPublish_ConfigurationErrorRunsNothing(t *testing.T) {
	h := newHarness(t)
	p := testutil.NewContextPlugin("collect", 0, nil)

	c, err := Publish(context.Background(), h.pub, Request{Plugins: []ports.Plugin{p}, Boundaries: []domain.Boundary{0.5}})
	testutil.AssertError(t, err, "invalid boundary")
	testutil.AssertTrue(t, c == nil, "no context on configuration error")
	testutil.AssertEqual(t, p.Calls, 0, "nothing ran")
}

func TestPublish_ReturnsCancellation(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	plugins := []ports.Plugin{
		testutil.NewContextPlugin("collect", 0, func(context.Context, *domain.Context) error {
			cancel()
			return nil
		}),
		testutil.NewContextPlugin("validate", 1, nil),
	}

	c, err := Publish(ctx, h.pub, Request{Plugins: plugins})
	testutil.AssertError(t, err, "canceled publish reports the cancellation")
	testutil.AssertNotNil(t, c, "partial context still returned")
	testutil.AssertEqual(t, h.events.Count(ports.EventPublished), 0, "no published checkpoint")
}
