// internal/core/usecases/partition_test.go
package usecases

import (
	"errors"
	"math"
	"testing"

	"publishx/internal/core/domain"
	"publishx/internal/core/ports"
	"publishx/internal/testutil"
)

func orderedPlugins(orders ...float64) []ports.Plugin {
	plugins := make([]ports.Plugin, 0, len(orders))
	for i, o := range orders {
		plugins = append(plugins, testutil.NewContextPlugin(string(rune('a'+i)), o, nil))
	}
	return plugins
}

func bucketNames(b Buckets, s domain.Stage) []string {
	return pluginNames(b.Stage(s))
}

func TestPartition_Buckets(t *testing.T) {
	// a=-1 b=-0.5 c=0 d=0.49 e=0.5 f=1 g=2.2 h=3 i=3.49 j=3.5 k=10
	plugins := orderedPlugins(-1, -0.5, 0, 0.49, 0.5, 1, 2.2, 3, 3.49, 3.5, 10)

	b, err := Partition(plugins, nil)
	testutil.AssertNoError(t, err, "partition should succeed")

	assertStrings(t, bucketNames(b, domain.StagePreCollect), []string{"a"}, "pre-collect")
	assertStrings(t, bucketNames(b, domain.StageCollect), []string{"b", "c", "d"}, "collect")
	assertStrings(t, bucketNames(b, domain.StageValidate), []string{"e", "f"}, "validate")
	assertStrings(t, bucketNames(b, domain.StageExtract), []string{"g"}, "extract")
	assertStrings(t, bucketNames(b, domain.StageIntegrate), []string{"h", "i"}, "integrate")
	assertStrings(t, bucketNames(b, domain.StagePostIntegrate), []string{"j", "k"}, "post-integrate")

	testutil.AssertEqual(t, b.Len(), len(plugins), "every plugin in exactly one bucket")
}

func TestPartition_PreservesRelativeOrder(t *testing.T) {
	plugins := []ports.Plugin{
		testutil.NewContextPlugin("z", 1.2, nil),
		testutil.NewContextPlugin("y", 0.9, nil),
		testutil.NewContextPlugin("x", 1, nil),
	}

	b, err := Partition(plugins, nil)
	testutil.AssertNoError(t, err, "partition should succeed")
	assertStrings(t, bucketNames(b, domain.StageValidate), []string{"z", "y", "x"}, "input order kept")
}

func TestPartition_DropsInactive(t *testing.T) {
	active := testutil.NewContextPlugin("active", 0, nil)
	inactive := testutil.NewContextPlugin("inactive", 0, nil)
	inactive.Inactive = true
	pre := testutil.NewContextPlugin("inactive-pre", -5, nil)
	pre.Inactive = true

	b, err := Partition([]ports.Plugin{active, inactive, pre}, nil)
	testutil.AssertNoError(t, err, "partition should succeed")
	testutil.AssertEqual(t, b.Len(), 1, "only active plugin kept")
	assertStrings(t, bucketNames(b, domain.StageCollect), []string{"active"}, "collect")
}

func TestPartition_BoundaryFilter(t *testing.T) {
	plugins := orderedPlugins(-1, 0, 1, 2, 3, 4)

	tests := []struct {
		name       string
		boundaries []domain.Boundary
		want       map[domain.Stage][]string
		scheduled  int
	}{
		{
			name:       "validate only keeps pre and post",
			boundaries: []domain.Boundary{domain.ValidatorOrder},
			want: map[domain.Stage][]string{
				domain.StagePreCollect:    {"a"},
				domain.StageValidate:      {"c"},
				domain.StagePostIntegrate: {"f"},
			},
			scheduled: 3,
		},
		{
			name:       "collect and integrate",
			boundaries: []domain.Boundary{domain.CollectorOrder, domain.IntegratorOrder},
			want: map[domain.Stage][]string{
				domain.StagePreCollect:    {"a"},
				domain.StageCollect:       {"b"},
				domain.StageIntegrate:     {"e"},
				domain.StagePostIntegrate: {"f"},
			},
			scheduled: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Partition(plugins, tt.boundaries)
			testutil.AssertNoError(t, err, "partition should succeed")

			for _, s := range domain.Stages() {
				assertStrings(t, bucketNames(b, s), tt.want[s], s.String())
			}
			testutil.AssertEqual(t, b.Scheduled(tt.boundaries), tt.scheduled, "scheduled count")
		})
	}
}

func TestBuckets_ScheduledCountsOnlySelectedStages(t *testing.T) {
	b, err := Partition(orderedPlugins(-1, 0, 0, 1, 2, 3, 4), nil)
	testutil.AssertNoError(t, err, "partition should succeed")

	testutil.AssertEqual(t, b.Scheduled(nil), 7, "all stages")
	testutil.AssertEqual(t, b.Scheduled([]domain.Boundary{domain.CollectorOrder}), 4, "collect plus pre and post")
	testutil.AssertEqual(t, b.Scheduled([]domain.Boundary{domain.ExtractorOrder}), 3, "extract plus pre and post")
}

func TestBuckets_Each(t *testing.T) {
	b, err := Partition(orderedPlugins(0, 4), nil)
	testutil.AssertNoError(t, err, "partition should succeed")

	var seen []domain.Stage
	b.Each(func(s domain.Stage, _ []ports.Plugin) { seen = append(seen, s) })
	testutil.AssertLen(t, seen, 6, "each visits six stages")
	testutil.AssertEqual(t, seen[0], domain.StagePreCollect, "first stage")
	testutil.AssertEqual(t, seen[5], domain.StagePostIntegrate, "last stage")
	testutil.AssertLen(t, b.Stage(domain.Stage(99)), 0, "unknown stage is empty")
}

func TestPartition_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name       string
		plugins    []ports.Plugin
		boundaries []domain.Boundary
		wantErr    error
	}{
		{"unknown boundary", orderedPlugins(0), []domain.Boundary{1.5}, domain.ErrInvalidBoundary},
		{"nil plugin", []ports.Plugin{nil}, nil, domain.ErrInvalidPlugin},
		{"unnamed plugin", []ports.Plugin{testutil.NewContextPlugin("", 0, nil)}, nil, domain.ErrInvalidPlugin},
		{"plugin without kind", []ports.Plugin{&testutil.FakeBase{PluginName: "bare"}}, nil, domain.ErrInvalidPlugin},
		{"nan order", orderedPlugins(math.NaN()), nil, domain.ErrInvalidOrder},
		{"infinite order", orderedPlugins(math.Inf(-1)), nil, domain.ErrInvalidOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Partition(tt.plugins, tt.boundaries)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Partition() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
