// internal/core/ports/plugin_test.go
package ports

import (
	"context"
	"testing"

	"publishx/internal/core/domain"
)

type basePlugin struct {
	name     string
	targets  []string
	families []string
}

func (b basePlugin) Name() string       { return b.name }
func (b basePlugin) Order() float64     { return 0 }
func (b basePlugin) Active() bool       { return true }
func (b basePlugin) Targets() []string  { return b.targets }
func (b basePlugin) Families() []string { return b.families }

type ctxPlugin struct{ basePlugin }

func (ctxPlugin) ProcessContext(context.Context, *domain.Context) error { return nil }

type instPlugin struct{ basePlugin }

func (instPlugin) ProcessInstance(context.Context, *domain.Instance) error { return nil }

type bothPlugin struct{ basePlugin }

func (bothPlugin) ProcessContext(context.Context, *domain.Context) error   { return nil }
func (bothPlugin) ProcessInstance(context.Context, *domain.Instance) error { return nil }

func TestKindOf(t *testing.T) {
	tests := []struct {
		name   string
		plugin Plugin
		want   Kind
	}{
		{"context", ctxPlugin{}, KindContext},
		{"instance", instPlugin{}, KindInstance},
		{"both", bothPlugin{}, KindInvalid},
		{"neither", basePlugin{}, KindInvalid},
		{"nil", nil, KindInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.plugin); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTargetsAndFamiliesDefaults(t *testing.T) {
	p := ctxPlugin{}
	if got := TargetsOf(p); len(got) != 1 || got[0] != DefaultTarget {
		t.Errorf("TargetsOf default = %v", got)
	}
	if got := FamiliesOf(p); len(got) != 1 || got[0] != "*" {
		t.Errorf("FamiliesOf default = %v", got)
	}

	custom := ctxPlugin{basePlugin{targets: []string{"farm"}, families: []string{"model"}}}
	if got := TargetsOf(custom); got[0] != "farm" {
		t.Errorf("TargetsOf custom = %v", got)
	}
	if got := FamiliesOf(custom); got[0] != "model" {
		t.Errorf("FamiliesOf custom = %v", got)
	}
}

func TestSchedulingState(t *testing.T) {
	state := NewSchedulingState()
	if state.NextOrder != nil {
		t.Fatal("NextOrder should start nil")
	}

	state.SetNextOrder(1.5)
	if *state.NextOrder != 1.5 {
		t.Errorf("NextOrder = %v, want 1.5", *state.NextOrder)
	}

	state.RecordError(2)
	state.RecordError(1)
	state.RecordError(1)
	if !state.HasError(1) || state.HasError(3) {
		t.Error("HasError mismatch")
	}
	got := state.ErrorOrders()
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("ErrorOrders = %v, want [1 2]", got)
	}

	var zero SchedulingState
	zero.RecordError(0)
	if !zero.HasError(0) {
		t.Error("RecordError should initialize a zero state")
	}
}
