package morph_test

import (
	"context"
	"testing"

	morph "github.com/gomorph/morph"
)

func TestNewMapper_CompilesEagerly(t *testing.T) {
	if _, err := morph.NewMapper(morph.New().Set("bad", 42)); err == nil {
		t.Fatalf("expected schema defects to surface at construction")
	}
	if _, err := morph.NewMapper(nil); err == nil {
		t.Fatalf("expected error for nil schema")
	}
}

func TestMapper_ForwardsSingleAndBatch(t *testing.T) {
	ctx := context.Background()
	s := morph.New().Set("v", "x")
	m, err := morph.NewMapper(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Schema() != s {
		t.Fatalf("mapper must keep the schema it was bound to")
	}

	single, err := m.Map(ctx, map[string]any{"x": 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if single.(map[string]any)["v"] != 1 {
		t.Fatalf("single = %#v", single)
	}

	batch, err := m.Map(ctx, []any{map[string]any{"x": 1}, map[string]any{"x": 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outs := batch.([]map[string]any)
	if len(outs) != 2 || outs[1]["v"] != 2 {
		t.Fatalf("batch = %#v", batch)
	}

	direct, err := m.Apply(ctx, map[string]any{"x": 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if direct["v"] != 3 {
		t.Fatalf("direct = %#v", direct)
	}
}
