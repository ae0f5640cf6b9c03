package morph

import (
	"context"
	"reflect"
)

// Apply transforms a single source record into a freshly allocated target
// record. The schema's plan is compiled on first use and reused for every
// subsequent call with the same *Schema value; compilation defects surface
// here as Issues. Errors from caller-supplied callables are returned
// unmodified.
func Apply(ctx context.Context, s *Schema, record any) (map[string]any, error) {
	if s == nil {
		return nil, singleIssue(CodeParseError, "nil schema")
	}
	p, err := s.compile()
	if err != nil {
		return nil, err
	}
	return p.run(ctx, record, nil)
}

// ApplyAll transforms a collection of source records, preserving length and
// order. Each element is transformed independently; the first callable error
// aborts the batch (fail-fast, matching single-record semantics). An empty
// input yields an empty output.
func ApplyAll(ctx context.Context, s *Schema, records []any) ([]map[string]any, error) {
	if s == nil {
		return nil, singleIssue(CodeParseError, "nil schema")
	}
	p, err := s.compile()
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(records))
	for _, r := range records {
		t, err := p.run(ctx, r, records)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Transform is the generic entry point: slices and arrays are treated as
// batches and mapped element-wise via ApplyAll, anything else as a single
// record via Apply. []byte is the one slice kind treated as a scalar.
func Transform(ctx context.Context, s *Schema, data any) (any, error) {
	if coll, ok := asCollection(data); ok {
		return ApplyAll(ctx, s, coll)
	}
	return Apply(ctx, s, data)
}

// asCollection normalizes array-like inputs to []any. The common decoded
// shapes are handled without reflection; other slice and array kinds go
// through reflect so callers may pass typed record slices.
func asCollection(data any) ([]any, bool) {
	switch v := data.(type) {
	case nil:
		return nil, false
	case []any:
		return v, true
	case []map[string]any:
		out := make([]any, len(v))
		for i, r := range v {
			out[i] = r
		}
		return out, true
	case []byte:
		return nil, false
	}
	rv := reflect.ValueOf(data)
	if k := rv.Kind(); k != reflect.Slice && k != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
