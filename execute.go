package morph

import (
	"context"

	"github.com/gomorph/morph/internal/pathwalk"
)

// run assembles one target record by executing the plan's entries in order.
// The target is freshly allocated here and exposed in-progress to callables;
// the source is only ever read.
func (p *plan) run(ctx context.Context, src any, all []any) (map[string]any, error) {
	dst := make(map[string]any, len(p.entries))
	for _, e := range p.entries {
		v, err := e.act.execute(ctx, src, all, dst)
		if err != nil {
			return nil, err
		}
		pathwalk.Assign(dst, e.dst, v)
	}
	return dst, nil
}

// execute produces the value for one destination field. Missing source paths
// resolve to nil; callable errors are returned unmodified.
func (a planAction) execute(ctx context.Context, src any, all []any, dst map[string]any) (any, error) {
	switch a.kind {
	case actionPath:
		v, _ := pathwalk.Resolve(src, a.path)
		return v, nil
	case actionAggregate:
		return a.aggregate(src), nil
	case actionFunc:
		return a.fn(ctx, src, all, dst)
	case actionSelect:
		var v any
		if a.paths != nil {
			v = a.aggregate(src)
		} else {
			v, _ = pathwalk.Resolve(src, a.path)
		}
		return a.sel(ctx, v, src, all, dst)
	}
	return nil, nil
}

// aggregate resolves each path and keys the result object by the leaf
// segment of that path. Missing paths still emit their key with a nil value;
// no key is skipped.
func (a planAction) aggregate(src any) map[string]any {
	out := make(map[string]any, len(a.paths))
	for i, segs := range a.paths {
		v, _ := pathwalk.Resolve(src, segs)
		out[a.keys[i]] = v
	}
	return out
}
