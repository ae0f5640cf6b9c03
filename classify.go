package morph

import (
	"context"
	"fmt"

	"github.com/gomorph/morph/internal/pathwalk"
)

// actionKind enumerates the classified action variants of a plan entry.
type actionKind int

const (
	actionPath actionKind = iota
	actionAggregate
	actionFunc
	actionSelect
)

// planAction is the classified, executable form of one action declaration.
// Paths are pre-split so per-record execution never re-parses strings.
type planAction struct {
	kind  actionKind
	path  []string   // actionPath, or actionSelect with a single path
	paths [][]string // actionAggregate, or actionSelect with aggregate paths
	keys  []string   // leaf keys for paths, same length
	fn    Func       // actionFunc
	sel   SelectFunc // actionSelect
}

// classify maps one declaration onto its action variant. It is pure and
// total over the recognized forms; nested schemas are returned separately so
// the planner can flatten them. The precedence over ambiguous forms is
// fixed: string, []string, Func, Select, then nested schema.
func classify(dstKey string, decl any) (planAction, *Schema, *Issue) {
	switch v := decl.(type) {
	case string:
		return planAction{kind: actionPath, path: pathwalk.Split(v)}, nil, nil
	case []string:
		paths, keys := splitAll(v)
		return planAction{kind: actionAggregate, paths: paths, keys: keys}, nil, nil
	case Func:
		if v == nil {
			return planAction{}, nil, invalidAction(dstKey, "nil Func")
		}
		return planAction{kind: actionFunc, fn: v}, nil, nil
	case func(ctx context.Context, src any, all []any, dst map[string]any) (any, error):
		if v == nil {
			return planAction{}, nil, invalidAction(dstKey, "nil func")
		}
		return planAction{kind: actionFunc, fn: v}, nil, nil
	case Select:
		return classifySelect(dstKey, v)
	case *Select:
		if v == nil {
			return planAction{}, nil, invalidAction(dstKey, "nil *Select")
		}
		return classifySelect(dstKey, *v)
	case *Schema:
		if v == nil {
			return planAction{}, nil, invalidAction(dstKey, "nil *Schema")
		}
		return planAction{}, v, nil
	case map[string]any:
		return planAction{}, FromMap(v), nil
	default:
		return planAction{}, nil, invalidAction(dstKey, fmt.Sprintf("unsupported declaration type %T", decl))
	}
}

// classifySelect recursively classifies the Select's path member as either a
// single path or an aggregate.
func classifySelect(dstKey string, sel Select) (planAction, *Schema, *Issue) {
	if sel.Fn == nil {
		return planAction{}, nil, invalidAction(dstKey, "Select without Fn")
	}
	switch p := sel.Path.(type) {
	case string:
		return planAction{kind: actionSelect, path: pathwalk.Split(p), sel: sel.Fn}, nil, nil
	case []string:
		paths, keys := splitAll(p)
		return planAction{kind: actionSelect, paths: paths, keys: keys, sel: sel.Fn}, nil, nil
	default:
		return planAction{}, nil, invalidAction(dstKey, fmt.Sprintf("Select path must be string or []string, got %T", sel.Path))
	}
}

func splitAll(paths []string) ([][]string, []string) {
	segs := make([][]string, len(paths))
	keys := make([]string, len(paths))
	for i, p := range paths {
		segs[i] = pathwalk.Split(p)
		keys[i] = pathwalk.Leaf(p)
	}
	return segs, keys
}

func invalidAction(dstKey, msg string) *Issue {
	return &Issue{
		Path:    dstKey,
		Code:    CodeInvalidAction,
		Message: msg,
		Hint:    "expected a path string, []string, Func, Select, *Schema, or map[string]any",
	}
}
