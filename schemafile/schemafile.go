// Package schemafile loads morph schemas from JSON or YAML documents and
// binds their `fn` members to callables registered in a Registry.
//
// Each field of a document maps onto one action declaration:
//
//   - a string is a source path
//   - a sequence of strings is an aggregate
//   - a mapping with `path` and `fn` is a select (fn names a registered
//     SelectFunc)
//   - a mapping with only `fn` is a function action (fn names a registered
//     Func)
//   - any other mapping is a nested schema
//
// Document key order is preserved in the resulting schema, so callables see
// destination fields assigned in the order the document declares them.
package schemafile

import (
	morph "github.com/gomorph/morph"
)

// ParseJSON decodes a JSON schema document and binds it against reg.
// Defects are reported as morph.Issues covering every offending field.
func ParseJSON(data []byte, reg *Registry) (*morph.Schema, error) {
	root, err := decodeJSONDocument(data)
	if err != nil {
		return nil, asParseError(err)
	}
	return build(root, reg)
}

// ParseYAML decodes a YAML schema document and binds it against reg.
func ParseYAML(data []byte, reg *Registry) (*morph.Schema, error) {
	root, err := decodeYAMLDocument(data)
	if err != nil {
		return nil, asParseError(err)
	}
	return build(root, reg)
}

func asParseError(err error) error {
	if iss, ok := morph.AsIssues(err); ok {
		return iss
	}
	return morph.Issues{morph.Issue{Code: morph.CodeParseError, Message: err.Error(), Cause: err}}
}

func build(root docValue, reg *Registry) (*morph.Schema, error) {
	if root.kind != kindMap {
		return nil, morph.Issues{morph.Issue{
			Code:    morph.CodeInvalidType,
			Message: "schema document must be a mapping",
		}}
	}
	var iss morph.Issues
	s := buildSchema(root.m, reg, "", &iss)
	if len(iss) > 0 {
		return nil, iss
	}
	return s, nil
}

func buildSchema(m *docMap, reg *Registry, prefix string, iss *morph.Issues) *morph.Schema {
	s := morph.New()
	for i, key := range m.keys {
		dstKey := joinKey(prefix, key)
		v := m.vals[i]
		switch v.kind {
		case kindScalar:
			p, ok := v.scalar.(string)
			if !ok {
				*iss = append(*iss, morph.Issue{
					Path:    dstKey,
					Code:    morph.CodeInvalidAction,
					Message: "scalar action must be a path string",
				})
				continue
			}
			s.Set(key, p)
		case kindSeq:
			paths, ok := stringSeq(v.seq)
			if !ok {
				*iss = append(*iss, morph.Issue{
					Path:    dstKey,
					Code:    morph.CodeInvalidAction,
					Message: "aggregate must be a sequence of path strings",
				})
				continue
			}
			s.Set(key, paths)
		case kindMap:
			if v.m.index("fn") >= 0 {
				buildCallable(s, key, dstKey, v.m, reg, iss)
				continue
			}
			s.Set(key, buildSchema(v.m, reg, dstKey, iss))
		}
	}
	return s
}

// buildCallable binds a `fn` mapping: with `path` it becomes a select
// action, without it a function action.
func buildCallable(s *morph.Schema, key, dstKey string, m *docMap, reg *Registry, iss *morph.Issues) {
	for _, k := range m.keys {
		if k != "fn" && k != "path" {
			*iss = append(*iss, morph.Issue{
				Path:    dstKey,
				Code:    morph.CodeInvalidAction,
				Message: "fn mapping accepts only fn and path members",
				Hint:    "unexpected member: " + k,
			})
			return
		}
	}
	name, ok := m.vals[m.index("fn")].scalar.(string)
	if !ok {
		*iss = append(*iss, morph.Issue{
			Path:    dstKey,
			Code:    morph.CodeInvalidAction,
			Message: "fn must be a function name string",
		})
		return
	}

	pi := m.index("path")
	if pi < 0 {
		fn, ok := reg.lookupFunc(name)
		if !ok {
			*iss = append(*iss, morph.Issue{
				Path:    dstKey,
				Code:    morph.CodeUnknownFunction,
				Message: "no registered function named " + name,
			})
			return
		}
		s.Set(key, fn)
		return
	}

	var path any
	switch pv := m.vals[pi]; pv.kind {
	case kindScalar:
		p, ok := pv.scalar.(string)
		if !ok {
			*iss = append(*iss, morph.Issue{
				Path:    dstKey,
				Code:    morph.CodeInvalidAction,
				Message: "path must be a string or a sequence of strings",
			})
			return
		}
		path = p
	case kindSeq:
		paths, ok := stringSeq(pv.seq)
		if !ok {
			*iss = append(*iss, morph.Issue{
				Path:    dstKey,
				Code:    morph.CodeInvalidAction,
				Message: "path must be a string or a sequence of strings",
			})
			return
		}
		path = paths
	default:
		*iss = append(*iss, morph.Issue{
			Path:    dstKey,
			Code:    morph.CodeInvalidAction,
			Message: "path must be a string or a sequence of strings",
		})
		return
	}

	sel, ok := reg.lookupSelect(name)
	if !ok {
		*iss = append(*iss, morph.Issue{
			Path:    dstKey,
			Code:    morph.CodeUnknownFunction,
			Message: "no registered select function named " + name,
		})
		return
	}
	s.Set(key, morph.Select{Path: path, Fn: sel})
}

func stringSeq(seq []docValue) ([]string, bool) {
	out := make([]string, 0, len(seq))
	for _, v := range seq {
		if v.kind != kindScalar {
			return nil, false
		}
		s, ok := v.scalar.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
