package morph

// Package morph transforms records into records of a different shape, driven
// by a declarative schema instead of hand-written field-copy code.
//
// A Schema associates each destination field with an action declaration:
//
// - Path: a dotted source path ("user.address.city")
// - Aggregate: a list of source paths collected into one object
// - Func: a callable deriving the value from the whole source record
// - Select: a source path paired with a transform applied to the resolved value
// - Nested schema: a sub-schema building a nested destination object
//
// Design policy:
// - Keep only public APIs in the root package; put path walking under internal/.
// - Place schema-document loading under schemafile/ and the CLI under cmd/morph.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s := morph.New().
//	    Set("name", "user.name").
//	    Set("city", "user.address.city")
//	out, err := morph.Apply(ctx, s, record)
//	outs, err := morph.ApplyAll(ctx, s, records)
