package morph

import "context"

// Func is the Function action: it derives a destination value from the whole
// source record. src is the record being transformed, all is the full source
// collection in batch mode (nil for a single record), and dst is the target
// record as built so far, holding the fields assigned by earlier schema
// entries. Errors are returned to the caller of Apply/Transform unmodified.
type Func func(ctx context.Context, src any, all []any, dst map[string]any) (any, error)

// SelectFunc is the transform half of a Select action. v is the value
// resolved from the Select's path (nil when missing), the remaining
// arguments match Func.
type SelectFunc func(ctx context.Context, v any, src any, all []any, dst map[string]any) (any, error)

// Select pairs a source path with a transform: the path is resolved first,
// then Fn is applied to the resolved value. Path must be a dotted path
// string or a []string of paths (aggregate semantics, see Apply).
type Select struct {
	Path any
	Fn   SelectFunc
}
