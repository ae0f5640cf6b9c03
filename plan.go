package morph

import (
	"strings"

	"github.com/gomorph/morph/internal/pathwalk"
)

// planEntry is one flattened (destination path, classified action) pair.
type planEntry struct {
	dst    []string // pre-split destination segments
	dstKey string   // dotted form, for diagnostics
	act    planAction
}

// plan is the compiled form of a schema: a flat ordered entry list with all
// nesting resolved. Building a plan reads only the schema, never source
// data, and a built plan is read-only, so it may be shared across
// goroutines.
type plan struct {
	entries []planEntry
}

// buildPlan flattens a schema into a plan. Nested schemas are spliced in
// place with their destination paths prefixed by the parent key, preserving
// relative declaration order. Malformed declarations are collected into
// Issues so every defect of a schema surfaces on its first use.
func buildPlan(s *Schema) (*plan, error) {
	var iss Issues
	entries := flatten(s, nil, &iss)
	if len(iss) > 0 {
		return nil, iss
	}
	return &plan{entries: entries}, nil
}

func flatten(s *Schema, prefix []string, iss *Issues) []planEntry {
	entries := make([]planEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.Key == "" {
			*iss = AppendIssues(*iss, *invalidAction(strings.Join(prefix, "."), "empty destination key"))
			continue
		}
		// Declaration keys may themselves be dotted destination paths.
		dst := append(append([]string(nil), prefix...), pathwalk.Split(e.Key)...)
		dstKey := strings.Join(dst, ".")
		act, nested, defect := classify(dstKey, e.Action)
		if defect != nil {
			*iss = AppendIssues(*iss, *defect)
			continue
		}
		if nested != nil {
			entries = append(entries, flatten(nested, dst, iss)...)
			continue
		}
		entries = append(entries, planEntry{dst: dst, dstKey: dstKey, act: act})
	}
	return entries
}
