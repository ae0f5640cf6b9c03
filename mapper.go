package morph

import "context"

// Mapper binds a schema to its compiled plan for repeated use. Construction
// compiles eagerly, so schema defects surface once, before any record is
// transformed, and concurrent Map calls never race on plan compilation.
type Mapper struct {
	schema *Schema
}

// NewMapper compiles the schema and returns a mapper bound to it.
func NewMapper(s *Schema) (*Mapper, error) {
	if s == nil {
		return nil, singleIssue(CodeParseError, "nil schema")
	}
	if _, err := s.compile(); err != nil {
		return nil, err
	}
	return &Mapper{schema: s}, nil
}

// Schema returns the schema this mapper is bound to.
func (m *Mapper) Schema() *Schema { return m.schema }

// Map forwards to the engine's single/batch contract: slices and arrays map
// element-wise, anything else transforms as a single record.
func (m *Mapper) Map(ctx context.Context, data any) (any, error) {
	return Transform(ctx, m.schema, data)
}

// Apply transforms a single record with the bound schema.
func (m *Mapper) Apply(ctx context.Context, record any) (map[string]any, error) {
	return Apply(ctx, m.schema, record)
}
