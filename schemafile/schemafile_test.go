package schemafile_test

import (
	"context"
	"reflect"
	"strings"
	"testing"

	morph "github.com/gomorph/morph"
	"github.com/gomorph/morph/schemafile"
)

func testRegistry() *schemafile.Registry {
	return schemafile.NewRegistry().
		Select("upper", func(ctx context.Context, v, src any, all []any, dst map[string]any) (any, error) {
			return strings.ToUpper(v.(string)), nil
		}).
		Func("constant", func(ctx context.Context, src any, all []any, dst map[string]any) (any, error) {
			return "fixed", nil
		})
}

const yamlDoc = `
name: user.name
shout:
  path: user.name
  fn: upper
tag:
  fn: constant
pair: [user.id, user.name]
address:
  city: user.address.city
`

func TestParseYAML_AllActionForms(t *testing.T) {
	s, err := schemafile.ParseYAML([]byte(yamlDoc), testRegistry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	src := map[string]any{
		"user": map[string]any{
			"id":      7,
			"name":    "ada",
			"address": map[string]any{"city": "London"},
		},
	}
	got, err := morph.Apply(context.Background(), s, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{
		"name":    "ada",
		"shout":   "ADA",
		"tag":     "fixed",
		"pair":    map[string]any{"id": 7, "name": "ada"},
		"address": map[string]any{"city": "London"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestParseYAML_PreservesDocumentOrder(t *testing.T) {
	doc := "zebra: a\nmango: b\napple: c\n"
	s, err := schemafile.ParseYAML([]byte(doc), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var keys []string
	for _, e := range s.Entries() {
		keys = append(keys, e.Key)
	}
	want := []string{"zebra", "mango", "apple"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
}

func TestParseJSON_PreservesDocumentOrder(t *testing.T) {
	doc := `{"zebra": "a", "mango": "b", "apple": "c"}`
	s, err := schemafile.ParseJSON([]byte(doc), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var keys []string
	for _, e := range s.Entries() {
		keys = append(keys, e.Key)
	}
	want := []string{"zebra", "mango", "apple"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
}

func TestParseJSON_SelectorAndNested(t *testing.T) {
	doc := `{
		"shout": {"path": "name", "fn": "upper"},
		"meta": {"origin": {"path": "name", "fn": "upper"}}
	}`
	s, err := schemafile.ParseJSON([]byte(doc), testRegistry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := morph.Apply(context.Background(), s, map[string]any{"name": "bob"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{
		"shout": "BOB",
		"meta":  map[string]any{"origin": "BOB"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestParse_UnknownFunction(t *testing.T) {
	doc := "out:\n  nope:\n    path: a\n    fn: missing\n"
	_, err := schemafile.ParseYAML([]byte(doc), testRegistry())
	iss, ok := morph.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues, got %v", err)
	}
	if iss[0].Code != morph.CodeUnknownFunction || iss[0].Path != "out.nope" {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}
}

func TestParse_MalformedActions(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"number scalar", "x: 42\n"},
		{"mixed sequence", "x: [a, 42]\n"},
		{"fn with extra member", "x:\n  fn: upper\n  path: a\n  extra: y\n"},
		{"fn not a string", "x:\n  fn: [a]\n"},
		{"path wrong type", "x:\n  fn: upper\n  path: 3\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := schemafile.ParseYAML([]byte(tc.doc), testRegistry())
			iss, ok := morph.AsIssues(err)
			if !ok {
				t.Fatalf("expected Issues, got %v", err)
			}
			if iss[0].Code != morph.CodeInvalidAction || iss[0].Path != "x" {
				t.Fatalf("unexpected issue: %+v", iss[0])
			}
		})
	}
}

func TestParse_DuplicateKeys(t *testing.T) {
	_, err := schemafile.ParseJSON([]byte(`{"a": "x", "a": "y"}`), nil)
	iss, ok := morph.AsIssues(err)
	if !ok || iss[0].Code != morph.CodeDuplicateKey || iss[0].Path != "a" {
		t.Fatalf("expected duplicate_key at a, got %v", err)
	}

	_, err = schemafile.ParseYAML([]byte("out:\n  a: x\n  a: y\n"), nil)
	iss, ok = morph.AsIssues(err)
	if !ok || iss[0].Code != morph.CodeDuplicateKey || iss[0].Path != "out.a" {
		t.Fatalf("expected duplicate_key at out.a, got %v", err)
	}
}

func TestParse_DocumentMustBeAMapping(t *testing.T) {
	for _, doc := range []string{`["a"]`, `"path"`} {
		_, err := schemafile.ParseJSON([]byte(doc), nil)
		iss, ok := morph.AsIssues(err)
		if !ok || iss[0].Code != morph.CodeInvalidType {
			t.Fatalf("expected invalid_type for %q, got %v", doc, err)
		}
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	for _, doc := range []string{`{"a":`, `{} {}`} {
		_, err := schemafile.ParseJSON([]byte(doc), nil)
		iss, ok := morph.AsIssues(err)
		if !ok || iss[0].Code != morph.CodeParseError {
			t.Fatalf("expected parse_error for %q, got %v", doc, err)
		}
	}
}

func TestParseYAML_EmptyDocumentIsEmptySchema(t *testing.T) {
	s, err := schemafile.ParseYAML(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := morph.Apply(context.Background(), s, map[string]any{"a": 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty target, got %#v", got)
	}
}
