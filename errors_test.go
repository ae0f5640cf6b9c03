package morph_test

import (
	"fmt"
	"strings"
	"testing"

	morph "github.com/gomorph/morph"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := morph.Issues{
		{Path: "a", Code: morph.CodeInvalidAction},
		{Path: "b.c", Code: morph.CodeUnknownFunction},
		{Path: "d", Code: morph.CodeInvalidType},
		{Path: "e", Code: morph.CodeParseError},
	}
	s := iss.Error()
	if !strings.Contains(s, "invalid_action at a") {
		t.Fatalf("summary missing first issue: %q", s)
	}
	// More than three issues are elided with a total count.
	if !strings.Contains(s, "(total 4)") {
		t.Fatalf("summary missing elision count: %q", s)
	}
}

func TestAsIssues_UnwrapsWrappedErrors(t *testing.T) {
	iss := morph.Issues{{Path: "x", Code: morph.CodeInvalidAction}}
	wrapped := fmt.Errorf("loading schema: %w", iss)
	got, ok := morph.AsIssues(wrapped)
	if !ok || len(got) != 1 || got[0].Path != "x" {
		t.Fatalf("AsIssues failed on wrapped error: %v %v", got, ok)
	}
	if _, ok := morph.AsIssues(nil); ok {
		t.Fatalf("AsIssues(nil) must report false")
	}
}
