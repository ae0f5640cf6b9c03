package morph

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidAction   = "invalid_action"
	CodeInvalidType     = "invalid_type"
	CodeUnknownFunction = "unknown_function"
	CodeDuplicateKey    = "duplicate_key"
	CodeParseError      = "parse_error"
)

// Issue represents a single schema defect.
type Issue struct {
	Path    string // Dotted destination path (for example: address.city).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, accepted forms, etc.
	Cause   error  // Optional: underlying error.
}

// Issues is a collection of schema defects that implements error.
//
// Issues only ever describes the schema itself (malformed actions, unknown
// function names, unparsable documents). Errors returned by caller-supplied
// callables are propagated unmodified and never wrapped into Issues.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_action at address.city
		if it.Path == "" {
			b.WriteString(it.Code)
		} else {
			fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func singleIssue(code, msg string) Issues {
	return Issues{Issue{Path: "", Code: code, Message: msg}}
}
