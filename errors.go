package codex

import (
	"fmt"
	"strings"
)

// Issue codes.
const (
	CodeInvalidType    = "invalid_type"
	CodeRequired       = "required"
	CodeUnknownKey     = "unknown_key"
	CodeDuplicateKey   = "duplicate_key"
	CodeTooSmall       = "too_small"
	CodeTooShort       = "too_short"
	CodePattern        = "pattern"
	CodeInvalidEnum    = "invalid_enum"
	CodeParseError     = "parse_error"
	// Cross-node uniqueness (bundle.WithUniqueKeys)
	CodeDuplicateValue = "duplicate_value"
	// Node rules (domain semantics layered over the schema pass)
	CodeBusinessRule   = "business_rule"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // Dotted/bracketed locator (for example: node[2].safety.minSweepSec).
	Code    string // One of the codes listed above.
	Message string
	// Params carries the structured values the message was rendered from
	// (e.g., {"minimum": 14, "got": 5}).
	Params map[string]any
}

// String renders the issue the way the CLI prints it after the [FAIL] tag.
func (it Issue) String() string { return it.Path + ": " + it.Message }

// Issues is a collection of validation errors that implements error.
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
		// e.g. invalid_type at node[0].id
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
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
