package engine

import (
	"errors"
	"io"
	"strconv"

	"github.com/goccy/go-json"
)

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
	Key     string
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type dupFrame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         string
	nextIndex    int
}

// DetectJSONDuplicateKeys reports object keys that occur more than once in the
// same object. Paths are dotted/bracketed and start at root ("$.nodes[0].id").
// maxIssues < 0 means unlimited; 0 disables detection; > 0 caps the result and
// appends a "truncated" issue when the cap is hit.
// A syntax error ends the scan with a parse_error issue rather than an error;
// only read failures are returned as errors.
func DetectJSONDuplicateKeys(r io.Reader, root string, maxIssues int) ([]SimpleIssue, error) {
	if maxIssues == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var issues []SimpleIssue
	var stack []dupFrame

	appendIssue := func(i SimpleIssue) bool {
		issues = append(issues, i)
		if maxIssues > 0 && len(issues) >= maxIssues {
			issues = append(issues, SimpleIssue{Code: "truncated", Path: root, Message: "max issues reached"})
			return false
		}
		return true
	}

	// valuePath returns the locator of the value about to be read and
	// advances the enclosing frame.
	valuePath := func() string {
		if len(stack) == 0 {
			return root
		}
		top := &stack[len(stack)-1]
		if top.kind == kindArray {
			p := top.path + "[" + strconv.Itoa(top.nextIndex) + "]"
			top.nextIndex++
			return p
		}
		top.expectingKey = true
		return top.path
	}

	var pendingPath string
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			var se *json.SyntaxError
			if errors.As(err, &se) {
				appendIssue(SimpleIssue{Code: "parse_error", Path: root, Message: err.Error()})
				return issues, nil
			}
			return issues, err
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{', '[':
				p := pendingPath
				if len(stack) == 0 || stack[len(stack)-1].kind == kindArray {
					p = valuePath()
				} else {
					stack[len(stack)-1].expectingKey = true
				}
				if v == '{' {
					stack = append(stack, dupFrame{kind: kindObject, keys: map[string]struct{}{}, expectingKey: true, path: p})
				} else {
					stack = append(stack, dupFrame{kind: kindArray, path: p})
				}
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
			}
		case string:
			if n := len(stack); n > 0 {
				top := &stack[n-1]
				if top.kind == kindObject && top.expectingKey {
					pendingPath = top.path + "." + v
					if _, dup := top.keys[v]; dup {
						if !appendIssue(SimpleIssue{Code: "duplicate_key", Path: pendingPath, Message: "key '" + v + "' duplicated", Key: v}) {
							return issues, nil
						}
					}
					top.keys[v] = struct{}{}
					top.expectingKey = false
					continue
				}
			}
			valuePath()
		default:
			valuePath()
		}
	}

	return issues, nil
}
