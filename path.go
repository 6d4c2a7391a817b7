package codex

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/codex-14499/codexcheck/i18n"
)

// RootPath is the locator used when validation starts without an explicit path.
const RootPath = "$"

// PathRef builds dotted/bracketed locators in a chain-safe way and creates Issues.
type PathRef interface {
	Field(name string) PathRef
	Index(i int) PathRef
	String() string
	// Issue renders the message for code through the i18n catalogue, using kv
	// pairs as both message data and Issue.Params.
	Issue(code string, kv ...any) Issue
	// IssueKey is Issue with a message key that differs from the code.
	IssueKey(code, key string, kv ...any) Issue
}

// Root returns a PathRef positioned at RootPath.
func Root() PathRef { return At(RootPath) }

// At returns a PathRef rooted at an arbitrary locator such as "node[3]".
func At(base string) PathRef {
	if base == "" {
		base = RootPath
	}
	return pathRef{s: base}
}

type pathRef struct {
	s string
}

func (p pathRef) Field(name string) PathRef {
	return pathRef{s: p.s + "." + name}
}

func (p pathRef) Index(i int) PathRef {
	return pathRef{s: p.s + "[" + strconv.Itoa(i) + "]"}
}

func (p pathRef) String() string { return p.s }

func (p pathRef) Issue(code string, kv ...any) Issue { return p.IssueKey(code, code, kv...) }

func (p pathRef) IssueKey(code, key string, kv ...any) Issue {
	params := map[string]any{}
	data := map[string]string{}
	for i := 0; i+1 < len(kv); i += 2 {
		k := fmt.Sprint(kv[i])
		if q, ok := kv[i+1].(quoted); ok {
			params[k] = q.v
			data[k] = Literal(q.v)
			continue
		}
		params[k] = kv[i+1]
		data[k] = render(kv[i+1])
	}
	if len(params) == 0 {
		params = nil
	}
	return Issue{Path: p.s, Code: code, Message: i18n.T(key, data), Params: params}
}

// quoted marks a message value that is always rendered as a literal, so a
// string shows its quotes.
type quoted struct{ v any }

// render formats message data: string lists as [a b], everything else via
// its JSON-ish literal.
func render(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		return "[" + strings.Join(t, " ") + "]"
	default:
		return Literal(v)
	}
}
