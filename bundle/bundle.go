// Package bundle runs the node-level pass over a codex bundle: every element
// of the top-level "nodes" array is validated against the node schema and
// then against the node rules.
package bundle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	codex "github.com/codex-14499/codexcheck"
	"github.com/codex-14499/codexcheck/i18n"
	js "github.com/codex-14499/codexcheck/jsonschema"
	"github.com/codex-14499/codexcheck/rules"
)

// NodesKey is the top-level key holding the node array.
const NodesKey = "nodes"

// ErrNodesMissing reports a document without a "nodes" array. It is a
// structural failure, distinct from per-node issues.
var ErrNodesMissing = errors.New("payload missing 'nodes' array")

type options struct {
	rules  []rules.Rule
	extra  codex.Issues
	order  js.KeyOrder
	unique []string
}

// Option configures Check.
type Option func(*options)

// WithRules replaces the node rules (default: rules.Default()).
func WithRules(rs ...rules.Rule) Option {
	return func(o *options) { o.rules = rs }
}

// WithExtraIssues appends issues found outside the node pass, such as
// duplicate keys reported by the loader. Locators rooted at the document
// ("$.nodes[2].id") are rewritten with NodeLocator.
func WithExtraIssues(iss codex.Issues) Option {
	return func(o *options) { o.extra = append(o.extra, iss...) }
}

// WithKeyOrder supplies the key order of the raw bundle (see
// source.KeyOrder) so unknown keys are reported in document order.
func WithKeyOrder(order js.KeyOrder) Option {
	return func(o *options) { o.order = order }
}

// WithUniqueKeys requires the named top-level node fields (such as "id" or
// "slug") to be distinct across the bundle.
func WithUniqueKeys(fields ...string) Option {
	return func(o *options) { o.unique = append(o.unique, fields...) }
}

// Nodes extracts the node array from a decoded bundle.
func Nodes(doc any) ([]any, error) {
	m, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w (document is %s)", ErrNodesMissing, codex.KindOf(doc))
	}
	nodes, ok := m[NodesKey].([]any)
	if !ok {
		return nil, ErrNodesMissing
	}
	return nodes, nil
}

// Check validates every node of doc against s. It returns an error only for
// structural failures; content problems are collected in the Report.
func Check(doc any, s *js.Schema, opts ...Option) (Report, error) {
	o := options{rules: rules.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	nodes, err := Nodes(doc)
	if err != nil {
		return Report{}, err
	}

	var iss codex.Issues
	for i, n := range nodes {
		at := NodePath(i)
		node, ok := n.(map[string]any)
		if !ok {
			iss = append(iss, codex.At(at).IssueKey(codex.CodeInvalidType, i18n.KeyExpectedObject, "got", codex.KindOf(n)))
			continue
		}
		ptr := js.Pointer(js.Pointer("", NodesKey), strconv.Itoa(i))
		iss = append(iss, validateNode(node, s, at, o.rules, codex.WithKeyOrder(o.order, ptr))...)
	}

	if len(o.unique) > 0 {
		bundleDoc := doc.(map[string]any)
		for _, field := range o.unique {
			dups := rules.UniqueBy("/"+NodesKey, "/"+field)(bundleDoc, codex.Root())
			iss = append(iss, relocate(dups)...)
		}
	}

	iss = append(iss, relocate(o.extra)...)
	return Report{NodeCount: len(nodes), Issues: iss}, nil
}

// ValidateNode runs the schema pass and then each rule over one node. Rules
// run even when the schema pass reported issues.
func ValidateNode(node map[string]any, s *js.Schema, at string, rs ...rules.Rule) codex.Issues {
	return validateNode(node, s, at, rs)
}

func validateNode(node map[string]any, s *js.Schema, at string, rs []rules.Rule, vopts ...codex.Option) codex.Issues {
	iss := codex.Validate(node, s, at, vopts...)
	ref := codex.At(at)
	for _, r := range rs {
		if r == nil {
			continue
		}
		iss = append(iss, r(node, ref)...)
	}
	return iss
}

// NodePath is the locator of the i-th node.
func NodePath(i int) string { return "node[" + strconv.Itoa(i) + "]" }

// NodeLocator rewrites a document-rooted locator inside the node array
// ("$.nodes[3].id") to the form the node pass uses ("node[3].id"). Other
// locators are returned unchanged.
func NodeLocator(path string) string {
	const prefix = codex.RootPath + "." + NodesKey + "["
	if strings.HasPrefix(path, prefix) {
		return "node[" + path[len(prefix):]
	}
	return path
}

func relocate(iss codex.Issues) codex.Issues {
	out := make(codex.Issues, len(iss))
	for i, it := range iss {
		it.Path = NodeLocator(it.Path)
		out[i] = it
	}
	return out
}
