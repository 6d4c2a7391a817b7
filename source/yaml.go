package source

import (
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	js "github.com/codex-14499/codexcheck/jsonschema"
)

// decodeYAMLObject decodes a YAML mapping document and records the key order
// of each mapping it contains.
func decodeYAMLObject(data []byte) (map[string]any, js.KeyOrder, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil, errors.New("empty YAML document")
	}
	var node any
	if err := root.Decode(&node); err != nil {
		return nil, nil, err
	}
	if node == nil {
		return nil, nil, errors.New("empty YAML document")
	}
	m := yamlAnyToStringMap(node)
	if m == nil {
		return nil, nil, fmt.Errorf("schema root must be a mapping, got %T", node)
	}
	order := js.KeyOrder{}
	yamlKeyOrder(&root, "", order)
	return m, order, nil
}

// yamlKeyOrder records mapping key order by JSON Pointer, mirroring the
// pointers of the normalised map[string]any value.
func yamlKeyOrder(n *yaml.Node, ptr string, out js.KeyOrder) {
	switch n.Kind {
	case yaml.DocumentNode:
		for _, c := range n.Content {
			yamlKeyOrder(c, ptr, out)
		}
	case yaml.MappingNode:
		keys := make([]string, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i].Value
			keys = append(keys, k)
			yamlKeyOrder(n.Content[i+1], js.Pointer(ptr, k), out)
		}
		out[ptr] = keys
	case yaml.SequenceNode:
		for i, c := range n.Content {
			yamlKeyOrder(c, js.Pointer(ptr, strconv.Itoa(i)), out)
		}
	case yaml.AliasNode:
		if n.Alias != nil {
			yamlKeyOrder(n.Alias, ptr, out)
		}
	}
}

// yamlAnyToStringMap converts YAML-decoded values (which may contain map[any]any)
// into JSON-like map[string]any recursively. Non-map roots return nil.
func yamlAnyToStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprint(k)] = yamlNormalizeValue(vv)
		}
		return out
	default:
		return nil
	}
}

func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return yamlAnyToStringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}
