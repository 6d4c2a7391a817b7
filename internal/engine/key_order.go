package engine

import (
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"

	js "github.com/codex-14499/codexcheck/jsonschema"
)

// ObjectKeyOrder reads one JSON value and records the key order of every
// object in it by JSON Pointer. A repeated key keeps its first position.
func ObjectKeyOrder(r io.Reader) (js.KeyOrder, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	order := js.KeyOrder{}

	var walk func(ptr string) error
	walk = func(ptr string) error {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		d, ok := tok.(json.Delim)
		if !ok {
			return nil
		}
		switch d {
		case '{':
			keys := []string{}
			seen := map[string]bool{}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return err
				}
				k, ok := kt.(string)
				if !ok {
					return fmt.Errorf("expected object key at %q, got %v", ptr, kt)
				}
				if !seen[k] {
					seen[k] = true
					keys = append(keys, k)
				}
				if err := walk(js.Pointer(ptr, k)); err != nil {
					return err
				}
			}
			order[ptr] = keys
		case '[':
			for i := 0; dec.More(); i++ {
				if err := walk(js.Pointer(ptr, strconv.Itoa(i))); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("unexpected delimiter %v at %q", d, ptr)
		}
		_, err = dec.Token()
		return err
	}

	if err := walk(""); err != nil {
		return nil, err
	}
	return order, nil
}
