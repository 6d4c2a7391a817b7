// Package source loads codex documents and schemas from disk.
//
// JSON is decoded with go-json and UseNumber, so numbers keep their literal
// form (1 is an integer, 1.0 is not). YAML schemas are normalised to the same
// map[string]any shape before compilation.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	codex "github.com/codex-14499/codexcheck"
	"github.com/codex-14499/codexcheck/internal/engine"
	js "github.com/codex-14499/codexcheck/jsonschema"
)

// ErrNotExist is returned (wrapped) when a required file is absent.
var ErrNotExist = errors.New("source: file does not exist")

// Exists reports whether path names an existing file. Stat failures other
// than "not exist" count as existing so the later read surfaces them.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}

// ReadFile reads path, wrapping absence as ErrNotExist.
func ReadFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, path)
		}
		return nil, err
	}
	return b, nil
}

// DecodeJSON decodes a single JSON value. Trailing data after the value is an
// error.
func DecodeJSON(data []byte) (any, error) {
	return decodeJSON(bytes.NewReader(data))
}

func decodeJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after top-level value")
	}
	return v, nil
}

// LoadJSON reads and decodes the JSON document at path.
func LoadJSON(path string) (any, error) {
	b, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	v, err := DecodeJSON(b)
	if err != nil {
		return nil, fmt.Errorf("source: %s: %w", path, err)
	}
	return v, nil
}

// KeyOrder records the key order of every object in raw JSON, by JSON
// Pointer. Decoding into maps loses it; validation uses it to report
// unknown keys in document order.
func KeyOrder(data []byte) (js.KeyOrder, error) {
	return engine.ObjectKeyOrder(bytes.NewReader(data))
}

// LoadSchema reads a schema file and compiles it. Files ending in .yaml or
// .yml are decoded as YAML, everything else as JSON. Properties keep the
// order they are declared in.
func LoadSchema(path string) (*js.Schema, error) {
	b, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	var (
		doc   map[string]any
		order js.KeyOrder
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		doc, order, err = decodeYAMLObject(b)
	default:
		doc, order, err = decodeJSONObject(b)
	}
	if err != nil {
		return nil, fmt.Errorf("source: %s: %w", path, err)
	}
	s, err := js.Compile(doc, js.WithKeyOrder(order))
	if err != nil {
		return nil, fmt.Errorf("source: %s: %w", path, err)
	}
	return s, nil
}

func decodeJSONObject(data []byte) (map[string]any, js.KeyOrder, error) {
	v, err := DecodeJSON(data)
	if err != nil {
		return nil, nil, err
	}
	doc, ok := v.(map[string]any)
	if !ok {
		return nil, nil, fmt.Errorf("schema root must be an object, got %s", codex.KindOf(v))
	}
	order, err := KeyOrder(data)
	if err != nil {
		return nil, nil, err
	}
	return doc, order, nil
}

// DuplicateKeys scans raw JSON for object keys repeated within one object.
// Decoding keeps only the last occurrence, so these are otherwise invisible.
// Paths start at codex.RootPath.
func DuplicateKeys(data []byte) (codex.Issues, error) {
	si, err := engine.DetectJSONDuplicateKeys(bytes.NewReader(data), codex.RootPath, -1)
	if err != nil {
		return nil, err
	}
	var iss codex.Issues
	for _, s := range si {
		switch s.Code {
		case codex.CodeDuplicateKey:
			iss = codex.AppendIssues(iss, codex.At(s.Path).Issue(codex.CodeDuplicateKey, "key", s.Key))
		case codex.CodeParseError:
			iss = codex.AppendIssues(iss, codex.At(s.Path).Issue(codex.CodeParseError, "error", s.Message))
		default:
			iss = codex.AppendIssues(iss, codex.Issue{Path: s.Path, Code: s.Code, Message: s.Message})
		}
	}
	return iss, nil
}
