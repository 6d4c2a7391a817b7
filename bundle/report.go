package bundle

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	codex "github.com/codex-14499/codexcheck"
)

// Report is the outcome of a bundle pass.
type Report struct {
	NodeCount int
	Issues    codex.Issues
}

// OK reports whether no issues were found.
func (r Report) OK() bool { return len(r.Issues) == 0 }

// WriteText prints one [FAIL] line per issue followed by an [ERROR] summary,
// or a single [OK] line.
func (r Report) WriteText(w io.Writer) error {
	if r.OK() {
		_, err := fmt.Fprintf(w, "[OK] %d nodes validated against schema and safety rules.\n", r.NodeCount)
		return err
	}
	for _, it := range r.Issues {
		if _, err := fmt.Fprintf(w, "[FAIL] %s: %s\n", it.Path, it.Message); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "[ERROR] Validation failed for %d issues across %d nodes.\n", len(r.Issues), r.NodeCount)
	return err
}

type jsonIssue struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type jsonReport struct {
	OK     bool        `json:"ok"`
	Nodes  int         `json:"nodes"`
	Issues []jsonIssue `json:"issues"`
}

// WriteJSON prints the report as a single indented JSON object.
func (r Report) WriteJSON(w io.Writer) error {
	out := jsonReport{OK: r.OK(), Nodes: r.NodeCount, Issues: make([]jsonIssue, 0, len(r.Issues))}
	for _, it := range r.Issues {
		out.Issues = append(out.Issues, jsonIssue{Path: it.Path, Code: it.Code, Message: it.Message})
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
