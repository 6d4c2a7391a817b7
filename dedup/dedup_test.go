package dedup_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/codex-14499/codexcheck/dedup"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestFile_Fix(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sample.txt")
	write(t, p, "a\na\nb\nb\n")
	dups, err := dedup.File(p, true)
	if err != nil {
		t.Fatalf("dedup: %v", err)
	}
	want := []dedup.Dup{{Line: 2, Text: "a"}, {Line: 4, Text: "b"}}
	if !reflect.DeepEqual(dups, want) {
		t.Fatalf("got %v want %v", dups, want)
	}
	got, _ := os.ReadFile(p)
	if string(got) != "a\nb\n" {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestFile_ReportOnlyLeavesFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sample.md")
	write(t, p, "x\nx\nx")
	dups, err := dedup.File(p, false)
	if err != nil {
		t.Fatalf("dedup: %v", err)
	}
	if len(dups) != 2 || dups[0].Line != 2 || dups[1].Line != 3 {
		t.Fatalf("unexpected %v", dups)
	}
	got, _ := os.ReadFile(p)
	if string(got) != "x\nx\nx" {
		t.Fatalf("file changed: %q", got)
	}
}

func TestLines_BlankRepeatsAllowed(t *testing.T) {
	dups, kept := dedup.Lines([]string{"a", "", "", "  ", "  ", "b"})
	if len(dups) != 0 || len(kept) != 6 {
		t.Fatalf("unexpected dups=%v kept=%v", dups, kept)
	}
}

func TestScan_FiltersAndSkips(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "b.js"), "x\nx\n")
	write(t, filepath.Join(root, "a", "c.json"), "{\n}\n}\n")
	write(t, filepath.Join(root, "img.png"), "x\nx\n")
	write(t, filepath.Join(root, "node_modules", "m.js"), "x\nx\n")
	write(t, filepath.Join(root, ".git", "HEAD.txt"), "x\nx\n")
	write(t, filepath.Join(root, "clean.md"), "one\ntwo\n")

	res, err := dedup.Scan(root, dedup.Options{}, false)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	var got []string
	for _, r := range res {
		rel, _ := filepath.Rel(root, r.Path)
		got = append(got, filepath.ToSlash(rel))
	}
	want := []string{"a/c.json", "b.js"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestScan_CustomOptions(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "notes.log"), "y\ny\n")
	write(t, filepath.Join(root, "b.js"), "x\nx\n")
	res, err := dedup.Scan(root, dedup.Options{Extensions: []string{".log"}}, true)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(res) != 1 || filepath.Base(res[0].Path) != "notes.log" {
		t.Fatalf("unexpected %v", res)
	}
	got, _ := os.ReadFile(filepath.Join(root, "notes.log"))
	if string(got) != "y\n" {
		t.Fatalf("fix not applied: %q", got)
	}
}
