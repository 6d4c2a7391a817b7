// Package dedup finds consecutive duplicate lines in text files and can
// remove them in place. Blank (whitespace-only) repeats are allowed.
package dedup

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtensions are the file suffixes scanned when Options.Extensions is
// empty.
var DefaultExtensions = []string{".js", ".mjs", ".html", ".json", ".md", ".py", ".txt"}

// DefaultSkip are directory names never descended into when Options.Skip is
// empty.
var DefaultSkip = []string{".git", "node_modules", "__pycache__"}

// Dup is one repeated line. Line is 1-based.
type Dup struct {
	Line int
	Text string
}

// Result lists the duplicates found in one file.
type Result struct {
	Path string
	Dups []Dup
}

// Options selects which files Scan visits.
type Options struct {
	Extensions []string
	Skip       []string
}

// Lines returns the duplicates in lines and the lines that remain once they
// are dropped.
func Lines(lines []string) (dups []Dup, kept []string) {
	kept = make([]string, 0, len(lines))
	for i, line := range lines {
		if i > 0 && line == lines[i-1] && strings.TrimSpace(line) != "" {
			dups = append(dups, Dup{Line: i + 1, Text: line})
			continue
		}
		kept = append(kept, line)
	}
	return dups, kept
}

// File reports the duplicates in path. With fix, the file is rewritten
// without them (newline terminated) when any were found.
func File(path string, fix bool) ([]Dup, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dups, kept := Lines(splitLines(string(raw)))
	if fix && len(dups) > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, []byte(strings.Join(kept, "\n")+"\n"), info.Mode().Perm()); err != nil {
			return nil, err
		}
	}
	return dups, nil
}

// Scan walks root and runs File on every matching file. Results are in
// lexical path order and only include files with duplicates.
func Scan(root string, opts Options, fix bool) ([]Result, error) {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	skip := opts.Skip
	if len(skip) == 0 {
		skip = DefaultSkip
	}
	extSet := toSet(exts)
	skipSet := toSet(skip)

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skipSet[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && extSet[filepath.Ext(path)] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	var out []Result
	for _, f := range files {
		dups, err := File(f, fix)
		if err != nil {
			return out, err
		}
		if len(dups) > 0 {
			out = append(out, Result{Path: f, Dups: dups})
		}
	}
	return out, nil
}

// splitLines splits on \n, \r\n and \r without producing a trailing empty
// line for a final terminator.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func toSet(items []string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}
