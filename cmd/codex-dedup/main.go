// Command codex-dedup reports consecutive duplicate lines in text files and
// optionally removes them.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/codex-14499/codexcheck/dedup"
	"github.com/codex-14499/codexcheck/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("codex-dedup", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: codex-dedup [-fix] [-config path] [root]")
		fs.PrintDefaults()
	}
	var (
		fix     bool
		cfgPath string
		verbose bool
	)
	fs.BoolVar(&fix, "fix", false, "rewrite files with duplicates removed")
	fs.StringVar(&cfgPath, "config", "", "config file (default "+config.DefaultPath+" if present)")
	fs.BoolVar(&verbose, "v", false, "enable verbose logs")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return 2
	}

	logf := func(format string, a ...any) {
		if verbose {
			fmt.Fprintf(stderr, format+"\n", a...)
		}
	}

	cfg, err := config.Resolve(cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 2
	}
	root := cfg.Dedup.Root
	if fs.NArg() == 1 {
		root = fs.Arg(0)
	}
	logf("codex-dedup: root=%s fix=%t extensions=%v skip=%v", root, fix, cfg.Dedup.Extensions, cfg.Dedup.Skip)

	results, err := dedup.Scan(root, dedup.Options{Extensions: cfg.Dedup.Extensions, Skip: cfg.Dedup.Skip}, fix)
	if err != nil {
		fmt.Fprintf(stderr, "dedup: %v\n", err)
		return 1
	}
	if len(results) == 0 {
		fmt.Fprintln(stdout, "No duplicate lines found.")
		return 0
	}
	for _, r := range results {
		fmt.Fprintf(stdout, "%s:\n", r.Path)
		for _, d := range r.Dups {
			fmt.Fprintf(stdout, "  dup line %d: %s\n", d.Line, d.Text)
		}
	}
	if fix {
		logf("fixed %d files", len(results))
	}
	return 0
}
