// Command codex-validate checks a codex bundle against the node schema and
// the node safety rules.
//
// Exit status is 0 when every node is valid, 1 for content issues or a
// malformed bundle, and 2 for missing files and usage errors.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/codex-14499/codexcheck/bundle"
	"github.com/codex-14499/codexcheck/i18n"
	"github.com/codex-14499/codexcheck/internal/config"
	"github.com/codex-14499/codexcheck/internal/metrics"
	"github.com/codex-14499/codexcheck/source"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: codex-validate [flags] [data_path] [schema_path]")
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("codex-validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		usage(stderr)
		fs.PrintDefaults()
	}
	var (
		cfgPath     string
		format      string
		strictKeys  bool
		unique      string
		metricsFile string
		lang        string
		verbose     bool
	)
	fs.StringVar(&cfgPath, "config", "", "config file (default "+config.DefaultPath+" if present)")
	fs.StringVar(&format, "format", "", "output format: text or json")
	fs.BoolVar(&strictKeys, "strict-keys", false, "report duplicate object keys in the bundle")
	fs.StringVar(&unique, "unique", "", "comma-separated node fields that must be distinct across the bundle (e.g. id,slug)")
	fs.StringVar(&metricsFile, "metrics-file", "", "write Prometheus textfile metrics to this path")
	fs.StringVar(&lang, "lang", "", "message language: en or ja")
	fs.BoolVar(&verbose, "v", false, "enable verbose logs")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	logf := func(format string, a ...any) {
		if verbose {
			fmt.Fprintf(stderr, format+"\n", a...)
		}
	}

	if fs.NArg() > 2 {
		usage(stdout)
		return exitUsage
	}

	cfg, err := config.Resolve(cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitUsage
	}
	opts := cfg.Validate
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			opts.Format = format
		case "strict-keys":
			opts.StrictKeys = strictKeys
		case "unique":
			opts.UniqueKeys = splitCSV(unique)
		case "metrics-file":
			opts.MetricsFile = metricsFile
		case "lang":
			opts.Lang = lang
		}
	})
	if fs.NArg() > 0 {
		opts.Data = fs.Arg(0)
	}
	if fs.NArg() > 1 {
		opts.Schema = fs.Arg(1)
	}
	if opts.Format != "text" && opts.Format != "json" {
		fmt.Fprintf(stderr, "unknown format %q\n", opts.Format)
		return exitUsage
	}
	i18n.SetLanguage(opts.Lang)
	logf("codex-validate: data=%s schema=%s format=%s strict-keys=%t", opts.Data, opts.Schema, opts.Format, opts.StrictKeys)

	if !source.Exists(opts.Data) {
		fmt.Fprintf(stdout, "[ERROR] Missing data bundle: %s\n", opts.Data)
		return exitUsage
	}
	if !source.Exists(opts.Schema) {
		fmt.Fprintf(stdout, "[ERROR] Missing schema file: %s\n", opts.Schema)
		return exitUsage
	}

	start := time.Now()
	rec := metrics.New()
	code := validate(opts, rec, stdout, logf)
	if opts.MetricsFile != "" {
		if err := rec.WriteTextfile(opts.MetricsFile); err != nil {
			fmt.Fprintf(stderr, "metrics: %v\n", err)
			return exitFail
		}
		logf("wrote metrics: %s (%s)", opts.MetricsFile, time.Since(start))
	}
	return code
}

func validate(opts config.ValidateConfig, rec *metrics.Recorder, stdout io.Writer, logf func(string, ...any)) int {
	start := time.Now()
	fail := func(format string, a ...any) int {
		fmt.Fprintf(stdout, "[ERROR] "+format+"\n", a...)
		rec.Fail(time.Since(start))
		return exitFail
	}

	schema, err := source.LoadSchema(opts.Schema)
	if err != nil {
		return fail("%v", err)
	}
	raw, err := source.ReadFile(opts.Data)
	if err != nil {
		return fail("%v", err)
	}
	doc, err := source.DecodeJSON(raw)
	if err != nil {
		return fail("%s: %v", opts.Data, err)
	}
	logf("loaded %s (%d bytes)", opts.Data, len(raw))

	order, err := source.KeyOrder(raw)
	if err != nil {
		return fail("%s: %v", opts.Data, err)
	}
	checkOpts := []bundle.Option{bundle.WithKeyOrder(order)}
	if len(opts.UniqueKeys) > 0 {
		checkOpts = append(checkOpts, bundle.WithUniqueKeys(opts.UniqueKeys...))
	}
	if opts.StrictKeys {
		dups, err := source.DuplicateKeys(raw)
		if err != nil {
			return fail("%s: %v", opts.Data, err)
		}
		logf("duplicate keys: %d", len(dups))
		checkOpts = append(checkOpts, bundle.WithExtraIssues(dups))
	}

	rep, err := bundle.Check(doc, schema, checkOpts...)
	if errors.Is(err, bundle.ErrNodesMissing) {
		return fail("Payload missing 'nodes' array")
	}
	if err != nil {
		return fail("%v", err)
	}
	rec.Observe(rep, time.Since(start))
	logf("checked %d nodes, %d issues", rep.NodeCount, len(rep.Issues))

	if opts.Format == "json" {
		err = rep.WriteJSON(stdout)
	} else {
		err = rep.WriteText(stdout)
	}
	if err != nil {
		return exitFail
	}
	if !rep.OK() {
		return exitFail
	}
	return exitOK
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
