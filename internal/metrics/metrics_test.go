package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	codex "github.com/codex-14499/codexcheck"
	"github.com/codex-14499/codexcheck/bundle"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorderObserve(t *testing.T) {
	r := New()
	rep := bundle.Report{
		NodeCount: 3,
		Issues: codex.Issues{
			{Path: "node[0].slug", Code: codex.CodeRequired},
			{Path: "node[1].slug", Code: codex.CodeRequired},
			{Path: "node[2].safety.minSweepSec", Code: codex.CodeBusinessRule},
		},
	}
	r.Observe(rep, 250*time.Millisecond)

	if got := testutil.ToFloat64(r.nodes); got != 3 {
		t.Fatalf("expected nodes counter 3, got %f", got)
	}
	if got := testutil.ToFloat64(r.issues.WithLabelValues(codex.CodeRequired)); got != 2 {
		t.Fatalf("expected 2 required issues, got %f", got)
	}
	if got := testutil.ToFloat64(r.issues.WithLabelValues(codex.CodeBusinessRule)); got != 1 {
		t.Fatalf("expected 1 business_rule issue, got %f", got)
	}
	if got := testutil.ToFloat64(r.success); got != 0 {
		t.Fatalf("expected success gauge 0, got %f", got)
	}
	if got := testutil.ToFloat64(r.duration); got != 0.25 {
		t.Fatalf("expected duration 0.25, got %f", got)
	}

	r.Observe(bundle.Report{NodeCount: 1}, time.Second)
	if got := testutil.ToFloat64(r.success); got != 1 {
		t.Fatalf("expected success gauge 1, got %f", got)
	}
	if got := testutil.ToFloat64(r.nodes); got != 4 {
		t.Fatalf("expected nodes counter 4, got %f", got)
	}
}

func TestRecorderFail(t *testing.T) {
	r := New()
	r.Observe(bundle.Report{NodeCount: 1}, time.Second)
	r.Fail(2 * time.Second)
	if got := testutil.ToFloat64(r.success); got != 0 {
		t.Fatalf("expected success gauge 0 after failure, got %f", got)
	}
	if got := testutil.ToFloat64(r.duration); got != 2 {
		t.Fatalf("expected duration 2, got %f", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	r := New()
	r.Observe(bundle.Report{NodeCount: 2}, time.Millisecond)
	path := filepath.Join(t.TempDir(), "codex.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("write textfile: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	out := string(raw)
	for _, want := range []string{"codex_nodes_validated_total 2", "codex_validation_success 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("textfile missing %q:\n%s", want, out)
		}
	}
}
