package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "codexcheck.yaml")
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
validate:
  strict_keys: true
  unique_keys: [id, slug]
dedup:
  skip: [vendor]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Validate.Data != "dist/codex.min.json" {
		t.Fatalf("expected default data path, got %s", cfg.Validate.Data)
	}
	if cfg.Validate.Schema != "schema/codex-node.schema.json" {
		t.Fatalf("expected default schema path, got %s", cfg.Validate.Schema)
	}
	if cfg.Validate.Format != "text" || cfg.Validate.Lang != "en" {
		t.Fatalf("expected text/en defaults, got %s/%s", cfg.Validate.Format, cfg.Validate.Lang)
	}
	if !cfg.Validate.StrictKeys {
		t.Fatalf("expected strict_keys to be kept")
	}
	if strings.Join(cfg.Validate.UniqueKeys, ",") != "id,slug" {
		t.Fatalf("expected unique_keys, got %v", cfg.Validate.UniqueKeys)
	}
	if len(cfg.Dedup.Skip) != 1 || cfg.Dedup.Skip[0] != "vendor" {
		t.Fatalf("expected skip override, got %v", cfg.Dedup.Skip)
	}
	if len(cfg.Dedup.Extensions) != 7 {
		t.Fatalf("expected default extensions, got %v", cfg.Dedup.Extensions)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"format":      "validate:\n  format: xml\n",
		"lang":        "validate:\n  lang: fr\n",
		"extensions":  "dedup:\n  extensions: []\n",
		"unique_keys": "validate:\n  unique_keys: [\"\"]\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, data))
			if err == nil || !strings.Contains(err.Error(), name) {
				t.Fatalf("expected %s error, got %v", name, err)
			}
		})
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "validate: [")); err == nil {
		t.Fatalf("expected yaml error")
	}
}

func TestResolve(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	if _, err := Resolve(missing); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("explicit missing file should fail, got %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("default path absent should not fail: %v", err)
	}
	if cfg.Validate.Format != "text" {
		t.Fatalf("expected defaults, got %+v", cfg.Validate)
	}

	if err := os.WriteFile(DefaultPath, []byte("validate:\n  format: json\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err = Resolve("")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Validate.Format != "json" {
		t.Fatalf("expected json from default file, got %s", cfg.Validate.Format)
	}
}
