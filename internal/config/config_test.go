package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/funvibe/angelscript-front/internal/config"
)

// withDefaults snapshots the package-level settings before a test and
// restores them after, since config.Load mutates shared package vars and
// tests in this file run in the same process.
func withDefaults(t *testing.T) {
	t.Helper()
	arrayName, depth, strict := config.ArrayTypeName, config.MaxRecursionDepth, config.StrictMode
	t.Cleanup(func() {
		config.ArrayTypeName = arrayName
		config.MaxRecursionDepth = depth
		config.StrictMode = strict
	})
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	withDefaults(t)
	dir := t.TempDir()
	if err := config.Load(filepath.Join(dir, "does-not-exist.yml")); err != nil {
		t.Fatalf("expected a missing config file to be a no-op, got error: %v", err)
	}
	if config.ArrayTypeName != "array" {
		t.Errorf("expected default ArrayTypeName 'array', got %q", config.ArrayTypeName)
	}
	if config.MaxRecursionDepth != 256 {
		t.Errorf("expected default MaxRecursionDepth 256, got %d", config.MaxRecursionDepth)
	}
	if config.StrictMode {
		t.Error("expected default StrictMode false")
	}
}

func TestLoadAppliesAllFields(t *testing.T) {
	withDefaults(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".angelscript.yml")
	yaml := "arrayTypeName: CScriptArray\nmaxRecursionDepth: 64\nstrictMode: true\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := config.Load(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.ArrayTypeName != "CScriptArray" {
		t.Errorf("expected ArrayTypeName 'CScriptArray', got %q", config.ArrayTypeName)
	}
	if config.MaxRecursionDepth != 64 {
		t.Errorf("expected MaxRecursionDepth 64, got %d", config.MaxRecursionDepth)
	}
	if !config.StrictMode {
		t.Error("expected StrictMode true")
	}
}

func TestLoadZeroValuesKeepDefaults(t *testing.T) {
	withDefaults(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".angelscript.yml")
	// An explicit strictMode: false is indistinguishable from an omitted
	// field (Settings.StrictMode's zero value), so it's applied unconditionally;
	// arrayTypeName and maxRecursionDepth are only applied when non-zero.
	yaml := "strictMode: false\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := config.Load(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.ArrayTypeName != "array" {
		t.Errorf("expected ArrayTypeName to keep its default, got %q", config.ArrayTypeName)
	}
	if config.MaxRecursionDepth != 256 {
		t.Errorf("expected MaxRecursionDepth to keep its default, got %d", config.MaxRecursionDepth)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	withDefaults(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".angelscript.yml")
	if err := os.WriteFile(path, []byte("arrayTypeName: [unterminated\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := config.Load(path); err == nil {
		t.Fatal("expected malformed YAML to produce an error")
	}
}
