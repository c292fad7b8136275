package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xbodwf/ljc/internal/config"
)

func TestDefaultValues(t *testing.T) {
	opts := config.Default()
	if opts.ModuleResolution != config.ModuleResolutionIdentity {
		t.Errorf("expected identity module resolution by default, got %q", opts.ModuleResolution)
	}
	if opts.RuntimeModule != "lj-runtime" {
		t.Errorf("expected lj-runtime as the default runtime module, got %q", opts.RuntimeModule)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	opts, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := config.Default()
	if opts.ModuleResolution != want.ModuleResolution || opts.RuntimeModule != want.RuntimeModule || opts.OutDir != want.OutDir {
		t.Errorf("expected defaults for a missing file, got %+v", opts)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".ljconfig.yaml")
	content := `outDir: dist
sourceMap: true
target: es2022
moduleResolution: rewrite-extension
include:
  - "src/**/*.lj"
exclude:
  - "src/**/*.test.lj"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	opts, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.OutDir != "dist" {
		t.Errorf("expected outDir dist, got %q", opts.OutDir)
	}
	if !opts.SourceMap {
		t.Errorf("expected sourceMap true")
	}
	if opts.Target != "es2022" {
		t.Errorf("expected target es2022, got %q", opts.Target)
	}
	if opts.ModuleResolution != config.ModuleResolutionExtension {
		t.Errorf("expected rewrite-extension resolution, got %q", opts.ModuleResolution)
	}
	if len(opts.Include) != 1 || opts.Include[0] != "src/**/*.lj" {
		t.Errorf("expected one include glob, got %+v", opts.Include)
	}
	if len(opts.Exclude) != 1 || opts.Exclude[0] != "src/**/*.test.lj" {
		t.Errorf("expected one exclude glob, got %+v", opts.Exclude)
	}
}

func TestLoadFillsMissingResolutionAndRuntimeModule(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".ljconfig.yaml")
	if err := os.WriteFile(path, []byte("outDir: dist\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	opts, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.ModuleResolution != config.ModuleResolutionIdentity {
		t.Errorf("expected identity resolution fallback, got %q", opts.ModuleResolution)
	}
	if opts.RuntimeModule != "lj-runtime" {
		t.Errorf("expected lj-runtime fallback, got %q", opts.RuntimeModule)
	}
}
