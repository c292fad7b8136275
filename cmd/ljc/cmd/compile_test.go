package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String(), fnErr
}

func TestCompileSourceWritesToStdout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "add.lj")
	if err := os.WriteFile(path, []byte(`fn add(a: int, b: int): int { return a + b; }`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	oldOutput, oldJSON := compileOutput, compileJSON
	compileOutput, compileJSON = "", false
	defer func() { compileOutput, compileJSON = oldOutput, oldJSON }()

	out, err := captureStdout(t, func() error {
		return compileSource(compileCmd, []string{path})
	})
	if err != nil {
		t.Fatalf("compileSource failed: %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, "function add(a, b) {") {
		t.Errorf("expected emitted function, got:\n%s", out)
	}
}

func TestCompileSourceWritesToFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "add.lj")
	dst := filepath.Join(dir, "add.js")
	if err := os.WriteFile(src, []byte(`const x: int = 1;`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	oldOutput, oldJSON := compileOutput, compileJSON
	compileOutput, compileJSON = dst, false
	defer func() { compileOutput, compileJSON = oldOutput, oldJSON }()

	if _, err := captureStdout(t, func() error {
		return compileSource(compileCmd, []string{src})
	}); err != nil {
		t.Fatalf("compileSource failed: %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("expected output file to exist: %v", err)
	}
	if !strings.Contains(string(data), "const x = 1;") {
		t.Errorf("expected emitted declaration, got:\n%s", data)
	}
}

func TestCompileSourceParseErrorExitsCompileFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.lj")
	if err := os.WriteFile(path, []byte(`fn add(a: int, b: int): int { return a + `), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	oldOutput, oldJSON := compileOutput, compileJSON
	compileOutput, compileJSON = "", false
	defer func() { compileOutput, compileJSON = oldOutput, oldJSON }()

	_, err := captureStdout(t, func() error {
		return compileSource(compileCmd, []string{path})
	})
	if err == nil {
		t.Fatalf("expected a compile failure")
	}
	if ExitCodeFor(err) != 1 {
		t.Errorf("expected exit code 1 for a compilation error, got %d", ExitCodeFor(err))
	}
}

func TestCompileSourceMissingFileExitsUsageFailure(t *testing.T) {
	oldOutput, oldJSON := compileOutput, compileJSON
	compileOutput, compileJSON = "", false
	defer func() { compileOutput, compileJSON = oldOutput, oldJSON }()

	_, err := captureStdout(t, func() error {
		return compileSource(compileCmd, []string{"/nonexistent/path/does-not-exist.lj"})
	})
	if err == nil {
		t.Fatalf("expected a usage failure for a missing file")
	}
	if ExitCodeFor(err) != 2 {
		t.Errorf("expected exit code 2 for a missing file, got %d", ExitCodeFor(err))
	}
}

func TestCompileSourceJSONDiagnostics(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.lj")
	if err := os.WriteFile(path, []byte(`fn add(a: int, b: int): int { return a + `), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	oldOutput, oldJSON := compileOutput, compileJSON
	compileOutput, compileJSON = "", true
	defer func() { compileOutput, compileJSON = oldOutput, oldJSON }()

	old := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stderr = w

	cmdErr := compileSource(compileCmd, []string{path})

	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	stderr := buf.String()

	if cmdErr == nil {
		t.Fatalf("expected a compile failure")
	}
	if !strings.Contains(stderr, `"code":`) {
		t.Errorf("expected JSON diagnostics on stderr, got:\n%s", stderr)
	}
}
