package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLexSourceInline(t *testing.T) {
	oldEval, oldOnlyErrors := lexEval, lexOnlyErrors
	lexEval, lexOnlyErrors = `mut x = 1;`, false
	defer func() { lexEval, lexOnlyErrors = oldEval, oldOnlyErrors }()

	out, err := captureStdout(t, func() error {
		return lexSource(lexCmd, nil)
	})
	if err != nil {
		t.Fatalf("lexSource failed: %v", err)
	}
	if !strings.Contains(out, "[mut") {
		t.Errorf("expected mut token kind in output, got:\n%s", out)
	}
	if !strings.Contains(out, "EOF") {
		t.Errorf("expected EOF token in output, got:\n%s", out)
	}
}

func TestLexSourceFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.lj")
	if err := os.WriteFile(path, []byte(`const x: int = 1;`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	oldEval, oldOnlyErrors := lexEval, lexOnlyErrors
	lexEval, lexOnlyErrors = "", false
	defer func() { lexEval, lexOnlyErrors = oldEval, oldOnlyErrors }()

	out, err := captureStdout(t, func() error {
		return lexSource(lexCmd, []string{path})
	})
	if err != nil {
		t.Fatalf("lexSource failed: %v", err)
	}
	if !strings.Contains(out, "[const") {
		t.Errorf("expected const token kind in output, got:\n%s", out)
	}
}

func TestLexSourceNoInputIsUsageFailure(t *testing.T) {
	oldEval, oldOnlyErrors := lexEval, lexOnlyErrors
	lexEval, lexOnlyErrors = "", false
	defer func() { lexEval, lexOnlyErrors = oldEval, oldOnlyErrors }()

	_, err := captureStdout(t, func() error {
		return lexSource(lexCmd, nil)
	})
	if err == nil {
		t.Fatalf("expected a usage failure with no file and no -e")
	}
	if ExitCodeFor(err) != 2 {
		t.Errorf("expected exit code 2, got %d", ExitCodeFor(err))
	}
}
