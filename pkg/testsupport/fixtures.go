package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-benchtmpl/pkg/params"
	"github.com/goliatone/go-benchtmpl/pkg/template"
)

// FibParams binds the fib manifest to the values used across the test
// suites.
func FibParams() params.Set {
	return params.MustNew(map[string]any{
		"fib_image":      "example/fib:latest",
		"port":           8080,
		"node_selectors": []string{"disktype: ssd"},
	})
}

// PostgresParams binds the PostgreSQL configuration template.
func PostgresParams() params.Set {
	return params.MustNew(map[string]any{
		"PG_VERSION":         "14",
		"SCRATCH_DIR":        "/scratch",
		"MAX_CONNECTIONS":    200,
		"SHARED_BUFFER_SIZE": 8,
	})
}

// MustTemplate parses src or fails the test.
func MustTemplate(t *testing.T, name, src string) *template.Template {
	t.Helper()

	tmpl, err := template.New(name, src)
	if err != nil {
		t.Fatalf("parse template %s: %v", name, err)
	}
	return tmpl
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
