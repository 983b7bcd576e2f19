// Package testsupport holds helpers shared by package tests: golden file
// assertions, output capture and a recording metadata store.
package testsupport

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// UpdateEnv names the environment variable that rewrites golden files.
const UpdateEnv = "UPDATE_GOLDENS"

// AssertGolden fails t when got differs from the golden file at path. With
// UPDATE_GOLDENS set the file is rewritten from got instead.
func AssertGolden(t testing.TB, path string, got []byte) {
	t.Helper()

	if os.Getenv(UpdateEnv) != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("golden dir: %v", err)
		}
		if err := os.WriteFile(path, got, 0o644); err != nil {
			t.Fatalf("write golden %s: %v", path, err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden %s: %v (run with %s=1 to create it)", path, err, UpdateEnv)
	}
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Fatalf("%s mismatch (-want +got):\n%s", filepath.Base(path), diff)
	}
}

// CaptureOutput runs render against a buffer and returns both its result and
// what it wrote.
func CaptureOutput(t testing.TB, render func(io.Writer) (string, error)) (result, written string) {
	t.Helper()

	var buf bytes.Buffer
	result, err := render(&buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return result, buf.String()
}
