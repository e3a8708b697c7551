package scanner

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"go.uber.org/zap"
)

// TestHelpers provides utilities for scanner tests
type TestHelpers struct {
	t *testing.T
}

// NewTestHelpers creates a new test helper instance
func NewTestHelpers(t *testing.T) *TestHelpers {
	t.Helper()
	return &TestHelpers{t: t}
}

// CreateTempDir creates a temporary directory removed after the test
func (h *TestHelpers) CreateTempDir() string {
	h.t.Helper()
	return h.t.TempDir()
}

// CreateTestFile creates a file and its parent directories
func (h *TestHelpers) CreateTestFile(path string, content []byte) string {
	h.t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		h.t.Fatalf("failed to create directory %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		h.t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// GetTestLogger returns a development logger when verbose, a no-op otherwise
func (h *TestHelpers) GetTestLogger(verbose bool) *zap.Logger {
	h.t.Helper()
	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			h.t.Fatalf("failed to create logger: %v", err)
		}
		return logger
	}
	return zap.NewNop()
}

// CollectWalk walks root and returns the sorted paths relative to root
func (h *TestHelpers) CollectWalk(w *Walker, root string) []string {
	h.t.Helper()

	var found []string
	err := w.Walk(root, func(path string, metadata *FileMetadata) error {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		found = append(found, filepath.ToSlash(rel))
		return nil
	})
	h.AssertNoError(err, "walk %s", root)
	sort.Strings(found)
	return found
}

// AssertNoError fails the test if err is not nil
func (h *TestHelpers) AssertNoError(err error, msgAndArgs ...interface{}) {
	h.t.Helper()
	if err != nil {
		h.t.Fatalf("unexpected error: %v %v", err, msgAndArgs)
	}
}

// AssertEqual fails the test if expected != actual
func (h *TestHelpers) AssertEqual(expected, actual interface{}, msgAndArgs ...interface{}) {
	h.t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		h.t.Errorf("expected %v, got %v %v", expected, actual, msgAndArgs)
	}
}
