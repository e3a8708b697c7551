package attributes

import (
	"syscall"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// newObservedLogger returns a logger whose entries can be inspected.
func newObservedLogger(t *testing.T) (*zap.Logger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

// fakeFS mimics the parts of NTFS the diagnoser touches. SetAttributes keeps
// DIRECTORY, COMPRESSED and SPARSE like SetFileAttributesW does.
type fakeFS struct {
	attrs map[string]Flags

	getErr      error
	getErrAfter int // fail every GetAttributes after this many calls, 0 = never
	setErr      error
	compressErr error
	sparseErr   error

	gets     int
	sets     []Flags
	compress int
	sparse   int
}

const (
	errAccessDenied     = syscall.Errno(5)
	errSharingViolation = syscall.Errno(32)
)

func newFakeFS(path string, attrs Flags) *fakeFS {
	return &fakeFS{attrs: map[string]Flags{path: attrs}}
}

func (f *fakeFS) GetAttributes(path string) (Flags, error) {
	f.gets++
	if f.getErr != nil && (f.getErrAfter == 0 || f.gets > f.getErrAfter) {
		return 0, newAttrError(ErrorCategoryRead, path, "get_attributes", f.getErr)
	}
	a, ok := f.attrs[path]
	if !ok {
		return 0, newAttrError(ErrorCategoryRead, path, "get_attributes", syscall.Errno(2))
	}
	return a, nil
}

func (f *fakeFS) SetAttributes(path string, attrs Flags) error {
	f.sets = append(f.sets, attrs)
	if f.setErr != nil {
		return newAttrError(ErrorCategoryWrite, path, "set_attributes", f.setErr)
	}
	keep := f.attrs[path] & (FlagDirectory | FlagCompressed | FlagSparseFile)
	f.attrs[path] = keep | attrs&^(FlagDirectory|FlagCompressed|FlagSparseFile)
	return nil
}

func (f *fakeFS) DisableCompression(path string) error {
	f.compress++
	if f.compressErr != nil {
		return newAttrError(ErrorCategoryWrite, path, "disable_compression", f.compressErr)
	}
	f.attrs[path] &^= FlagCompressed
	return nil
}

func (f *fakeFS) DisableSparse(path string) error {
	f.sparse++
	if f.sparseErr != nil {
		return newAttrError(ErrorCategoryWrite, path, "disable_sparse", f.sparseErr)
	}
	f.attrs[path] &^= FlagSparseFile
	return nil
}

// zaptestLogger logs through t so failures show the repair trail.
func zaptestLogger(t *testing.T) *zap.Logger {
	t.Helper()
	return zaptest.NewLogger(t)
}
