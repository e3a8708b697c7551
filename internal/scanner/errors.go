// Package scanner enumerates the files attrdoctor inspects below a set of
// roots, honouring exclusion globs and symlink policy.
package scanner

import (
	"errors"
	"fmt"
)

var (
	ErrAccessDenied   = errors.New("access denied")
	ErrFileNotFound   = errors.New("file not found")
	ErrInvalidPath    = errors.New("invalid path")
	ErrInvalidPattern = errors.New("invalid exclusion pattern")
	ErrScanAborted    = errors.New("scan aborted")
)

// WrapError wraps an error with additional context
func WrapError(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", msg, err)
}
