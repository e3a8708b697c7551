package attributes

import (
	"errors"
	"fmt"
	"syscall"
)

// Error categories used in log fields.
const (
	ErrorCategoryUnavailable = "unavailable" // Tool or API missing
	ErrorCategoryRead        = "read"        // Attributes could not be read
	ErrorCategoryWrite       = "write"       // Set or device control failed
	ErrorCategoryTimeout     = "timeout"     // External tool did not finish
)

var (
	ErrToolNotFound = errors.New("attribute listing tool not found")
	ErrToolTimeout  = errors.New("attribute listing tool timed out")
	ErrUnparsable   = errors.New("unparsable attribute listing")
)

// AttrError carries the path and operation of a failed platform call.
type AttrError struct {
	Category  string
	Path      string
	Operation string
	Err       error
}

func (e *AttrError) Error() string {
	return fmt.Sprintf("%s error during %s for %s: %v", e.Category, e.Operation, e.Path, e.Err)
}

func (e *AttrError) Unwrap() error {
	return e.Err
}

func newAttrError(category, path, operation string, err error) *AttrError {
	return &AttrError{Category: category, Path: path, Operation: operation, Err: err}
}

// errorCode extracts the OS error number, 0 when err carries none.
func errorCode(err error) uint32 {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return uint32(errno)
	}
	return 0
}

// errorCategory returns the category of an *AttrError, "" otherwise.
func errorCategory(err error) string {
	var ae *AttrError
	if errors.As(err, &ae) {
		return ae.Category
	}
	return ""
}
