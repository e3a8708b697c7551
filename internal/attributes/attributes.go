// Package attributes detects and clears file attributes that keep a mod
// manager from reading or writing game files.
//
// Windows builds inspect the FILE_ATTRIBUTE_* bitmask and repair it with
// SetFileAttributesW and DeviceIoControl. Other builds list inode attributes
// with lsattr and never modify anything.
package attributes

import (
	"time"

	"go.uber.org/zap"
)

// DefaultToolTimeout bounds a single lsattr invocation.
const DefaultToolTimeout = 1000 * time.Millisecond

// Diagnoser is the per-platform contract.
type Diagnoser interface {
	// Check returns true when path has attributes that are likely to cause
	// problems. Unreadable attributes are reported as a warning and yield false.
	Check(path string) bool

	// Fix tries to leave path in an acceptable state and reports whether it
	// succeeded.
	Fix(path string) bool
}

// Options tunes the platform implementation. The zero value is usable.
type Options struct {
	// LsattrPath overrides the PATH lookup of lsattr.
	LsattrPath string
	// ToolTimeout bounds lsattr; zero means DefaultToolTimeout.
	ToolTimeout time.Duration
	// Strict makes the lsattr checker judge the listing instead of reporting
	// every successful listing as abnormal.
	Strict bool
}

func (o Options) toolTimeout() time.Duration {
	if o.ToolTimeout <= 0 {
		return DefaultToolTimeout
	}
	return o.ToolTimeout
}

// New returns the Diagnoser for the running platform.
func New(opts Options, logger *zap.Logger) Diagnoser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return newPlatformDiagnoser(opts, logger.With(zap.String("component", "attributes")))
}
