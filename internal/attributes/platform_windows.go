//go:build windows
// +build windows

package attributes

import "go.uber.org/zap"

// newPlatformDiagnoser returns the NTFS implementation; lsattr options are
// ignored on Windows.
func newPlatformDiagnoser(_ Options, logger *zap.Logger) Diagnoser {
	return newNTFSDiagnoser(win32API{}, logger)
}
