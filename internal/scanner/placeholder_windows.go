//go:build windows

package scanner

import (
	"os"
	"syscall"

	"github.com/juste-un-gars/attrdoctor/internal/attributes"
)

// isPlaceholderInfo reports cloud placeholders. Opening one for a repair
// downloads its content.
func isPlaceholderInfo(info os.FileInfo) bool {
	sys, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return false
	}
	attrs := attributes.Flags(sys.FileAttributes)
	return attrs&(attributes.FlagRecallOnDataAccess|attributes.FlagRecallOnOpen) != 0
}
