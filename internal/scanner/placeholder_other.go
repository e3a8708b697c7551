//go:build !windows

package scanner

import "os"

// isPlaceholderInfo is always false; cloud placeholders are a Windows concept.
func isPlaceholderInfo(os.FileInfo) bool {
	return false
}
