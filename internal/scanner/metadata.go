package scanner

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileMetadata describes one entry handed to a WalkFunc.
type FileMetadata struct {
	Path          string      // Cleaned path
	Size          int64       // File size in bytes
	IsDir         bool        // Whether it's a directory
	IsSymlink     bool        // Whether it's a symlink
	IsPlaceholder bool        // Cloud Files placeholder (Windows only)
	Mode          os.FileMode // File mode/permissions
}

// ExtractMetadata stats path without following a final symlink.
func ExtractMetadata(path string) (*FileMetadata, error) {
	cleanPath := filepath.Clean(path)

	info, err := os.Lstat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, WrapError(ErrFileNotFound, "stat %s", cleanPath)
		}
		if os.IsPermission(err) {
			return nil, WrapError(ErrAccessDenied, "stat %s", cleanPath)
		}
		return nil, WrapError(err, "stat %s", cleanPath)
	}
	return ExtractMetadataWithStat(cleanPath, info), nil
}

// ExtractMetadataWithStat builds metadata from an existing FileInfo.
func ExtractMetadataWithStat(path string, info os.FileInfo) *FileMetadata {
	return &FileMetadata{
		Path:          filepath.Clean(path),
		Size:          info.Size(),
		IsDir:         info.IsDir(),
		IsSymlink:     info.Mode()&os.ModeSymlink != 0,
		IsPlaceholder: isPlaceholderInfo(info),
		Mode:          info.Mode(),
	}
}

// IsRegularFile returns true if metadata represents a regular file (not dir, not symlink)
func (m *FileMetadata) IsRegularFile() bool {
	return !m.IsDir && !m.IsSymlink
}

func (m *FileMetadata) String() string {
	fileType := "file"
	if m.IsDir {
		fileType = "directory"
	} else if m.IsSymlink {
		fileType = "symlink"
	}
	return fmt.Sprintf("%s: %s (size=%d)", m.Path, fileType, m.Size)
}
