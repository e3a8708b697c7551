//go:build linux

package attributes

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// readInodeFlags returns the FS_IOC_GETFLAGS word lsattr decodes.
func readInodeFlags(path string) (uint32, error) {
	f, err := os.OpenFile(path, os.O_RDONLY|unix.O_NONBLOCK|unix.O_NOFOLLOW, 0)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	flags, err := unix.IoctlGetInt(int(f.Fd()), unix.FS_IOC_GETFLAGS)
	if err != nil {
		return 0, err
	}
	return uint32(flags), nil
}

// probeInode adds the raw inode flags and extended attribute names to the
// debug diagnostic. Failures only drop the field.
func probeInode(path string) []zap.Field {
	var fields []zap.Field
	if flags, err := readInodeFlags(path); err == nil {
		fields = append(fields, zap.String("inode_flags", fmt.Sprintf("0x%08x", flags)))
	}
	if names, err := listXattrs(path); err == nil && len(names) > 0 {
		fields = append(fields, zap.Strings("xattrs", names))
	}
	return fields
}
