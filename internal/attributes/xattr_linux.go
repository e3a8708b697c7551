//go:build linux

package attributes

import (
	"sort"

	"github.com/pkg/xattr"
)

// listXattrs returns the extended attribute names of path without following
// a final symlink.
func listXattrs(path string) ([]string, error) {
	names, err := xattr.LList(path)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}
