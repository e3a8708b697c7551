package attributes

import (
	"strings"
)

// LinuxFlags holds the set attribute letters of one lsattr line, in listing
// order, without the '-' placeholders.
type LinuxFlags string

var linuxFlagNames = map[byte]string{
	'a': "append_only",
	'A': "no_atime",
	'c': "compressed",
	'C': "no_cow",
	'd': "no_dump",
	'D': "dirsync",
	'e': "extents",
	'E': "encrypted",
	'F': "casefold",
	'i': "immutable",
	'I': "indexed",
	'j': "data_journaling",
	'm': "no_compress",
	'N': "inline_data",
	'P': "project_hierarchy",
	's': "secure_delete",
	'S': "sync",
	't': "no_tail_merge",
	'T': "top_dir",
	'u': "undeletable",
	'V': "verity",
	'x': "dax",
}

// blockingLetters prevent content from being rewritten in place.
const blockingLetters = "ia"

// ParseLsattr extracts the flags of the first line of lsattr output, e.g.
// "----i---------e------- /games/foo.esp".
func ParseLsattr(output string) (LinuxFlags, error) {
	line := strings.TrimSpace(output)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", ErrUnparsable
	}

	var b strings.Builder
	for i := 0; i < len(fields[0]); i++ {
		c := fields[0][i]
		switch {
		case c == '-':
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			b.WriteByte(c)
		default:
			return "", ErrUnparsable
		}
	}
	return LinuxFlags(b.String()), nil
}

// Has reports whether letter is set.
func (f LinuxFlags) Has(letter byte) bool {
	return strings.IndexByte(string(f), letter) >= 0
}

// Blocking returns the set flags that stop writes (immutable, append-only).
func (f LinuxFlags) Blocking() []string {
	var out []string
	for i := 0; i < len(blockingLetters); i++ {
		if f.Has(blockingLetters[i]) {
			out = append(out, linuxFlagNames[blockingLetters[i]])
		}
	}
	return out
}

// Names returns readable names, unknown letters verbatim.
func (f LinuxFlags) Names() []string {
	names := make([]string, 0, len(f))
	for i := 0; i < len(f); i++ {
		if name, ok := linuxFlagNames[f[i]]; ok {
			names = append(names, name)
		} else {
			names = append(names, string(f[i]))
		}
	}
	return names
}
