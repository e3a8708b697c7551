package attributes

import (
	"fmt"
	"strings"
)

// Flags is a Windows file attribute bitmask as returned by GetFileAttributesW.
// The type is defined on every platform so that the NTFS logic can be
// exercised without a Windows host.
type Flags uint32

// FILE_ATTRIBUTE_* values from winnt.h.
const (
	FlagReadOnly           Flags = 0x00000001
	FlagHidden             Flags = 0x00000002
	FlagSystem             Flags = 0x00000004
	FlagDirectory          Flags = 0x00000010
	FlagArchive            Flags = 0x00000020
	FlagDevice             Flags = 0x00000040
	FlagNormal             Flags = 0x00000080
	FlagTemporary          Flags = 0x00000100
	FlagSparseFile         Flags = 0x00000200
	FlagReparsePoint       Flags = 0x00000400
	FlagCompressed         Flags = 0x00000800
	FlagOffline            Flags = 0x00001000
	FlagNotContentIndexed  Flags = 0x00002000
	FlagEncrypted          Flags = 0x00004000
	FlagIntegrityStream    Flags = 0x00008000
	FlagVirtual            Flags = 0x00010000
	FlagNoScrubData        Flags = 0x00020000
	FlagRecallOnOpen       Flags = 0x00040000
	FlagPinned             Flags = 0x00080000
	FlagUnpinned           Flags = 0x00100000
	FlagRecallOnDataAccess Flags = 0x00400000
)

// letterColumns is the fixed-width column order used in diagnostics.
var letterColumns = []struct {
	flag   Flags
	letter byte
}{
	{FlagDirectory, 'D'},
	{FlagArchive, 'A'},
	{FlagReadOnly, 'R'},
	{FlagSystem, 'S'},
	{FlagHidden, 'H'},
	{FlagOffline, 'O'},
	{FlagNotContentIndexed, 'I'},
	{FlagNoScrubData, 'X'},
	{FlagIntegrityStream, 'V'},
	{FlagPinned, 'P'},
	{FlagUnpinned, 'U'},
	{FlagCompressed, 'C'},
	{FlagSparseFile, 'Z'},
}

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagReadOnly, "readonly"},
	{FlagHidden, "hidden"},
	{FlagSystem, "system"},
	{FlagDirectory, "directory"},
	{FlagArchive, "archive"},
	{FlagDevice, "device"},
	{FlagNormal, "normal"},
	{FlagTemporary, "temporary"},
	{FlagSparseFile, "sparse"},
	{FlagReparsePoint, "reparse_point"},
	{FlagCompressed, "compressed"},
	{FlagOffline, "offline"},
	{FlagNotContentIndexed, "not_content_indexed"},
	{FlagEncrypted, "encrypted"},
	{FlagIntegrityStream, "integrity_stream"},
	{FlagVirtual, "virtual"},
	{FlagNoScrubData, "no_scrub_data"},
	{FlagRecallOnOpen, "recall_on_open"},
	{FlagPinned, "pinned"},
	{FlagUnpinned, "unpinned"},
	{FlagRecallOnDataAccess, "recall_on_data_access"},
}

// Has reports whether every bit of f is set.
func (a Flags) Has(f Flags) bool {
	return a&f == f
}

// IsAbnormal reports whether the combination is likely to break reads or
// writes: neither ARCHIVE nor NORMAL is set and something other than
// DIRECTORY/ARCHIVE is.
func (a Flags) IsAbnormal() bool {
	if a&FlagArchive != 0 || a&FlagNormal != 0 {
		return false
	}
	return a&^(FlagDirectory|FlagArchive) != 0
}

// Letters renders the D A R S H O I X V P U C Z columns, a space for each
// unset flag.
func (a Flags) Letters() string {
	b := make([]byte, len(letterColumns))
	for i, col := range letterColumns {
		if a&col.flag != 0 {
			b[i] = col.letter
		} else {
			b[i] = ' '
		}
	}
	return string(b)
}

// Names returns the names of the set flags, unknown bits as hex.
func (a Flags) Names() []string {
	var names []string
	rest := a
	for _, fn := range flagNames {
		if a&fn.flag != 0 {
			names = append(names, fn.name)
			rest &^= fn.flag
		}
	}
	if rest != 0 {
		names = append(names, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return names
}

// String returns "%08x LETTERS".
func (a Flags) String() string {
	return fmt.Sprintf("%08x %s", uint32(a), a.Letters())
}

// describe is the diagnostic line logged for an abnormal path.
func describe(a Flags, path string) string {
	return a.String() + " " + path
}

// joinNames is used for log fields that expect a single string.
func joinNames(a Flags) string {
	names := a.Names()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}
