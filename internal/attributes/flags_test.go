package attributes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlags_IsAbnormal(t *testing.T) {
	tests := []struct {
		name     string
		attrs    Flags
		expected bool
	}{
		{"zero", 0, false},
		{"archive", FlagArchive, false},
		{"directory", FlagDirectory, false},
		{"directory archive", FlagDirectory | FlagArchive, false},
		{"normal", FlagNormal, false},
		{"hidden", FlagHidden, true},
		{"readonly", FlagReadOnly, true},
		{"system hidden", FlagSystem | FlagHidden, true},
		{"directory hidden", FlagDirectory | FlagHidden, true},
		{"compressed", FlagCompressed, true},
		{"sparse", FlagSparseFile, true},
		{"archive masks hidden", FlagArchive | FlagHidden, false},
		{"archive masks compressed", FlagArchive | FlagCompressed, false},
		{"normal masks readonly", FlagNormal | FlagReadOnly, false},
		{"not content indexed", FlagNotContentIndexed, true},
		{"offline", FlagOffline, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.attrs.IsAbnormal())
		})
	}
}

func TestFlags_IsAbnormal_AllSingleBits(t *testing.T) {
	for bit := 0; bit < 32; bit++ {
		f := Flags(1) << bit
		want := f != FlagDirectory && f != FlagArchive && f != FlagNormal
		assert.Equal(t, want, f.IsAbnormal(), "bit %d", bit)

		// With ARCHIVE present nothing is abnormal.
		assert.False(t, (f | FlagArchive).IsAbnormal(), "bit %d with archive", bit)
	}
}

func TestFlags_Letters(t *testing.T) {
	assert.Equal(t, "             ", Flags(0).Letters())
	assert.Equal(t, "DARSHOIXVPUCZ", Flags(0xffffffff).Letters())
	assert.Equal(t, "   SH      C ", (FlagSystem | FlagHidden | FlagCompressed).Letters())
	assert.Equal(t, "D           Z", (FlagDirectory | FlagSparseFile).Letters())
}

func TestFlags_String(t *testing.T) {
	a := FlagSystem | FlagHidden | FlagCompressed
	assert.Equal(t, "00000806    SH      C ", a.String())
	assert.Equal(t, "00000806    SH      C  C:\\games\\x.esp", describe(a, `C:\games\x.esp`))
}

func TestFlags_Names(t *testing.T) {
	assert.Empty(t, Flags(0).Names())
	assert.Equal(t, []string{"readonly", "hidden"}, (FlagReadOnly | FlagHidden).Names())
	assert.Equal(t, []string{"archive", "0x80000000"}, (FlagArchive | Flags(0x80000000)).Names())
	assert.Equal(t, "none", joinNames(0))
	assert.Equal(t, "hidden,sparse", joinNames(FlagHidden|FlagSparseFile))
}

func TestFlags_Has(t *testing.T) {
	a := FlagHidden | FlagSystem
	assert.True(t, a.Has(FlagHidden))
	assert.True(t, a.Has(FlagHidden|FlagSystem))
	assert.False(t, a.Has(FlagHidden|FlagArchive))
}
