package attributes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLsattr(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    LinuxFlags
		wantErr bool
	}{
		{"extents only", "--------------e------- /games/a.esp\n", "e", false},
		{"immutable", "----i---------e------- /games/a.esp", "ie", false},
		{"append only", "-----a--------e------- /games/b.esp", "ae", false},
		{"no flags", "---------------------- /games/c.esp", "", false},
		{"path with spaces", "--------------e------- /games/My Mod/d.esp", "e", false},
		{"first line only", "----i----- /a\n--------e- /b\n", "i", false},
		{"empty", "", "", true},
		{"no path", "----i-----", "", true},
		{"garbage", "lsattr: 1.2 /x", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLsattr(tt.output)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnparsable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLinuxFlags_Blocking(t *testing.T) {
	assert.Empty(t, LinuxFlags("eA").Blocking())
	assert.Equal(t, []string{"immutable"}, LinuxFlags("ie").Blocking())
	assert.Equal(t, []string{"immutable", "append_only"}, LinuxFlags("aie").Blocking())
}

func TestLinuxFlags_Names(t *testing.T) {
	assert.Equal(t, []string{"immutable", "extents", "Q"}, LinuxFlags("ieQ").Names())
	assert.True(t, LinuxFlags("ie").Has('i'))
	assert.False(t, LinuxFlags("ie").Has('a'))
}
