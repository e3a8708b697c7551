package attributes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPath = `C:\Games\Skyrim\Data\textures\sky.dds`

func TestNTFS_Check_Normal(t *testing.T) {
	for _, attrs := range []Flags{0, FlagArchive, FlagDirectory, FlagDirectory | FlagArchive, FlagNormal} {
		logger, logs := newObservedLogger(t)
		d := newNTFSDiagnoser(newFakeFS(testPath, attrs), logger)

		assert.False(t, d.Check(testPath), "attrs %s", attrs)
		assert.Zero(t, logs.Len(), "normal files log nothing")
	}
}

func TestNTFS_Check_Abnormal(t *testing.T) {
	logger, logs := newObservedLogger(t)
	attrs := FlagHidden | FlagSystem | FlagCompressed
	d := newNTFSDiagnoser(newFakeFS(testPath, attrs), logger)

	require.True(t, d.Check(testPath))

	entries := logs.FilterMessage(describe(attrs, testPath)).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "hidden,system,compressed", entries[0].ContextMap()["attributes"])
}

func TestNTFS_Check_Unreadable(t *testing.T) {
	logger, logs := newObservedLogger(t)
	fs := newFakeFS(testPath, FlagHidden)
	fs.getErr = errAccessDenied
	d := newNTFSDiagnoser(fs, logger)

	assert.False(t, d.Check(testPath))

	entries := logs.FilterMessage("unable to get file attributes").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, 5, entries[0].ContextMap()["error_code"])
	assert.Equal(t, testPath, entries[0].ContextMap()["path"])
}

func TestNTFS_Fix(t *testing.T) {
	tests := []struct {
		name     string
		before   Flags
		expected Flags
	}{
		{"hidden system", FlagHidden | FlagSystem, 0},
		{"readonly archive", FlagReadOnly | FlagArchive, FlagArchive},
		{"compressed", FlagCompressed | FlagNotContentIndexed, 0},
		{"sparse archive", FlagSparseFile | FlagArchive, FlagArchive},
		{"compressed sparse hidden", FlagCompressed | FlagSparseFile | FlagHidden, 0},
		{"directory hidden", FlagDirectory | FlagHidden, FlagDirectory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFakeFS(testPath, tt.before)
			d := newNTFSDiagnoser(fs, nil)

			require.True(t, d.Fix(testPath))
			assert.Equal(t, tt.expected, fs.attrs[testPath])
			assert.False(t, fs.attrs[testPath].Has(FlagCompressed))
			assert.False(t, fs.attrs[testPath].Has(FlagSparseFile))
			assert.False(t, d.Check(testPath))
		})
	}
}

func TestNTFS_Fix_OnlyRequestedControls(t *testing.T) {
	fs := newFakeFS(testPath, FlagHidden)
	d := newNTFSDiagnoser(fs, nil)

	require.True(t, d.Fix(testPath))
	assert.Zero(t, fs.compress)
	assert.Zero(t, fs.sparse)
	assert.Equal(t, []Flags{0}, fs.sets)
}

func TestNTFS_Fix_Unreadable(t *testing.T) {
	logger, logs := newObservedLogger(t)
	fs := newFakeFS(testPath, FlagHidden)
	fs.getErr = errAccessDenied
	d := newNTFSDiagnoser(fs, logger)

	assert.False(t, d.Fix(testPath))
	assert.Empty(t, fs.sets, "nothing written when attributes are unreadable")
	assert.Equal(t, 1, logs.FilterMessage("unable to get file attributes").Len())
}

func TestNTFS_Fix_CompressionFailureFallsBackToArchive(t *testing.T) {
	logger, logs := newObservedLogger(t)
	fs := newFakeFS(testPath, FlagCompressed|FlagHidden)
	fs.compressErr = errSharingViolation
	d := newNTFSDiagnoser(fs, logger)

	require.True(t, d.Fix(testPath), "fallback success counts as success")

	// Compression stays, ARCHIVE now masks it.
	assert.Equal(t, FlagCompressed|FlagArchive, fs.attrs[testPath])
	assert.False(t, d.Check(testPath))

	failed := logs.FilterMessage("repair step failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "disable_compression", failed[0].ContextMap()["step"])
	assert.EqualValues(t, 32, failed[0].ContextMap()["error_code"])
	assert.Equal(t, 1, logs.FilterMessage("repair fallback applied").Len())
}

func TestNTFS_Fix_StepsContinueAfterFailure(t *testing.T) {
	fs := newFakeFS(testPath, FlagCompressed|FlagSparseFile)
	fs.compressErr = errAccessDenied
	d := newNTFSDiagnoser(fs, nil)

	require.True(t, d.Fix(testPath))
	assert.Equal(t, 1, fs.compress)
	assert.Equal(t, 1, fs.sparse, "sparse step still runs")
	assert.False(t, fs.attrs[testPath].Has(FlagSparseFile))
}

func TestNTFS_Fix_FallbackFails(t *testing.T) {
	logger, logs := newObservedLogger(t)
	fs := newFakeFS(testPath, FlagHidden)
	fs.setErr = errAccessDenied
	d := newNTFSDiagnoser(fs, logger)

	assert.False(t, d.Fix(testPath))
	assert.Len(t, fs.sets, 2, "primary clear plus fallback")
	assert.Equal(t, FlagHidden|FlagArchive, fs.sets[1])
	assert.Equal(t, 1, logs.FilterMessage("repair fallback failed").Len())
}

func TestNTFS_Fix_FallbackRereadFails(t *testing.T) {
	fs := newFakeFS(testPath, FlagCompressed)
	fs.compressErr = errAccessDenied
	fs.getErr = errAccessDenied
	fs.getErrAfter = 1
	d := newNTFSDiagnoser(fs, nil)

	assert.False(t, d.Fix(testPath))
	assert.Len(t, fs.sets, 1, "fallback never writes without a fresh read")
}

func TestNTFS_Fix_Idempotent(t *testing.T) {
	for _, before := range []Flags{
		FlagHidden | FlagSystem,
		FlagCompressed | FlagSparseFile | FlagReadOnly,
		FlagArchive | FlagOffline,
	} {
		once := newFakeFS(testPath, before)
		require.True(t, newNTFSDiagnoser(once, nil).Fix(testPath))

		twice := newFakeFS(testPath, before)
		d := newNTFSDiagnoser(twice, nil)
		require.True(t, d.Fix(testPath))
		require.True(t, d.Fix(testPath))

		assert.Equal(t, once.attrs[testPath], twice.attrs[testPath], "before %s", before)
	}
}

func TestNTFS_Fix_IdempotentWithFallback(t *testing.T) {
	once := newFakeFS(testPath, FlagCompressed)
	once.compressErr = errAccessDenied
	require.True(t, newNTFSDiagnoser(once, nil).Fix(testPath))

	twice := newFakeFS(testPath, FlagCompressed)
	twice.compressErr = errAccessDenied
	d := newNTFSDiagnoser(twice, nil)
	require.True(t, d.Fix(testPath))
	require.True(t, d.Fix(testPath))

	assert.Equal(t, once.attrs[testPath], twice.attrs[testPath])
}
