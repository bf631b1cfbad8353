package bundle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	v, ok := ParseVersion("00000042")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	for _, name := range []string{"42", "0000004x", "000000420", "v0000042", ""} {
		_, ok := ParseVersion(name)
		assert.False(t, ok, "name %q", name)
	}
}

func TestFormatVersion(t *testing.T) {
	assert.Equal(t, "00000001", FormatVersion(1))
	assert.Equal(t, "00012345", FormatVersion(12345))
}

func TestResolveExport_PicksLatest(t *testing.T) {
	base := t.TempDir()
	for _, name := range []string{"00000001", "00000007", "00000003", "not-a-version", "0000002"} {
		require.NoError(t, os.Mkdir(filepath.Join(base, name), 0o755))
	}
	// A file with a valid-looking name must be ignored.
	require.NoError(t, os.WriteFile(filepath.Join(base, "00000009"), nil, 0o644))

	version, dir, err := ResolveExport(base, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, version)
	assert.Equal(t, filepath.Join(base, "00000007"), dir)
}

func TestResolveExport_Pinned(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "00000003"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(base, "00000005"), 0o755))

	version, dir, err := ResolveExport(base, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, version)
	assert.Equal(t, filepath.Join(base, "00000003"), dir)

	_, _, err = ResolveExport(base, 4)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveExport_NoVersions(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "scratch"), 0o755))

	_, _, err := ResolveExport(base, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveExport_MissingBasePath(t *testing.T) {
	_, _, err := ResolveExport(filepath.Join(t.TempDir(), "nope"), 0)
	assert.ErrorIs(t, err, ErrNotFound)
}
