package securefile

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePassword_ContentAndMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ec_strong_password.txt")
	require.NoError(t, WritePassword(path, "a!B~9", DefaultMode))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a!B~9\n", string(data))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, DefaultMode, info.Mode().Perm())
	}
}

func TestWriteFile_TightensExistingFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions only")
	}
	path := filepath.Join(t.TempDir(), "existing.txt")
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0o644))

	require.NoError(t, WriteFile(path, []byte("new"), 0o600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWriteFile_MissingDirectory(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "out.txt"), []byte("x"), DefaultMode)
	assert.Error(t, err)
}
