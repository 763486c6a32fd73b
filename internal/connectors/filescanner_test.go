package connectors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("x\n1\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("ignored"), 0644))
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "c.csv"), []byte("y\n2\n"), 0644))

	files, err := DiscoverFiles(dir, "csv", DiscoveryOptions{})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(dir, "a.csv"), files[0].Path)

	files, err = DiscoverFiles(dir, "csv", DiscoveryOptions{Recursive: true})
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestDiscoverFilesSizeFilter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "small.csv"), []byte("x\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "big.csv"), make([]byte, 1024), 0644))

	files, err := DiscoverFiles(dir, "csv", DiscoveryOptions{MinSize: 100})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(dir, "big.csv"), files[0].Path)
}

func TestDiscoverFilesErrors(t *testing.T) {
	t.Parallel()

	_, err := DiscoverFiles(filepath.Join(t.TempDir(), "absent"), "csv", DiscoveryOptions{})
	assert.Error(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0644))
	_, err = DiscoverFiles(dir, "csv", DiscoveryOptions{})
	assert.ErrorContains(t, err, "no matching files")

	_, err = DiscoverFiles(dir, "", DiscoveryOptions{})
	assert.Error(t, err)
}
