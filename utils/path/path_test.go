package path

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "app.env")
	assert.Equal(t, abs, Resolve(abs, "conf"))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, os.Mkdir("conf", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("conf", "config.yaml"), []byte("app: {}"), 0o600))
	assert.Equal(t, filepath.Join("conf", "config.yaml"), Resolve("config.yaml", "conf"))

	require.NoError(t, os.WriteFile("config.yaml", []byte("app: {}"), 0o600))
	assert.Equal(t, "config.yaml", Resolve("config.yaml", "conf"))

	assert.Equal(t, filepath.Join(RootPath(), "conf", "missing.yaml"), Resolve("missing.yaml", "conf"))
}

func TestExists(t *testing.T) {
	ok, err := Exists(t.TempDir())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Exists(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.False(t, ok)
}
