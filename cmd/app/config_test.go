package main

import (
	"os"
	"path/filepath"
	"testing"

	"employeehub/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeConfigFromEnv(t *testing.T) {
	t.Setenv("STORE__DRIVER", "memory")
	t.Setenv("APP__PORT", "9090")
	t.Setenv("CosmosDbDatabaseName", "hr")

	v, err := newViper("", "")
	require.NoError(t, err)
	conf, err := decodeConfig(v)
	require.NoError(t, err)

	assert.Equal(t, config.StoreDriverMemory, conf.Store.Driver)
	assert.Equal(t, uint32(9090), conf.App.Port)
	assert.Equal(t, "hr", conf.Store.DatabaseName)
	assert.Equal(t, "employees", conf.Store.CollectionName)
}

func TestDecodeConfigEnvOverridesYAML(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
app:
  port: 7070
store:
  driver: memory
  collection_name: people
`), 0o600))
	t.Setenv("APP__PORT", "9090")

	v, err := newViper("", file)
	require.NoError(t, err)
	assert.Equal(t, file, v.ConfigFileUsed())

	conf, err := decodeConfig(v)
	require.NoError(t, err)
	assert.Equal(t, uint32(9090), conf.App.Port)
	assert.Equal(t, "people", conf.Store.CollectionName)
}

func TestDecodeConfigErrors(t *testing.T) {
	_, err := newViper("", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("STORE__DRIVER", "cosmos")
	v, err := newViper("", "")
	require.NoError(t, err)
	_, err = decodeConfig(v)
	assert.ErrorContains(t, err, "invalid config")
}
