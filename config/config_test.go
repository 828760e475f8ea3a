package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	assert.Equal(t, DefaultHost, cfg.Server.Host)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, DefaultRoomsFile, cfg.RoomsFile)
	assert.Equal(t, DefaultStaticDir, cfg.StaticDir)
	assert.Equal(t, DefaultLogFile, cfg.LogFile)
}

func TestLoadBackfillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server":{"port":9090}}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, DefaultHost, cfg.Server.Host)
	assert.Equal(t, DefaultRoomsFile, cfg.RoomsFile)
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("nope"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestAddr(t *testing.T) {
	cfg := Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 8081

	assert.Equal(t, "127.0.0.1:8081", cfg.Addr())
}

func TestRawServesFileVerbatim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	contents := `{"server":{"host":"10.0.0.5","port":3000}}`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	raw, err := cfg.Raw()
	require.NoError(t, err)
	assert.Equal(t, contents, string(raw))
}

func TestRawWithoutFileMarshalsDefaults(t *testing.T) {
	raw, err := Default().Raw()
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"rooms_file"`)
}
