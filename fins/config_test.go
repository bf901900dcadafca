package fins

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: 10.0.0.5\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5", cfg.Host)
	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, float64(defaultTimeoutSeconds), cfg.TimeoutSeconds)
	assert.Equal(t, NodeAddress{Network: 0, Node: 1, Unit: 0}, cfg.Source)
}

func TestLoadConfigFullDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plc.yaml")
	doc := `
host: 10.0.0.5
port: 9601
timeout_seconds: 3
destination:
  network: 0
  node: 12
  unit: 0
source:
  network: 0
  node: 1
  unit: 0
debug: true
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9601, cfg.Port)
	assert.Equal(t, float64(3), cfg.TimeoutSeconds)
	assert.Equal(t, byte(12), cfg.Destination.Node)
	assert.True(t, cfg.Debug)
}

func TestLoadConfigMissingHost(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9600\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigInvalidNetwork(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plc.yaml")
	doc := "host: 10.0.0.5\ndestination:\n  network: 200\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
