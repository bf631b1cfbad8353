package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/10imaging/serving/internal/envvar"
)

const schemaPath = "serving.v1.schema.json"

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAndValidate(t *testing.T) {
	path := writeConfig(t, `
version: "1"
exports:
  base_path: /srv/exports
  pinned_version: 7
engine:
  provider: local
  target: grpc://runtime:8500
  options:
    intra_op_threads: 4
logging:
  to_file: true
  file: logs/serving.log
`)

	cfg, err := LoadAndValidate(path, schemaPath)
	require.NoError(t, err)

	assert.Equal(t, "1", cfg.Version)
	assert.Equal(t, "/srv/exports", cfg.Exports.BasePath)
	assert.Equal(t, 7, cfg.Exports.PinnedVersion)
	assert.Equal(t, "local", cfg.Engine.Provider)
	assert.Equal(t, "grpc://runtime:8500", cfg.Engine.Target)
	assert.Equal(t, 4, cfg.Engine.Options["intra_op_threads"])
	assert.True(t, cfg.Logging.ToFile)
}

func TestLoadAndValidate_MissingVersion(t *testing.T) {
	path := writeConfig(t, `
exports:
  base_path: /srv/exports
`)

	_, err := LoadAndValidate(path, schemaPath)
	assert.Error(t, err)
}

func TestLoadAndValidate_UnknownField(t *testing.T) {
	path := writeConfig(t, `
version: "1"
exporst:
  base_path: /srv/exports
`)

	_, err := LoadAndValidate(path, schemaPath)
	assert.Error(t, err)
}

func TestLoadAndValidate_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "version: [unterminated")

	_, err := LoadAndValidate(path, schemaPath)
	assert.Error(t, err)
}

func TestResolveExportsPath_Precedence(t *testing.T) {
	cfg := &Config{Exports: ExportsConfig{BasePath: "/from/config"}}

	t.Setenv(envvar.ServingExportsPath, "/from/env")
	assert.Equal(t, "/from/env", cfg.ResolveExportsPath())

	t.Setenv(envvar.ServingExportsPath, "")
	assert.Equal(t, "/from/config", cfg.ResolveExportsPath())

	empty := &Config{}
	assert.NotEmpty(t, empty.ResolveExportsPath())
}
