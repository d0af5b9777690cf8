package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midbel/roblint/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	file := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	return file
}

func TestLoadYAML(t *testing.T) {
	file := writeFile(t, t.TempDir(), ".roblint.yml", `
exclude:
  - missing-doc-keyword
configure:
  - "invalid-name-char:allowedCharPattern:[\\p{L} ]"
output: json
jobs: 4
`)
	cfg, err := config.Load(file)
	require.NoError(t, err)
	assert.Equal(t, []string{"missing-doc-keyword"}, cfg.Exclude)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, config.DefaultFormat, cfg.Format)
}

func TestLoadTOML(t *testing.T) {
	file := writeFile(t, t.TempDir(), "roblint.toml", `
include = ["invalid-name-char"]
format = "{source}: {desc}"
filetypes = [".robot"]
`)
	cfg, err := config.Load(file)
	require.NoError(t, err)
	assert.Equal(t, []string{"invalid-name-char"}, cfg.Include)
	assert.Equal(t, "{source}: {desc}", cfg.Format)
	assert.True(t, cfg.Accepts("suite.robot"))
	assert.False(t, cfg.Accepts("suite.resource"))
}

func TestLoadUnsupported(t *testing.T) {
	file := writeFile(t, t.TempDir(), "roblint.ini", "anything")
	_, err := config.Load(file)
	assert.Error(t, err)
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".roblint.yml", "output: text\n")
	nested := filepath.Join(root, "suites", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found := config.Discover(nested)
	assert.Equal(t, filepath.Join(root, ".roblint.yml"), found)
}

func TestDiscoverNothing(t *testing.T) {
	assert.Empty(t, config.Discover(t.TempDir()))
}

func TestDefaultAccepts(t *testing.T) {
	cfg := config.Default()
	assert.True(t, cfg.Accepts("suite.robot"))
	assert.True(t, cfg.Accepts("common.resource"))
	assert.True(t, cfg.Accepts("UPPER.ROBOT"))
	assert.False(t, cfg.Accepts("main.go"))
}
