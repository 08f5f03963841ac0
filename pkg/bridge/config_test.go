package bridge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigReadsAllThreeFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".bundle"), []byte("amp.lv2\n# comment\n\nreverb.lv2\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".whitelist"), []byte("urn:test:amp\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".blacklist"), []byte("urn:test:amp.broken\n"), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"amp.lv2", "reverb.lv2"}, cfg.BundlePaths)
	assert.Equal(t, []string{"urn:test:amp"}, cfg.Whitelist)
	assert.Equal(t, []string{"urn:test:amp.broken"}, cfg.Blacklist)
}

func TestLoadConfigMissingFilesYieldEmptyLists(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, cfg.BundlePaths)
	assert.Empty(t, cfg.Whitelist)
	assert.Empty(t, cfg.Blacklist)
}
