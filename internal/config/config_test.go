package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	cfg, info, err := LoadFile(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.False(t, info.FileFound)
	assert.False(t, info.PortSpecified)
	assert.Equal(t, 20262, cfg.Server.Port)
	assert.Equal(t, []string{"まとめ", "記入例", "報告書format", "残業代"}, cfg.Workbook.ReservedSheets)
	assert.Equal(t, "残業代", cfg.Workbook.RateSheet)
	assert.Equal(t, int64(10<<20), cfg.Workbook.MaxUploadBytes())
	assert.True(t, cfg.Data.RunLog)
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
port = 8080

[workbook]
reserved_sheets = ["まとめ", "集計"]
max_upload_mb = 5

[log]
format = "json"
`), 0o644))

	cfg, info, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, info.FileFound)
	assert.True(t, info.PortSpecified)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"まとめ", "集計"}, cfg.Workbook.ReservedSheets)
	assert.Equal(t, "残業代", cfg.Workbook.RateSheet)
	assert.Equal(t, 5, cfg.Workbook.MaxUploadMB)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDataDir, dir)
	t.Setenv(EnvLogLevel, "debug")

	cfg, _, err := LoadFile(filepath.Join(dir, "none.toml"))
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Data.DataDir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, dir, ResolveDataDir(cfg))

	dataDir, err := EnsureDataDir(cfg)
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(dataDir, "exports"))
	assert.NoDirExists(t, filepath.Join(dataDir, "uploads"))
	assert.Equal(t, filepath.Join(dir, "overtime.db"), GetDataPath(cfg, "", RunLogFile))
}

func TestLoadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[workbook]\nmax_upload_mb = 0\n"), 0o644))
	_, _, err := LoadFile(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("[server\n"), 0o644))
	_, _, err = LoadFile(path)
	assert.Error(t, err)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	cfg.Server.Port = 9000
	require.NoError(t, SaveConfig(cfg, path))

	got, info, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, info.PortSpecified)
	assert.Equal(t, 9000, got.Server.Port)
}
