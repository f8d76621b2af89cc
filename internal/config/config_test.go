package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	cfg := Default(filepath.Join(dir, "pocketfin.db"), "€")
	cfg.Rules.DisallowedPairs = []DisallowedPair{
		{Name: "no-card-bills", Account: "credit_card", Category: "bills"},
	}
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Database.Path, loaded.Database.Path)
	assert.Equal(t, "€", loaded.Currency.Symbol)
	assert.Equal(t, "info", loaded.Logging.Level)
	require.Len(t, loaded.Rules.DisallowedPairs, 1)
	assert.Equal(t, "no-card-bills", loaded.Rules.DisallowedPairs[0].Name)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("database: [broken"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestApplyEnv_Overrides(t *testing.T) {
	t.Setenv("POCKETFIN_DB_PATH", "/tmp/override.db")
	t.Setenv("POCKETFIN_LOG_LEVEL", "debug")

	cfg := Default("original.db", "$")
	cfg.ApplyEnv()

	assert.Equal(t, "/tmp/override.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "$", cfg.Currency.Symbol)
}
