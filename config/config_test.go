package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/amp-labs/amp-derive/envutil"
	"github.com/amp-labs/amp-derive/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "derive-ord.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "_ord.go", cfg.Suffix)
	assert.Equal(t, DefaultComparePkg, cfg.ComparePackage)
	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.Workers)
	assert.True(t, cfg.UnifyFieldless)
	assert.False(t, cfg.DryRun)
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
suffix: _cmp.go
comparePackage: example.com/order
workers: 2
unifyFieldless: false
dryRun: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Suffix:         "_cmp.go",
		ComparePackage: "example.com/order",
		Workers:        2,
		UnifyFieldless: false,
		DryRun:         true,
	}, cfg)
}

func TestLoad_EmptyFile(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_UnknownField(t *testing.T) {
	t.Parallel()

	_, err := Load(writeConfig(t, "sufix: _ord.go\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sufix")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "suffix: _cmp.go\nworkers: 2\n")

	t.Setenv(EnvSuffix, "_order.go")
	t.Setenv(EnvWorkers, "6")
	t.Setenv(EnvUnifyFieldless, "false")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "_order.go", cfg.Suffix)
	assert.Equal(t, 6, cfg.Workers)
	assert.False(t, cfg.UnifyFieldless)
	assert.Equal(t, DefaultComparePkg, cfg.ComparePackage)
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv(EnvWorkers, "many")
	t.Setenv(EnvUnifyFieldless, "perhaps")

	_, err := Load("")
	require.ErrorIs(t, err, envutil.ErrBadEnvVar)
	assert.Contains(t, err.Error(), EnvWorkers)
	assert.Contains(t, err.Error(), EnvUnifyFieldless)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "suffix without .go", mutate: func(c *Config) { c.Suffix = "_ord" }},
		{name: "test suffix", mutate: func(c *Config) { c.Suffix = "_ord_test.go" }},
		{name: "no compare package", mutate: func(c *Config) { c.ComparePackage = "" }},
		{name: "no workers", mutate: func(c *Config) { c.Workers = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), errors.ErrInvalidConfig)
		})
	}
}
