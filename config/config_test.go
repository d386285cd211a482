package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.ListenAddr)
	require.Equal(t, 5*time.Second, cfg.PollInterval)
	require.Equal(t, 10*time.Second, cfg.FlushInterval)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pvview.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: \":9999\"\ndata_dir: /var/lib/pvview\n"), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, ":9999", cfg.ListenAddr)
	require.Equal(t, "/var/lib/pvview", cfg.DataDir)
}

func TestLoad_FlagOverridesFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pvview.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: \":9999\"\n"), 0o644))

	t.Setenv("PVVIEW_LISTEN_ADDR", ":7777")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("listen_addr", "", "")
	require.NoError(t, flags.Parse([]string{"--listen_addr=:6000"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	require.Equal(t, ":6000", cfg.ListenAddr)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pvview.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: \":9999\"\n"), 0o644))

	t.Setenv("PVVIEW_LISTEN_ADDR", ":7777")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, ":7777", cfg.ListenAddr)
}
