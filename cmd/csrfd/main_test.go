package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "csrfd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("csrf:\n  timeout: 1m\n"), 0o600))

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out

	err := app.Run([]string{"csrfd", "--config", path, "--addr", ":9999", "check-config"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "addr=:9999")
	assert.Contains(t, out.String(), "timeout=1m0s")
	assert.Contains(t, out.String(), "sweep_interval=1m0s")
}

func TestCheckConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "csrfd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  format: xml\n"), 0o600))

	app := newApp()
	app.Writer = &bytes.Buffer{}
	err := app.Run([]string{"csrfd", "--config", path, "check-config"})
	require.ErrorContains(t, err, "log.format")
}
