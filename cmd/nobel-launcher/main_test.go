package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestExecuteDependencyPresent(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	configPath := writeConfig(t, `
launcher:
  program: sh
  args: ["-c", "echo fetched; exit 4"]
  probe: ["sh", "-c", "exit 0"]
  install: ["sh", "-c", "echo installing \"$0\""]
  package: requests
  pause: false
log:
  level: error
`)

	var out, errOut bytes.Buffer
	code, err := execute([]string{"--config", configPath}, strings.NewReader(""), &out, &errOut)
	require.NoError(t, err)

	assert.Equal(t, 4, code)
	assert.Contains(t, out.String(), "fetched")
	assert.NotContains(t, out.String(), "installing")
}

func TestExecuteDependencyMissing(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	configPath := writeConfig(t, `
launcher:
  program: sh
  args: ["-c", "echo fetched"]
  probe: ["sh", "-c", "exit 1"]
  install: ["sh", "-c", "echo installing \"$0\"; exit 2"]
  package: requests
  pause: true
log:
  level: error
`)

	var out, errOut bytes.Buffer
	code, err := execute([]string{"--config", configPath}, strings.NewReader("\n"), &out, &errOut)
	require.NoError(t, err)

	assert.Equal(t, 0, code)
	output := out.String()
	assert.Contains(t, output, "installing requests")
	assert.Contains(t, output, "fetched")
	assert.Contains(t, output, "Press any key to continue")
	assert.Less(t, strings.Index(output, "installing requests"), strings.Index(output, "fetched"))
	assert.Less(t, strings.Index(output, "fetched"), strings.Index(output, "Press any key"))
}

func TestExecuteRejectsArgs(t *testing.T) {
	var out, errOut bytes.Buffer
	_, err := execute([]string{"extra"}, strings.NewReader(""), &out, &errOut)
	assert.Error(t, err)
}

func TestExecuteInvalidConfig(t *testing.T) {
	configPath := writeConfig(t, `
api:
  category: art
`)
	var out, errOut bytes.Buffer
	_, err := execute([]string{"--config", configPath}, strings.NewReader(""), &out, &errOut)
	require.Error(t, err)
	assert.Contains(t, errOut.String(), "api.category")
}
