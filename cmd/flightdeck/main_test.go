package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/five82/flightdeck/internal/djilog/djilogtest"
	"github.com/five82/flightdeck/internal/flightdata"
)

func executeCommand(args ...string) (string, error) {
	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

func setupHome(t *testing.T) string {
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestDecodeCommand_CSV(t *testing.T) {
	home := setupHome(t)
	path := filepath.Join(home, "flight.txt")
	data := djilogtest.New(9).
		OSD(flightdata.Frame{Latitude: 1, Longitude: 2, Altitude: 3}).
		Bytes()
	require.NoError(t, os.WriteFile(path, data, 0o644))

	stdout, err := executeCommand("decode", path, "--format", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "index,"))
}

func TestDecodeCommand_OutputFile(t *testing.T) {
	home := setupHome(t)
	path := filepath.Join(home, "flight.txt")
	out := filepath.Join(home, "flight.yaml")
	require.NoError(t, os.WriteFile(path, djilogtest.New(9).Bytes(), 0o644))

	_, err := executeCommand("decode", path, "-f", "yaml", "-o", out)
	require.NoError(t, err)

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(written), "fileName: flight.txt")
}

func TestDecodeCommand_BadFormatKeepsExistingOutput(t *testing.T) {
	home := setupHome(t)
	path := filepath.Join(home, "flight.txt")
	out := filepath.Join(home, "existing.json")
	require.NoError(t, os.WriteFile(path, djilogtest.New(9).Bytes(), 0o644))
	require.NoError(t, os.WriteFile(out, []byte(`{"keep": true}`), 0o644))

	_, err := executeCommand("decode", path, "-f", "xml", "-o", out)
	require.ErrorIs(t, err, flightdata.ErrUnsupportedFormat)

	kept, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, `{"keep": true}`, string(kept))
}

type failingCloser struct {
	bytes.Buffer
}

func (f *failingCloser) Close() error {
	return errors.New("disk full")
}

func TestDecodeCommand_CloseErrorIsReported(t *testing.T) {
	home := setupHome(t)
	path := filepath.Join(home, "flight.txt")
	require.NoError(t, os.WriteFile(path, djilogtest.New(9).Bytes(), 0o644))

	out := &failingCloser{}
	prev := createOutput
	createOutput = func(string) (io.WriteCloser, error) { return out, nil }
	t.Cleanup(func() { createOutput = prev })

	_, err := executeCommand("decode", path, "-o", filepath.Join(home, "out.json"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "close output: disk full")
	require.Contains(t, out.String(), "flight.txt")
}

func TestDecodeCommand_BadFile(t *testing.T) {
	home := setupHome(t)
	path := filepath.Join(home, "junk.txt")
	require.NoError(t, os.WriteFile(path, []byte("junk"), 0o644))

	_, err := executeCommand("decode", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "load failed")
}

func TestSettingsSetAndShow(t *testing.T) {
	home := setupHome(t)
	configPath := filepath.Join(home, "settings.toml")

	_, err := executeCommand("--config", configPath, "settings", "set", "--api-key", "abcdef123456")
	require.NoError(t, err)

	stdout, err := executeCommand("--config", configPath, "settings", "show")
	require.NoError(t, err)
	require.Contains(t, stdout, "API key:   ********3456")
	require.Contains(t, stdout, "Map token: (not set)")
	require.Contains(t, stdout, "dev.dji.com")

	stdout, err = executeCommand("--config", configPath, "settings", "show", "--reveal")
	require.NoError(t, err)
	require.Contains(t, stdout, "abcdef123456")
}

func TestSettingsSet_RequiresAFlag(t *testing.T) {
	setupHome(t)
	_, err := executeCommand("settings", "set")
	require.Error(t, err)
}

func TestSettingsSet_RejectsBadEndpoint(t *testing.T) {
	home := setupHome(t)
	_, err := executeCommand("--config", filepath.Join(home, "s.toml"), "settings", "set", "--endpoint", "nope")
	require.Error(t, err)
}

func TestRootRequiresTerminal(t *testing.T) {
	setupHome(t)
	prev := isTerminal
	isTerminal = func() bool { return false }
	t.Cleanup(func() { isTerminal = prev })

	_, err := executeCommand()
	require.Error(t, err)
	require.Contains(t, err.Error(), "terminal")
}
