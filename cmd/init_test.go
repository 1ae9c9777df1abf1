package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitCmd(t *testing.T) {
	runInit := func(t *testing.T) (*bytes.Buffer, error) {
		t.Helper()

		cmd := newRootCmd()
		cmd.AddCommand(newInitCmd())

		out := &bytes.Buffer{}
		cmd.SetOut(out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"init"})

		return out, cmd.Execute()
	}

	t.Run("writes a fresh odoscan.yaml and reports it", func(t *testing.T) {
		tempDir := t.TempDir()
		chdir(t, tempDir)

		out, err := runInit(t)
		require.NoError(t, err)
		require.Contains(t, out.String(), configFileName)

		contents, err := os.ReadFile(filepath.Join(tempDir, configFileName))
		require.NoError(t, err)
		require.NotEmpty(t, contents)
	})

	t.Run("refuses to overwrite an existing file", func(t *testing.T) {
		tempDir := t.TempDir()
		chdir(t, tempDir)

		existing := filepath.Join(tempDir, configFileName)
		require.NoError(t, os.WriteFile(existing, []byte("existing: true\n"), 0o644))

		_, err := runInit(t)
		require.Error(t, err)

		contents, err := os.ReadFile(existing)
		require.NoError(t, err)
		require.Equal(t, "existing: true\n", string(contents))
	})
}
