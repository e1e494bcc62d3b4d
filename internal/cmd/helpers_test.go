package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harrison/pagegen/internal/config"
)

// setupProject creates a project with a tool directory one level below it,
// changes into the tool directory and returns the project root.
func setupProject(t *testing.T) string {
	t.Helper()
	workDir := filepath.Join(t.TempDir(), "tool")
	require.NoError(t, os.MkdirAll(workDir, 0755))
	t.Chdir(workDir)

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Dir(wd)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func writeDefaultPrompt(t *testing.T, root, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(config.DefaultPrompt))
	writeFile(t, path, content)
	return path
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCommand()

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
