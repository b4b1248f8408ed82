package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguagesCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newLanguagesCommand()
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "cpp         type, field, function, keyword, macro, enum, primitive", lines[0])
	assert.Contains(t, lines, "go          type, field, function")
	assert.Contains(t, lines, "json        field, keyword, primitive")
}

func TestThemesCommandMarksCurrentTheme(t *testing.T) {
	var out bytes.Buffer
	cmd := newThemesCommand()
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "* "+appTheme.Name+"\n")
}

func TestLangUsageListsGrammars(t *testing.T) {
	usage := langUsage("language override")
	assert.True(t, strings.HasPrefix(usage, "language override ("))
	for _, name := range []string{"go", "rust", "cpp", "typescript", "tsx", "javascript", "json"} {
		assert.Contains(t, usage, name)
	}
}

func TestExecuteReleasesResourcesWhenCommandFails(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	logPath := filepath.Join(t.TempDir(), "tscolor.log")
	missing := filepath.Join(t.TempDir(), "missing.go")

	a := &app{}
	err := execute(context.Background(), a, []string{"dump", "--log-file", logPath, missing})
	require.Error(t, err)

	// setup opened the log file; the failing command must not leak it.
	assert.Nil(t, a.closers)
	_, statErr := os.Stat(logPath)
	assert.NoError(t, statErr)
}
