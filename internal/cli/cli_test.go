package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mr-Dark-debug/derlens/internal/cli"
	"github.com/Mr-Dark-debug/derlens/internal/history"
)

var sequenceDER = []byte{0x30, 0x07, 0x02, 0x01, 0x05, 0x04, 0x02, 0xAB, 0xCD}

// isolate points every config and history lookup at a temp directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("DERLENS_CONFIG", "")
	t.Setenv("DERLENS_HISTORY_PATH", filepath.Join(dir, "history.db"))
	t.Setenv("DERLENS_LOG_LEVEL", "")
	t.Setenv("DERLENS_LOG_FILE", "")
	t.Setenv("DERLENS_HEX_WIDTH", "")
	return dir
}

func execute(t *testing.T, stdin []byte, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2024-01-01"})
	var out, errOut bytes.Buffer
	cmd.SetIn(bytes.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{})
	require.NotNil(t, cmd)
	assert.Equal(t, "derlens", cmd.Name())
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"dump", "stats", "history", "version"} {
		sub, _, err := cmd.Find([]string{name})
		if assert.NoError(t, err, name) {
			assert.Equal(t, name, sub.Name())
		}
	}
	for _, name := range []string{"config", "debug", "no-history"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}

	dump, _, err := cmd.Find([]string{"dump"})
	require.NoError(t, err)
	for _, name := range []string{"raw", "color", "width"} {
		assert.NotNil(t, dump.Flags().Lookup(name), name)
	}
}

func TestVersionCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "abc123")
}

func TestDump_File(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "seq.txt")
	require.NoError(t, os.WriteFile(path, []byte("30 07 02 01 05\n04 02 AB CD\n"), 0o600))

	out, err := execute(t, nil, "dump", "--color", "never", path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"▼ SEQUENCE (len=7) {2}",
		"  • INTEGER (len=1) : 5",
		"  • OCTET STRING (len=2) : (2 bytes) AB CD",
		"",
	}, "\n"), out)
}

func TestDump_RawStdin(t *testing.T) {
	isolate(t)

	out, err := execute(t, sequenceDER, "dump", "--raw", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "INTEGER (len=1) : 05\n")
}

func TestDump_Errors(t *testing.T) {
	isolate(t)

	_, err := execute(t, nil, "dump")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no input")

	_, err = execute(t, []byte("30 05 02"), "dump")
	require.Error(t, err)

	_, err = execute(t, sequenceDER, "dump", "--color", "sometimes")
	require.Error(t, err)
}

func TestStats_JSON(t *testing.T) {
	isolate(t)

	out, err := execute(t, sequenceDER, "stats", "--format", "json")
	require.NoError(t, err)

	var report struct {
		TopLevel int `json:"top_level"`
		Nodes    int `json:"nodes"`
		MaxDepth int `json:"max_depth"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 1, report.TopLevel)
	assert.Equal(t, 3, report.Nodes)
	assert.Equal(t, 2, report.MaxDepth)
}

func TestStats_Markdown(t *testing.T) {
	isolate(t)

	out, err := execute(t, []byte("MAcCAQUEAqvN"), "stats")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# derlens Structure Report"))
}

func TestHistoryCommand(t *testing.T) {
	dir := isolate(t)

	out, err := execute(t, nil, "history")
	require.NoError(t, err)
	assert.Equal(t, "No history.\n", out)

	store, err := history.NewDBService(filepath.Join(dir, "history.db"))
	require.NoError(t, err)
	id, err := store.Record(history.NewEntry("paste", "30 07 02 01 05 04 02 AB CD", sequenceDER, 1))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	out, err = execute(t, nil, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "paste")
	assert.Contains(t, out, "9 bytes")

	out, err = execute(t, nil, "history", "show", "1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Contains(t, out, "30 07 02 01 05 04 02 AB CD")

	_, err = execute(t, nil, "history", "--clear")
	require.NoError(t, err)
	out, err = execute(t, nil, "history")
	require.NoError(t, err)
	assert.Equal(t, "No history.\n", out)
}

func TestHistoryCommand_Disabled(t *testing.T) {
	isolate(t)

	_, err := execute(t, nil, "--no-history", "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disabled")
}
