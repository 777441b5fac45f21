package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/notallowed/internal/model"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCheck_Banned(t *testing.T) {
	out, err := runCLI(t, "check", "--username", "ADMIN")

	require.ErrorIs(t, err, ErrBanned)
	assert.Contains(t, out, "banned  ADMIN (usernames: admin)")
}

func TestCheck_Clean(t *testing.T) {
	out, err := runCLI(t, "check", "--word", "hello world")

	require.NoError(t, err)
	assert.Contains(t, out, "ok      hello world")
}

func TestCheck_AnyAcrossValues(t *testing.T) {
	out, err := runCLI(t, "check", "--word", "clean phrase", "he is an ASSHOLE")

	require.ErrorIs(t, err, ErrBanned)
	assert.Contains(t, out, "ok      clean phrase")
	assert.Contains(t, out, "banned  he is an ASSHOLE (words: asshole)")
}

func TestCheck_AllWithAdd(t *testing.T) {
	_, err := runCLI(t, "check", "--all", "--username", "admin", "guest")
	require.NoError(t, err)

	_, err = runCLI(t, "check", "--all", "--username", "--add", "usernames=guest", "admin", "guest")
	require.ErrorIs(t, err, ErrBanned)
}

func TestCheck_AddUnknownCategory(t *testing.T) {
	_, err := runCLI(t, "check", "--add", "phones=555", "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBanned)
}

func TestCheck_DirBackendAndMerge(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ips.txt", "# ips\n127.0.0.1\n")
	extra := writeFile(t, t.TempDir(), "extra.txt", "10.0.0.9\n")

	_, err := runCLI(t, "--backend", "dir", "--data-dir", dir, "check", "--ip", "127.0.0.1")
	require.ErrorIs(t, err, ErrBanned)

	_, err = runCLI(t, "--backend", "dir", "--data-dir", dir, "check", "--ip", "127.0.0.2")
	require.NoError(t, err)

	_, err = runCLI(t, "--backend", "dir", "--data-dir", dir, "check", "--ip", "--merge", "ip="+extra, "10.0.0.9")
	require.ErrorIs(t, err, ErrBanned)
}

func TestCheck_DirBackendMissingList(t *testing.T) {
	_, err := runCLI(t, "--backend", "dir", "--data-dir", t.TempDir(), "check", "--word", "hello")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBanned)
}

func TestCheck_JSON(t *testing.T) {
	out, err := runCLI(t, "check", "--email", "--json", "someone@YOPMAIL.com", "pierre@henry.name")
	require.ErrorIs(t, err, ErrBanned)

	var report model.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, model.ModeAny, report.Mode)
	assert.Equal(t, []string{"emails"}, report.Categories)
	assert.True(t, report.Banned)
	require.Len(t, report.Values, 2)
	assert.Equal(t, "@yopmail.com", report.Values[0].Entry)
	assert.False(t, report.Values[1].Banned)
}

func TestList(t *testing.T) {
	out, err := runCLI(t, "list", "ips", "--add", "ips=10.1.1.1")

	require.NoError(t, err)
	assert.Equal(t, "125.123.208.182\n10.1.1.1\n", out)
}

func TestList_UnknownCategory(t *testing.T) {
	_, err := runCLI(t, "list", "phones")
	require.Error(t, err)
}

func TestBatch(t *testing.T) {
	file := writeFile(t, t.TempDir(), "values.txt", "# signups\nalice\nroot\n\nx@mailinator.com\nalice\n")

	out, err := runCLI(t, "batch", file, "--username", "--email", "--concurrency", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ok      alice", lines[0])
	assert.Equal(t, "banned  root (usernames: root)", lines[1])
	assert.Equal(t, "banned  x@mailinator.com (emails: @mailinator.com)", lines[2])

	_, err = runCLI(t, "batch", file, "--username", "--fail-on-match")
	require.ErrorIs(t, err, ErrBanned)
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "config.yaml")

	out, err := runCLI(t, "config", "init", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, err = runCLI(t, "config", "init", "--path", path)
	require.Error(t, err)

	out, err = runCLI(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "backend: embedded")
	assert.Contains(t, out, "addr: localhost:6379")
}

func TestConfig_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "usernames.txt", "guest\n")
	t.Setenv("NOTALLOWED_BACKEND", "dir")
	t.Setenv("NOTALLOWED_DATA_DIR", dir)

	_, err := runCLI(t, "check", "--username", "guest")
	require.ErrorIs(t, err, ErrBanned)
}

func TestConfig_MissingExplicitFile(t *testing.T) {
	_, err := runCLI(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "check", "x")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "notallowed dev\n", out)
}
