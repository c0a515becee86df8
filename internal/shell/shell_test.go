package shell_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/hbjs97/cf-switch/internal/profile"
	"github.com/hbjs97/cf-switch/internal/shell"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workProfile() *profile.Profile {
	return &profile.Profile{Name: "work", Email: "a@x.com", Token: "tok1", Zone: "x.com"}
}

func TestExports_PosixShell(t *testing.T) {
	t.Parallel()

	output := shell.Exports(workProfile(), "zsh")
	assert.Equal(t, "export CF_API_EMAIL='a@x.com'\n"+
		"export CF_API_KEY='tok1'\n"+
		"export CF_API_TOKEN='tok1'\n"+
		"export CF_ZONE='x.com'\n", output)
}

func TestExports_Bash(t *testing.T) {
	t.Parallel()

	output := shell.Exports(workProfile(), "bash")
	assert.Contains(t, output, "export CF_API_TOKEN='tok1'")
	assert.NotContains(t, output, "unset")
}

func TestExports_Fish(t *testing.T) {
	t.Parallel()

	output := shell.Exports(workProfile(), "fish")
	assert.Contains(t, output, "set -gx CF_API_EMAIL 'a@x.com'")
	assert.Contains(t, output, "set -gx CF_API_TOKEN 'tok1'")
	assert.Contains(t, output, "set -gx CF_ZONE 'x.com'")
	assert.NotContains(t, output, "export")
}

func TestExports_NoZoneUnsetsStaleValue(t *testing.T) {
	t.Parallel()

	p := &profile.Profile{Name: "personal", Email: "me@y.com", Token: "tok2"}

	posix := shell.Exports(p, "zsh")
	assert.Contains(t, posix, "unset CF_ZONE\n")
	assert.NotContains(t, posix, "export CF_ZONE")

	fish := shell.Exports(p, "fish")
	assert.Contains(t, fish, "set -e CF_ZONE\n")
}

func TestExports_QuotesSpecialCharacters(t *testing.T) {
	t.Parallel()

	p := &profile.Profile{Name: "odd", Email: "o'brien@x.com", Token: `a$b"c\d`}

	posix := shell.Exports(p, "bash")
	assert.Contains(t, posix, `export CF_API_EMAIL='o'\''brien@x.com'`)
	assert.Contains(t, posix, `export CF_API_TOKEN='a$b"c\d'`)

	fish := shell.Exports(p, "fish")
	assert.Contains(t, fish, `set -gx CF_API_EMAIL 'o\'brien@x.com'`)
	assert.Contains(t, fish, `set -gx CF_API_TOKEN 'a$b"c\\d'`)
}

func TestWriteEnvFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	path := "/home/u/.cloudflare.env"

	require.NoError(t, shell.WriteEnvFile(fs, path, workProfile()))

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `CF_API_EMAIL="a@x.com"`)
	assert.Contains(t, string(data), `CF_ZONE="x.com"`)

	info, err := fs.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, "-rw-------", info.Mode().Perm().String())

	env, err := godotenv.Unmarshal(string(data))
	require.NoError(t, err)
	assert.Equal(t, shell.Vars(workProfile()), env)
}

func TestWriteEnvFile_OverwritesPreviousProfile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	path := "/home/u/.cloudflare.env"

	require.NoError(t, shell.WriteEnvFile(fs, path, workProfile()))
	require.NoError(t, shell.WriteEnvFile(fs, path,
		&profile.Profile{Name: "personal", Email: "me@y.com", Token: "tok2"}))

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	env, err := godotenv.Unmarshal(string(data))
	require.NoError(t, err)
	assert.Equal(t, "me@y.com", env["CF_API_EMAIL"])
	assert.NotContains(t, env, "CF_ZONE")
}

func TestEmitter_WritesFileThenExports(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	var out bytes.Buffer
	e := &shell.Emitter{Fs: fs, EnvPath: "/home/u/.cloudflare.env", ShellType: "bash", Out: &out}

	require.NoError(t, e.Emit(workProfile()))
	assert.Equal(t, shell.Exports(workProfile(), "bash"), out.String())

	exists, err := afero.Exists(fs, "/home/u/.cloudflare.env")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestEmitter_FileFailurePrintsNothing(t *testing.T) {
	t.Parallel()

	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	var out bytes.Buffer
	e := &shell.Emitter{Fs: fs, EnvPath: "/home/u/.cloudflare.env", ShellType: "bash", Out: &out}

	err := e.Emit(workProfile())
	assert.Error(t, err)
	assert.Empty(t, out.String())
}

func TestWriteEnvFile_FailureMatchesPersistence(t *testing.T) {
	t.Parallel()

	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	err := shell.WriteEnvFile(fs, "/home/u/.cloudflare.env", workProfile())

	assert.ErrorIs(t, err, profile.ErrPersistence)
	var fileErr *shell.EnvFileError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, "/home/u/.cloudflare.env", fileErr.Path)
	assert.Contains(t, err.Error(), "/home/u/.cloudflare.env")
}

func TestEmitter_WriteFileAndPrintSeparately(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	var out bytes.Buffer
	e := &shell.Emitter{Fs: fs, EnvPath: "/e.env", ShellType: "fish", Out: &out}

	require.NoError(t, e.WriteFile(workProfile()))
	assert.Empty(t, out.String())

	require.NoError(t, e.Print(workProfile()))
	assert.Equal(t, shell.Exports(workProfile(), "fish"), out.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestEmitter_WriteFailure(t *testing.T) {
	t.Parallel()

	e := &shell.Emitter{Fs: afero.NewMemMapFs(), EnvPath: "/e.env", ShellType: "zsh", Out: failingWriter{}}
	assert.Error(t, e.Emit(workProfile()))
}

func TestHookSnippet_Zsh(t *testing.T) {
	t.Parallel()

	snippet := shell.HookSnippet("zsh", "cf-switch")
	assert.Contains(t, snippet, "cf-switch shell integration")
	assert.Contains(t, snippet, "cfs()")
	assert.Contains(t, snippet, `out="$(cf-switch "$@")" || return $?`)
	assert.Contains(t, snippet, `eval "$out"`)
}

func TestHookSnippet_Bash(t *testing.T) {
	t.Parallel()

	snippet := shell.HookSnippet("bash", "/usr/local/bin/cf-switch")
	assert.Contains(t, snippet, "(bash)")
	assert.Contains(t, snippet, `"$(/usr/local/bin/cf-switch "$@")"`)
}

func TestHookSnippet_Fish(t *testing.T) {
	t.Parallel()

	snippet := shell.HookSnippet("fish", "cf-switch")
	assert.Contains(t, snippet, "function cfs")
	assert.Contains(t, snippet, "(cf-switch $argv)")
	assert.Contains(t, snippet, "| source")
	assert.Contains(t, snippet, `printf '%s\n'`)
}

func TestHookSnippet_Unknown(t *testing.T) {
	t.Parallel()

	assert.Empty(t, shell.HookSnippet("powershell", "cf-switch"))
}
