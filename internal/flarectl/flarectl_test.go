package flarectl_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/hbjs97/cf-switch/internal/cmdexec"
	"github.com/hbjs97/cf-switch/internal/flarectl"
	"github.com/hbjs97/cf-switch/internal/profile"
	"github.com/hbjs97/cf-switch/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func work() *profile.Profile {
	p := testutil.WorkProfile()
	return &p
}

func TestPurgeZone(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeCommander()
	fake.RegisterStreams("flarectl zone purge --zone x.com --everything", "purged\n", "", nil)

	a := flarectl.NewAdapter(fake, "", nil)
	var stdout, stderr bytes.Buffer
	err := a.PurgeZone(context.Background(), work(), "x.com", &stdout, &stderr)

	require.NoError(t, err)
	assert.Equal(t, "purged\n", stdout.String())

	// 자격 증명은 환경변수로 전달된다.
	require.Len(t, fake.EnvCalls, 1)
	assert.Equal(t, map[string]string{
		"CF_API_EMAIL": "a@x.com",
		"CF_API_KEY":   "tok1",
		"CF_API_TOKEN": "tok1",
	}, fake.EnvCalls[0])
}

func TestPurgeZone_ExitCodePassedThrough(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeCommander()
	fake.RegisterStreams("flarectl zone purge", "", "zone not found\n",
		&cmdexec.ExitError{Name: "flarectl", Code: 2})

	a := flarectl.NewAdapter(fake, "", nil)
	var stdout, stderr bytes.Buffer
	err := a.PurgeZone(context.Background(), work(), "nope.com", &stdout, &stderr)

	var exitErr *cmdexec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Equal(t, "zone not found\n", stderr.String())
}

func TestCustomBinary(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeCommander()
	fake.DefaultResponse = &testutil.Response{}

	a := flarectl.NewAdapter(fake, "/opt/bin/flarectl", nil)
	assert.Equal(t, "/opt/bin/flarectl", a.Binary())

	require.NoError(t, a.PurgeZone(context.Background(), work(), "x.com", &bytes.Buffer{}, &bytes.Buffer{}))
	assert.True(t, fake.Called("/opt/bin/flarectl zone purge"))
}

func TestCreateRecord(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeCommander()
	fake.DefaultResponse = &testutil.Response{Output: []byte("created\n")}

	a := flarectl.NewAdapter(fake, "", nil)
	exists, err := a.CreateRecord(context.Background(), work(), "x.com",
		flarectl.Record{Type: "CNAME", Name: "@", Content: "apps.lamdera.app", Proxied: true},
		&bytes.Buffer{}, &bytes.Buffer{})

	require.NoError(t, err)
	assert.False(t, exists)
	require.Len(t, fake.Calls, 1)
	assert.Equal(t,
		"flarectl dns create --zone x.com --type CNAME --name @ --content apps.lamdera.app --proxy",
		fake.Calls[0])
}

func TestCreateRecord_NotProxied(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeCommander()
	fake.DefaultResponse = &testutil.Response{}

	a := flarectl.NewAdapter(fake, "", nil)
	_, err := a.CreateRecord(context.Background(), work(), "x.com",
		flarectl.Record{Type: "CNAME", Name: "www", Content: "x.com"},
		&bytes.Buffer{}, &bytes.Buffer{})

	require.NoError(t, err)
	assert.NotContains(t, fake.Calls[0], "--proxy")
}

func TestCreateRecord_AlreadyExists(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeCommander()
	fake.RegisterStreams("flarectl dns create", "",
		"error: record already exists (81057)\n", &cmdexec.ExitError{Name: "flarectl", Code: 1})

	a := flarectl.NewAdapter(fake, "", nil)
	var stderr bytes.Buffer
	exists, err := a.CreateRecord(context.Background(), work(), "x.com",
		flarectl.Record{Type: "CNAME", Name: "@", Content: "apps.lamdera.app", Proxied: true},
		&bytes.Buffer{}, &stderr)

	require.NoError(t, err)
	assert.True(t, exists)
	assert.Contains(t, stderr.String(), "already exists")
}

func TestCreateRecord_Failure(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeCommander()
	fake.RegisterStreams("flarectl dns create", "", "invalid token\n",
		&cmdexec.ExitError{Name: "flarectl", Code: 1})

	a := flarectl.NewAdapter(fake, "", nil)
	exists, err := a.CreateRecord(context.Background(), work(), "x.com",
		flarectl.Record{Type: "CNAME", Name: "@", Content: "apps.lamdera.app"},
		&bytes.Buffer{}, &bytes.Buffer{})

	assert.Error(t, err)
	assert.False(t, exists)
}

func TestVersion(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeCommander()
	fake.Register("flarectl --version", "flarectl version 0.116.0\n", nil)

	v, err := flarectl.NewAdapter(fake, "", nil).Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "flarectl version 0.116.0", v)
}

func TestVersion_NotFound(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeCommander()
	fake.Register("flarectl --version", "", cmdexec.ErrNotFound)

	_, err := flarectl.NewAdapter(fake, "", nil).Version(context.Background())
	assert.ErrorIs(t, err, cmdexec.ErrNotFound)
}

func TestCredentialEnv_OmitsZone(t *testing.T) {
	t.Parallel()

	env := flarectl.CredentialEnv(work())
	assert.NotContains(t, env, "CF_ZONE")
	assert.Equal(t, "tok1", env["CF_API_TOKEN"])
}
