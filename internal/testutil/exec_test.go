package testutil

import (
	"bytes"
	"context"
	"fmt"
	"testing"
)

func TestFakeCommander_ExactMatch(t *testing.T) {
	t.Parallel()

	fc := NewFakeCommander()
	fc.Register("flarectl --version", "flarectl version 0.116.0\n", nil)

	out, err := fc.Run(context.Background(), "flarectl", "--version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "flarectl version 0.116.0\n" {
		t.Errorf("got %q, want %q", string(out), "flarectl version 0.116.0\n")
	}
}

func TestFakeCommander_PrefixMatch(t *testing.T) {
	t.Parallel()

	fc := NewFakeCommander()
	fc.Register("flarectl zone purge", "purged", nil)

	out, err := fc.Run(context.Background(), "flarectl", "zone", "purge", "--zone", "x.com", "--everything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "purged" {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestFakeCommander_LongestPrefixWins(t *testing.T) {
	t.Parallel()

	fc := NewFakeCommander()
	fc.Register("flarectl", "generic", nil)
	fc.Register("flarectl dns create", "specific", nil)

	out, err := fc.Run(context.Background(), "flarectl", "dns", "create", "--zone", "x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "specific" {
		t.Errorf("got %q, want %q", string(out), "specific")
	}
}

func TestFakeCommander_NoMatch(t *testing.T) {
	t.Parallel()

	fc := NewFakeCommander()

	_, err := fc.Run(context.Background(), "unknown", "command")
	if err == nil {
		t.Fatal("expected error for unregistered command")
	}
}

func TestFakeCommander_DefaultResponse(t *testing.T) {
	t.Parallel()

	fc := NewFakeCommander()
	fc.DefaultResponse = &Response{Output: []byte("default"), Err: nil}

	out, err := fc.Run(context.Background(), "any", "command")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "default" {
		t.Errorf("got %q, want %q", string(out), "default")
	}
}

func TestFakeCommander_RecordsCalls(t *testing.T) {
	t.Parallel()

	fc := NewFakeCommander()
	fc.DefaultResponse = &Response{Output: nil, Err: nil}

	fc.Run(context.Background(), "flarectl", "--version")
	fc.Stream(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{}, "flarectl", "zone", "purge")

	if len(fc.Calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(fc.Calls))
	}
	if !fc.Called("flarectl zone") {
		t.Error("expected flarectl zone to be called")
	}
	if fc.CallCount("flarectl") != 2 {
		t.Errorf("expected 2 flarectl calls, got %d", fc.CallCount("flarectl"))
	}
}

func TestFakeCommander_ErrorResponse(t *testing.T) {
	t.Parallel()

	fc := NewFakeCommander()
	fc.Register("flarectl zone purge", "error: failed\n", fmt.Errorf("exit status 1"))

	out, err := fc.Run(context.Background(), "flarectl", "zone", "purge")
	if err == nil {
		t.Fatal("expected error")
	}
	if string(out) != "error: failed\n" {
		t.Errorf("got %q, want %q", string(out), "error: failed\n")
	}
}

func TestFakeCommander_StreamWritesBothStreams(t *testing.T) {
	t.Parallel()

	fc := NewFakeCommander()
	fc.RegisterStreams("flarectl dns create", "created\n", "warning\n", nil)

	var stdout, stderr bytes.Buffer
	err := fc.Stream(context.Background(), map[string]string{"CF_API_TOKEN": "tok"}, &stdout, &stderr, "flarectl", "dns", "create")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout.String() != "created\n" {
		t.Errorf("stdout: got %q", stdout.String())
	}
	if stderr.String() != "warning\n" {
		t.Errorf("stderr: got %q", stderr.String())
	}
	if len(fc.EnvCalls) != 1 || fc.EnvCalls[0]["CF_API_TOKEN"] != "tok" {
		t.Errorf("EnvCalls not recorded: %v", fc.EnvCalls)
	}
}

func TestFakeCommander_StreamNilEnvRecordsNil(t *testing.T) {
	t.Parallel()

	fc := NewFakeCommander()
	fc.DefaultResponse = &Response{Output: nil, Err: nil}

	fc.Stream(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{}, "flarectl", "zone", "list")

	if len(fc.EnvCalls) != 1 {
		t.Fatalf("expected 1 EnvCalls, got %d", len(fc.EnvCalls))
	}
	if fc.EnvCalls[0] != nil {
		t.Errorf("expected nil EnvCalls[0], got %v", fc.EnvCalls[0])
	}
}
