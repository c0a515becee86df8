package testutil

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Response represents a pre-configured command response for FakeCommander.
type Response struct {
	Output []byte
	Stderr []byte
	Err    error
}

// FakeCommander returns pre-configured responses for testing.
// Responses are keyed by "name arg1 arg2 ..." format.
// If no exact match is found, it tries prefix matching.
type FakeCommander struct {
	// Responses maps command strings to their responses.
	// Key format: "command arg1 arg2" (e.g., "flarectl zone purge", "flarectl --version")
	Responses map[string]Response

	// Calls records all commands that were executed, in order.
	Calls []string

	// EnvCalls records the environment variable maps passed to Stream, in order.
	EnvCalls []map[string]string

	// DefaultResponse is returned when no matching response is found.
	// If nil, an error is returned for unmatched commands.
	DefaultResponse *Response
}

// NewFakeCommander creates a FakeCommander with an empty response map.
func NewFakeCommander() *FakeCommander {
	return &FakeCommander{
		Responses: make(map[string]Response),
	}
}

// Register adds a response for the given command key.
func (c *FakeCommander) Register(key string, output string, err error) {
	c.Responses[key] = Response{
		Output: []byte(output),
		Err:    err,
	}
}

// RegisterStreams adds a response that writes separate stdout and stderr content.
func (c *FakeCommander) RegisterStreams(key, stdout, stderr string, err error) {
	c.Responses[key] = Response{
		Output: []byte(stdout),
		Stderr: []byte(stderr),
		Err:    err,
	}
}

// Run looks up the command in Responses and returns the matching response.
func (c *FakeCommander) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	resp, err := c.lookup(name, args)
	if err != nil {
		return nil, err
	}
	return append(append([]byte{}, resp.Output...), resp.Stderr...), resp.Err
}

// Stream records the environment variables and writes the matching response
// to the given writers.
func (c *FakeCommander) Stream(_ context.Context, env map[string]string, stdout, stderr io.Writer, name string, args ...string) error {
	c.EnvCalls = append(c.EnvCalls, env)
	resp, err := c.lookup(name, args)
	if err != nil {
		return err
	}
	if len(resp.Output) > 0 {
		_, _ = stdout.Write(resp.Output)
	}
	if len(resp.Stderr) > 0 {
		_, _ = stderr.Write(resp.Stderr)
	}
	return resp.Err
}

func (c *FakeCommander) lookup(name string, args []string) (*Response, error) {
	fullCmd := name
	if len(args) > 0 {
		fullCmd = name + " " + strings.Join(args, " ")
	}

	c.Calls = append(c.Calls, fullCmd)

	// Exact match first.
	if resp, ok := c.Responses[fullCmd]; ok {
		return &resp, nil
	}

	// Try prefix matching (longest prefix wins).
	bestKey := ""
	for key := range c.Responses {
		if strings.HasPrefix(fullCmd, key) && len(key) > len(bestKey) {
			bestKey = key
		}
	}
	if bestKey != "" {
		resp := c.Responses[bestKey]
		return &resp, nil
	}

	// Default response.
	if c.DefaultResponse != nil {
		resp := *c.DefaultResponse
		return &resp, nil
	}

	return nil, fmt.Errorf("FakeCommander: no response registered for %q", fullCmd)
}

// Called returns true if a command matching the given prefix was executed.
func (c *FakeCommander) Called(prefix string) bool {
	for _, call := range c.Calls {
		if strings.HasPrefix(call, prefix) {
			return true
		}
	}
	return false
}

// CallCount returns the number of times a command matching the given prefix was executed.
func (c *FakeCommander) CallCount(prefix string) int {
	count := 0
	for _, call := range c.Calls {
		if strings.HasPrefix(call, prefix) {
			count++
		}
	}
	return count
}
