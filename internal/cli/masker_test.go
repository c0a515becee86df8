package cli_test

import (
	"testing"

	"github.com/hbjs97/cf-switch/internal/cli"
	"github.com/stretchr/testify/assert"
)

func TestMaskTokens(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		known []string
		want  string
	}{
		{"api token", "token: Zx9aBcDeFgHiJkLmNoPqRsTuVwXyZ0123456789a", nil, "token: Zx9a****"},
		{"global api key", "key 0123456789abcdef0123456789abcdef01234 here", nil, "key 0123**** here"},
		{"known short token", "auth failed for tok-secret-1", []string{"tok-secret-1"}, "auth failed for tok-****"},
		{"known tiny token", "value=tok1", []string{"tok1"}, "value=****"},
		{"no token", "hello world", nil, "hello world"},
		{"path is kept", "/home/user/.cf-switch.json", nil, "/home/user/.cf-switch.json"},
		{"long path segment kept",
			"profile store /tmp/TestCorruptStoreWithAVeryLongDirectoryName123/001/cf-switch.json is corrupt",
			nil,
			"profile store /tmp/TestCorruptStoreWithAVeryLongDirectoryName123/001/cf-switch.json is corrupt"},
		{"long file name kept", "open /srv/0123456789abcdef0123456789abcdef01234.json", nil,
			"open /srv/0123456789abcdef0123456789abcdef01234.json"},
		{"token next to path masked",
			"/etc/cf: bad token Zx9aBcDeFgHiJkLmNoPqRsTuVwXyZ0123456789a",
			nil,
			"/etc/cf: bad token Zx9a****"},
		{"known token inside path still masked", "/tmp/tok-secret-1/x", []string{"tok-secret-1"}, "/tmp/tok-****/x"},
		{"empty string", "", nil, ""},
		{"empty known ignored", "abc", []string{""}, "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cli.MaskTokens(tt.input, tt.known...))
		})
	}
}
