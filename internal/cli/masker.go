package cli

import (
	"regexp"
	"strings"

	"github.com/hbjs97/cf-switch/internal/profile"
)

// Cloudflare API 토큰(40자)과 Global API 키(37자 hex) 형태.
var tokenPattern = regexp.MustCompile(`[A-Za-z0-9_-]{37,}`)

// MaskTokens는 s에서 알려진 토큰 값과 Cloudflare 토큰 형태의 문자열을 마스킹한다.
// 경로 구성 요소는 토큰 형태여도 그대로 둔다.
func MaskTokens(s string, known ...string) string {
	for _, tok := range known {
		if tok == "" {
			continue
		}
		s = strings.ReplaceAll(s, tok, profile.MaskToken(tok))
	}

	var b strings.Builder
	last := 0
	for _, loc := range tokenPattern.FindAllStringIndex(s, -1) {
		start, end := loc[0], loc[1]
		if isPathSegment(s, start, end) {
			continue
		}
		b.WriteString(s[last:start])
		b.WriteString(profile.MaskToken(s[start:end]))
		last = end
	}
	b.WriteString(s[last:])
	return b.String()
}

func isPathSegment(s string, start, end int) bool {
	if start > 0 && isPathSeparator(s[start-1]) {
		return true
	}
	return end < len(s) && isPathSeparator(s[end])
}

func isPathSeparator(c byte) bool {
	return c == '/' || c == '\\'
}
