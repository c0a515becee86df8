package setup

import (
	"os"
	"path/filepath"

	"golang.org/x/term"
)

// DetectShell은 $SHELL에서 현재 사용자의 셸 이름을 감지한다.
func DetectShell() string {
	sh := os.Getenv("SHELL")
	if sh == "" {
		return ""
	}
	return filepath.Base(sh)
}

// ResolveShell은 export 문법에 쓸 셸을 결정한다.
// 우선순위: 명령행 플래그, 설정 파일, $SHELL. 지원하지 않는 셸은 POSIX(sh)로 취급한다.
func ResolveShell(flagValue, cfgValue string) string {
	for _, candidate := range []string{flagValue, cfgValue, DetectShell()} {
		if candidate == "" {
			continue
		}
		switch candidate {
		case "bash", "zsh", "sh", "fish":
			return candidate
		default:
			return "sh"
		}
	}
	return "sh"
}

// IsInteractive는 f가 터미널인지 반환한다. 대화형 폼은 터미널에서만 띄운다.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
