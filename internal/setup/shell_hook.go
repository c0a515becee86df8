package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hbjs97/cf-switch/internal/shell"
	"github.com/spf13/afero"
)

// HookMarker는 RC 파일에 hook이 설치되었는지 판별하는 표식이다.
const HookMarker = "cf-switch shell integration"

// ShellRCPath는 셸별 RC 파일 경로를 반환한다.
func ShellRCPath(shellType, home string) string {
	switch shellType {
	case "zsh":
		return filepath.Join(home, ".zshrc")
	case "bash":
		return filepath.Join(home, ".bashrc")
	case "sh":
		return filepath.Join(home, ".profile")
	case "fish":
		return filepath.Join(home, ".config", "fish", "conf.d", "cf-switch.fish")
	default:
		return ""
	}
}

// HookInstalled는 rcPath에 hook이 이미 있는지 반환한다.
func HookInstalled(fs afero.Fs, rcPath string) bool {
	existing, err := afero.ReadFile(fs, rcPath)
	if err != nil {
		return false
	}
	return strings.Contains(string(existing), HookMarker)
}

// InstallShellHook은 셸 RC 파일에 cf-switch hook을 추가한다.
// 이미 설치되어 있으면 건너뛰고 false를 반환한다.
func InstallShellHook(fs afero.Fs, shellType, rcPath, bin string) (bool, error) {
	snippet := shell.HookSnippet(shellType, bin)
	if snippet == "" {
		return false, fmt.Errorf("setup.InstallShellHook: 지원하지 않는 셸: %s", shellType)
	}
	if HookInstalled(fs, rcPath) {
		return false, nil
	}

	if err := fs.MkdirAll(filepath.Dir(rcPath), 0o755); err != nil {
		return false, fmt.Errorf("setup.InstallShellHook: %w", err)
	}
	f, err := fs.OpenFile(rcPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return false, fmt.Errorf("setup.InstallShellHook: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "\n%s", snippet); err != nil {
		return false, fmt.Errorf("setup.InstallShellHook: %w", err)
	}
	return true, nil
}
