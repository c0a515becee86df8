package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/hbjs97/cf-switch/internal/fsutil"
	"github.com/hbjs97/cf-switch/internal/profile"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
)

// flarectl이 읽는 환경변수 이름이다.
const (
	EnvEmail = "CF_API_EMAIL"
	EnvKey   = "CF_API_KEY"
	EnvToken = "CF_API_TOKEN"
	EnvZone  = "CF_ZONE"
)

var exportOrder = []string{EnvEmail, EnvKey, EnvToken, EnvZone}

// Vars는 프로필을 환경변수 맵으로 투영한다. zone이 없으면 CF_ZONE은 포함하지 않는다.
// CF_API_KEY는 예전 flarectl 인증 방식을 위해 토큰과 같은 값을 갖는다.
func Vars(p *profile.Profile) map[string]string {
	vars := map[string]string{
		EnvEmail: p.Email,
		EnvKey:   p.Token,
		EnvToken: p.Token,
	}
	if p.Zone != "" {
		vars[EnvZone] = p.Zone
	}
	return vars
}

// IsFish는 셸 유형이 fish인지 반환한다. 그 외에는 POSIX 문법을 쓴다.
func IsFish(shellType string) bool {
	return shellType == "fish"
}

// Exports는 프로필 활성화를 위한 shell export 명령을 생성한다.
// 출력 전체가 eval 대상이므로 다른 텍스트를 섞지 않는다.
func Exports(p *profile.Profile, shellType string) string {
	vars := Vars(p)
	var b strings.Builder
	for _, key := range exportOrder {
		value, ok := vars[key]
		switch {
		case !ok && IsFish(shellType):
			fmt.Fprintf(&b, "set -e %s\n", key)
		case !ok:
			fmt.Fprintf(&b, "unset %s\n", key)
		case IsFish(shellType):
			fmt.Fprintf(&b, "set -gx %s %s\n", key, fishQuote(value))
		default: // bash, zsh, sh
			fmt.Fprintf(&b, "export %s=%s\n", key, posixQuote(value))
		}
	}
	return b.String()
}

// EnvFileContent는 자격 증명 파일 내용(KEY="value" 줄)을 생성한다.
func EnvFileContent(p *profile.Profile) (string, error) {
	content, err := godotenv.Marshal(Vars(p))
	if err != nil {
		return "", fmt.Errorf("shell.EnvFileContent: %w", err)
	}
	return content + "\n", nil
}

// EnvFileError는 자격 증명 파일을 쓰지 못했을 때 반환된다.
// profile.ErrPersistence와 매칭된다.
type EnvFileError struct {
	Path string
	Err  error
}

func (e *EnvFileError) Error() string {
	return fmt.Sprintf("cannot write credential file %s: %v", e.Path, e.Err)
}

func (e *EnvFileError) Unwrap() []error {
	return []error{profile.ErrPersistence, e.Err}
}

// WriteEnvFile은 자격 증명 파일을 원자적으로 덮어쓴다 (0600 권한).
func WriteEnvFile(fs afero.Fs, path string, p *profile.Profile) error {
	content, err := EnvFileContent(p)
	if err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(fs, path, []byte(content), 0o600); err != nil {
		return &EnvFileError{Path: path, Err: err}
	}
	return nil
}

// Emitter는 활성화 결과를 자격 증명 파일과 stdout의 export 문으로 내보낸다.
type Emitter struct {
	Fs        afero.Fs
	EnvPath   string
	ShellType string
	Out       io.Writer
}

// Emit은 파일을 먼저 쓰고 성공했을 때만 export 문을 출력한다.
func (e *Emitter) Emit(p *profile.Profile) error {
	if err := e.WriteFile(p); err != nil {
		return err
	}
	return e.Print(p)
}

// WriteFile은 자격 증명 파일만 쓴다.
func (e *Emitter) WriteFile(p *profile.Profile) error {
	return WriteEnvFile(e.Fs, e.EnvPath, p)
}

// Print는 export 문만 출력한다.
func (e *Emitter) Print(p *profile.Profile) error {
	if _, err := io.WriteString(e.Out, Exports(p, e.ShellType)); err != nil {
		return fmt.Errorf("shell.Print: %w", err)
	}
	return nil
}

// HookSnippet는 cf-switch의 stdout을 eval하는 셸 래퍼 함수를 반환한다.
func HookSnippet(shellType, bin string) string {
	switch shellType {
	case "zsh", "bash", "sh":
		return fmt.Sprintf(`# cf-switch shell integration (%s)
cfs() {
  local out
  out="$(%s "$@")" || return $?
  eval "$out"
}
`, shellType, bin)
	case "fish":
		return fmt.Sprintf(`# cf-switch shell integration (fish)
function cfs
  set -l out (%s $argv); or return $status
  printf '%%s\n' $out | source
end
`, bin)
	default:
		return ""
	}
}

func posixQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func fishQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}
