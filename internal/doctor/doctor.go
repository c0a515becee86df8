package doctor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hbjs97/cf-switch/internal/config"
	"github.com/hbjs97/cf-switch/internal/flarectl"
	"github.com/hbjs97/cf-switch/internal/profile"
	"github.com/hbjs97/cf-switch/internal/setup"
	"github.com/hbjs97/cf-switch/internal/shell"
	"github.com/spf13/afero"
)

// Status는 진단 결과 상태다.
type Status string

const (
	// StatusOK는 정상 상태다.
	StatusOK Status = "OK"
	// StatusWarn는 경고 상태다.
	StatusWarn Status = "WARN"
	// StatusFail는 실패 상태다.
	StatusFail Status = "FAIL"
)

// DiagResult는 하나의 진단 결과다.
type DiagResult struct {
	Name    string
	Status  Status
	Message string
	Fix     string
}

// StoreLoader는 프로필 저장소를 읽는다.
type StoreLoader interface {
	Load() (*profile.Store, error)
}

// CheckClient는 flarectl 바이너리 존재 여부를 확인한다.
func CheckClient(ctx context.Context, client *flarectl.Adapter) DiagResult {
	version, err := client.Version(ctx)
	if err != nil {
		return DiagResult{
			Name:    client.Binary(),
			Status:  StatusFail,
			Message: fmt.Sprintf("%s not found or not runnable", client.Binary()),
			Fix:     "brew install cloudflare/cloudflare/flarectl",
		}
	}
	return DiagResult{
		Name:    client.Binary(),
		Status:  StatusOK,
		Message: version,
	}
}

// CheckStore는 프로필 저장소가 파싱 가능한지 확인한다.
func CheckStore(st StoreLoader, path string) (DiagResult, *profile.Store) {
	s, err := st.Load()
	if err != nil {
		return DiagResult{
			Name:    "store",
			Status:  StatusFail,
			Message: err.Error(),
			Fix:     fmt.Sprintf("fix or remove %s", path),
		}, nil
	}
	if len(s.Profiles) == 0 {
		return DiagResult{
			Name:    "store",
			Status:  StatusWarn,
			Message: "no profiles yet",
			Fix:     "cf-switch add <name> -e <email> -t <token>",
		}, s
	}
	msg := fmt.Sprintf("%d profile(s)", len(s.Profiles))
	if s.Active != "" {
		msg += fmt.Sprintf(", active: %s", s.Active)
	}
	return DiagResult{Name: "store", Status: StatusOK, Message: msg}, s
}

// CheckFilePermissions는 자격 증명이 담긴 파일의 권한이 0600인지 확인한다.
// 아직 만들어지지 않은 파일은 정상으로 본다.
func CheckFilePermissions(fsys afero.Fs, name, path string) DiagResult {
	if _, err := fsys.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return DiagResult{Name: name, Status: StatusOK, Message: fmt.Sprintf("%s not created yet", path)}
	}
	if err := config.ValidateFilePermissions(fsys, path); err != nil {
		return DiagResult{
			Name:    name,
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s is readable by other users", path),
			Fix:     fmt.Sprintf("chmod 600 %s", path),
		}
	}
	return DiagResult{Name: name, Status: StatusOK, Message: fmt.Sprintf("%s is 0600", path)}
}

// CheckShellHook는 셸 RC 파일에 cfs 래퍼가 설치되었는지 확인한다.
func CheckShellHook(fsys afero.Fs, shellType, rcPath string) DiagResult {
	if rcPath == "" {
		return DiagResult{
			Name:    "shell_hook",
			Status:  StatusWarn,
			Message: fmt.Sprintf("unknown shell %q", shellType),
			Fix:     "cf-switch hook --shell <bash|zsh|fish>",
		}
	}
	if !setup.HookInstalled(fsys, rcPath) {
		return DiagResult{
			Name:    "shell_hook",
			Status:  StatusWarn,
			Message: fmt.Sprintf("cfs wrapper not found in %s", rcPath),
			Fix:     "cf-switch hook --install",
		}
	}
	return DiagResult{Name: "shell_hook", Status: StatusOK, Message: fmt.Sprintf("installed in %s", rcPath)}
}

// CheckEnvTokens는 현재 셸의 CF_API_TOKEN이 활성 프로필과 다른지 확인한다.
func CheckEnvTokens(active *profile.Profile, getenv func(string) string) DiagResult {
	envToken := getenv(shell.EnvToken)
	switch {
	case envToken == "":
		return DiagResult{Name: "env_tokens", Status: StatusOK, Message: "CF_API_TOKEN not set in this shell"}
	case active == nil:
		return DiagResult{
			Name:    "env_tokens",
			Status:  StatusWarn,
			Message: "CF_API_TOKEN set but no profile is active",
			Fix:     "cfs use <profile>",
		}
	case envToken != active.Token:
		return DiagResult{
			Name:    "env_tokens",
			Status:  StatusWarn,
			Message: fmt.Sprintf("CF_API_TOKEN (%s) does not match active profile %q", profile.MaskToken(envToken), active.Name),
			Fix:     fmt.Sprintf("cfs use %s", active.Name),
		}
	default:
		return DiagResult{Name: "env_tokens", Status: StatusOK, Message: fmt.Sprintf("shell matches profile %q", active.Name)}
	}
}

// Deps는 RunAll에 필요한 의존성이다.
type Deps struct {
	Fs        afero.Fs
	Client    *flarectl.Adapter
	Store     StoreLoader
	StorePath string
	EnvPath   string
	ShellType string
	RCPath    string
	Getenv    func(string) string
}

// RunAll은 모든 진단을 실행한다.
func RunAll(ctx context.Context, d Deps) []DiagResult {
	getenv := d.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	fsys := d.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	var results []DiagResult
	results = append(results, CheckClient(ctx, d.Client))
	storeResult, s := CheckStore(d.Store, d.StorePath)
	results = append(results, storeResult)
	results = append(results, CheckFilePermissions(fsys, "store_permissions", d.StorePath))
	results = append(results, CheckFilePermissions(fsys, "env_permissions", d.EnvPath))
	results = append(results, CheckShellHook(fsys, d.ShellType, d.RCPath))

	var active *profile.Profile
	if s != nil {
		active, _ = s.ActiveProfile()
	}
	results = append(results, CheckEnvTokens(active, getenv))
	return results
}

// HasFailure는 FAIL 상태 결과가 하나라도 있는지 반환한다.
func HasFailure(results []DiagResult) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}
