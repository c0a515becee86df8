package flarectl

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hbjs97/cf-switch/internal/cmdexec"
	"github.com/hbjs97/cf-switch/internal/profile"
	"github.com/hbjs97/cf-switch/internal/shell"
	"go.uber.org/zap"
)

// DefaultBinary는 기본 클라이언트 실행 파일 이름이다.
const DefaultBinary = "flarectl"

// Adapter는 flarectl CLI를 Commander를 통해 실행한다.
type Adapter struct {
	cmd    cmdexec.Commander
	bin    string
	logger *zap.Logger
}

// NewAdapter는 새 flarectl Adapter를 생성한다. bin이 비어 있으면 DefaultBinary를 쓴다.
func NewAdapter(cmd cmdexec.Commander, bin string, logger *zap.Logger) *Adapter {
	if bin == "" {
		bin = DefaultBinary
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{cmd: cmd, bin: bin, logger: logger}
}

// Binary는 실행할 클라이언트 이름을 반환한다.
func (a *Adapter) Binary() string {
	return a.bin
}

// CredentialEnv는 프로필 자격 증명을 flarectl 환경변수로 변환한다.
// CF_ZONE은 명령 인자로 전달하므로 포함하지 않는다.
func CredentialEnv(p *profile.Profile) map[string]string {
	env := shell.Vars(p)
	delete(env, shell.EnvZone)
	return env
}

// PurgeZone은 zone의 캐시 전체를 비운다. 클라이언트 출력은 stdout/stderr로 그대로 전달된다.
func (a *Adapter) PurgeZone(ctx context.Context, p *profile.Profile, zone string, stdout, stderr io.Writer) error {
	return a.stream(ctx, p, stdout, stderr, "zone", "purge", "--zone", zone, "--everything")
}

// Record는 생성할 DNS 레코드다.
type Record struct {
	Type    string
	Name    string
	Content string
	Proxied bool
}

// CreateRecord는 zone에 DNS 레코드를 생성한다.
// 클라이언트가 실패했지만 레코드가 이미 있다고 보고하면 exists=true와 nil 에러를 반환한다.
func (a *Adapter) CreateRecord(ctx context.Context, p *profile.Profile, zone string, rec Record, stdout, stderr io.Writer) (exists bool, err error) {
	args := []string{"dns", "create", "--zone", zone, "--type", rec.Type, "--name", rec.Name, "--content", rec.Content}
	if rec.Proxied {
		args = append(args, "--proxy")
	}

	var captured bytes.Buffer
	err = a.stream(ctx, p, io.MultiWriter(stdout, &captured), io.MultiWriter(stderr, &captured), args...)
	if err != nil && strings.Contains(captured.String(), "already exists") {
		a.logger.Debug("dns record already exists", zap.String("zone", zone), zap.String("name", rec.Name))
		return true, nil
	}
	return false, err
}

// Version은 `flarectl --version` 출력을 반환한다.
func (a *Adapter) Version(ctx context.Context) (string, error) {
	out, err := a.cmd.Run(ctx, a.bin, "--version")
	if err != nil {
		return "", fmt.Errorf("flarectl.Version: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (a *Adapter) stream(ctx context.Context, p *profile.Profile, stdout, stderr io.Writer, args ...string) error {
	a.logger.Debug("running client",
		zap.String("bin", a.bin),
		zap.Strings("args", args),
		zap.String("profile", p.Name),
		zap.String("token", profile.MaskToken(p.Token)))
	return a.cmd.Stream(ctx, CredentialEnv(p), stdout, stderr, a.bin, args...)
}
