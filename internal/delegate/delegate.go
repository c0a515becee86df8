package delegate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hbjs97/cf-switch/internal/cmdexec"
	"github.com/hbjs97/cf-switch/internal/flarectl"
	"github.com/hbjs97/cf-switch/internal/profile"
	"go.uber.org/zap"
)

// NotFoundCode는 클라이언트 실행 파일을 찾지 못했을 때의 종료 코드다 (셸 관례).
const NotFoundCode = 127

// StoreLoader는 프로필 저장소를 읽는다.
type StoreLoader interface {
	Load() (*profile.Store, error)
}

// CommandError는 위임된 클라이언트 호출이 실패했을 때 반환된다.
// Code는 클라이언트 자신의 종료 코드다.
type CommandError struct {
	Command  string
	Code     int
	NotFound bool
	Err      error
}

func (e *CommandError) Error() string {
	if e.NotFound {
		return fmt.Sprintf("%s not found on PATH (install it with: brew install cloudflare/cloudflare/flarectl)", e.Command)
	}
	return fmt.Sprintf("%s failed with exit code %d", e.Command, e.Code)
}

func (e *CommandError) Unwrap() []error {
	return []error{profile.ErrDelegatedCommand, e.Err}
}

// Target은 위임 명령이 대상으로 한 프로필과 zone이다.
type Target struct {
	Profile string
	Zone    string
}

// LamderaResult는 add-lamdera-app 결과다.
type LamderaResult struct {
	Target
	Content       string
	AlreadyExists bool
}

// Runner는 활성 프로필의 자격 증명으로 flarectl 명령을 실행한다.
type Runner struct {
	store         StoreLoader
	client        *flarectl.Adapter
	out           io.Writer
	lamderaTarget string
	logger        *zap.Logger
}

// Options는 Runner 선택 설정이다.
type Options struct {
	// Out은 클라이언트의 stdout과 stderr가 모두 전달될 곳이다.
	Out           io.Writer
	LamderaTarget string
	Logger        *zap.Logger
}

// NewRunner는 새 Runner를 생성한다.
func NewRunner(store StoreLoader, client *flarectl.Adapter, opts Options) *Runner {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.LamderaTarget == "" {
		opts.LamderaTarget = "apps.lamdera.app"
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Runner{
		store:         store,
		client:        client,
		out:           opts.Out,
		lamderaTarget: opts.LamderaTarget,
		logger:        opts.Logger,
	}
}

// Resolve는 활성 프로필과 대상 zone을 결정한다. zone 인자가 비어 있으면
// 프로필의 기본 zone을 쓴다. 클라이언트는 호출하지 않는다.
func (r *Runner) Resolve(zone string) (*profile.Profile, string, error) {
	s, err := r.store.Load()
	if err != nil {
		return nil, "", err
	}
	p, err := s.ActiveProfile()
	if err != nil {
		return nil, "", err
	}
	if zone == "" {
		zone = p.Zone
	}
	if zone == "" {
		return nil, "", fmt.Errorf("profile %q has no default zone: %w", p.Name, profile.ErrNoZoneSpecified)
	}
	return p, zone, nil
}

// Purge는 p의 자격 증명으로 zone의 캐시 전체를 비운다.
// p와 zone은 Resolve가 결정한 값이다.
func (r *Runner) Purge(ctx context.Context, p *profile.Profile, zone string) (*Target, error) {
	r.logger.Debug("purge", zap.String("profile", p.Name), zap.String("zone", zone))
	if err := r.client.PurgeZone(ctx, p, zone, r.out, r.out); err != nil {
		return nil, r.commandError("zone purge", err)
	}
	return &Target{Profile: p.Name, Zone: zone}, nil
}

// AddLamderaApp는 도메인 apex에 Lamdera 호스팅용 proxied CNAME을 만든다.
// 레코드가 이미 있으면 성공으로 보고 AlreadyExists를 설정한다.
func (r *Runner) AddLamderaApp(ctx context.Context, p *profile.Profile, domain string) (*LamderaResult, error) {
	rec := flarectl.Record{Type: "CNAME", Name: "@", Content: r.lamderaTarget, Proxied: true}
	r.logger.Debug("add lamdera app", zap.String("profile", p.Name), zap.String("domain", domain))
	exists, err := r.client.CreateRecord(ctx, p, domain, rec, r.out, r.out)
	if err != nil {
		return nil, r.commandError("dns create", err)
	}
	return &LamderaResult{
		Target:        Target{Profile: p.Name, Zone: domain},
		Content:       r.lamderaTarget,
		AlreadyExists: exists,
	}, nil
}

// LamderaURLs는 Lamdera 팀에 전달할 두 URL을 반환한다.
func LamderaURLs(domain string) (site, app string) {
	return "https://" + domain + "/", "https://" + strings.ReplaceAll(domain, ".", "-") + ".lamdera.app/"
}

func (r *Runner) commandError(sub string, err error) error {
	cmd := r.client.Binary() + " " + sub
	if errors.Is(err, cmdexec.ErrNotFound) {
		return &CommandError{Command: r.client.Binary(), Code: NotFoundCode, NotFound: true, Err: err}
	}
	var exitErr *cmdexec.ExitError
	if errors.As(err, &exitErr) {
		return &CommandError{Command: cmd, Code: exitErr.Code, Err: err}
	}
	// 시그널 종료나 context 취소 등 종료 코드가 없는 실패.
	return &CommandError{Command: cmd, Code: 1, Err: err}
}
