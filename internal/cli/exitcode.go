package cli

import (
	"errors"

	"github.com/hbjs97/cf-switch/internal/delegate"
	"github.com/hbjs97/cf-switch/internal/setup"
)

// ExitCode는 cf-switch의 종료 코드다.
type ExitCode int

const (
	// ExitSuccess는 정상 종료다.
	ExitSuccess ExitCode = 0
	// ExitGeneral는 일반 에러다.
	ExitGeneral ExitCode = 1
	// ExitUsage는 잘못된 인자나 플래그다.
	ExitUsage ExitCode = 2
	// ExitUnknownProfile는 존재하지 않는 프로필이다.
	ExitUnknownProfile ExitCode = 3
	// ExitInvalidProfile는 중복되거나 허용되지 않는 프로필 이름이다.
	ExitInvalidProfile ExitCode = 4
	// ExitStoreError는 저장 파일 또는 설정 파일 오류다.
	ExitStoreError ExitCode = 5
	// ExitNoTarget는 활성 프로필, 토글 대상, zone 중 하나가 없는 경우다.
	ExitNoTarget ExitCode = 6
)

// MapExitCode는 sentinel error를 기반으로 적절한 종료 코드를 반환한다.
// 위임 명령 실패는 클라이언트 자신의 종료 코드를 그대로 쓴다.
func MapExitCode(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	var cmdErr *delegate.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code > 0 {
		return ExitCode(cmdErr.Code)
	}
	var usageErr *UsageError
	switch {
	case errors.As(err, &usageErr), errors.Is(err, setup.ErrNotInteractive):
		return ExitUsage
	case errors.Is(err, ErrUnknownProfile):
		return ExitUnknownProfile
	case errors.Is(err, ErrDuplicateProfile), errors.Is(err, ErrInvalidProfileName):
		return ExitInvalidProfile
	case errors.Is(err, ErrCorruptStore), errors.Is(err, ErrPersistence), errors.Is(err, ErrConfig):
		return ExitStoreError
	case errors.Is(err, ErrNoActiveProfile), errors.Is(err, ErrNoToggleTarget), errors.Is(err, ErrNoZoneSpecified):
		return ExitNoTarget
	default:
		return ExitGeneral
	}
}
