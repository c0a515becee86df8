package cli

import (
	"github.com/hbjs97/cf-switch/internal/config"
	"github.com/hbjs97/cf-switch/internal/profile"
)

// 각 도메인 패키지의 sentinel error를 CLI 레이어에서 편의상 re-export한다.
var (
	// ErrCorruptStore는 저장 파일을 읽거나 파싱할 수 없을 때의 sentinel error다.
	ErrCorruptStore = profile.ErrCorruptStore
	// ErrPersistence는 저장 파일 쓰기 실패의 sentinel error다.
	ErrPersistence = profile.ErrPersistence
	// ErrUnknownProfile는 존재하지 않는 프로필 이름의 sentinel error다.
	ErrUnknownProfile = profile.ErrUnknownProfile
	// ErrDuplicateProfile는 이미 존재하는 프로필 추가 시의 sentinel error다.
	ErrDuplicateProfile = profile.ErrDuplicateProfile
	// ErrInvalidProfileName는 허용되지 않는 프로필 이름의 sentinel error다.
	ErrInvalidProfileName = profile.ErrInvalidProfileName
	// ErrNoActiveProfile는 활성 프로필이 없을 때의 sentinel error다.
	ErrNoActiveProfile = profile.ErrNoActiveProfile
	// ErrNoToggleTarget는 토글할 이전 프로필이 없을 때의 sentinel error다.
	ErrNoToggleTarget = profile.ErrNoToggleTarget
	// ErrNoZoneSpecified는 zone 인자도 기본 zone도 없을 때의 sentinel error다.
	ErrNoZoneSpecified = profile.ErrNoZoneSpecified
	// ErrDelegatedCommand는 flarectl 호출 실패의 sentinel error다.
	ErrDelegatedCommand = profile.ErrDelegatedCommand
	// ErrConfig는 설정 파일 오류를 나타내는 sentinel error다.
	ErrConfig = config.ErrConfig
)

// UsageError는 잘못된 인자나 플래그를 나타낸다.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }
