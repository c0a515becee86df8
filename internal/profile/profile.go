package profile

import (
	"errors"
	"fmt"
	"regexp"
)

// 각 오류 종류의 sentinel error다. 상위 레이어는 errors.Is로 판별한다.
var (
	// ErrCorruptStore는 저장된 프로필 파일을 해석할 수 없을 때의 sentinel error다.
	ErrCorruptStore = errors.New("profile store is corrupt")
	// ErrPersistence는 프로필 파일 저장이 실패했을 때의 sentinel error다.
	ErrPersistence = errors.New("failed to persist profile store")
	// ErrUnknownProfile는 존재하지 않는 프로필 이름을 지정했을 때 반환된다.
	ErrUnknownProfile = errors.New("profile not found")
	// ErrDuplicateProfile는 이미 존재하는 이름으로 프로필을 추가할 때 반환된다.
	ErrDuplicateProfile = errors.New("profile already exists")
	// ErrInvalidProfileName는 프로필 이름 형식이 잘못되었을 때 반환된다.
	ErrInvalidProfileName = errors.New("invalid profile name")
	// ErrNoActiveProfile는 활성 프로필이 없을 때 반환된다.
	ErrNoActiveProfile = errors.New("no profile currently active")
	// ErrNoToggleTarget는 토글할 직전 프로필을 결정할 수 없을 때 반환된다.
	ErrNoToggleTarget = errors.New("no previous profile to toggle to")
	// ErrNoZoneSpecified는 zone 인자도 기본 zone도 없을 때 반환된다.
	ErrNoZoneSpecified = errors.New("no zone specified and profile has no default zone")
	// ErrDelegatedCommand는 외부 클라이언트 실행이 실패했을 때의 sentinel error다.
	ErrDelegatedCommand = errors.New("delegated command failed")
)

// CurrentVersion은 저장 파일 스키마 버전이다.
const CurrentVersion = 1

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Profile은 하나의 Cloudflare 자격 증명 묶음이다.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
	Zone  string `json:"zone,omitempty"`
}

// ValidateName은 프로필 이름이 비어 있지 않고 허용된 문자만 포함하는지 확인한다.
// 이름은 대소문자를 구분한다.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("profile.ValidateName: %q: %w", name, ErrInvalidProfileName)
	}
	return nil
}

// Store는 저장 파일의 최상위 구조체다.
// Profiles는 추가된 순서를 유지한다.
type Store struct {
	Version  int       `json:"version"`
	Active   string    `json:"active,omitempty"`
	Previous string    `json:"previous,omitempty"`
	Profiles []Profile `json:"profiles"`
}

// NewStore는 빈 Store를 생성한다.
func NewStore() *Store {
	return &Store{Version: CurrentVersion, Profiles: []Profile{}}
}

// Get은 이름으로 프로필을 찾는다.
func (s *Store) Get(name string) (*Profile, bool) {
	if name == "" {
		return nil, false
	}
	for i := range s.Profiles {
		if s.Profiles[i].Name == name {
			return &s.Profiles[i], true
		}
	}
	return nil, false
}

// Has는 해당 이름의 프로필 존재 여부를 반환한다.
func (s *Store) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// ActiveProfile은 현재 활성 프로필을 반환한다.
func (s *Store) ActiveProfile() (*Profile, error) {
	if s.Active == "" {
		return nil, ErrNoActiveProfile
	}
	p, ok := s.Get(s.Active)
	if !ok {
		return nil, fmt.Errorf("profile.ActiveProfile: %q: %w", s.Active, ErrUnknownProfile)
	}
	return p, nil
}

// Append는 새 프로필을 끝에 추가한다. active/previous는 변경하지 않는다.
func (s *Store) Append(p Profile) error {
	if err := ValidateName(p.Name); err != nil {
		return err
	}
	if s.Has(p.Name) {
		return fmt.Errorf("profile.Append: %q: %w", p.Name, ErrDuplicateProfile)
	}
	s.Profiles = append(s.Profiles, p)
	return nil
}

// PreviousValid는 previous가 설정되어 있고 아직 존재하는 프로필을 가리키는지 반환한다.
func (s *Store) PreviousValid() bool {
	return s.Previous != "" && s.Has(s.Previous)
}

// Validate는 로드된 Store의 불변식을 검사한다.
// previous가 삭제된 프로필을 가리키는 것은 허용한다.
func (s *Store) Validate() error {
	seen := make(map[string]struct{}, len(s.Profiles))
	for i, p := range s.Profiles {
		if p.Name == "" {
			return fmt.Errorf("profiles[%d]: name is empty", i)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("profiles[%d]: duplicate name %q", i, p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	if s.Active != "" {
		if _, ok := seen[s.Active]; !ok {
			return fmt.Errorf("active profile %q does not exist", s.Active)
		}
	}
	return nil
}

// Clone은 깊은 복사본을 반환한다.
func (s *Store) Clone() *Store {
	c := *s
	c.Profiles = make([]Profile, len(s.Profiles))
	copy(c.Profiles, s.Profiles)
	return &c
}

// MaskToken은 로그와 화면 출력용으로 토큰의 앞 4자만 남긴다.
func MaskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "****"
}
