package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/hbjs97/cf-switch/internal/fsutil"
	"github.com/hbjs97/cf-switch/internal/profile"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// CorruptStoreError는 저장 파일을 읽거나 해석할 수 없을 때 반환된다.
// 자동 복구하지 않으며 메시지를 그대로 사용자에게 보여준다.
type CorruptStoreError struct {
	Path string
	Err  error
}

func (e *CorruptStoreError) Error() string {
	return fmt.Sprintf("profile store %s is corrupt: %v (fix or delete the file)", e.Path, e.Err)
}

func (e *CorruptStoreError) Unwrap() []error {
	return []error{profile.ErrCorruptStore, e.Err}
}

// PersistenceError는 저장 파일 쓰기가 실패했을 때 반환된다.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("could not save profile store %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{profile.ErrPersistence, e.Err}
}

// Manager는 고정 경로의 프로필 저장 파일을 로드하고 원자적으로 저장한다.
type Manager struct {
	fs     afero.Fs
	path   string
	logger *zap.Logger
}

// New는 새 Manager를 생성한다. logger가 nil이면 로그를 남기지 않는다.
func New(fs afero.Fs, path string, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{fs: fs, path: path, logger: logger}
}

// Path는 저장 파일 경로를 반환한다.
func (m *Manager) Path() string {
	return m.path
}

// Load는 저장 파일을 파싱한다. 파일이 없으면 빈 Store를 반환한다.
func (m *Manager) Load() (*profile.Store, error) {
	data, err := afero.ReadFile(m.fs, m.path)
	if errors.Is(err, os.ErrNotExist) {
		m.logger.Debug("store file not found, starting empty", zap.String("path", m.path))
		return profile.NewStore(), nil
	}
	if err != nil {
		return nil, &CorruptStoreError{Path: m.path, Err: err}
	}

	s, err := decode(data)
	if err != nil {
		return nil, &CorruptStoreError{Path: m.path, Err: err}
	}
	if err := s.Validate(); err != nil {
		return nil, &CorruptStoreError{Path: m.path, Err: err}
	}
	m.logger.Debug("store loaded",
		zap.String("path", m.path),
		zap.Int("profiles", len(s.Profiles)),
		zap.String("active", s.Active),
		zap.String("previous", s.Previous))
	return s, nil
}

// Save는 Store 전체를 임시 파일에 쓴 뒤 rename으로 교체한다 (0600 권한).
func (m *Manager) Save(s *profile.Store) error {
	data, err := encode(s)
	if err != nil {
		return &PersistenceError{Path: m.path, Err: err}
	}
	if err := fsutil.WriteFileAtomic(m.fs, m.path, data, 0o600); err != nil {
		return &PersistenceError{Path: m.path, Err: err}
	}
	m.logger.Debug("store saved", zap.String("path", m.path), zap.Int("bytes", len(data)))
	return nil
}

func encode(s *profile.Store) ([]byte, error) {
	out := *s
	if out.Version == 0 {
		out.Version = profile.CurrentVersion
	}
	if out.Profiles == nil {
		out.Profiles = []profile.Profile{}
	}
	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// fileLayout은 현재 형식과 이전 cf-switch 형식을 모두 수용한다.
// 이전 형식은 profiles가 이름→프로필 객체이고 활성 프로필이 current에 있다.
type fileLayout struct {
	Version  int             `json:"version"`
	Active   string          `json:"active"`
	Previous string          `json:"previous"`
	Current  string          `json:"current"`
	Profiles json.RawMessage `json:"profiles"`
}

type legacyProfile struct {
	Email string  `json:"email"`
	Token string  `json:"token"`
	Zone  *string `json:"zone"`
}

func decode(data []byte) (*profile.Store, error) {
	var raw fileLayout
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	s := profile.NewStore()
	s.Version = raw.Version
	if s.Version == 0 {
		s.Version = profile.CurrentVersion
	}
	s.Active = raw.Active
	if s.Active == "" {
		s.Active = raw.Current
	}
	s.Previous = raw.Previous

	trimmed := bytes.TrimSpace(raw.Profiles)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
	case trimmed[0] == '{':
		var legacy map[string]legacyProfile
		if err := json.Unmarshal(trimmed, &legacy); err != nil {
			return nil, fmt.Errorf("profiles: %w", err)
		}
		names := make([]string, 0, len(legacy))
		for name := range legacy {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			lp := legacy[name]
			p := profile.Profile{Name: name, Email: lp.Email, Token: lp.Token}
			if lp.Zone != nil {
				p.Zone = *lp.Zone
			}
			s.Profiles = append(s.Profiles, p)
		}
	default:
		if err := json.Unmarshal(trimmed, &s.Profiles); err != nil {
			return nil, fmt.Errorf("profiles: %w", err)
		}
	}
	return s, nil
}
