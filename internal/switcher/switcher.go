package switcher

import (
	"fmt"

	"github.com/hbjs97/cf-switch/internal/profile"
)

// StoreManager는 Switcher가 사용하는 저장소 추상화다.
// 프로덕션에서는 store.Manager, 테스트에서는 메모리 구현을 사용한다.
type StoreManager interface {
	Load() (*profile.Store, error)
	Save(*profile.Store) error
}

// Result는 use/toggle의 결과다. Profile이 nil이면 활성화할 프로필이 없다.
type Result struct {
	Profile *profile.Profile
	Changed bool
}

// Summary는 list 출력용 프로필 요약이다.
type Summary struct {
	Name   string
	Email  string
	Zone   string
	Active bool
}

// Switcher는 active/previous 포인터에 대한 상태 머신이다.
type Switcher struct {
	store    StoreManager
	activate func(*profile.Profile) error
}

// Option은 Switcher 선택 설정이다.
type Option func(*Switcher)

// WithActivation은 use/toggle이 고른 프로필을 저장 전에 fn으로 반영하게 한다.
// fn이 실패하면 active/previous는 저장되지 않는다.
func WithActivation(fn func(*profile.Profile) error) Option {
	return func(s *Switcher) {
		s.activate = fn
	}
}

// New는 새 Switcher를 생성한다.
func New(store StoreManager, opts ...Option) *Switcher {
	s := &Switcher{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Use는 지정한 프로필을 활성화한다. name이 비어 있으면 Toggle과 같다.
func (s *Switcher) Use(name string) (*Result, error) {
	if name == "" {
		return s.Toggle()
	}

	st, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	p, ok := st.Get(name)
	if !ok {
		return nil, fmt.Errorf("switcher.Use: %q: %w", name, profile.ErrUnknownProfile)
	}
	if st.Active == name {
		// 이미 활성 상태면 previous를 덮어쓰지 않아야 토글 이력이 유지된다.
		return s.commit(st, p, false)
	}

	if st.Active != "" {
		st.Previous = st.Active
	}
	st.Active = name
	return s.commit(st, p, true)
}

// Toggle은 active와 previous를 맞바꾼다.
//
// previous가 없거나 삭제된 프로필을 가리키면 프로필이 둘 이상일 때 ErrNoToggleTarget을
// 반환한다. 프로필이 0개나 1개면 실패하지 않는다.
func (s *Switcher) Toggle() (*Result, error) {
	st, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	if st.PreviousValid() {
		if st.Previous == st.Active {
			p, _ := st.Get(st.Active)
			return s.commit(st, p, false)
		}
		st.Active, st.Previous = st.Previous, st.Active
		p, _ := st.Get(st.Active) // PreviousValid가 존재를 보장
		return s.commit(st, p, true)
	}

	switch len(st.Profiles) {
	case 0:
		return &Result{}, nil
	case 1:
		only := st.Profiles[0]
		if st.Active == only.Name {
			return s.commit(st, &only, false)
		}
		st.Active = only.Name
		return s.commit(st, &only, true)
	default:
		return nil, fmt.Errorf("switcher.Toggle: %w", profile.ErrNoToggleTarget)
	}
}

// List는 추가된 순서대로 프로필 요약을 반환한다.
func (s *Switcher) List() ([]Summary, error) {
	st, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(st.Profiles))
	for _, p := range st.Profiles {
		out = append(out, Summary{
			Name:   p.Name,
			Email:  p.Email,
			Zone:   p.Zone,
			Active: p.Name == st.Active,
		})
	}
	return out, nil
}

// Current는 활성 프로필을 반환한다.
func (s *Switcher) Current() (*profile.Profile, error) {
	st, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	p, err := st.ActiveProfile()
	if err != nil {
		return nil, fmt.Errorf("switcher.Current: %w", err)
	}
	return copyOf(p), nil
}

// Add는 새 프로필을 추가한다. 같은 이름이 있으면 덮어쓰지 않고 실패한다.
func (s *Switcher) Add(p profile.Profile) error {
	st, err := s.store.Load()
	if err != nil {
		return err
	}
	if err := st.Append(p); err != nil {
		return fmt.Errorf("switcher.Add: %w", err)
	}
	return s.store.Save(st)
}

// commit은 activation hook을 먼저 실행하고, 성공했고 상태가 바뀌었을 때만 저장한다.
func (s *Switcher) commit(st *profile.Store, p *profile.Profile, changed bool) (*Result, error) {
	res := &Result{Profile: copyOf(p), Changed: changed}
	if s.activate != nil {
		if err := s.activate(res.Profile); err != nil {
			return nil, err
		}
	}
	if changed {
		if err := s.store.Save(st); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func copyOf(p *profile.Profile) *profile.Profile {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
