package setup

import (
	"errors"
	"fmt"

	"github.com/hbjs97/cf-switch/internal/profile"
	"github.com/hbjs97/cf-switch/internal/switcher"
)

// ErrNotInteractive는 값이 부족한데 폼을 띄울 수 없을 때 반환된다.
var ErrNotInteractive = errors.New("email and token are required (-e, -t) when stdin is not a terminal")

// ProfileAdder는 프로필을 나열하고 추가한다. switcher.Switcher가 구현한다.
type ProfileAdder interface {
	List() ([]switcher.Summary, error)
	Add(p profile.Profile) error
}

// Runner는 add 명령의 대화형 진입점이다.
type Runner struct {
	Profiles    ProfileAdder
	FormRunner  FormRunner
	Interactive bool
}

// Run은 부족한 값을 폼으로 채운 뒤 프로필을 추가한다.
// 값이 모두 주어졌으면 폼을 띄우지 않는다.
func (r *Runner) Run(input ProfileInput) (*profile.Profile, error) {
	if !input.Complete() {
		if !r.Interactive || r.FormRunner == nil {
			return nil, ErrNotInteractive
		}
		summaries, err := r.Profiles.List()
		if err != nil {
			return nil, err
		}
		existing := make([]string, 0, len(summaries))
		for _, s := range summaries {
			existing = append(existing, s.Name)
		}
		filled, err := r.FormRunner.RunProfileForm(input, existing)
		if err != nil {
			return nil, err
		}
		input = *filled
	}

	p := profile.Profile{Name: input.Name, Email: input.Email, Token: input.Token, Zone: input.Zone}
	if err := r.Profiles.Add(p); err != nil {
		return nil, fmt.Errorf("setup.Run: %w", err)
	}
	return &p, nil
}
