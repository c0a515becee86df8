package setup

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/hbjs97/cf-switch/internal/profile"
)

// HuhFormRunner는 charmbracelet/huh 기반의 FormRunner 구현이다.
// stdout은 eval 대상이므로 폼은 Out(기본 stderr)에 그린다.
type HuhFormRunner struct {
	Out io.Writer
}

var _ FormRunner = (*HuhFormRunner)(nil)

// RunProfileForm은 프로필 입력 폼을 실행한다.
func (h *HuhFormRunner) RunProfileForm(defaults ProfileInput, existingNames []string) (*ProfileInput, error) {
	input := defaults

	nameValidate := func(s string) error {
		if err := profile.ValidateName(s); err != nil {
			return fmt.Errorf("letters, digits, '.', '_' and '-' only; must start with a letter or digit")
		}
		for _, n := range existingNames {
			if n == s {
				return fmt.Errorf("profile %q already exists", s)
			}
		}
		return nil
	}

	emailValidate := func(s string) error {
		if !strings.Contains(s, "@") {
			return fmt.Errorf("not an email address")
		}
		return nil
	}

	fields := []huh.Field{
		huh.NewInput().Title("Profile name").Value(&input.Name).Validate(nameValidate),
		huh.NewInput().Title("Cloudflare account email").Value(&input.Email).Validate(emailValidate),
		huh.NewInput().Title("API token").
			EchoMode(huh.EchoModePassword).
			Value(&input.Token).
			Validate(huh.ValidateNotEmpty()),
		huh.NewInput().Title("Default zone").
			Description("optional, e.g. example.com").
			Value(&input.Zone),
	}

	out := h.Out
	if out == nil {
		out = os.Stderr
	}
	form := huh.NewForm(huh.NewGroup(fields...)).WithOutput(out)
	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("setup.RunProfileForm: %w", err)
	}

	input.Zone = strings.TrimSpace(input.Zone)
	return &input, nil
}
