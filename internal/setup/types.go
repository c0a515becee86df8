package setup

// ProfileInput은 프로필 생성 시 사용자 입력 값이다.
type ProfileInput struct {
	Name  string
	Email string
	Token string
	Zone  string
}

// Complete는 폼 없이 프로필을 만들 수 있을 만큼 값이 채워졌는지 반환한다.
func (p ProfileInput) Complete() bool {
	return p.Name != "" && p.Email != "" && p.Token != ""
}

// FormRunner는 TUI 폼 실행을 추상화하는 interface다.
// 프로덕션에서는 huh 기반 구현, 테스트에서는 mock을 사용한다.
type FormRunner interface {
	// RunProfileForm은 프로필 입력 폼을 실행한다.
	// defaults의 값은 입력란의 초기값으로 표시된다.
	RunProfileForm(defaults ProfileInput, existingNames []string) (*ProfileInput, error)
}
