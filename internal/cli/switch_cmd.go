package cli

import (
	"fmt"

	"github.com/hbjs97/cf-switch/internal/profile"
	"github.com/hbjs97/cf-switch/internal/shell"
	"github.com/hbjs97/cf-switch/internal/switcher"
	"github.com/spf13/cobra"
)

func (a *App) newUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use [name]",
		Short: "Activate a profile (no name: toggle to the previous one)",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return a.runUse(name)
		},
	}
}

// runUse는 프로필을 활성화하고 export 문을 stdout에 출력한다.
// name이 비어 있으면 토글한다. 자격 증명 파일은 저장소보다 먼저 쓴다.
func (a *App) runUse(name string) error {
	cfg, err := a.settings()
	if err != nil {
		return err
	}
	emitter := &shell.Emitter{
		Fs:        a.Fs,
		EnvPath:   cfg.EnvPath,
		ShellType: a.shellType(),
		Out:       a.Out,
	}
	sw, err := a.switcher(switcher.WithActivation(emitter.WriteFile))
	if err != nil {
		return err
	}
	res, err := sw.Use(name)
	if err != nil {
		return err
	}
	if res.Profile == nil {
		a.ui.warn("No profiles yet. Add one with: %s add <name> -e <email> -t <token> [-z <zone>]", binaryName)
		return nil
	}
	if err := emitter.Print(res.Profile); err != nil {
		return err
	}

	if res.Changed {
		a.ui.success("Switched to %s (%s)", a.ui.name(res.Profile.Name), res.Profile.Email)
	} else {
		a.ui.success("Already on %s (%s)", a.ui.name(res.Profile.Name), res.Profile.Email)
	}
	return nil
}

func (a *App) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List profiles",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList()
		},
	}
}

func (a *App) runList() error {
	sw, err := a.switcher()
	if err != nil {
		return err
	}
	summaries, err := sw.List()
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		a.ui.warn("No profiles yet. Add one with: %s add <name> -e <email> -t <token> [-z <zone>]", binaryName)
		return nil
	}

	width := 0
	for _, s := range summaries {
		width = max(width, len(s.Name))
	}
	for _, s := range summaries {
		marker := "  "
		name := fmt.Sprintf("%-*s", width, s.Name)
		if s.Active {
			marker = "* "
			name = a.ui.name(name)
		}
		zone := s.Zone
		if zone == "" {
			zone = "-"
		}
		a.ui.printf("%s%s  %s  %s\n", marker, name, s.Email, zone)
	}
	return nil
}

func (a *App) newCurrentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the active profile",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCurrent()
		},
	}
}

func (a *App) runCurrent() error {
	sw, err := a.switcher()
	if err != nil {
		return err
	}
	p, err := sw.Current()
	if err != nil {
		return err
	}
	a.printProfile(p)
	return nil
}

func (a *App) printProfile(p *profile.Profile) {
	zone := p.Zone
	if zone == "" {
		zone = "(none)"
	}
	a.ui.printf("%s\n", a.ui.bold(a.ui.name(p.Name)))
	a.ui.printf("  email: %s\n", p.Email)
	a.ui.printf("  token: %s\n", profile.MaskToken(p.Token))
	a.ui.printf("  zone:  %s\n", zone)
}
