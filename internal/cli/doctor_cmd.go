package cli

import (
	"context"
	"errors"

	"github.com/hbjs97/cf-switch/internal/doctor"
	"github.com/hbjs97/cf-switch/internal/setup"
	"github.com/spf13/cobra"
)

var errDoctorFailed = errors.New("doctor found problems")

func (a *App) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the environment",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDoctor(cmd.Context())
		},
	}
}

func (a *App) runDoctor(ctx context.Context) error {
	m, err := a.storeManager()
	if err != nil {
		a.printDiagResults([]doctor.DiagResult{{
			Name:    "settings",
			Status:  doctor.StatusFail,
			Message: err.Error(),
			Fix:     "fix " + a.CfgPath + " or run: cf-switch config init --force",
		}})
		return errDoctorFailed
	}
	client, err := a.client()
	if err != nil {
		return err
	}

	shellType := a.shellType()
	results := doctor.RunAll(ctx, doctor.Deps{
		Fs:        a.Fs,
		Client:    client,
		Store:     m,
		StorePath: m.Path(),
		EnvPath:   a.cfg.EnvPath,
		ShellType: shellType,
		RCPath:    setup.ShellRCPath(shellType, a.Home),
		Getenv:    a.Getenv,
	})
	a.printDiagResults(results)
	if doctor.HasFailure(results) {
		return errDoctorFailed
	}
	return nil
}

// printDiagResults는 진단 결과 목록을 출력한다.
func (a *App) printDiagResults(results []doctor.DiagResult) {
	for _, r := range results {
		a.ui.printf("  [%s] %s: %s\n", a.statusIcon(r.Status), r.Name, r.Message)
		if r.Fix != "" {
			a.ui.printf("      Fix: %s\n", r.Fix)
		}
	}
}

func (a *App) statusIcon(s doctor.Status) string {
	switch s {
	case doctor.StatusOK:
		return a.ui.style("OK", termGreen).String()
	case doctor.StatusWarn:
		return a.ui.style("!!", termYellow).String()
	case doctor.StatusFail:
		return a.ui.style("FAIL", termRed).String()
	default:
		return "??"
	}
}
