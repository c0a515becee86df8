package cli

import (
	"fmt"

	"github.com/hbjs97/cf-switch/internal/setup"
	"github.com/hbjs97/cf-switch/internal/shell"
	"github.com/spf13/cobra"
)

func (a *App) newHookCmd() *cobra.Command {
	var install bool

	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Print or install the cfs shell wrapper",
		Long: `Print the cfs shell function that evaluates cf-switch's output, or append it
to your shell's RC file with --install. The snippet is printed on stderr.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runHook(install)
		},
	}
	cmd.Flags().BoolVar(&install, "install", false, "append the wrapper to the shell RC file")
	return cmd
}

func (a *App) runHook(install bool) error {
	if _, err := a.settings(); err != nil {
		return err
	}
	shellType := a.shellType()
	snippet := shell.HookSnippet(shellType, binaryName)

	if !install {
		a.ui.printf("%s", snippet)
		return nil
	}

	rcPath := setup.ShellRCPath(shellType, a.Home)
	if rcPath == "" {
		return &UsageError{Err: fmt.Errorf("no RC file known for shell %q; use --shell", shellType)}
	}
	installed, err := setup.InstallShellHook(a.Fs, shellType, rcPath, binaryName)
	if err != nil {
		return err
	}
	if !installed {
		a.ui.success("Shell hook already installed in %s", rcPath)
		return nil
	}
	a.ui.success("Shell hook installed in %s", rcPath)
	a.ui.printf("Restart your shell, then switch with: cfs use <name>\n")
	return nil
}
