package cli

import (
	"strings"

	"github.com/hbjs97/cf-switch/internal/config"
	"github.com/spf13/cobra"
)

func (a *App) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the settings file",
	}
	cmd.AddCommand(a.newConfigInitCmd(), a.newConfigSetCmd())
	return cmd
}

func (a *App) newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented settings file with default values",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteTemplate(a.Fs, a.CfgPath, force); err != nil {
				return err
			}
			a.ui.success("Settings file written: %s", a.CfgPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing settings file")
	return cmd
}

func (a *App) newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting (" + strings.Join(config.Keys, ", ") + ")",
		Long: `Change one setting and rewrite the settings file. An empty value restores the
default. The rewritten file does not keep the comments written by config init.`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.Update(a.Fs, a.CfgPath, args[0], args[1]); err != nil {
				return err
			}
			a.ui.success("Set %s = %q in %s", args[0], args[1], a.CfgPath)
			return nil
		},
	}
}
