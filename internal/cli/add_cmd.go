package cli

import (
	"github.com/hbjs97/cf-switch/internal/setup"
	"github.com/spf13/cobra"
)

func (a *App) newAddCmd() *cobra.Command {
	var input setup.ProfileInput

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a profile",
		Long: `Add a profile. Missing email or token are asked for interactively when
stdin is a terminal. The active profile does not change.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			input.Name = args[0]
			return a.runAdd(input)
		},
	}
	cmd.Flags().StringVarP(&input.Email, "email", "e", "", "Cloudflare account email")
	cmd.Flags().StringVarP(&input.Token, "token", "t", "", "Cloudflare API token")
	cmd.Flags().StringVarP(&input.Zone, "zone", "z", "", "default zone for purge and add-lamdera-app")
	return cmd
}

func (a *App) runAdd(input setup.ProfileInput) error {
	sw, err := a.switcher()
	if err != nil {
		return err
	}
	r := &setup.Runner{
		Profiles:    sw,
		FormRunner:  a.FormRunner,
		Interactive: a.In != nil && setup.IsInteractive(a.In),
	}
	p, err := r.Run(input)
	if err != nil {
		return err
	}
	a.ui.success("Added profile %s (%s)", a.ui.name(p.Name), p.Email)
	a.ui.printf("Activate it with: cfs use %s\n", p.Name)
	return nil
}
