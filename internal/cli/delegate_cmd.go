package cli

import (
	"context"

	"github.com/hbjs97/cf-switch/internal/delegate"
	"github.com/spf13/cobra"
)

func (a *App) newPurgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge [zone]",
		Short: "Purge the whole cache of a zone (default: the profile's zone)",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPurge(cmd.Context(), optionalArg(args))
		},
	}
}

func (a *App) runPurge(ctx context.Context, zone string) error {
	r, err := a.delegateRunner()
	if err != nil {
		return err
	}
	p, zone, err := r.Resolve(zone)
	if err != nil {
		return err
	}
	a.ui.step("Purging cache for %s using profile '%s'...", a.ui.bold(zone), a.ui.name(p.Name))
	target, err := r.Purge(ctx, p, zone)
	if err != nil {
		return err
	}
	a.ui.success("Cache purged for %s", a.ui.bold(target.Zone))
	return nil
}

func (a *App) newAddLamderaAppCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-lamdera-app [domain]",
		Short: "Create the proxied apex CNAME for a Lamdera app",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAddLamderaApp(cmd.Context(), optionalArg(args))
		},
	}
}

func (a *App) runAddLamderaApp(ctx context.Context, domain string) error {
	r, err := a.delegateRunner()
	if err != nil {
		return err
	}
	p, domain, err := r.Resolve(domain)
	if err != nil {
		return err
	}
	a.ui.step("Adding Lamdera DNS record for %s using profile '%s'...", a.ui.bold(domain), a.ui.name(p.Name))
	res, err := r.AddLamderaApp(ctx, p, domain)
	if err != nil {
		return err
	}
	if res.AlreadyExists {
		a.ui.warn("DNS record already exists for %s", res.Zone)
	} else {
		a.ui.success("DNS record created: %s -> %s (proxied)", a.ui.bold(res.Zone), res.Content)
	}
	site, app := delegate.LamderaURLs(res.Zone)
	a.ui.printf("\n%s\n", a.ui.bold("Next step:"))
	a.ui.printf("DM Lamdera team with: %s and %s\n", site, app)
	return nil
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
